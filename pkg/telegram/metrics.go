package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telegram bot metrics
var (
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_processed_total",
			Help: "Total number of processed commands by type",
		},
		[]string{"command"}, // start, in, out, undo, list
	)

	entriesAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_entries_appended_total",
			Help: "Total number of ledger rows appended by direction",
		},
		[]string{"direction"}, // in, out
	)

	entriesUndone = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_entries_undone_total",
			Help: "Total number of ledger rows removed via /undo",
		},
	)

	accessDenied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_access_denied_total",
			Help: "Total number of messages rejected by the allow-list",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // validation, not_found, decode, empty_ledger, storage, send
	)

	engineOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telegram_engine_op_duration_seconds",
			Help:    "Duration of ledger engine operations in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"}, // append_in, append_out, undo, list
	)
)
