package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kassa/pkg/storage"

	"github.com/vmkteam/embedlog"
)

// Manager owns the ledger update algorithm: load the current ledger for a
// key (or start a fresh one), apply the operation, recompute the running
// balance and persist. One store write per operation, no retries.
type Manager struct {
	store storage.Store
	log   embedlog.Logger
	locks *keyLocks
	now   func() time.Time
}

func NewManager(store storage.Store, log embedlog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
		locks: newKeyLocks(),
		now:   time.Now,
	}
}

// AppendIn appends an in-row dated today. The stored amount is adjusted by
// percent and the balance advances by the adjusted amount. A missing blob
// starts a fresh ledger; a corrupt blob is surfaced as ErrDecode.
func (m *Manager) AppendIn(ctx context.Context, key, description string, amount, percent int64) (Row, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Row{}, fmt.Errorf("%w: description must be a non-empty string", ErrValidation)
	}

	// The zero case must flow through the subtract branch: it yields the
	// same value today, but the two branches are kept distinct on purpose
	// so the formulas can diverge without silently changing the zero case.
	var amountWithPercent float64
	if percent > 0 {
		amountWithPercent = float64(amount) + float64(amount)*float64(percent)/100
	} else {
		abs := percent
		if abs < 0 {
			abs = -abs
		}
		amountWithPercent = float64(amount) - float64(amount)*float64(abs)/100
	}

	lock := m.locks.Lock(key)
	defer lock.Unlock()

	l, err := m.load(ctx, key, true)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Date:              FormatDate(m.now()),
		Name:              description,
		In:                &amount,
		Percent:           &percent,
		AmountWithPercent: &amountWithPercent,
		Balance:           l.LastBalance() + amountWithPercent,
	}
	l.Rows = append(l.Rows, row)

	if err := m.persist(ctx, key, l); err != nil {
		return Row{}, err
	}

	m.log.Print(ctx, "in-row appended", "key", key, "amount", amount, "percent", percent, "balance", row.Balance)

	return row, nil
}

// AppendOut appends an out-row dated today; the balance retreats by amount.
func (m *Manager) AppendOut(ctx context.Context, key, description string, amount int64) (Row, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Row{}, fmt.Errorf("%w: description must be a non-empty string", ErrValidation)
	}

	lock := m.locks.Lock(key)
	defer lock.Unlock()

	l, err := m.load(ctx, key, true)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Date:    FormatDate(m.now()),
		Name:    description,
		Out:     &amount,
		Balance: l.LastBalance() - float64(amount),
	}
	l.Rows = append(l.Rows, row)

	if err := m.persist(ctx, key, l); err != nil {
		return Row{}, err
	}

	m.log.Print(ctx, "out-row appended", "key", key, "amount", amount, "balance", row.Balance)

	return row, nil
}

// Undo removes the last row by insertion order and persists the rest.
// Remaining rows keep their historical balances untouched. Returns
// storage.ErrNotFound when no blob exists and ErrEmptyLedger when the
// ledger has no data rows.
func (m *Manager) Undo(ctx context.Context, key string) error {
	lock := m.locks.Lock(key)
	defer lock.Unlock()

	l, err := m.load(ctx, key, false)
	if err != nil {
		return err
	}
	if len(l.Rows) == 0 {
		return ErrEmptyLedger
	}

	l.Rows = l.Rows[:len(l.Rows)-1]

	if err := m.persist(ctx, key, l); err != nil {
		return err
	}

	m.log.Print(ctx, "last row removed", "key", key, "rows", len(l.Rows))

	return nil
}

// ListLatest returns the raw current blob for direct delivery to the chat.
// A missing or zero-length blob is storage.ErrNotFound.
func (m *Manager) ListLatest(ctx context.Context, key string) ([]byte, error) {
	data, err := m.store.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: blob at %q is empty", storage.ErrNotFound, key)
	}

	return data, nil
}

// load fetches and decodes the ledger at key. With createFresh, a missing
// blob becomes an empty ledger; decode failures always propagate so corrupt
// data is surfaced, never discarded.
func (m *Manager) load(ctx context.Context, key string, createFresh bool) (*Ledger, error) {
	data, err := m.store.Fetch(ctx, key)
	if err != nil {
		if createFresh && errors.Is(err, storage.ErrNotFound) {
			return &Ledger{}, nil
		}
		return nil, err
	}

	l, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return l, nil
}

func (m *Manager) persist(ctx context.Context, key string, l *Ledger) error {
	data, err := Encode(l)
	if err != nil {
		return err
	}

	return m.store.Put(ctx, key, data)
}
