package ledger

import "errors"

var (
	// ErrDecode means a blob exists but is not a parseable ledger
	// spreadsheet. Never treated as "create a fresh ledger".
	ErrDecode = errors.New("not a valid ledger spreadsheet")
	// ErrEmptyLedger is returned by Undo when there are no rows to remove.
	ErrEmptyLedger = errors.New("ledger is empty")
	// ErrValidation means bad user input: empty description, non-integer
	// amount or percent.
	ErrValidation = errors.New("invalid parameters")
)
