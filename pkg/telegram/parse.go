package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"kassa/pkg/ledger"
)

// InParams are the free-text parameters for /in: {description} {amount} {percent}.
type InParams struct {
	Description string
	Amount      int64
	Percent     int64
}

// OutParams are the free-text parameters for /out: {description} {amount}.
type OutParams struct {
	Description string
	Amount      int64
}

// parseInParams splits free text on whitespace and expects exactly three
// tokens. Amount and percent are strict base-10 integers; "10abc" is
// rejected, unlike the loose parsing some clients are used to.
func parseInParams(text string) (InParams, error) {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		return InParams{}, fmt.Errorf("%w: expected {description} {amount} {percent}", ledger.ErrValidation)
	}

	amount, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return InParams{}, fmt.Errorf("%w: amount must be a valid number", ledger.ErrValidation)
	}
	percent, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return InParams{}, fmt.Errorf("%w: percent must be a valid number", ledger.ErrValidation)
	}

	return InParams{Description: parts[0], Amount: amount, Percent: percent}, nil
}

func parseOutParams(text string) (OutParams, error) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return OutParams{}, fmt.Errorf("%w: expected {description} {amount}", ledger.ErrValidation)
	}

	amount, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return OutParams{}, fmt.Errorf("%w: amount must be a valid number", ledger.ErrValidation)
	}

	return OutParams{Description: parts[0], Amount: amount}, nil
}

// Allowlist is the fixed set of authorized sender ids.
type Allowlist map[int64]struct{}

func NewAllowlist(ids []int64) Allowlist {
	al := make(Allowlist, len(ids))
	for _, id := range ids {
		al[id] = struct{}{}
	}
	return al
}

func (al Allowlist) Contains(id int64) bool {
	_, ok := al[id]
	return ok
}
