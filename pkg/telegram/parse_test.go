package telegram

import (
	"testing"

	"kassa/pkg/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInParams(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    InParams
		wantErr bool
	}{
		{"valid", "rent 1000 10", InParams{"rent", 1000, 10}, false},
		{"negative percent", "rent 1000 -10", InParams{"rent", 1000, -10}, false},
		{"extra whitespace", "  rent   1000   10 ", InParams{"rent", 1000, 10}, false},
		{"too few tokens", "rent 1000", InParams{}, true},
		{"too many tokens", "rent 1000 10 extra", InParams{}, true},
		{"non-integer amount", "desc abc 10", InParams{}, true},
		{"trailing garbage rejected", "rent 10abc 10", InParams{}, true},
		{"fractional amount rejected", "rent 10.5 10", InParams{}, true},
		{"empty", "", InParams{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInParams(tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, ledger.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOutParams(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    OutParams
		wantErr bool
	}{
		{"valid", "food 200", OutParams{"food", 200}, false},
		{"too few tokens", "food", OutParams{}, true},
		{"too many tokens", "food 200 10", OutParams{}, true},
		{"non-integer amount", "food 2o0", OutParams{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOutParams(tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, ledger.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowlist(t *testing.T) {
	al := NewAllowlist([]int64{7540947010, 7529522452})

	assert.True(t, al.Contains(7540947010))
	assert.True(t, al.Contains(7529522452))
	assert.False(t, al.Contains(1))
	assert.False(t, Allowlist(nil).Contains(1))
}
