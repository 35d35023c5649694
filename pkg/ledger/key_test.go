package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		chatID int64
		want   string
	}{
		{"strips and lower-cases", "My Café!", -100123, "mycaf.xlsx"},
		{"keeps underscores and dashes", "family_budget-2024", 1, "family_budget-2024.xlsx"},
		{"strips spaces", "Family Budget", 1, "familybudget.xlsx"},
		{"absent title uses chat id", "", 42, "user_42.xlsx"},
		{"negative group id", "", -100987, "user_-100987.xlsx"},
		{"title of only stripped chars", "!!!", 42, ".xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFor(tt.title, tt.chatID))
		})
	}
}

func TestTitleFromKey(t *testing.T) {
	assert.Equal(t, "mycaf", TitleFromKey("mycaf.xlsx"))
	assert.Equal(t, "user_42", TitleFromKey("user_42.xlsx"))
}
