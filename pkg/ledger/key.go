package ledger

import (
	"fmt"
	"regexp"
	"strings"
)

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// KeyFor derives the storage key for a conversation: the title stripped of
// everything outside [a-zA-Z0-9_-], lower-cased, plus ".xlsx". A missing
// title falls back to a synthetic key from the numeric chat id.
func KeyFor(title string, chatID int64) string {
	if title == "" {
		return fmt.Sprintf("user_%d.xlsx", chatID)
	}
	return strings.ToLower(keySanitizer.ReplaceAllString(title, "")) + ".xlsx"
}

// TitleFromKey returns the human-readable table name for replies.
func TitleFromKey(key string) string {
	return strings.TrimSuffix(key, ".xlsx")
}
