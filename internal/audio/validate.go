package audio

import (
	"errors"
	"strings"
)

// ErrEmptyText is returned for blank input
var ErrEmptyText = errors.New("text cannot be empty")

// ValidateText rejects blank text. The inference provider leaves this to
// its caller; local and SDK backends check it themselves.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}
