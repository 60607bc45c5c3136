package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GenerateClipID creates a unique ID for an audio clip based on the current
// time and the spoken text.
// Format: epochMillis_md5(text)[:8]
func GenerateClipID(text string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(text))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string. Letters of any
// script are kept.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
