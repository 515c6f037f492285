package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Version is the application version shown in the window title and --version.
const Version = "0.3.0"

// MediaFilename creates a stable media filename for a card's pronunciation.
// Format: lingoflash_<id>_md5(word)[:8].<ext>
func MediaFilename(id int, word, ext string) string {
	hash := md5.Sum([]byte(word))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("lingoflash_%d_%s.%s", id, hashStr, strings.TrimPrefix(ext, "."))
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or digit
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
