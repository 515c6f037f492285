package speech

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// promptPrefix asks the model to read the word slowly
const promptPrefix = "Say carefully: "

// ValidateText checks that a word is speakable
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}
	return fmt.Errorf("text must contain at least one letter")
}

// Normalize trims the word and puts it in NFC form so that visually equal
// words produce equal requests
func Normalize(word string) string {
	return norm.NFC.String(strings.TrimSpace(word))
}

// Prompt builds the instruction sent to generative speech models
func Prompt(word string) string {
	return promptPrefix + Normalize(word)
}
