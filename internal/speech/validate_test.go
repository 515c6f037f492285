package speech

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "single word",
			text:    "Validation",
			wantErr: false,
		},
		{
			name:    "idiom with curly apostrophe",
			text:    "It’s a double-edged sword",
			wantErr: false,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   \t\n",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "numbers only",
			text:    "12345",
			wantErr: true,
			errMsg:  "text must contain at least one letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateText() error = %v, want error containing %v", err.Error(), tt.errMsg)
				}
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Addictive", "Say carefully: Addictive"},
		{"  Down the rabbit hole \n", "Say carefully: Down the rabbit hole"},
		// Decomposed e + combining acute becomes a single code point
		{"cafe\u0301", "Say carefully: caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Prompt(tt.input); got != tt.expected {
				t.Errorf("Prompt(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
