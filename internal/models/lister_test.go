package models

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"
	"testing"

	"google.golang.org/genai"
)

type fakeSource struct {
	models []*genai.Model
	err    error
}

func (f *fakeSource) All(ctx context.Context) iter.Seq2[*genai.Model, error] {
	return func(yield func(*genai.Model, error) bool) {
		for _, m := range f.models {
			if !yield(m, nil) {
				return
			}
		}
		if f.err != nil {
			yield(nil, f.err)
		}
	}
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestCategorize(t *testing.T) {
	lister := &Lister{models: &fakeSource{models: []*genai.Model{
		{Name: "models/gemini-2.5-pro"},
		{Name: "models/gemini-2.5-pro-preview-tts"},
		{Name: "models/gemini-2.5-flash-preview-tts"},
		{Name: "models/embedding-001"},
	}}}

	got, err := lister.Categorize(context.Background())
	if err != nil {
		t.Fatalf("Categorize() error = %v", err)
	}

	wantTTS := []string{"gemini-2.5-flash-preview-tts", "gemini-2.5-pro-preview-tts"}
	if strings.Join(got.TTS, ",") != strings.Join(wantTTS, ",") {
		t.Errorf("TTS = %v, want %v", got.TTS, wantTTS)
	}
	wantOther := []string{"embedding-001", "gemini-2.5-pro"}
	if strings.Join(got.Other, ",") != strings.Join(wantOther, ",") {
		t.Errorf("Other = %v, want %v", got.Other, wantOther)
	}
}

func TestCategorize_Error(t *testing.T) {
	lister := &Lister{models: &fakeSource{err: errors.New("quota exceeded")}}

	_, err := lister.Categorize(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to list models: quota exceeded") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestListAvailableModels_Output(t *testing.T) {
	var models []*genai.Model
	for i := 0; i < 12; i++ {
		models = append(models, &genai.Model{Name: fmt.Sprintf("models/gemini-%02d", i)})
	}
	lister := &Lister{models: &fakeSource{models: models}}

	var out bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Fatalf("ListAvailableModels() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{"Available Gemini Models:", "No TTS models found", "gemini-09", "... and 2 more models"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "gemini-10") {
		t.Errorf("output should be truncated after ten models:\n%s", text)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	var out bytes.Buffer
	if err := NewLister(apiKey).ListAvailableModels(context.Background(), &out); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
