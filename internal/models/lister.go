package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when no Gemini key is configured
var ErrNoAPIKey = errors.New("Gemini API key not found. Set GEMINI_API_KEY environment variable or configure speech.gemini_key in .lingoflash.yaml")

type modelSource interface {
	All(ctx context.Context) iter.Seq2[*genai.Model, error]
}

// Lister handles listing available Gemini models
type Lister struct {
	apiKey string
	models modelSource
}

// NewLister creates a new model lister. The client is created lazily so a
// missing key is reported by ListAvailableModels.
func NewLister(apiKey string) *Lister {
	return &Lister{apiKey: apiKey}
}

func (l *Lister) source(ctx context.Context) (modelSource, error) {
	if l.models != nil {
		return l.models, nil
	}
	if l.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	l.models = client.Models
	return l.models, nil
}

// Categorized holds model names grouped by what they can do
type Categorized struct {
	TTS   []string
	Other []string
}

// Categorize fetches all models and splits them into speech and other models
func (l *Lister) Categorize(ctx context.Context) (*Categorized, error) {
	src, err := l.source(ctx)
	if err != nil {
		return nil, err
	}

	result := &Categorized{}
	for model, err := range src.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		name := strings.TrimPrefix(model.Name, "models/")
		if isSpeechModel(model) {
			result.TTS = append(result.TTS, name)
		} else {
			result.Other = append(result.Other, name)
		}
	}

	sort.Strings(result.TTS)
	sort.Strings(result.Other)
	return result, nil
}

func isSpeechModel(model *genai.Model) bool {
	return strings.Contains(strings.ToLower(model.Name), "tts")
}

// ListAvailableModels writes the categorized model list to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	models, err := l.Categorize(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Available Gemini Models:")
	fmt.Fprintln(w, "\nText-to-Speech (TTS) Models:")
	if len(models.TTS) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
	} else {
		for _, model := range models.TTS {
			fmt.Fprintf(w, "  %s\n", model)
		}
	}

	fmt.Fprintln(w, "\nOther Models:")
	if len(models.Other) > 10 {
		for _, model := range models.Other[:10] {
			fmt.Fprintf(w, "  %s\n", model)
		}
		fmt.Fprintf(w, "  ... and %d more models\n", len(models.Other)-10)
	} else {
		for _, model := range models.Other {
			fmt.Fprintf(w, "  %s\n", model)
		}
	}

	return nil
}
