package phonetic

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/lingoflash/internal/vocab"
)

type fakeCompleter struct {
	replies map[string]string
	err     error
	calls   []string
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	word := req.Messages[len(req.Messages)-1].Content
	f.calls = append(f.calls, word)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	reply, ok := f.replies[word]
	if !ok {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: reply}}},
	}, nil
}

func newTestFetcher(c chatCompleter) *Fetcher {
	f := NewFetcher("test-api-key", nil)
	f.client = c
	return f
}

func TestNewFetcher(t *testing.T) {
	fetcher := NewFetcher("test-api-key", nil)

	if fetcher == nil {
		t.Fatal("NewFetcher returned nil")
	}

	if fetcher.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", fetcher.apiKey)
	}

	if fetcher.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestTranscribe_NoAPIKey(t *testing.T) {
	fetcher := NewFetcher("", nil)

	_, err := fetcher.Transcribe(context.Background(), "serendipity")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestFormatIPA(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{"/ˌser.ənˈdɪp.ə.ti/", "/ˌser.ənˈdɪp.ə.ti/"},
		{"  ˌser.ənˈdɪp.ə.ti \n", "/ˌser.ənˈdɪp.ə.ti/"},
		{"[ɪˈfem.ər.əl]", "/ɪˈfem.ər.əl/"},
		{"/breɪk ði aɪs/\nUK and US", "/breɪk ði aɪs/"},
	}

	for _, tt := range tests {
		if got := formatIPA(tt.reply); got != tt.want {
			t.Errorf("formatIPA(%q) = %q, want %q", tt.reply, got, tt.want)
		}
	}
}

func TestTranscribe_EmptyReply(t *testing.T) {
	fetcher := newTestFetcher(&fakeCompleter{})

	_, err := fetcher.Transcribe(context.Background(), "serendipity")
	if err == nil || err.Error() != "no response from OpenAI" {
		t.Errorf("Expected 'no response from OpenAI', got: %v", err)
	}
}

func TestFill(t *testing.T) {
	deck, err := vocab.New("Test", []vocab.Card{
		{ID: 1, Word: "Serendipity"},
		{ID: 2, Word: "Ephemeral", Phonetics: "/ɪˈfem.ər.əl/"},
		{ID: 3, Word: "Break the ice"},
	})
	if err != nil {
		t.Fatal(err)
	}

	completer := &fakeCompleter{replies: map[string]string{
		"Serendipity": "/ˌser.ənˈdɪp.ə.ti/",
	}}
	filledDeck, filled, err := newTestFetcher(completer).Fill(context.Background(), deck)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	if filled != 1 {
		t.Errorf("Expected 1 filled card, got %d", filled)
	}
	if strings.Join(completer.calls, ",") != "Serendipity,Break the ice" {
		t.Errorf("Unexpected calls: %v", completer.calls)
	}
	if got := filledDeck.At(0).Phonetics; got != "/ˌser.ənˈdɪp.ə.ti/" {
		t.Errorf("Phonetics = %q", got)
	}
	if got := filledDeck.At(2).Phonetics; got != "" {
		t.Errorf("Failed card should stay empty, got %q", got)
	}
	if deck.At(0).Phonetics != "" {
		t.Error("Fill must not modify the original deck")
	}
}

func TestFill_NoAPIKey(t *testing.T) {
	deck, _ := vocab.New("Test", []vocab.Card{{ID: 1, Word: "Serendipity"}})

	_, _, err := NewFetcher("", nil).Fill(context.Background(), deck)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestFill_Complete(t *testing.T) {
	deck := vocab.Default()
	completer := &fakeCompleter{}

	got, filled, err := newTestFetcher(completer).Fill(context.Background(), deck)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if filled != 0 || got != deck || len(completer.calls) != 0 {
		t.Errorf("Complete deck should be returned unchanged (filled=%d, calls=%d)", filled, len(completer.calls))
	}
}

func TestTranscribe_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	ipa, err := NewFetcher(apiKey, nil).Transcribe(context.Background(), "serendipity")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if !strings.HasPrefix(ipa, "/") || !strings.HasSuffix(ipa, "/") {
		t.Errorf("Unexpected transcription %q", ipa)
	}
}
