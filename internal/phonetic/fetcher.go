package phonetic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingoflash/internal/vocab"
)

// ErrNoAPIKey is returned when no OpenAI key is configured
var ErrNoAPIKey = errors.New("OpenAI API key not configured")

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Fetcher handles fetching IPA transcriptions for English words
type Fetcher struct {
	apiKey  string
	client  chatCompleter
	timeout time.Duration
	logger  *zap.Logger
}

// NewFetcher creates a new phonetic information fetcher
func NewFetcher(apiKey string, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		apiKey:  apiKey,
		client:  openai.NewClient(apiKey),
		timeout: 30 * time.Second,
		logger:  logger,
	}
}

// Transcribe returns the broad IPA transcription of word, wrapped in slashes
func (f *Fetcher) Transcribe(ctx context.Context, word string) (string, error) {
	if f.apiKey == "" {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a phonetics expert. Reply with the broad IPA transcription of the given English word or phrase in Cambridge dictionary style, between slashes, with stress marks and syllable dots. Reply with the transcription only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: word,
			},
		},
		Temperature: 0,
		MaxTokens:   60,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return formatIPA(resp.Choices[0].Message.Content), nil
}

// formatIPA trims the model reply to a single /.../ transcription
func formatIPA(reply string) string {
	ipa := strings.TrimSpace(reply)
	if i := strings.IndexByte(ipa, '\n'); i >= 0 {
		ipa = strings.TrimSpace(ipa[:i])
	}
	ipa = strings.Trim(ipa, "/[]` ")
	return "/" + ipa + "/"
}

// Fill returns a copy of deck where every card without phonetics has been
// transcribed. Cards that fail keep an empty transcription.
func (f *Fetcher) Fill(ctx context.Context, deck *vocab.Deck) (*vocab.Deck, int, error) {
	cards := deck.Cards()
	filled := 0

	for i := range cards {
		if strings.TrimSpace(cards[i].Phonetics) != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, filled, err
		}

		ipa, err := f.Transcribe(ctx, cards[i].Word)
		if errors.Is(err, ErrNoAPIKey) {
			return nil, filled, err
		}
		if err != nil {
			f.logger.Warn("Failed to fetch phonetics",
				zap.String("word", cards[i].Word),
				zap.Error(err))
			continue
		}
		cards[i].Phonetics = ipa
		filled++
	}

	if filled == 0 {
		return deck, 0, nil
	}

	updated, err := vocab.New(deck.Name(), cards)
	if err != nil {
		return nil, filled, err
	}
	return updated, filled, nil
}
