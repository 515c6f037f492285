package speech

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	// DefaultGeminiModel is the Gemini model with native speech output
	DefaultGeminiModel = "gemini-2.5-flash-preview-tts"
	// DefaultGeminiVoice is the prebuilt voice used for pronunciations
	DefaultGeminiVoice = "Kore"
	// GeminiSampleRate is the rate of the PCM Gemini returns
	GeminiSampleRate = 24000
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider generates speech with the Gemini API
type GeminiProvider struct {
	models contentGenerator
	config *Config
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{models: client.Models, config: config}, nil
}

// Synthesize asks Gemini to say the word and returns the raw PCM
func (p *GeminiProvider) Synthesize(ctx context.Context, word string) (*Speech, error) {
	if err := ValidateText(word); err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: Prompt(word)}},
	}}

	resp, err := p.models.GenerateContent(ctx, p.model(), contents, p.generateConfig())
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	data, err := inlineAudio(resp)
	if err != nil {
		return nil, err
	}

	return &Speech{PCM: data, SampleRate: GeminiSampleRate, Channels: 1}, nil
}

func (p *GeminiProvider) model() string {
	if p.config.GeminiModel == "" {
		return DefaultGeminiModel
	}
	return p.config.GeminiModel
}

func (p *GeminiProvider) generateConfig() *genai.GenerateContentConfig {
	voice := p.config.GeminiVoice
	if voice == "" {
		voice = DefaultGeminiVoice
	}

	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}
}

// inlineAudio returns the audio of the first part of the first candidate.
// The SDK has already decoded the base64 transport encoding.
func inlineAudio(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoAudio
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, ErrNoAudio
	}

	part := candidate.Content.Parts[0]
	if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
		return nil, ErrNoAudio
	}
	if mime := part.InlineData.MIMEType; mime != "" && !strings.HasPrefix(mime, "audio/") {
		return nil, fmt.Errorf("%w: unexpected MIME type %s", ErrNoAudio, mime)
	}

	return part.InlineData.Data, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks that a key is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
