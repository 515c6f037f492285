package speech

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

const gcpSampleRate = 24000

// GCPProvider uses Google Cloud Text-to-Speech with application default
// credentials
type GCPProvider struct {
	config     *Config
	synthesize func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)
}

// NewGCPProvider creates a new Cloud Text-to-Speech provider
func NewGCPProvider(config *Config) *GCPProvider {
	return &GCPProvider{config: config, synthesize: gcpSynthesize}
}

func gcpSynthesize(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud TTS client: %w", err)
	}
	defer client.Close()

	return client.SynthesizeSpeech(ctx, req)
}

// Synthesize requests LINEAR16 audio and strips its WAV header
func (p *GCPProvider) Synthesize(ctx context.Context, word string) (*Speech, error) {
	if err := ValidateText(word); err != nil {
		return nil, err
	}

	resp, err := p.synthesize(ctx, p.request(word))
	if err != nil {
		return nil, fmt.Errorf("Cloud TTS API error: %w", err)
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, ErrNoAudio
	}

	return ParseWAV(resp.GetAudioContent())
}

func (p *GCPProvider) request(word string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: Normalize(word)},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: p.config.GCPLanguage,
			Name:         p.config.GCPVoice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: gcpSampleRate,
			SpeakingRate:    0.9,
		},
	}
}

// Name returns the provider name
func (p *GCPProvider) Name() string {
	return "gcp"
}

// IsAvailable checks the language is set; credentials are resolved per call
func (p *GCPProvider) IsAvailable() error {
	if p.config.GCPLanguage == "" {
		return fmt.Errorf("Cloud TTS language code not configured")
	}
	return nil
}
