package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingoflash/internal"
	"codeberg.org/snonux/lingoflash/internal/cli"
	"codeberg.org/snonux/lingoflash/internal/testutil"
	"codeberg.org/snonux/lingoflash/internal/vocab"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// newTestProcessor returns a processor wired to a mock provider and player
func newTestProcessor(t *testing.T, flags *cli.Flags) (*Processor, *testutil.MockProvider, *testutil.MockPlayer, *bytes.Buffer) {
	t.Helper()
	resetViper(t)

	p, err := NewProcessor(flags)
	require.NoError(t, err)

	provider := &testutil.MockProvider{}
	player := &testutil.MockPlayer{}
	out := &bytes.Buffer{}

	p.provider = provider
	p.player = player
	p.out = out
	p.logger = zap.NewNop()

	return p, provider, player, out
}

func TestNewProcessor_DefaultDeck(t *testing.T) {
	resetViper(t)

	p, err := NewProcessor(cli.NewFlags())
	require.NoError(t, err)

	assert.Equal(t, 14, p.Deck().Len())
	assert.Equal(t, "Comparison culture", p.Deck().At(0).Word)
}

func TestNewProcessor_DeckFile(t *testing.T) {
	resetViper(t)

	flags := cli.NewFlags()
	flags.DeckFile = testutil.CreateTestDeck(t, t.TempDir())

	p, err := NewProcessor(flags)
	require.NoError(t, err)

	assert.Equal(t, "Test Deck", p.Deck().Name())
	assert.Equal(t, 3, p.Deck().Len())
}

func TestNewProcessor_DeckFromConfig(t *testing.T) {
	resetViper(t)
	viper.Set("deck.file", testutil.CreateTestDeck(t, t.TempDir()))

	p, err := NewProcessor(cli.NewFlags())
	require.NoError(t, err)
	assert.Equal(t, 3, p.Deck().Len())
}

func TestNewProcessor_MissingDeck(t *testing.T) {
	resetViper(t)

	flags := cli.NewFlags()
	flags.DeckFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewProcessor(flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load deck")
}

func TestSpeechConfig(t *testing.T) {
	tests := []struct {
		name   string
		flags  func(f *cli.Flags)
		config map[string]string
		check  func(t *testing.T, p *Processor)
	}{
		{
			name: "gemini defaults",
			check: func(t *testing.T, p *Processor) {
				c := p.SpeechConfig()
				assert.Equal(t, "gemini", c.Provider)
				assert.Equal(t, "Kore", c.GeminiVoice)
				assert.Equal(t, "gemini-2.5-flash-preview-tts", c.GeminiModel)
				assert.Equal(t, "gemini-key", c.GeminiKey)
			},
		},
		{
			name: "gemini voice and model flags",
			flags: func(f *cli.Flags) {
				f.Voice = "Puck"
				f.Model = "gemini-2.5-pro-preview-tts"
			},
			check: func(t *testing.T, p *Processor) {
				c := p.SpeechConfig()
				assert.Equal(t, "Puck", c.GeminiVoice)
				assert.Equal(t, "gemini-2.5-pro-preview-tts", c.GeminiModel)
				assert.Equal(t, "alloy", c.OpenAIVoice)
			},
		},
		{
			name: "openai with fallback",
			flags: func(f *cli.Flags) {
				f.Provider = "openai"
				f.Fallback = "espeak"
				f.Voice = "nova"
				f.Model = "tts-1-hd"
			},
			check: func(t *testing.T, p *Processor) {
				c := p.SpeechConfig()
				assert.Equal(t, "openai", c.Provider)
				assert.Equal(t, "espeak", c.Fallback)
				assert.Equal(t, "nova", c.OpenAIVoice)
				assert.Equal(t, "tts-1-hd", c.OpenAIModel)
				assert.Equal(t, "Kore", c.GeminiVoice)
			},
		},
		{
			name:  "espeak voice",
			flags: func(f *cli.Flags) { f.Provider = "espeak"; f.Voice = "en-gb" },
			check: func(t *testing.T, p *Processor) {
				assert.Equal(t, "en-gb", p.SpeechConfig().ESpeak.Voice)
			},
		},
		{
			name:   "config file overrides flag defaults",
			config: map[string]string{"speech.provider": "gcp", "speech.voice": "en-GB-Neural2-A"},
			check: func(t *testing.T, p *Processor) {
				c := p.SpeechConfig()
				assert.Equal(t, "gcp", c.Provider)
				assert.Equal(t, "en-GB-Neural2-A", c.GCPVoice)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "gemini-key")

			flags := cli.NewFlags()
			if tt.flags != nil {
				tt.flags(flags)
			}
			p, _, _, _ := newTestProcessor(t, flags)
			for k, v := range tt.config {
				viper.Set(k, v)
			}

			tt.check(t, p)
		})
	}
}

func TestSpeakWord(t *testing.T) {
	flags := cli.NewFlags()
	flags.Gain = 0.5
	p, provider, player, out := newTestProcessor(t, flags)

	require.NoError(t, p.SpeakWord(context.Background(), "Validation"))

	assert.Equal(t, []string{"Validation"}, provider.Calls)
	assert.Equal(t, 1, player.Unlocks)
	assert.Equal(t, 1, player.PlayCount())
	assert.Equal(t, []float64{0.5}, player.Gains)
	assert.Contains(t, out.String(), `Speaking "Validation" via mock`)
}

func TestSpeakWord_InvalidWord(t *testing.T) {
	p, provider, _, _ := newTestProcessor(t, cli.NewFlags())

	for _, word := range []string{"", "   ", "123"} {
		err := p.SpeakWord(context.Background(), word)
		assert.Error(t, err, "word %q", word)
	}
	assert.Equal(t, 0, provider.CallCount())
}

func TestSpeakWord_ProviderError(t *testing.T) {
	p, provider, player, _ := newTestProcessor(t, cli.NewFlags())
	provider.Err = errors.New("quota exceeded")

	err := p.SpeakWord(context.Background(), "Validation")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 0, player.PlayCount())
}

func TestSpeakWord_MissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	p, _, _, _ := newTestProcessor(t, cli.NewFlags())
	p.provider = nil

	err := p.SpeakWord(context.Background(), "Validation")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API key is required")
}

func TestListDeck(t *testing.T) {
	flags := cli.NewFlags()
	flags.DeckFile = testutil.CreateTestDeck(t, t.TempDir())
	p, _, _, out := newTestProcessor(t, flags)

	require.NoError(t, p.ListDeck())

	text := out.String()
	assert.Contains(t, text, "Test Deck (3 cards)")
	assert.Contains(t, text, " 1. Serendipity (noun) /ˌser.ənˈdɪp.ə.ti/")
	assert.Contains(t, text, "    Lasting for a very short time.")
	assert.Contains(t, text, "    e.g. He told a joke to break the ice.")
}

func TestStartIndex(t *testing.T) {
	tests := []struct {
		start int
		want  int
	}{
		{1, 0},
		{3, 2},
		{14, 13},
		{15, 0},
		{0, 0},
		{-2, 0},
	}

	for _, tt := range tests {
		flags := cli.NewFlags()
		flags.Start = tt.start
		p, _, _, _ := newTestProcessor(t, flags)

		assert.Equal(t, tt.want, p.startIndex(), "start %d", tt.start)
	}
}

func TestStartIndex_ByID(t *testing.T) {
	tests := []struct {
		name  string
		start int
		id    int
		want  int
	}{
		{"known id", 1, 9, 8},
		{"id wins over start", 3, 14, 13},
		{"unknown id falls back", 3, 99, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := cli.NewFlags()
			flags.Start = tt.start
			flags.StartID = tt.id
			p, _, _, _ := newTestProcessor(t, flags)

			assert.Equal(t, tt.want, p.startIndex())
		})
	}
}

func TestExportDeck_CSV(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()
	flags.AnkiCSV = true
	p, provider, _, out := newTestProcessor(t, flags)

	path, err := p.ExportDeck(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(flags.OutputDir, "anki_import.csv"), path)
	testutil.AssertFileContains(t, path, "Comparison culture")
	assert.Contains(t, out.String(), "Generated 14 cards (0 with audio)")
	assert.Equal(t, 0, provider.CallCount(), "no audio requested")
}

func TestExportDeck_APKGWithAudio(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()
	flags.DeckFile = testutil.CreateTestDeck(t, t.TempDir())
	flags.AnkiAudio = true
	flags.DeckName = "My Words"
	p, provider, _, out := newTestProcessor(t, flags)

	path, err := p.ExportDeck(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(flags.OutputDir, "My_Words.apkg"), path)
	testutil.AssertFileExists(t, path)
	assert.Contains(t, out.String(), "Generated 3 cards (3 with audio)")
	assert.Equal(t, 3, provider.CallCount())

	media := filepath.Join(flags.OutputDir, "media", internal.MediaFilename(1, "Serendipity", "wav"))
	testutil.AssertFileExists(t, media)
	data, err := os.ReadFile(media)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))

	// A second export reuses the files already on disk
	_, err = p.ExportDeck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, provider.CallCount())
}

func TestExportDeck_AudioFailureKeepsCards(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()
	flags.DeckFile = testutil.CreateTestDeck(t, t.TempDir())
	flags.AnkiAudio = true
	flags.AnkiCSV = true
	p, provider, _, out := newTestProcessor(t, flags)
	provider.Err = errors.New("service down")

	path, err := p.ExportDeck(context.Background())
	require.NoError(t, err)

	testutil.AssertFileContains(t, path, "Ephemeral")
	assert.Contains(t, out.String(), "Generated 3 cards (0 with audio)")
}

func TestExportDeck_Cancelled(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()
	flags.AnkiAudio = true
	p, provider, _, _ := newTestProcessor(t, flags)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ExportDeck(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.CallCount())
}

type fakeFiller struct {
	calls int
	err   error
}

func (f *fakeFiller) Fill(ctx context.Context, deck *vocab.Deck) (*vocab.Deck, int, error) {
	f.calls++
	if f.err != nil {
		return nil, 0, f.err
	}
	cards := deck.Cards()
	for i := range cards {
		if cards[i].Phonetics == "" {
			cards[i].Phonetics = "/test/"
		}
	}
	filled, err := vocab.New(deck.Name(), cards)
	return filled, len(cards), err
}

func TestFillPhonetics(t *testing.T) {
	p, _, _, out := newTestProcessor(t, cli.NewFlags())
	deck, err := vocab.New("Bare", []vocab.Card{{ID: 1, Word: "Serendipity"}})
	require.NoError(t, err)
	p.deck = deck
	filler := &fakeFiller{}
	p.filler = filler

	require.NoError(t, p.FillPhonetics(context.Background()))

	assert.Equal(t, 1, filler.calls)
	assert.Equal(t, "/test/", p.Deck().At(0).Phonetics)
	assert.Contains(t, out.String(), "Fetched phonetics for 1 cards")
}

func TestFillPhonetics_Error(t *testing.T) {
	p, _, _, _ := newTestProcessor(t, cli.NewFlags())
	deck := p.Deck()
	p.filler = &fakeFiller{err: errors.New("no key")}

	err := p.FillPhonetics(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fill phonetics: no key")
	assert.Same(t, deck, p.Deck())
}

func TestArchiveExport(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = filepath.Join(t.TempDir(), "export")
	flags.AnkiCSV = true
	p, _, _, _ := newTestProcessor(t, flags)

	_, err := p.ExportDeck(context.Background())
	require.NoError(t, err)

	archived, err := p.ArchiveExport()
	require.NoError(t, err)

	testutil.AssertFileNotExists(t, flags.OutputDir)
	testutil.AssertFileExists(t, filepath.Join(archived, "anki_import.csv"))
}

func TestListDeck_Stdout(t *testing.T) {
	resetViper(t)

	stdout, _ := testutil.CaptureOutput(t, func() {
		p, err := NewProcessor(cli.NewFlags())
		require.NoError(t, err)
		require.NoError(t, p.ListDeck())
	})

	assert.Contains(t, stdout, "(14 cards)")
	assert.Contains(t, stdout, " 1. Comparison culture")
}
