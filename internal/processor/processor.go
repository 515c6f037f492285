package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingoflash/internal"
	"codeberg.org/snonux/lingoflash/internal/anki"
	"codeberg.org/snonux/lingoflash/internal/archive"
	"codeberg.org/snonux/lingoflash/internal/audio"
	"codeberg.org/snonux/lingoflash/internal/cli"
	"codeberg.org/snonux/lingoflash/internal/gui"
	"codeberg.org/snonux/lingoflash/internal/logging"
	"codeberg.org/snonux/lingoflash/internal/models"
	"codeberg.org/snonux/lingoflash/internal/phonetic"
	"codeberg.org/snonux/lingoflash/internal/speech"
	"codeberg.org/snonux/lingoflash/internal/vocab"
)

// Processor handles the work behind every command line mode
type Processor struct {
	flags  *cli.Flags
	deck   *vocab.Deck
	logger *zap.Logger
	out    io.Writer

	// Built on first use so modes without audio need no credentials
	provider speech.Provider
	player   speech.Player
	filler   phoneticFiller
}

type phoneticFiller interface {
	Fill(ctx context.Context, deck *vocab.Deck) (*vocab.Deck, int, error)
}

// NewProcessor loads the configured deck and creates a processor
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	p := &Processor{
		flags:  flags,
		logger: logging.New(flags.Verbose),
		out:    os.Stdout,
	}

	deck, err := vocab.LoadOrDefault(p.setting(flags.DeckFile, "deck.file"))
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	p.deck = deck
	p.logger.Debug("Deck loaded", zap.String("name", deck.Name()), zap.Int("cards", deck.Len()))

	return p, nil
}

// Deck returns the loaded deck
func (p *Processor) Deck() *vocab.Deck {
	return p.deck
}

// setting prefers a value from the config file, environment or a changed
// flag, and falls back to the flag value
func (p *Processor) setting(flagValue, key string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return flagValue
}

func (p *Processor) gain() float64 {
	if viper.IsSet("audio.gain") {
		return viper.GetFloat64("audio.gain")
	}
	return p.flags.Gain
}

// SpeechConfig builds the provider configuration from flags and config
func (p *Processor) SpeechConfig() *speech.Config {
	config := speech.DefaultProviderConfig()

	if provider := p.setting(p.flags.Provider, "speech.provider"); provider != "" {
		config.Provider = provider
	}
	config.Fallback = p.setting(p.flags.Fallback, "speech.fallback")
	config.GeminiKey = cli.GetGeminiKey()
	config.OpenAIKey = cli.GetOpenAIKey()

	voice := p.setting(p.flags.Voice, "speech.voice")
	model := p.setting(p.flags.Model, "speech.model")

	// Voice and model apply to the primary provider only
	switch config.Provider {
	case "gemini":
		if voice != "" {
			config.GeminiVoice = voice
		}
		if model != "" {
			config.GeminiModel = model
		}
	case "openai":
		if voice != "" {
			config.OpenAIVoice = voice
		}
		if model != "" {
			config.OpenAIModel = model
		}
	case "gcp":
		if voice != "" {
			config.GCPVoice = voice
		}
	case "espeak":
		if voice != "" {
			config.ESpeak.Voice = voice
		}
	}

	return config
}

func (p *Processor) speechProvider() (speech.Provider, error) {
	if p.provider != nil {
		return p.provider, nil
	}

	provider, err := speech.NewProvider(p.SpeechConfig(), p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech provider: %w", err)
	}
	p.provider = provider
	return provider, nil
}

func (p *Processor) audioPlayer() speech.Player {
	if p.player == nil {
		p.player = audio.Default(
			audio.WithSampleRate(viper.GetInt("audio.sample_rate")),
			audio.WithLogger(p.logger))
	}
	return p.player
}

func (p *Processor) newClient(provider speech.Provider) *speech.Client {
	return speech.NewClient(provider, p.audioPlayer(),
		speech.WithGain(p.gain()),
		speech.WithTimeout(viper.GetDuration("speech.timeout")),
		speech.WithClientLogger(p.logger))
}

// SpeakWord pronounces a single word and waits for playback to finish
func (p *Processor) SpeakWord(ctx context.Context, word string) error {
	if err := speech.ValidateText(word); err != nil {
		return fmt.Errorf("invalid word '%s': %w", word, err)
	}

	provider, err := p.speechProvider()
	if err != nil {
		return err
	}

	client := p.newClient(provider)
	client.Unlock()

	fmt.Fprintf(p.out, "Speaking %q via %s\n", speech.Normalize(word), provider.Name())
	return client.SpeakAndWait(ctx, word)
}

// FillPhonetics transcribes the cards of the deck that have no phonetics
func (p *Processor) FillPhonetics(ctx context.Context) error {
	if p.filler == nil {
		p.filler = phonetic.NewFetcher(cli.GetOpenAIKey(), p.logger)
	}

	deck, filled, err := p.filler.Fill(ctx, p.deck)
	if err != nil {
		return fmt.Errorf("failed to fill phonetics: %w", err)
	}
	p.deck = deck
	if filled > 0 {
		fmt.Fprintf(p.out, "Fetched phonetics for %d cards\n", filled)
	}
	return nil
}

// ArchiveExport moves the export directory aside and returns where it went
func (p *Processor) ArchiveExport() (string, error) {
	return archive.Dir(p.outputDir())
}

// ListDeck prints every card of the deck
func (p *Processor) ListDeck() error {
	fmt.Fprintf(p.out, "%s (%d cards)\n\n", p.deck.Name(), p.deck.Len())

	for i, card := range p.deck.Cards() {
		fmt.Fprintf(p.out, "%2d. %s (%s) %s\n", i+1, card.Word, card.Type, card.Phonetics)
		fmt.Fprintf(p.out, "    %s\n", card.Definition)
		if card.Example != "" {
			fmt.Fprintf(p.out, "    e.g. %s\n", card.Example)
		}
	}

	return nil
}

// ListModels prints the Gemini models available to the configured key
func (p *Processor) ListModels(ctx context.Context) error {
	return models.NewLister(cli.GetGeminiKey()).ListAvailableModels(ctx, p.out)
}

func (p *Processor) outputDir() string {
	if dir := p.setting(p.flags.OutputDir, "output.directory"); dir != "" {
		return dir
	}
	return cli.DefaultOutputDir()
}

func (p *Processor) deckName() string {
	if name := p.setting(p.flags.DeckName, "anki.deck_name"); name != "" {
		return name
	}
	return p.deck.Name()
}

// startIndex converts --start-id or the 1-based --start flag into a deck index
func (p *Processor) startIndex() int {
	if p.flags.StartID != 0 {
		if i := p.deck.IndexOf(p.flags.StartID); i >= 0 {
			return i
		}
		p.logger.Warn("No card with that id, falling back to --start", zap.Int("id", p.flags.StartID))
	}

	i := p.flags.Start - 1
	if i < 0 || i >= p.deck.Len() {
		p.logger.Warn("Start card out of range, opening the first card",
			zap.Int("start", p.flags.Start),
			zap.Int("cards", p.deck.Len()))
		return 0
	}
	return i
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	viewer := gui.NewLogViewer()
	p.logger = logging.New(p.flags.Verbose, viewer)
	defer p.logger.Sync()

	config := gui.DefaultConfig()
	config.Deck = p.deck
	config.Start = p.startIndex()
	config.FlipDelay = viper.GetDuration("ui.flip_delay")
	config.Cooldown = viper.GetDuration("ui.cooldown")
	config.Logger = p.logger
	config.LogViewer = viewer
	config.Export = p.ExportDeck

	provider, err := p.speechProvider()
	if err != nil {
		p.logger.Warn("Pronunciation disabled", zap.Error(err))
	} else {
		p.logger.Info("Speech provider ready", zap.String("provider", provider.Name()))
		config.Speaker = p.newClient(provider)
	}

	// Create and run GUI application
	app := gui.New(config)
	app.Run()

	return nil
}

// ExportDeck writes the deck as an Anki package (or CSV with --anki-csv)
// and returns the output path
func (p *Processor) ExportDeck(ctx context.Context) (string, error) {
	outputDir := p.outputDir()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     filepath.Join(outputDir, "anki_import.csv"),
		IncludeHeaders: true,
	})
	gen.AddDeck(p.deck)

	if p.flags.AnkiAudio {
		if err := p.synthesizeMedia(ctx, gen.GetCards(), filepath.Join(outputDir, "media")); err != nil {
			return "", err
		}
	}

	var outputPath string
	if p.flags.AnkiCSV {
		// Generate CSV
		outputPath = filepath.Join(outputDir, "anki_import.csv")
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
	} else {
		// Generate APKG
		deckName := p.deckName()
		outputPath = filepath.Join(outputDir, fmt.Sprintf("%s.apkg", internal.SanitizeFilename(deckName)))
		if err := gen.GenerateAPKG(outputPath, deckName); err != nil {
			return "", fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	// Print stats
	total, withAudio := gen.Stats()
	fmt.Fprintf(p.out, "  Generated %d cards (%d with audio)\n", total, withAudio)

	return outputPath, nil
}

// synthesizeMedia fills in AudioFile for each card, reusing files from an
// earlier export. Cards whose synthesis fails are exported without audio.
func (p *Processor) synthesizeMedia(ctx context.Context, cards []anki.Card, mediaDir string) error {
	provider, err := p.speechProvider()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	for i := range cards {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(mediaDir, internal.MediaFilename(cards[i].ID, cards[i].Word, "wav"))
		if _, err := os.Stat(path); err == nil {
			cards[i].AudioFile = path
			continue
		}

		fmt.Fprintf(p.out, "  Generating audio %d/%d: %s\n", i+1, len(cards), cards[i].Word)
		if err := writeSpeechWAV(ctx, provider, cards[i].Word, path); err != nil {
			p.logger.Warn("Exporting card without audio",
				zap.String("word", cards[i].Word),
				zap.Error(err))
			continue
		}
		cards[i].AudioFile = path
	}

	return nil
}

// writeSpeechWAV synthesizes word and stores it as a WAV file at path
func writeSpeechWAV(ctx context.Context, provider speech.Provider, word, path string) error {
	s, err := provider.Synthesize(ctx, word)
	if err != nil {
		return err
	}
	if s == nil || len(s.PCM) == 0 {
		return speech.ErrNoAudio
	}

	channels := s.Channels
	if channels == 0 {
		channels = 1
	}
	buf, err := audio.DecodePCM(s.PCM, s.SampleRate, channels)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	if err := audio.EncodeWAV(file, buf); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}
