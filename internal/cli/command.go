package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingoflash/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingoflash",
		Short: "Vocabulary flashcards with spoken pronunciation",
		Long: `lingoflash shows vocabulary flashcards and pronounces each word
using Gemini text-to-speech.

Examples:
  lingoflash                        # Launch interactive GUI (default)
  lingoflash --speak Validation     # Pronounce a word in the terminal
  lingoflash --list                 # Print the deck
  lingoflash --anki --anki-audio    # Export the deck with audio for Anki`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultOutputDir is where exports go unless configured otherwise
func DefaultOutputDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "lingoflash", "export")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lingoflash.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Deck flags
	cmd.Flags().StringVar(&flags.DeckFile, "deck", "", "YAML deck file (default: built-in class deck)")
	cmd.Flags().IntVar(&flags.Start, "start", flags.Start, "Card to open first (1-based)")
	cmd.Flags().IntVar(&flags.StartID, "start-id", 0, "Card id to open first (overrides --start)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", DefaultOutputDir(), "Output directory for exports")

	// Modes
	cmd.Flags().StringVar(&flags.Speak, "speak", "", "Pronounce a word and exit")
	cmd.Flags().BoolVar(&flags.List, "list", false, "Print the deck and exit")
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Export the deck for Anki (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV instead of APKG when using --anki")
	cmd.Flags().BoolVar(&flags.AnkiAudio, "anki-audio", false, "Synthesize pronunciation audio for every exported card")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", "", "Deck name for APKG export (default: the deck's own name)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available Gemini models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the previous export directory into an archive and exit")
	cmd.Flags().BoolVar(&flags.FillPhonetics, "fill-phonetics", false, "Fetch IPA for deck cards without phonetics (needs OPENAI_API_KEY)")

	// Speech flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Speech provider: gemini, openai, gcp, espeak")
	cmd.Flags().StringVar(&flags.Fallback, "fallback", "", "Fallback speech provider used when the primary fails")
	cmd.Flags().StringVar(&flags.Voice, "voice", "", "Voice name for the selected provider (e.g. Kore, alloy, en-US-Neural2-F)")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model for the selected provider (e.g. gemini-2.5-flash-preview-tts, tts-1-hd)")
	cmd.Flags().Float64Var(&flags.Gain, "gain", 0, "Playback gain added to unity (0 keeps the original level)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("speech.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("speech.fallback", cmd.Flags().Lookup("fallback"))
	viper.BindPFlag("speech.voice", cmd.Flags().Lookup("voice"))
	viper.BindPFlag("speech.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("audio.gain", cmd.Flags().Lookup("gain"))
	viper.BindPFlag("deck.file", cmd.Flags().Lookup("deck"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
}

// SetDefaults registers the defaults for keys that have no flag
func SetDefaults() {
	viper.SetDefault("speech.timeout", 0)
	viper.SetDefault("audio.sample_rate", 48000)
	viper.SetDefault("ui.flip_delay", "200ms")
	viper.SetDefault("ui.cooldown", "1s")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env file is fine
	_ = godotenv.Load()

	SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lingoflash" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lingoflash")
	}

	// Environment variables
	viper.SetEnvPrefix("LINGOFLASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}

	return viper.GetString("speech.gemini_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("speech.openai_key")
}
