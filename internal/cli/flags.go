package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	Verbose   bool
	DeckFile  string
	Start     int
	StartID   int
	OutputDir string

	// Modes
	Speak        string
	List         bool
	GenerateAnki bool
	AnkiCSV      bool
	AnkiAudio    bool
	DeckName     string
	ListModels   bool
	Archive      bool

	// Deck preparation
	FillPhonetics bool

	// Speech flags
	Provider string
	Fallback string
	Voice    string
	Model    string
	Gain     float64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Start:    1,
		Provider: "gemini",
	}
}
