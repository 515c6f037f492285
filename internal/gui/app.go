package gui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingoflash/internal"
	"codeberg.org/snonux/lingoflash/internal/logging"
	"codeberg.org/snonux/lingoflash/internal/session"
	"codeberg.org/snonux/lingoflash/internal/vocab"
)

const footerText = "Built with Gemini TTS • Content based on Class Notes"

var errNoSpeaker = errors.New("no speech provider configured")

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	cardView    *CardView
	audioButton *AudioButton
	progressBar *widget.ProgressBar
	counter     *widget.Label
	logViewer   *LogViewer

	// Navigation buttons
	prevBtn    *ttwidget.Button
	nextBtn    *ttwidget.Button
	shuffleBtn *ttwidget.Button

	// Toolbar buttons
	exportBtn *ttwidget.Button
	logBtn    *ttwidget.Button
	helpBtn   *ttwidget.Button

	// State management
	deck       *vocab.Deck
	controller *session.Controller
	gate       *session.Gate

	config    *Config
	logger    *zap.Logger
	exporting atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration
type Config struct {
	Deck      *vocab.Deck
	Start     int // zero-based index of the first card shown
	FlipDelay time.Duration
	Cooldown  time.Duration

	Speaker   Speaker
	Logger    *zap.Logger
	LogViewer *LogViewer // receives the logger output; created when nil

	// Export writes the deck for Anki and returns the written path. The
	// export button is hidden when nil.
	Export func(ctx context.Context) (string, error)
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Deck:      vocab.Default(),
		FlipDelay: session.DefaultFlipDelay,
		Cooldown:  session.DefaultCooldown,
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	return newApplication(app.NewWithID("org.codeberg.snonux.lingoflash"), config)
}

func newApplication(fyneApp fyne.App, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Fill in missing fields with defaults
		defaults := DefaultConfig()
		if config.Deck == nil {
			config.Deck = defaults.Deck
		}
		if config.FlipDelay <= 0 {
			config.FlipDelay = defaults.FlipDelay
		}
		if config.Cooldown <= 0 {
			config.Cooldown = defaults.Cooldown
		}
	}
	config.Logger = logging.OrNop(config.Logger)
	if config.Speaker == nil {
		config.Speaker = noSpeaker{}
	}
	if config.LogViewer == nil {
		config.LogViewer = NewLogViewer()
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:       fyneApp,
		deck:      config.Deck,
		config:    config,
		logger:    config.Logger,
		logViewer: config.LogViewer,
		ctx:       ctx,
		cancel:    cancel,
	}

	a.controller = session.NewController(a.deck.Len(),
		session.WithDelay(config.FlipDelay),
		session.WithStart(config.Start))
	a.gate = session.NewGate(config.Cooldown)

	a.setupUI()

	a.controller.OnChange(func(s session.State) {
		fyne.Do(func() { a.render(s) })
	})
	a.render(a.controller.State())

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("LingoFlash v%s", internal.Version))
	a.window.Resize(fyne.NewSize(560, 720))

	// Header
	title := canvas.NewText("LingoFlash", theme.Color(theme.ColorNamePrimary))
	title.TextSize = theme.TextSize() * 2
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter
	subtitle := widget.NewLabelWithStyle(a.deck.Name(), fyne.TextAlignCenter, fyne.TextStyle{})
	subtitle.Importance = widget.LowImportance

	// Progress
	a.progressBar = widget.NewProgressBar()
	a.progressBar.Max = 100
	a.progressBar.TextFormatter = func() string { return "" }
	a.counter = widget.NewLabel("")
	progressSection := container.NewBorder(nil, nil, nil, a.counter, a.progressBar)

	// Card
	a.audioButton = NewAudioButton(a.ctx, a.config.Speaker, a.gate, a.logger)
	a.cardView = NewCardView(a.audioButton)
	a.cardView.OnTapped = a.onFlip

	// Navigation buttons (tooltips will be set after tooltip layer is created)
	a.prevBtn = ttwidget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.onPrevious)
	a.shuffleBtn = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onShuffle)
	a.nextBtn = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.onNext)
	a.nextBtn.Importance = widget.HighImportance

	navigation := container.NewHBox(
		layout.NewSpacer(),
		a.prevBtn,
		a.shuffleBtn,
		a.nextBtn,
		layout.NewSpacer(),
	)

	// Toolbar
	a.exportBtn = ttwidget.NewButtonWithIcon("", theme.UploadIcon(), a.onExportToAnki)
	a.logBtn = ttwidget.NewButtonWithIcon("", theme.ListIcon(), a.onToggleLog)
	a.helpBtn = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)
	if a.config.Export == nil {
		a.exportBtn.Hide()
	}
	toolbar := container.NewHBox(layout.NewSpacer(), a.exportBtn, a.logBtn, a.helpBtn)

	footer := widget.NewLabelWithStyle(footerText, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	footer.Importance = widget.LowImportance

	a.logViewer.Hide()

	content := container.NewBorder(
		container.NewVBox(
			toolbar,
			title,
			subtitle,
			progressSection,
		),
		container.NewVBox(
			navigation,
			footer,
			a.logViewer,
		),
		nil, nil,
		container.NewPadded(a.cardView),
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	// Now that tooltip layer is created, set all tooltips
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.audioButton.Wait()
	})

	// Set up keyboard shortcuts
	a.setupKeyboardShortcuts()
}

// setupTooltips sets tooltips on all buttons
func (a *Application) setupTooltips() {
	a.prevBtn.SetToolTip("Previous card (←)")
	a.shuffleBtn.SetToolTip("Random card (s)")
	a.nextBtn.SetToolTip("Next card (→)")
	a.audioButton.SetToolTip("Play pronunciation (p)")
	a.exportBtn.SetToolTip("Export to Anki (x)")
	a.logBtn.SetToolTip("Show log (l)")
	a.helpBtn.SetToolTip("Show hotkeys (h)")
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// render shows state; it runs on the UI goroutine
func (a *Application) render(s session.State) {
	card := a.deck.At(s.Index)
	a.cardView.SetCard(card, s.Flipped)
	a.progressBar.SetValue(s.Progress())
	a.counter.SetText(fmt.Sprintf("%d / %d", s.Index+1, s.Len))
}

// onExportToAnki runs the configured export in the background
func (a *Application) onExportToAnki() {
	if a.config.Export == nil {
		return
	}
	if !a.exporting.CompareAndSwap(false, true) {
		a.logger.Debug("Anki export already running")
		return
	}

	a.exportBtn.Disable()
	go func() {
		path, err := a.config.Export(a.ctx)
		a.exporting.Store(false)
		fyne.Do(func() {
			a.exportBtn.Enable()
			if err != nil {
				a.logger.Error("Anki export failed", zap.Error(err))
				dialog.ShowError(err, a.window)
				return
			}
			a.logger.Info("Anki export written", zap.String("path", path))
			dialog.ShowInformation("Export complete", fmt.Sprintf("Deck written to\n%s", path), a.window)
		})
	}()
}

// onToggleLog shows or hides the log panel
func (a *Application) onToggleLog() {
	if a.logViewer.Visible() {
		a.logViewer.Hide()
		a.logBtn.SetToolTip("Show log (l)")
	} else {
		a.logViewer.Show()
		a.logBtn.SetToolTip("Hide log (l)")
	}
}

// onShowHotkeys shows the keyboard shortcuts dialog
func (a *Application) onShowHotkeys() {
	hotkeys := `## Navigation
**←** Previous card  
**→** Next card  
**s** Random card  

## Card
**Space / Enter** Flip card  
**p** Play pronunciation  

## Other
**x** Export to Anki  
**l** Show or hide the log  
**h** Show hotkeys  
**q** Quit application  `

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(360, 360))

	dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window).Show()
}

type noSpeaker struct{}

func (noSpeaker) Unlock() {}

func (noSpeaker) Speak(context.Context, string) error {
	return errNoSpeaker
}
