package gui

import (
	"context"
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingoflash/internal/logging"
	"codeberg.org/snonux/lingoflash/internal/session"
)

// Speaker pronounces a word
type Speaker interface {
	Unlock()
	Speak(ctx context.Context, word string) error
}

// AudioButton plays the pronunciation of the current word. It ignores taps
// while a pronunciation is in flight and during the gate's cooldown.
type AudioButton struct {
	widget.BaseWidget

	button    *ttwidget.Button
	container *fyne.Container

	speaker Speaker
	gate    *session.Gate
	logger  *zap.Logger
	ctx     context.Context

	mu   sync.Mutex
	word string
	wg   sync.WaitGroup
}

// NewAudioButton creates the audio button
func NewAudioButton(ctx context.Context, speaker Speaker, gate *session.Gate, logger *zap.Logger) *AudioButton {
	b := &AudioButton{
		speaker: speaker,
		gate:    gate,
		logger:  logging.OrNop(logger),
		ctx:     ctx,
	}

	b.button = ttwidget.NewButtonWithIcon("", theme.VolumeUpIcon(), b.onTap)
	b.button.Importance = widget.HighImportance
	b.container = container.NewCenter(b.button)

	gate.OnChange(func(playing bool) {
		fyne.Do(func() { b.showPlaying(playing) })
	})

	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *AudioButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.container)
}

// SetToolTip sets the tooltip; the window needs a tooltip layer
func (b *AudioButton) SetToolTip(tip string) {
	b.button.SetToolTip(tip)
}

// SetWord sets the word to pronounce on the next tap
func (b *AudioButton) SetWord(word string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.word = word
}

// Word returns the word the button pronounces
func (b *AudioButton) Word() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.word
}

// Play behaves like a tap
func (b *AudioButton) Play() {
	b.onTap()
}

// Playing reports whether the button is in its busy state
func (b *AudioButton) Playing() bool {
	return b.gate.Playing()
}

// Wait blocks until every started pronunciation has settled
func (b *AudioButton) Wait() {
	b.wg.Wait()
}

func (b *AudioButton) onTap() {
	word := b.Word()
	if word == "" || b.gate.Playing() {
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		err := b.gate.Run(b.ctx, func(ctx context.Context) error {
			b.speaker.Unlock()
			return b.speaker.Speak(ctx, word)
		})
		switch {
		case errors.Is(err, session.ErrBusy):
			b.logger.Debug("Pronunciation already playing", zap.String("word", word))
		case err != nil:
			b.logger.Error("Pronunciation failed", zap.String("word", word), zap.Error(err))
		}
	}()
}

func (b *AudioButton) showPlaying(playing bool) {
	if playing {
		b.button.SetIcon(theme.MediaRecordIcon())
		b.button.Importance = widget.WarningImportance
	} else {
		b.button.SetIcon(theme.VolumeUpIcon())
		b.button.Importance = widget.HighImportance
	}
	b.button.Refresh()
}
