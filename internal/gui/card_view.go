package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/lingoflash/internal/vocab"
)

// CardView shows one vocabulary card. Tapping the card calls OnTapped;
// taps on the embedded audio button are handled by the button alone.
type CardView struct {
	widget.BaseWidget

	OnTapped func()

	card    vocab.Card
	flipped bool

	background *canvas.Rectangle
	front      *fyne.Container
	back       *fyne.Container
	content    *fyne.Container

	// Front face
	wordText  *canvas.Text
	typeBadge *widget.Label
	audio     *AudioButton
	hintLabel *widget.Label

	// Back face
	backWord   *widget.Label
	phonetics  *widget.Label
	definition *widget.Label
	example    *widget.Label
}

// NewCardView creates a card view around an audio button
func NewCardView(audio *AudioButton) *CardView {
	c := &CardView{audio: audio}

	c.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	c.background.CornerRadius = theme.Padding() * 4

	c.wordText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	c.wordText.TextSize = theme.TextSize() * 2.5
	c.wordText.TextStyle = fyne.TextStyle{Bold: true}
	c.wordText.Alignment = fyne.TextAlignCenter

	c.typeBadge = widget.NewLabel("")
	c.typeBadge.Alignment = fyne.TextAlignCenter
	c.typeBadge.Importance = widget.HighImportance

	c.hintLabel = widget.NewLabelWithStyle("Tap card to flip", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	c.hintLabel.Importance = widget.LowImportance

	c.front = container.NewVBox(
		layout.NewSpacer(),
		c.wordText,
		container.NewCenter(c.typeBadge),
		container.NewCenter(c.audio),
		layout.NewSpacer(),
		c.hintLabel,
	)

	c.backWord = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	c.phonetics = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	c.definition = widget.NewLabel("")
	c.definition.Wrapping = fyne.TextWrapWord
	c.example = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	c.example.Wrapping = fyne.TextWrapWord

	c.back = container.NewVBox(
		c.backWord,
		widget.NewSeparator(),
		heading("Phonetics"),
		c.phonetics,
		heading("Definition"),
		c.definition,
		heading("Example"),
		c.example,
	)

	c.content = container.NewStack(c.front, c.back)
	c.back.Hide()

	c.ExtendBaseWidget(c)
	return c
}

func heading(text string) *widget.Label {
	l := widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	l.Importance = widget.LowImportance
	return l
}

// CreateRenderer implements fyne.Widget
func (c *CardView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(
		c.background,
		container.NewPadded(container.NewPadded(c.content)),
	))
}

// MinSize keeps the card large enough for the back face
func (c *CardView) MinSize() fyne.Size {
	return c.BaseWidget.MinSize().Max(fyne.NewSize(420, 320))
}

// Tapped implements fyne.Tappable
func (c *CardView) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

// SetCard shows card with the given face up. Must be called on the UI
// goroutine.
func (c *CardView) SetCard(card vocab.Card, flipped bool) {
	c.card = card
	c.flipped = flipped

	c.wordText.Text = card.Word
	c.wordText.Refresh()
	c.typeBadge.SetText(card.Type)
	c.audio.SetWord(card.Word)

	c.backWord.SetText(card.Word)
	c.phonetics.SetText(card.Phonetics)
	c.definition.SetText(card.Definition)
	c.example.SetText(fmt.Sprintf("“%s”", card.Example))

	if flipped {
		c.front.Hide()
		c.back.Show()
	} else {
		c.back.Hide()
		c.front.Show()
	}
	c.Refresh()
}

// Card returns the card on display
func (c *CardView) Card() vocab.Card {
	return c.card
}

// Flipped reports whether the back face is showing
func (c *CardView) Flipped() bool {
	return c.flipped
}
