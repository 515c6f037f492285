package gui

import "fyne.io/fyne/v2"

// onNext shows the next card
func (a *Application) onNext() {
	a.controller.Next()
}

// onPrevious shows the previous card
func (a *Application) onPrevious() {
	a.controller.Previous()
}

// onShuffle shows a random card
func (a *Application) onShuffle() {
	a.controller.Shuffle()
}

// onFlip turns the card over
func (a *Application) onFlip() {
	a.controller.Flip()
}

// setupKeyboardShortcuts installs the window-wide hotkeys
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		a.handleShortcutKey(ev.Name)
	})
}

// handleShortcutKey handles the actual shortcut action
func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch key {
	case fyne.KeyLeft: // Previous card
		a.onPrevious()

	case fyne.KeyRight: // Next card
		a.onNext()

	case fyne.KeySpace, fyne.KeyReturn, fyne.KeyEnter: // Flip
		a.onFlip()

	case fyne.KeyS: // Shuffle
		a.onShuffle()

	case fyne.KeyP: // Play pronunciation
		a.audioButton.Play()

	case fyne.KeyX: // Export to Anki
		a.onExportToAnki()

	case fyne.KeyL: // Toggle log
		a.onToggleLog()

	case fyne.KeyH: // Show hotkeys
		a.onShowHotkeys()

	case fyne.KeyQ: // Quit application
		a.window.Close()
	}
}
