package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-wish/internal/config"
)

// DateEntry is an Entry that only accepts the characters of a YYYY-MM-DD
// date, capped at its length.
type DateEntry struct {
	widget.Entry
}

// NewDateEntry creates an empty date field with a layout placeholder.
func NewDateEntry() *DateEntry {
	entry := &DateEntry{}
	entry.ExtendBaseWidget(entry)
	entry.PlaceHolder = config.DatePlaceholder
	return entry
}

// TypedRune drops anything but digits and the separator, and stops
// accepting input once the field holds a full date.
func (e *DateEntry) TypedRune(r rune) {
	if len([]rune(e.Text)) >= config.DateEntryMaxRunes {
		return
	}
	if (r >= '0' && r <= '9') || r == config.DateEntrySep {
		e.Entry.TypedRune(r)
	}
	// Pasted text bypasses this filter; Session.Submit rejects non-dates.
}

// Keyboard requests a numeric keypad on mobile devices.
func (e *DateEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
