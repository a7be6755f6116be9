package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/biolquiz/internal/ui/theme"
)

// ActionButton is a screen's primary action, pressed with enter.
// A disabled button carries the notice to show when pressed anyway.
type ActionButton struct {
	Label    string
	Disabled bool
	Blocked  string
}

func NewActionButton(label string) ActionButton {
	return ActionButton{Label: label}
}

// Disable returns a copy that refuses presses and reports notice instead.
func (b ActionButton) Disable(notice string) ActionButton {
	b.Disabled = true
	b.Blocked = notice
	return b
}

// Update reports whether msg presses the button. A press on a disabled
// button returns its notice.
func (b ActionButton) Update(msg tea.Msg) (pressed bool, notice string) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || kmsg.String() != "enter" {
		return false, ""
	}
	if b.Disabled {
		return false, b.Blocked
	}
	return true, ""
}

func (b ActionButton) View() string {
	if b.Disabled {
		return theme.ButtonInactive.Render(b.Label)
	}
	return theme.ButtonActive.Render("▸ " + b.Label + "  ⏎")
}
