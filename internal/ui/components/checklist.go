package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/biolquiz/internal/ui/theme"
)

// ChecklistItem is a single toggleable row.
type ChecklistItem struct {
	ID      string
	Label   string
	Detail  string
	Checked bool
}

// Checklist is a vertical multi-select list.
type Checklist struct {
	Items    []ChecklistItem
	Selected int
}

// NewChecklist creates a checklist with the cursor on the first item.
func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

// Update handles navigation, space to toggle and "a" to toggle all.
func (c Checklist) Update(msg tea.Msg) Checklist {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Items) == 0 {
		return c
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case "space", " ":
		c.Items = cloneItems(c.Items)
		c.Items[c.Selected].Checked = !c.Items[c.Selected].Checked
	case "a":
		// Check everything unless everything is already checked.
		all := len(c.CheckedIDs()) == len(c.Items)
		c.Items = cloneItems(c.Items)
		for i := range c.Items {
			c.Items[i].Checked = !all
		}
	}
	return c
}

// CheckedIDs returns the ids of checked items in list order.
func (c Checklist) CheckedIDs() []string {
	var ids []string
	for _, it := range c.Items {
		if it.Checked {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// View renders the checklist.
func (c Checklist) View(width int) string {
	var b strings.Builder
	for i, it := range c.Items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		cursor := "  "
		if i == c.Selected {
			cursor = "▸ "
		}

		style := theme.Unselected
		if i == c.Selected {
			style = theme.Selected
		}
		line := style.Render(cursor + box + " " + it.Label)
		if it.Detail != "" {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + it.Detail)
			if lipgloss.Width(line)+lipgloss.Width(detail) <= width {
				line += detail
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func cloneItems(items []ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, len(items))
	copy(out, items)
	return out
}
