package tui

import (
	"strings"

	"scriptdeck/internal/catalog"
)

// HelpStyle selects how the integrations help dialog behaves.
type HelpStyle int

const (
	// HelpStyleFlat closes the dialog on select, yielding the row's example.
	HelpStyleFlat HelpStyle = iota
	// HelpStyleExpand toggles an inline example block instead; only the
	// dismiss key closes the dialog, always as a cancel.
	HelpStyleExpand
)

// HelpStyleFromString maps a config value to a style, defaulting to flat.
func HelpStyleFromString(s string) HelpStyle {
	if strings.EqualFold(strings.TrimSpace(s), "expand") {
		return HelpStyleExpand
	}
	return HelpStyleFlat
}

// HelpOutcome is how an open help dialog resolves: a selected example, or a
// cancel with OK false.
type HelpOutcome struct {
	Example string
	OK      bool
}

// HelpDialog lists the integration catalog and resolves at most once.
type HelpDialog struct {
	items    []catalog.Integration
	style    HelpStyle
	cursor   int
	expanded map[int]bool
	resolved bool
}

func NewHelpDialog(c *catalog.Catalog, style HelpStyle) *HelpDialog {
	return &HelpDialog{
		items:    c.Integrations(),
		style:    style,
		expanded: make(map[int]bool),
	}
}

// Resolved reports whether the dialog already produced its outcome.
func (d *HelpDialog) Resolved() bool {
	return d.resolved
}

// Expanded reports the toggle state of row i (expand style only).
func (d *HelpDialog) Expanded(i int) bool {
	return d.expanded[i]
}

// HandleKey processes one key press. done is true exactly once, when the
// dialog resolves; the outcome is the selected example or a cancel.
func (d *HelpDialog) HandleKey(keyName string) (outcome HelpOutcome, done bool) {
	if d.resolved {
		return HelpOutcome{}, false
	}
	switch keyName {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.items)-1 {
			d.cursor++
		}
	case "enter":
		if len(d.items) == 0 {
			return HelpOutcome{}, false
		}
		if d.style == HelpStyleExpand {
			d.expanded[d.cursor] = !d.expanded[d.cursor]
			return HelpOutcome{}, false
		}
		d.resolved = true
		return HelpOutcome{Example: d.items[d.cursor].Example, OK: true}, true
	case "esc":
		d.resolved = true
		return HelpOutcome{}, true
	}
	return HelpOutcome{}, false
}

// View renders the dialog body: every catalog entry in order, the cursor row
// highlighted, and (expand style) example blocks under expanded rows.
func (d *HelpDialog) View(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Integrations"))
	b.WriteString("\n")
	if len(d.items) == 0 {
		b.WriteString(dimStyle.Render("(no integrations available)"))
		b.WriteString("\n")
	}
	for i, it := range d.items {
		marker := "  "
		if i == d.cursor {
			marker = "▶ "
		}
		row := marker + it.ID + " — " + it.Title
		if i == d.cursor {
			row = cursorRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
		b.WriteString("    " + subtextStyle.Render(truncate(it.Description, max(width-4, 10))))
		b.WriteString("\n")
		if d.style == HelpStyleExpand && d.expanded[i] {
			b.WriteString("    " + dimStyle.Render("example:"))
			b.WriteString("\n")
			for _, line := range strings.Split(it.Example, "\n") {
				b.WriteString("    " + exampleStyle.Render(line))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")
	if d.style == HelpStyleExpand {
		b.WriteString(renderHelp(helpDialogExpandHints()))
	} else {
		b.WriteString(renderHelp(helpDialogFlatHints()))
	}
	return b.String()
}
