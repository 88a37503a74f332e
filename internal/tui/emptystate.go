package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Action is the optional call-to-action of an EmptyState. Label and callback
// travel together so one cannot be set without the other.
type Action struct {
	Label string
	Do    func()
}

// EmptyState is a placeholder panel shown where a list would otherwise be.
// It is a pure render of its fields; the only behaviour is Activate.
type EmptyState struct {
	Icon     string
	Title    string
	Subtitle string
	Action   *Action
}

// HasAction reports whether the panel carries an activatable control.
func (e EmptyState) HasAction() bool {
	return e.Action != nil
}

// Activate invokes the action callback exactly once and reports whether an
// action was present to invoke.
func (e EmptyState) Activate() bool {
	if e.Action == nil {
		return false
	}
	if e.Action.Do != nil {
		e.Action.Do()
	}
	return true
}

// View renders the panel centered in the given width. The action row appears
// only when an Action is set; flash styles the row as an activation cue.
func (e EmptyState) View(width int, flash bool) string {
	var lines []string
	if e.Icon != "" {
		lines = append(lines, e.Icon)
	}
	if e.Title != "" {
		lines = append(lines, titleStyle.Render(e.Title))
	}
	if e.Subtitle != "" {
		lines = append(lines, subtextStyle.Render(e.Subtitle))
	}
	lines = append(lines, dotsStyle.Render("·  ·  ·"))
	if e.Action != nil {
		style := actionStyle
		if flash {
			style = actionHotStyle
		}
		lines = append(lines, "", style.Render(e.Action.Label))
	}
	block := strings.Join(lines, "\n")
	if width <= 0 {
		return block
	}
	return lipgloss.Place(width, lipgloss.Height(block), lipgloss.Center, lipgloss.Top, block)
}
