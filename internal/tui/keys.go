package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	New      key.Binding
	Delete   key.Binding
	Run      key.Binding
	Help     key.Binding
	Settings key.Binding
	Back     key.Binding
	Save     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new script")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Run:      key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "run")),
		Help:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "integrations")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) scriptsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.New, k.Run, k.Help, k.Delete, k.Settings, k.Quit}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Save, key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "run")), key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "integrations")), k.Back}
}

func (k keyMap) outputHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle help style")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write config")),
		k.Back, k.Quit,
	}
}

func helpDialogFlatHints() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "navigate")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert example")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func helpDialogExpandHints() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "navigate")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle example")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, boldKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
