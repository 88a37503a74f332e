package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"scriptdeck/internal/catalog"
	"scriptdeck/internal/config"
	"scriptdeck/internal/database"
	"scriptdeck/internal/database/repository"
	"scriptdeck/internal/script"
)

// App ties together views.
type App struct {
	ctx     context.Context
	cfg     config.Config
	repos   Repos
	runner  *script.Runner
	catalog *catalog.Catalog

	state appState
	modal modalState
	keys  keyMap

	scripts []repository.Script
	cursor  int

	editorID   string // empty while the buffer is unsaved
	editorName string
	buffer     string

	help        *HelpDialog
	inputBuffer string
	lastRun     *runReport
	status      string
	flash       bool
	width       int
	height      int
}

type Repos struct {
	Scripts *repository.ScriptRepo
	KV      *repository.KVRepo
}

type appState string

const (
	viewScripts  appState = "scripts"
	viewEditor   appState = "editor"
	viewOutput   appState = "output"
	viewSettings appState = "settings"
)

type modalState string

const (
	modalNone          modalState = ""
	modalHelp          modalState = "help"
	modalSaveName      modalState = "saveName"
	modalConfirmDelete modalState = "confirmDelete"
)

const runTimeout = 30 * time.Second

func New(ctx context.Context, cfg config.Config, repos Repos, runner *script.Runner) (*App, error) {
	cat, err := runner.Catalog()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return &App{
		ctx:     ctx,
		cfg:     cfg,
		repos:   repos,
		runner:  runner,
		catalog: cat,
		state:   viewScripts,
		keys:    newKeyMap(),
	}, nil
}

func (a *App) Init() tea.Cmd {
	return a.loadScripts()
}

// commands

func (a *App) loadScripts() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Scripts.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return scriptsMsg(list)
	}
}

func (a *App) saveScriptCmd(id, name, body string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if id == "" {
				id = uuid.NewString()
			}
			s := repository.Script{ID: id, Name: strings.TrimSpace(name), Body: body}
			if err := a.repos.Scripts.Upsert(a.ctx, s); err != nil {
				return errMsg{err}
			}
			return savedMsg{id: id, name: s.Name}
		},
	)
}

func (a *App) deleteScriptCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Scripts.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("script deleted")
		},
		a.loadScripts(),
	)
}

func (a *App) runCmd(id, src string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(a.ctx, runTimeout)
		defer cancel()
		res, err := a.runner.Run(ctx, src)
		if err == nil && id != "" {
			_ = a.repos.Scripts.RecordRun(a.ctx, id, src, database.Now())
		}
		report := runReport{res: res}
		if err != nil {
			report.err = err.Error()
		}
		return runDoneMsg{report: report}
	}
}

func flashClearCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
	case scriptsMsg:
		a.scripts = []repository.Script(m)
		if a.cursor >= len(a.scripts) {
			a.cursor = 0
		}
	case savedMsg:
		a.editorID = m.id
		a.editorName = m.name
		a.status = fmt.Sprintf("saved %q", m.name)
		return a, a.loadScripts()
	case runDoneMsg:
		a.lastRun = &m.report
		a.state = viewOutput
		if m.report.err != "" {
			a.status = "run failed" + a.suggestIntegration(m.report.err)
		} else {
			a.status = fmt.Sprintf("run finished in %s", m.report.res.Duration.Round(time.Millisecond))
		}
		return a, a.loadScripts()
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	case flashClearMsg:
		a.flash = false
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewEditor:
			return a.handleEditorKey(m)
		case viewOutput:
			return a.handleOutputKey(m)
		case viewSettings:
			return a.handleSettingsKey(m)
		default:
			return a.handleScriptsKey(m)
		}
	}
	return a, nil
}

func (a *App) handleScriptsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.scripts)-1 {
			a.cursor++
		}
	case "enter":
		if len(a.scripts) == 0 {
			return a.activateEmptyState()
		}
		s := a.scripts[a.cursor]
		a.openEditor(s)
	case "n":
		if len(a.scripts) == 0 {
			return a.activateEmptyState()
		}
		a.startNewScript()
	case "d":
		if len(a.scripts) > 0 {
			a.modal = modalConfirmDelete
		}
	case "r":
		if len(a.scripts) > 0 {
			s := a.scripts[a.cursor]
			a.editorID, a.editorName, a.buffer = s.ID, s.Name, s.Body
			a.status = "running..."
			return a, a.runCmd(s.ID, s.Body)
		}
	case "h":
		a.openHelp()
	case "s":
		a.state = viewSettings
		a.status = ""
	}
	return a, nil
}

func (a *App) activateEmptyState() (tea.Model, tea.Cmd) {
	es := a.emptyState()
	if !es.Activate() {
		return a, nil
	}
	a.flash = true
	a.status = "new script"
	return a, flashClearCmd()
}

func (a *App) emptyState() EmptyState {
	return EmptyState{
		Icon:     "⌁",
		Title:    "No scripts yet",
		Subtitle: "Create one to get started",
		Action: &Action{
			Label: "New script",
			Do:    a.startNewScript,
		},
	}
}

func (a *App) startNewScript() {
	a.editorID = ""
	a.editorName = ""
	a.buffer = ""
	a.state = viewEditor
	a.status = ""
}

func (a *App) openEditor(s repository.Script) {
	a.editorID = s.ID
	a.editorName = s.Name
	a.buffer = s.Body
	a.state = viewEditor
	a.status = ""
}

func (a *App) openHelp() {
	a.help = NewHelpDialog(a.catalog, HelpStyleFromString(a.cfg.UI.HelpStyle))
	a.modal = modalHelp
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+s":
		if a.editorName == "" {
			a.modal = modalSaveName
			a.inputBuffer = ""
			return a, nil
		}
		return a, a.saveScriptCmd(a.editorID, a.editorName, a.buffer)
	case "ctrl+r":
		a.status = "running..."
		return a, a.runCmd(a.editorID, a.buffer)
	case "ctrl+e":
		a.openHelp()
		return a, nil
	}
	switch m.Type {
	case tea.KeyEsc:
		a.state = viewScripts
		return a, a.loadScripts()
	case tea.KeyEnter:
		a.buffer += "\n"
	case tea.KeyTab:
		a.buffer += "    "
	// ctrl+h covers terminals that send 0x08 for backspace.
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		a.buffer = trimLastRune(a.buffer)
	case tea.KeySpace:
		a.buffer += " "
	case tea.KeyRunes:
		a.buffer += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleOutputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = viewEditor
		a.status = ""
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = viewScripts
		a.status = ""
	case "v":
		if a.cfg.UI.HelpStyle == "expand" {
			a.cfg.UI.HelpStyle = "flat"
		} else {
			a.cfg.UI.HelpStyle = "expand"
		}
		a.status = "help style: " + a.cfg.UI.HelpStyle
	case "w":
		return a, func() tea.Msg {
			if err := config.Save(a.cfg); err != nil {
				return errMsg{err}
			}
			return statusMsg("config written")
		}
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalHelp:
		outcome, done := a.help.HandleKey(m.String())
		if !done {
			return a, nil
		}
		a.modal = modalNone
		a.help = nil
		if outcome.OK {
			a.insertExample(outcome.Example)
			a.state = viewEditor
			a.status = "example inserted"
		}
		return a, nil
	case modalConfirmDelete:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			if len(a.scripts) == 0 {
				return a, nil
			}
			return a, a.deleteScriptCmd(a.scripts[a.cursor].ID)
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalSaveName:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.inputBuffer = ""
		case tea.KeyEnter:
			name := strings.TrimSpace(a.inputBuffer)
			if name == "" {
				a.status = "enter a name"
				return a, nil
			}
			a.modal = modalNone
			a.inputBuffer = ""
			return a, a.saveScriptCmd(a.editorID, name, a.buffer)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			a.inputBuffer = trimLastRune(a.inputBuffer)
		case tea.KeySpace:
			a.inputBuffer += " "
		case tea.KeyRunes:
			a.inputBuffer += string(m.Runes)
		}
	}
	return a, nil
}

// suggestIntegration inspects a run error for an unknown global and offers
// the closest catalog id when it is plausibly a typo.
func (a *App) suggestIntegration(errText string) string {
	name, ok := undefinedName(errText)
	if !ok {
		return ""
	}
	if _, known := a.catalog.ByID(name); known {
		return ""
	}
	id, dist, ok := a.catalog.Nearest(name)
	if !ok || dist > 2 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", id)
}

// undefinedName extracts the identifier from a ReferenceError message.
func undefinedName(errText string) (string, bool) {
	const marker = "ReferenceError: "
	i := strings.Index(errText, marker)
	if i < 0 {
		return "", false
	}
	rest := errText[i+len(marker):]
	j := strings.Index(rest, " is not defined")
	if j <= 0 {
		return "", false
	}
	return rest[:j], true
}

// trimLastRune drops the final rune so multibyte input never leaves the
// buffer as invalid UTF-8.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// insertExample appends an example snippet on its own line.
func (a *App) insertExample(example string) {
	if a.buffer != "" && !strings.HasSuffix(a.buffer, "\n") {
		a.buffer += "\n"
	}
	a.buffer += example
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewEditor:
		body = a.renderEditor()
	case viewOutput:
		body = a.renderOutput()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderScripts()
	}

	base := body + "\n" + a.renderStatusLine() + "\n" + a.renderFooter()
	if a.modal == modalNone {
		return base
	}
	modal := a.renderModal()
	if a.width == 0 || a.height == 0 {
		return base + "\n\n" + modal
	}
	return renderPopup(base, modal, a.width, a.height)
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalHelp:
		w := a.width - 10
		if w < 30 {
			w = 60
		}
		return a.help.View(w)
	case modalConfirmDelete:
		name := ""
		if len(a.scripts) > 0 {
			name = a.scripts[a.cursor].Name
		}
		return titleStyle.Render("Delete script?") + fmt.Sprintf("\n%q will be removed.\n[y] Yes  [n] No", name)
	case modalSaveName:
		return titleStyle.Render("Script name") + fmt.Sprintf("\n%s▌\n[enter] Save  [esc] Cancel", a.inputBuffer)
	default:
		return ""
	}
}

func (a *App) renderScripts() string {
	title := titleStyle.Render("Scripts")
	if len(a.scripts) == 0 {
		return title + "\n\n" + a.emptyState().View(a.width, a.flash)
	}
	out := title + "\n"
	for i, s := range a.scripts {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		lastRun := dimStyle.Render("never run")
		if s.LastRunAt != nil {
			lastRun = dimStyle.Render("ran " + s.LastRunAt.Format("2006-01-02 15:04"))
		}
		firstLine := s.Body
		if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
			firstLine = firstLine[:idx]
		}
		out += fmt.Sprintf("%s %-24s %s  %s\n", marker, s.Name, lastRun, subtextStyle.Render(truncate(firstLine, 40)))
	}
	return out
}

func (a *App) renderEditor() string {
	name := a.editorName
	if name == "" {
		name = "(unsaved)"
	}
	title := titleStyle.Render("Editor — " + name)
	return title + "\n" + a.buffer + "▌"
}

func (a *App) renderOutput() string {
	title := titleStyle.Render("Run Output")
	if a.lastRun == nil {
		return title + "\nNothing has run yet."
	}
	out := title + "\n"
	if a.lastRun.err != "" {
		out += "error: " + a.lastRun.err + "\n"
	}
	for _, line := range a.lastRun.res.Output {
		out += line + "\n"
	}
	if a.lastRun.res.Value != "" {
		out += dimStyle.Render("=> "+a.lastRun.res.Value) + "\n"
	}
	out += dimStyle.Render(fmt.Sprintf("(%s)", a.lastRun.res.Duration.Round(time.Millisecond)))
	return out
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings")
	out := title + "\n"
	out += fmt.Sprintf("Help dialog style: %s\n", a.cfg.UI.HelpStyle)
	out += fmt.Sprintf("Database: %s\n", a.cfg.Database.Path)
	out += fmt.Sprintf("HTTP timeout: %dms\n", a.cfg.Runner.HTTPTimeoutMS)
	return out
}

func (a *App) renderStatusLine() string {
	if a.width == 0 {
		return statusBarStyle.Render(a.status)
	}
	flat := strings.ReplaceAll(a.status, "\n", " ")
	return statusBarStyle.Render(padRightANSI(flat, a.width-2))
}

func (a *App) renderFooter() string {
	var bindings = a.keys.scriptsHelp()
	switch a.state {
	case viewEditor:
		bindings = a.keys.editorHelp()
	case viewOutput:
		bindings = a.keys.outputHelp()
	case viewSettings:
		bindings = a.keys.settingsHelp()
	}
	text := renderHelp(bindings)
	if a.width == 0 {
		return footerStyle.Render(text)
	}
	return footerStyle.Render(padRightANSI(text, a.width-2))
}

// messages

type scriptsMsg []repository.Script

type statusMsg string

type errMsg struct{ error }

type savedMsg struct {
	id   string
	name string
}

type runDoneMsg struct {
	report runReport
}

type flashClearMsg struct{}

type runReport struct {
	res script.RunResult
	err string
}
