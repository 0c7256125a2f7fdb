package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/todopro/internal/task"
	"github.com/josephgoksu/todopro/types"
	"github.com/spf13/afero"
)

// TaskMode is what the task screen is currently doing.
type TaskMode int

const (
	ModeBrowse TaskMode = iota
	ModeAdd
)

// Add form fields, in tab order.
const (
	fieldDescription = iota
	fieldPriority
	fieldDueDate
	fieldTags
	fieldCount
)

// KeyMap holds the task screen bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Undo     key.Binding
	Add      key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Complete: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "add task"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Delete, k.Undo, k.Export, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Complete, k.Delete},
		{k.Undo, k.Export},
		{k.Help, k.Quit},
	}
}

type formKeys struct{ k KeyMap }

func (f formKeys) ShortHelp() []key.Binding {
	return []key.Binding{f.k.Next, f.k.Prev, f.k.Submit, f.k.Cancel}
}

func (f formKeys) FullHelp() [][]key.Binding { return [][]key.Binding{f.ShortHelp()} }

// TUIOptions configures the task screen.
type TUIOptions struct {
	ExportFS     afero.Fs
	ExportPath   string
	ExportFormat task.ExportFormat
	// LoadErr is shown on the first frame when loading the list failed.
	LoadErr error
}

// TaskModel is the bubbletea model for the interactive task list.
// All changes go through the service, which persists them immediately.
type TaskModel struct {
	svc  *task.Service
	opts TUIOptions

	keys   KeyMap
	help   help.Model
	inputs []textinput.Model
	focus  int

	mode   TaskMode
	cursor int
	status string
	err    error
}

// NewTaskModel creates the task screen over svc.
func NewTaskModel(svc *task.Service, opts TUIOptions) TaskModel {
	if opts.ExportFS == nil {
		opts.ExportFS = afero.NewOsFs()
	}
	if opts.ExportPath == "" {
		opts.ExportPath = task.DefaultExportFile
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = task.ExportCSV
	}

	inputs := make([]textinput.Model, fieldCount)
	placeholders := []string{"Task description", "Priority: Low, Medium, High", "Due date (YYYY-MM-DD)", "Tags (comma-separated)"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "› "
		ti.CharLimit = 256
		inputs[i] = ti
	}

	m := TaskModel{
		svc:    svc,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		inputs: inputs,
	}
	if opts.LoadErr != nil {
		m.err = fmt.Errorf("failed to load tasks: %w", opts.LoadErr)
	}
	return m
}

// Init implements tea.Model.
func (m TaskModel) Init() tea.Cmd {
	return nil
}

// Mode reports the current mode.
func (m TaskModel) Mode() TaskMode { return m.mode }

// Cursor reports the selected 0-based position.
func (m TaskModel) Cursor() int { return m.cursor }

// Status reports the last informational message.
func (m TaskModel) Status() string { return m.status }

// Err reports the last error shown to the user.
func (m TaskModel) Err() error { return m.err }

// Update implements tea.Model.
func (m TaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == ModeAdd {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m TaskModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.svc.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		m.status, m.err = "", nil
		return m, m.focusField(fieldDescription)
	case key.Matches(msg, m.keys.Complete):
		t, ok, err := m.svc.Complete(m.cursor)
		m.report(err, ok, fmt.Sprintf("Completed %q.", t.Description))
	case key.Matches(msg, m.keys.Delete):
		t, ok, err := m.svc.Delete(m.cursor)
		m.report(err, ok, fmt.Sprintf("Deleted %q.", t.Description))
	case key.Matches(msg, m.keys.Undo):
		outcome, err := m.svc.Undo()
		m.report(err, true, outcome.Message())
	case key.Matches(msg, m.keys.Export):
		err := m.svc.ExportFile(m.opts.ExportFS, m.opts.ExportPath, m.opts.ExportFormat)
		m.report(err, true, fmt.Sprintf("Tasks exported to %s", m.opts.ExportPath))
	}
	m.clampCursor()
	return m, nil
}

// report sets the status line after an action. A false ok means nothing was selected.
func (m *TaskModel) report(err error, ok bool, success string) {
	m.status, m.err = "", nil
	switch {
	case err != nil:
		m.err = err
	case !ok:
		m.status = "No task selected."
	default:
		m.status = success
	}
}

func (m *TaskModel) clampCursor() {
	if n := m.svc.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *TaskModel) focusField(i int) tea.Cmd {
	m.focus = (i + fieldCount) % fieldCount
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[m.focus].Focus()
}

func (m TaskModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.resetForm()
		m.mode = ModeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.focusField(m.focus - 1)
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m TaskModel) submit() (tea.Model, tea.Cmd) {
	added, err := m.svc.Add(task.AddInput{
		Description: m.inputs[fieldDescription].Value(),
		Priority:    m.inputs[fieldPriority].Value(),
		DueDate:     m.inputs[fieldDueDate].Value(),
		Tags:        m.inputs[fieldTags].Value(),
	})

	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		// Keep the form open so the input can be fixed.
		m.status, m.err = "", vErr
		if vErr.Field == "priority" {
			return m, m.focusField(fieldPriority)
		}
		return m, m.focusField(fieldDescription)
	}

	m.resetForm()
	m.mode = ModeBrowse
	m.cursor = m.svc.Len() - 1
	m.report(err, true, fmt.Sprintf("Added %q.", added.Description))
	return m, nil
}

func (m *TaskModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = fieldDescription
}

// View implements tea.Model.
func (m TaskModel) View() string {
	var sb strings.Builder
	sb.WriteString(StyleHeader.Render("To-Do List") + "\n\n")

	tasks := m.svc.List()
	if len(tasks) == 0 {
		sb.WriteString(StyleSubtle.Render("  No tasks yet. Press a to add one.") + "\n")
	}
	for i, t := range tasks {
		line := task.FormatLine(i+1, t)
		switch {
		case i == m.cursor && m.mode == ModeBrowse:
			line = StyleSelected.Render("▸ " + line)
		case t.Completed:
			line = "  " + StyleDone.Render(line)
		default:
			line = "  " + PriorityStyle(t.Priority).Render(line)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")

	if m.mode == ModeAdd {
		var form []string
		for _, in := range m.inputs {
			form = append(form, in.View())
		}
		sb.WriteString(StyleInputBox.Render(strings.Join(form, "\n")) + "\n")
	}

	switch {
	case m.err != nil:
		sb.WriteString(StyleError.Render("✗ "+m.err.Error()) + "\n")
	case m.status != "":
		sb.WriteString(StyleSuccess.Render(m.status) + "\n")
	default:
		sb.WriteString(RenderSummary(m.svc.Summary()) + "\n")
	}

	if m.mode == ModeAdd {
		sb.WriteString(m.help.View(formKeys{m.keys}))
	} else {
		sb.WriteString(m.help.View(m.keys))
	}
	return sb.String()
}

// RunTUI starts the interactive task screen and blocks until the user quits.
func RunTUI(svc *task.Service, opts TUIOptions) error {
	_, err := tea.NewProgram(NewTaskModel(svc, opts), tea.WithAltScreen()).Run()
	return err
}
