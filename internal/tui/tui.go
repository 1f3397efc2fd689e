// Package tui is the interactive interface: a list with inline
// completion toggling, a create form, and a modal edit dialog. All
// durable state lives behind the Service; the model here holds only
// transient UI state.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tudu/internal/model"
	"github.com/idilsaglam/tudu/internal/speech"
	"github.com/idilsaglam/tudu/internal/validate"
)

// Service is the todo collection accessor the TUI talks to.
type Service interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, title string) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) (model.Todo, error)
	Toggle(ctx context.Context, todo model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id string) error
	Invalidate()
}

// Options tune the interactive session.
type Options struct {
	Recognizer speech.Recognizer
	Locale     string
	Timeout    time.Duration
	Logger     *log.Logger
}

// rowItem adapts a todo record to bubbles/list.Item.
type rowItem struct {
	todo model.Todo
}

func (i rowItem) Title() string       { return i.todo.Title }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.todo.Title }

// mode is the explicit UI state: which form, if any, owns the input.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Messages carried back from async commands.
type (
	todosMsg   []model.Todo
	mutatedMsg struct{}
	errMsg     struct{ err error }

	speechSessionMsg struct{ ch <-chan speech.Event }
	speechEventMsg   struct {
		ev speech.Event
		ch <-chan speech.Event
	}
	speechDoneMsg struct{}
)

// Model is the top-level Bubble Tea model. The dialog state machine
// (closed → open-for(id) → closed) is an explicit value here, not an
// ambient global.
type Model struct {
	svc     Service
	rec     speech.Recognizer
	locale  string
	timeout time.Duration
	log     *log.Logger

	list  list.Model
	input textinput.Model

	mode     mode
	editTodo model.Todo // record the dialog is open for (modeEdit only)
	inputErr string

	listening bool
	status    string

	width, height int
}

// New builds the interactive model. Init fetches the collection.
func New(svc Service, opts Options) Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	voiceBind := key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "voice"))
	refreshBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, editBind, delBind, voiceBind, refreshBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item title..."
	ti.CharLimit = 200

	rec := opts.Recognizer
	if rec == nil {
		rec = speech.Unsupported{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	locale := opts.Locale
	if locale == "" {
		locale = speech.DefaultLocale
	}

	return Model{
		svc:     svc,
		rec:     rec,
		locale:  locale,
		timeout: timeout,
		log:     logger,
		list:    l,
		input:   ti,
	}
}

// Run starts the program in the alt screen and blocks until quit.
func Run(svc Service, opts Options) error {
	p := tea.NewProgram(New(svc, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.fetchCmd() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-6)
		return m, nil

	case todosMsg:
		items := make([]list.Item, 0, len(msg))
		for _, t := range msg {
			items = append(items, rowItem{todo: t})
		}
		cmd := m.list.SetItems(items)
		m.refreshHeader(msg)
		return m, cmd

	case mutatedMsg:
		// The accessor merged the response into its cache; this read
		// is served locally, so the view reflects the change at once.
		return m, m.fetchCmd()

	case errMsg:
		m.status = errorStyle.Render(msg.err.Error())
		m.log.Error("request failed", "err", msg.err)
		return m, nil

	case speechSessionMsg:
		return m, listenSpeech(msg.ch)

	case speechEventMsg:
		return m.onSpeechEvent(msg)

	case speechDoneMsg:
		m.listening = false
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	}
	return m.updateList(msg)
}

// updateList handles keys while no form is open.
func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ":
			if t, ok := m.selected(); ok {
				return m, m.toggleCmd(t)
			}
			return m, nil

		case "d":
			if t, ok := m.selected(); ok {
				return m, m.deleteCmd(t.ID)
			}
			return m, nil

		case "a":
			m.mode = modeAdd
			m.inputErr = ""
			m.input.SetValue("")
			m.input.Placeholder = "New item title..."
			m.input.Focus()
			return m, nil

		case "e":
			if t, ok := m.selected(); ok {
				// Opening captures the row's current title into the field.
				m.mode = modeEdit
				m.editTodo = t
				m.inputErr = ""
				m.input.SetValue(t.Title)
				m.input.CursorEnd()
				m.input.Placeholder = "Edit item title..."
				m.input.Focus()
			}
			return m, nil

		case "r":
			m.svc.Invalidate()
			m.status = ""
			return m, m.fetchCmd()

		case "v":
			if m.listening {
				return m, nil
			}
			return m, m.voiceCmd()
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateAdd drives the create form.
func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			title := m.input.Value()
			if err := validate.Title(title); err != nil {
				// Invalid titles never produce a request.
				m.inputErr = err.Error()
				return m, nil
			}
			m.closeInput()
			return m, m.createCmd(title)
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateEdit drives the edit dialog. The dialog closes on successful
// submission (which issues the update) or on dismissal.
func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			title := m.input.Value()
			if err := validate.Title(title); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			changed := m.editTodo
			changed.Title = title
			m.closeInput()
			return m, m.updateCmd(changed)
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.editTodo = model.Todo{}
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) onSpeechEvent(msg speechEventMsg) (tea.Model, tea.Cmd) {
	switch msg.ev.Kind {
	case speech.SessionStarted:
		m.listening = true
		m.status = ""
	case speech.ResultAvailable:
		// Recognized text overwrites the create-form title field.
		if m.mode != modeAdd {
			m.mode = modeAdd
			m.input.Placeholder = "New item title..."
			m.input.Focus()
		}
		m.inputErr = ""
		m.input.SetValue(msg.ev.Transcript)
		m.input.CursorEnd()
	case speech.SessionError:
		m.status = errorStyle.Render("voice input: " + msg.ev.Err.Error())
		m.log.Warn("speech session error", "err", msg.ev.Err)
	case speech.SessionEnded:
		m.listening = false
	}
	return m, listenSpeech(msg.ch)
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(rowItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m *Model) refreshHeader(todos []model.Todo) {
	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)
}

// ---- async commands -------------------------------------------------

func (m Model) fetchCmd() tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		todos, err := svc.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return todosMsg(todos)
	}
}

func (m Model) createCmd(title string) tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := svc.Create(ctx, title); err != nil {
			return errMsg{err}
		}
		return mutatedMsg{}
	}
}

func (m Model) updateCmd(todo model.Todo) tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := svc.Update(ctx, todo); err != nil {
			return errMsg{err}
		}
		return mutatedMsg{}
	}
}

func (m Model) toggleCmd(todo model.Todo) tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := svc.Toggle(ctx, todo); err != nil {
			return errMsg{err}
		}
		return mutatedMsg{}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	svc, timeout := m.svc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := svc.Delete(ctx, id); err != nil {
			return errMsg{err}
		}
		return mutatedMsg{}
	}
}

func (m Model) voiceCmd() tea.Cmd {
	rec, locale := m.rec, m.locale
	return func() tea.Msg {
		// The session outlives any single request deadline; it ends
		// when the recognizer does.
		ch, err := rec.Start(context.Background(), locale)
		if err != nil {
			return errMsg{err}
		}
		return speechSessionMsg{ch: ch}
	}
}

func listenSpeech(ch <-chan speech.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return speechDoneMsg{}
		}
		return speechEventMsg{ev: ev, ch: ch}
	}
}
