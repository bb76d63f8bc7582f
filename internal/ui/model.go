// Package ui renders a type-ahead widget as a Bubble Tea program: a prompt
// line backed by textinput and a dropdown reflecting the widget's state.
package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/typeahead/internal/event"
	"github.com/oakwood-commons/typeahead/internal/widget"
)

// widgetEventMsg carries one widget notification into the Bubble Tea loop.
type widgetEventMsg struct {
	ev event.Event
}

// Model is the Bubble Tea UI model wrapping a widget instance. The widget
// owns all interaction state; the model mirrors it into the terminal and
// feeds keystrokes back.
type Model struct {
	input  textinput.Model
	widget *widget.Widget

	events      chan event.Event
	unsubscribe func()

	width   int
	height  int
	noColor bool

	loading   bool
	lastErr   error
	committed bool
	quitting  bool
}

// NewModel creates a UI model bound to the given widget.
func NewModel(w *widget.Widget, noColor bool) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search"
	ti.Prompt = "❯ "
	ti.CharLimit = 200
	ti.SetWidth(60)
	ti.Focus()

	m := &Model{
		input:   ti,
		widget:  w,
		events:  make(chan event.Event, 64),
		width:   80,
		height:  24,
		noColor: noColor,
	}
	// Notifications arrive on timer and fetch goroutines; buffer them and
	// drain through a command so the program repaints on each one.
	m.unsubscribe = w.Events().SubscribeAll(func(ev event.Event) {
		select {
		case m.events <- ev:
		default:
		}
	})
	return m
}

// Widget returns the wrapped widget, e.g. to read the committed value after
// the program has finished.
func (m *Model) Widget() *widget.Widget {
	return m.widget
}

// Init starts cursor blinking and the notification drain.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return widgetEventMsg{ev: ev}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 4
		if w < 20 {
			w = 20
		} else if w > 120 {
			w = 120
		}
		m.input.SetWidth(w)
		return m, nil

	case widgetEventMsg:
		m.applyEvent(msg.ev)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyEvent(ev event.Event) {
	switch ev := ev.(type) {
	case event.LoadStartEvent:
		m.loading = true
		m.lastErr = nil
	case event.LoadEndEvent:
		m.loading = false
	case event.ErrorEvent:
		m.lastErr = ev.Err
	case event.ChangeEvent:
		m.committed = true
		m.syncInput()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "esc":
		out := m.widget.HandleKey(widget.KeyEscape)
		if !out.StopPropagation {
			return m.quit()
		}
		return m, nil

	case "down":
		m.widget.HandleKey(widget.KeyArrowDown)
		return m, nil

	case "up":
		m.widget.HandleKey(widget.KeyArrowUp)
		return m, nil

	case "tab":
		m.widget.HandleKey(widget.KeyTab)
		m.syncInput()
		return m, nil

	case "enter":
		out := m.widget.HandleKey(widget.KeyEnter)
		m.syncInput()
		if !out.PreventDefault && m.committed {
			return m.quit()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.widget.OnInput(v)
	}
	return m, cmd
}

// syncInput copies a widget-written input value (a committed option label)
// back into the textinput.
func (m *Model) syncInput() {
	if v := m.widget.Value(); v != m.input.Value() {
		m.input.SetValue(v)
		m.input.SetCursor(len(v))
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.unsubscribe()
	return m, tea.Quit
}
