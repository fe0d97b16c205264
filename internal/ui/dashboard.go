package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wenzhi0209/webrtc-lan-server/internal/events"
	"github.com/wenzhi0209/webrtc-lan-server/internal/logring"
	"github.com/wenzhi0209/webrtc-lan-server/internal/server"
)

// Messages delivered from the server core into the Bubble Tea loop.
type eventMsg events.Event
type stateMsg server.Snapshot

// dashboardKeyMap defines key bindings for the dashboard
type dashboardKeyMap struct {
	Start key.Binding
	Stop  key.Binding
	Up    key.Binding
	Down  key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop},
		{k.Up, k.Down, k.Quit},
	}
}

func defaultKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start server"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop server"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll log up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll log down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the dashboard: server state header, event log viewport, key help.
// It only observes the controller; all server behavior lives in the core.
type Model struct {
	ctrl    *server.Controller
	ring    *logring.Ring
	eventCh <-chan events.Event
	stateCh chan server.Snapshot

	snap     server.Snapshot
	viewport viewport.Model
	help     help.Model
	keys     dashboardKeyMap
	width    int
	height   int
	ready    bool
}

// NewModel builds the dashboard over an already-wired controller. eventCh is
// a hub subscription owned by the caller; the ring holds the capped history.
func NewModel(ctrl *server.Controller, ring *logring.Ring, eventCh <-chan events.Event) *Model {
	m := &Model{
		ctrl:    ctrl,
		ring:    ring,
		eventCh: eventCh,
		stateCh: make(chan server.Snapshot, 16),
		snap:    ctrl.Snapshot(),
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
	ctrl.OnState(func(s server.Snapshot) {
		select {
		case m.stateCh <- s:
		default:
		}
	})
	return m
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.eventCh
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-m.stateCh)
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.waitForState())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 4
		footerHeight := 2
		vpHeight := m.height - headerHeight - footerHeight
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = vpHeight
		}
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if s := m.ctrl.Snapshot().State; s == server.StateRunning || s == server.StateStarting {
				m.ctrl.Stop()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			// Start blocks on identity loading; keep the render loop live.
			go m.ctrl.Start()
			return m, nil
		case key.Matches(msg, m.keys.Stop):
			m.ctrl.Stop()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case eventMsg:
		m.ring.Append(events.Event(msg))
		m.refreshLog()
		return m, m.waitForEvent()

	case stateMsg:
		m.snap = server.Snapshot(msg)
		return m, m.waitForState()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refreshLog() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	var b strings.Builder
	for _, e := range m.ring.Snapshot() {
		b.WriteString(TimestampStyle.Render(e.Time.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(KindStyle(string(e.Kind)).Render(e.Message))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := TitleStyle.Render("LAN WebRTC Page Server")
	state := StateStyle(m.snap.State.String()).Render(strings.ToUpper(m.snap.State.String()))

	var detail string
	switch {
	case m.snap.URL != "":
		detail = URLStyle.Render(m.snap.URL)
	case m.snap.Reason != "":
		detail = KindStyle("error").Render(m.snap.Reason)
	default:
		detail = HelpStyle.Render("press s to start")
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		title,
		fmt.Sprintf("%s  %s", state, detail),
		HelpStyle.Render(fmt.Sprintf("active connections: %d", m.snap.ActiveConns)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		LogBoxStyle.Render(m.viewport.View()),
		m.help.View(m.keys),
	)
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctrl *server.Controller, ring *logring.Ring, eventCh <-chan events.Event) error {
	p := tea.NewProgram(NewModel(ctrl, ring, eventCh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
