// Package tui is the interactive terminal front end: a tabbed view over
// the live route table, host interfaces, adapters, serial ports and the
// route addition history.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/slate-integrations/ipman/internal/ledger"
	"github.com/slate-integrations/ipman/internal/netcfg"
	"github.com/slate-integrations/ipman/internal/routetable"
	"github.com/slate-integrations/ipman/internal/serialconsole"
)

// View is the currently active screen.
type View int

const (
	ViewRoutes View = iota
	ViewInterfaces
	ViewAdapters
	ViewSerial
	ViewHistory

	viewCount
)

// Backend is what the screens need from the rest of the program.
type Backend interface {
	Snapshot() *routetable.Snapshot
	Filter(routetable.Category) []routetable.Route
	Counts() routetable.Counts
	Refresh()

	AddRoute(ctx context.Context, req routetable.AddRequest) error
	DeleteRoute(ctx context.Context, destination string, confirmed bool) error

	Interfaces(ctx context.Context) ([]netcfg.Interface, error)
	Adapters(ctx context.Context) ([]netcfg.Adapter, error)

	History() []ledger.Record
	ClearHistory() error

	SerialPorts() ([]serialconsole.PortInfo, error)
}

// Model is the root application state.
type Model struct {
	Backend Backend

	ActiveView View
	Width      int
	Height     int

	Routes     RoutesModel
	Interfaces InterfacesModel
	Adapters   AdaptersModel
	Serial     SerialModel
	History    HistoryModel
}

// NewModel builds the initial model.
func NewModel(backend Backend) Model {
	return Model{
		Backend:    backend,
		ActiveView: ViewRoutes,
		Routes:     NewRoutesModel(backend),
		Interfaces: NewInterfacesModel(backend),
		Adapters:   NewAdaptersModel(backend),
		Serial:     NewSerialModel(backend),
		History:    NewHistoryModel(backend),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Routes.Init(),
		m.Interfaces.Init(),
		m.Adapters.Init(),
		m.Serial.Init(),
		m.History.Init(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The add/delete forms own the keyboard while open.
		if !(m.ActiveView == ViewRoutes && m.Routes.FormOpen()) {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "tab":
				m.ActiveView = (m.ActiveView + 1) % viewCount
				return m, nil
			case "1":
				m.ActiveView = ViewRoutes
				return m, nil
			case "2":
				m.ActiveView = ViewInterfaces
				return m, nil
			case "3":
				m.ActiveView = ViewAdapters
				return m, nil
			case "4":
				m.ActiveView = ViewSerial
				return m, nil
			case "5":
				m.ActiveView = ViewHistory
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		var cmd tea.Cmd
		m.Routes, cmd = m.Routes.Update(msg)
		cmds = append(cmds, cmd)
		m.Interfaces, cmd = m.Interfaces.Update(msg)
		cmds = append(cmds, cmd)
		m.Adapters, cmd = m.Adapters.Update(msg)
		cmds = append(cmds, cmd)
		m.Serial, cmd = m.Serial.Update(msg)
		cmds = append(cmds, cmd)
		m.History, cmd = m.History.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	// The refresh tick belongs to the routes view regardless of which
	// screen is showing, or the chain would die while tabbed away.
	if _, ok := msg.(routesTickMsg); ok {
		var cmd tea.Cmd
		m.Routes, cmd = m.Routes.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.ActiveView {
	case ViewRoutes:
		m.Routes, cmd = m.Routes.Update(msg)
	case ViewInterfaces:
		m.Interfaces, cmd = m.Interfaces.Update(msg)
	case ViewAdapters:
		m.Adapters, cmd = m.Adapters.Update(msg)
	case ViewSerial:
		m.Serial, cmd = m.Serial.Update(msg)
	case ViewHistory:
		m.History, cmd = m.History.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	doc := m.viewTopBar() + "\n"

	switch m.ActiveView {
	case ViewRoutes:
		doc += m.Routes.View()
	case ViewInterfaces:
		doc += m.Interfaces.View()
	case ViewAdapters:
		doc += m.Adapters.View()
	case ViewSerial:
		doc += m.Serial.View()
	case ViewHistory:
		doc += m.History.View()
	}

	return StyleApp.Render(doc)
}

func (m Model) viewTopBar() string {
	menus := []struct {
		View  View
		Label string
		Key   string
	}{
		{ViewRoutes, "Routes", "1"},
		{ViewInterfaces, "Interfaces", "2"},
		{ViewAdapters, "Adapters", "3"},
		{ViewSerial, "Serial", "4"},
		{ViewHistory, "History", "5"},
	}

	bar := ""
	for _, menu := range menus {
		key := StyleMenuKey.Render("[" + menu.Key + "]")
		item := key + " " + menu.Label
		if m.ActiveView == menu.View {
			bar += StyleMenuItemActive.Render(item)
		} else {
			bar += StyleMenuItem.Render(item)
		}
	}
	return StyleTopBar.Render(bar)
}

// Run starts the interactive program and blocks until it exits.
func Run(backend Backend) error {
	p := tea.NewProgram(NewModel(backend), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
