package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slate-integrations/ipman/internal/serialconsole"
)

type serialPortsMsg struct {
	ports []serialconsole.PortInfo
	err   error
}

// SerialModel lists discovered serial ports. The interactive session
// itself runs through the serial subcommand, which owns the raw
// terminal.
type SerialModel struct {
	Backend Backend
	Table   table.Model
	Count   int
	Err     error
}

func NewSerialModel(backend Backend) SerialModel {
	columns := []table.Column{
		{Title: "Port", Width: 12},
		{Title: "Device", Width: 40},
		{Title: "USB", Width: 5},
	}
	return SerialModel{
		Backend: backend,
		Table:   newTable(columns, 14),
	}
}

func (m SerialModel) Init() tea.Cmd {
	return m.load()
}

func (m SerialModel) load() tea.Cmd {
	backend := m.Backend
	return func() tea.Msg {
		ports, err := backend.SerialPorts()
		return serialPortsMsg{ports: ports, err: err}
	}
}

func (m SerialModel) Update(msg tea.Msg) (SerialModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case serialPortsMsg:
		m.Err = msg.err
		m.Count = len(msg.ports)
		rows := make([]table.Row, len(msg.ports))
		for i, p := range msg.ports {
			usb := ""
			if p.IsUSB {
				usb = "yes"
			}
			rows[i] = table.Row{p.Name, p.Product, usb}
		}
		m.Table.SetRows(rows)

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.load()
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m SerialModel) View() string {
	status := StyleSubtitle.Render(fmt.Sprintf("%d ports | connect with: ipman serial --port <name>", m.Count))
	if m.Err != nil {
		status = StyleError.Render(m.Err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render("SERIAL PORTS (r: refresh)"),
		StyleCard.Render(m.Table.View()),
		status,
	)
}
