package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/slate-integrations/ipman/internal/routetable"
	"github.com/slate-integrations/ipman/internal/validation"
)

// routesTickMsg re-reads the engine snapshot while auto-refresh is on.
type routesTickMsg time.Time

// mutationDoneMsg reports the outcome of an add or delete.
type mutationDoneMsg struct{ err error }

type routesForm int

const (
	formNone routesForm = iota
	formAdd
	formDelete
)

type RoutesModel struct {
	Backend Backend
	Table   table.Model

	Filter routetable.Category
	Auto   bool
	Status string
	Err    error

	form     *huh.Form
	formKind routesForm

	// add form fields
	fDest      string
	fMask      string
	fGateway   string
	fIface     string
	fPersist   bool
	fConfirmed bool
}

func NewRoutesModel(backend Backend) RoutesModel {
	columns := []table.Column{
		{Title: "Destination", Width: 17},
		{Title: "Netmask", Width: 17},
		{Title: "Gateway", Width: 17},
		{Title: "Interface", Width: 17},
		{Title: "Metric", Width: 7},
		{Title: "Persistent", Width: 10},
	}

	return RoutesModel{
		Backend: backend,
		Table:   newTable(columns, 14),
		Filter:  routetable.CategoryAll,
		Auto:    true,
	}
}

// FormOpen reports whether a modal form owns the keyboard.
func (m RoutesModel) FormOpen() bool {
	return m.formKind != formNone
}

func (m RoutesModel) Init() tea.Cmd {
	return m.tick()
}

func (m RoutesModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return routesTickMsg(t)
	})
}

func (m RoutesModel) reload() RoutesModel {
	routes := m.Backend.Filter(m.Filter)
	rows := make([]table.Row, len(routes))
	for i, r := range routes {
		rows[i] = table.Row{
			r.Destination, r.Netmask, r.Gateway, r.Interface, r.Metric,
			r.Persistence.String(),
		}
	}
	m.Table.SetRows(rows)
	return m
}

func (m RoutesModel) Update(msg tea.Msg) (RoutesModel, tea.Cmd) {
	if m.formKind != formNone {
		return m.updateForm(msg)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case routesTickMsg:
		m = m.reload()
		if m.Auto {
			return m, m.tick()
		}
		return m, nil

	case mutationDoneMsg:
		m.Err = msg.err
		if msg.err == nil {
			m.Status = "done"
		}
		m = m.reload()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.Backend.Refresh()
			m = m.reload()
			return m, nil
		case "p":
			m.Auto = !m.Auto
			if m.Auto {
				return m, m.tick()
			}
			return m, nil
		case "f":
			switch m.Filter {
			case routetable.CategoryAll:
				m.Filter = routetable.CategoryPersistent
			case routetable.CategoryPersistent:
				m.Filter = routetable.CategoryTemporary
			default:
				m.Filter = routetable.CategoryAll
			}
			m = m.reload()
			return m, nil
		case "a":
			return m.openAddForm()
		case "d":
			return m.openDeleteForm()
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m RoutesModel) openAddForm() (RoutesModel, tea.Cmd) {
	m.fDest, m.fMask, m.fGateway, m.fIface = "", "", "", ""
	m.fPersist, m.fConfirmed = false, false
	m.Err = nil
	m.Status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Destination").
				Placeholder("10.20.0.0").
				Validate(ipv4Field("destination")).
				Value(&m.fDest),
			huh.NewInput().Title("Netmask").
				Placeholder("255.255.0.0").
				Validate(maskField("netmask")).
				Value(&m.fMask),
			huh.NewInput().Title("Gateway").
				Placeholder("192.168.1.1").
				Validate(ipv4Field("gateway")).
				Value(&m.fGateway),
			huh.NewInput().Title("Interface index (optional)").
				Value(&m.fIface),
			huh.NewConfirm().Title("Persistent (survives reboot)?").
				Value(&m.fPersist),
			huh.NewConfirm().Title("Apply this route?").
				Value(&m.fConfirmed),
		),
	)
	m.formKind = formAdd
	return m, m.form.Init()
}

func (m RoutesModel) openDeleteForm() (RoutesModel, tea.Cmd) {
	row := m.Table.SelectedRow()
	if row == nil {
		return m, nil
	}
	m.fDest = row[0]
	m.fConfirmed = false
	m.Err = nil
	m.Status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete route to %s?", m.fDest)).
				Value(&m.fConfirmed),
		),
	)
	m.formKind = formDelete
	return m, m.form.Init()
}

func (m RoutesModel) updateForm(msg tea.Msg) (RoutesModel, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		kind := m.formKind
		m.formKind = formNone
		if kind == formAdd {
			return m, m.submitAdd()
		}
		return m, m.submitDelete()
	case huh.StateAborted:
		m.formKind = formNone
		m.Status = "cancelled"
		return m, nil
	}
	return m, cmd
}

func (m RoutesModel) submitAdd() tea.Cmd {
	if !m.fConfirmed {
		return func() tea.Msg { return mutationDoneMsg{} }
	}
	req := routetable.AddRequest{
		Destination:    m.fDest,
		Mask:           m.fMask,
		Gateway:        m.fGateway,
		InterfaceIndex: m.fIface,
		Persistent:     m.fPersist,
		Confirmed:      m.fConfirmed,
	}
	backend := m.Backend
	return func() tea.Msg {
		return mutationDoneMsg{err: backend.AddRoute(context.Background(), req)}
	}
}

func (m RoutesModel) submitDelete() tea.Cmd {
	dest := m.fDest
	confirmed := m.fConfirmed
	backend := m.Backend
	return func() tea.Msg {
		if !confirmed {
			return mutationDoneMsg{}
		}
		return mutationDoneMsg{err: backend.DeleteRoute(context.Background(), dest, true)}
	}
}

func (m RoutesModel) View() string {
	if m.formKind != formNone {
		return StyleCard.Render(m.form.View())
	}

	counts := m.Backend.Counts()
	auto := "auto-refresh off"
	if m.Auto {
		auto = "auto-refresh on"
	}

	footer := StyleSubtitle.Render(fmt.Sprintf(
		"%d routes (%d persistent, %d temporary) | filter: %s | %s",
		counts.All, counts.Persistent, counts.Temporary, m.Filter, auto))

	status := ""
	if m.Err != nil {
		status = StyleError.Render(m.Err.Error())
	} else if m.Status != "" {
		status = StyleStatusGood.Render(m.Status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render("ROUTE TABLE (r: refresh, f: filter, a: add, d: delete, p: pause)"),
		StyleCard.Render(m.Table.View()),
		footer,
		status,
	)
}

func ipv4Field(name string) func(string) error {
	return func(s string) error {
		return validation.CheckIPv4(name, s)
	}
}

func maskField(name string) func(string) error {
	return func(s string) error {
		return validation.CheckSubnetMask(name, s)
	}
}
