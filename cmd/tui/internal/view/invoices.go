package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobi/opsboard/internal/approval"
	"github.com/innobi/opsboard/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateStatus
)

type invoiceRow struct {
	inv     *invoice.Invoice
	derived approval.Derived
}

type InvoicesModel struct {
	CommonModel
	svc       *invoice.Service
	approvals *approval.Service

	state invoicesState
	table table.Model
	rows  []invoiceRow
	form  *huh.Form

	loading bool
	err     error
	status  string

	formStatus string
}

func NewInvoicesModel(svc *invoice.Service, approvals *approval.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Invoice", Width: 14},
		{Title: "Project", Width: 12},
		{Title: "Amount", Width: 14},
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Approval", Width: 10},
		{Title: "Last Action", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoicesModel{
		svc:       svc,
		approvals: approvals,
		table:     t,
		loading:   true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }
func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStateStatus {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: change status | a: approve | x: reject | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.note
		}

		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStateStatus:
		return m.updateStatusForm(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			return m.enterStatusMode()
		case "a":
			return m, m.decideCmd(approval.ActionApproved)
		case "x":
			return m, m.decideCmd(approval.ActionRejected)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// enterStatusMode opens a select listing only the statuses reachable from
// the current one.
func (m InvoicesModel) enterStatusMode() (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok {
		return m, nil
	}

	next := invoice.NextStatuses(row.inv.Status)

	options := make([]huh.Option[string], len(next))
	for i, s := range next {
		options[i] = huh.NewOption(string(s), string(s))
	}

	m.formStatus = string(row.inv.Status)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title(fmt.Sprintf("Status for %s", row.inv.InvoiceNo)).
				Options(options...).
				Value(&m.formStatus),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = invoicesStateStatus
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateStatusForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveStatusCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == invoicesStateStatus && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, table.Row{
			row.inv.InvoiceNo,
			row.inv.ProjectNo,
			FormatAmount(row.inv.Amount, row.inv.Currency),
			FormatDate(row.inv.DueDate),
			string(row.inv.Status),
			string(row.derived.Badge),
			row.derived.Audit.Line(),
		})
	}

	m.table.SetRows(rows)
}

func (m InvoicesModel) selected() (invoiceRow, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return invoiceRow{}, false
	}

	return m.rows[idx], true
}

type loadInvoicesMsg struct {
	rows []invoiceRow
	err  error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invs, err := m.svc.List(ctx, invoice.ListFilter{})
		if err != nil {
			return loadInvoicesMsg{err: err}
		}

		now := time.Now()

		rows := make([]invoiceRow, len(invs))
		for i, inv := range invs {
			history := m.approvals.History(ctx, approval.EntityInvoice, inv.ID)
			rows[i] = invoiceRow{
				inv:     inv,
				derived: approval.DeriveInvoice(inv, history, now),
			}
		}

		return loadInvoicesMsg{rows: rows}
	}
}

type invoiceActionMsg struct {
	note string
	err  error
}

func (m InvoicesModel) saveStatusCmd() tea.Cmd {
	row, ok := m.selected()
	if !ok {
		return nil
	}

	target := invoice.NormalizeStatus(m.formStatus)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.UpdateStatus(ctx, row.inv.ID, target); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{note: fmt.Sprintf("%s set to %s", row.inv.InvoiceNo, target)}
	}
}

func (m InvoicesModel) decideCmd(action approval.Action) tea.Cmd {
	row, ok := m.selected()
	if !ok {
		return nil
	}

	if !row.derived.CanDecide {
		return func() tea.Msg {
			return invoiceActionMsg{note: fmt.Sprintf("%s is not awaiting a decision", row.inv.InvoiceNo)}
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if !m.approvals.Record(ctx, approval.EntityInvoice, row.inv.ID, action) {
			return invoiceActionMsg{note: fmt.Sprintf("%s: decision not persisted", row.inv.InvoiceNo)}
		}

		return invoiceActionMsg{note: fmt.Sprintf("%s %s", row.inv.InvoiceNo, action)}
	}
}
