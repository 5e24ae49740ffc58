package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobi/opsboard/internal/approval"
	"github.com/innobi/opsboard/internal/purchaseorder"
)

type purchaseOrdersState int

const (
	purchaseOrdersStateBrowse purchaseOrdersState = iota
	purchaseOrdersStateStatus
)

type purchaseOrderRow struct {
	po      *purchaseorder.PurchaseOrder
	derived approval.Derived
}

type PurchaseOrdersModel struct {
	CommonModel
	svc       *purchaseorder.Service
	approvals *approval.Service

	state purchaseOrdersState
	table table.Model
	rows  []purchaseOrderRow
	form  *huh.Form

	loading bool
	err     error
	status  string

	formStatus string
}

func NewPurchaseOrdersModel(svc *purchaseorder.Service, approvals *approval.Service) PurchaseOrdersModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Project", Width: 12},
		{Title: "Vendor", Width: 20},
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 12},
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

	return PurchaseOrdersModel{
		svc:       svc,
		approvals: approvals,
		table:     t,
		loading:   true,
	}
}

func (m PurchaseOrdersModel) Title() string { return "Purchase Orders" }
func (m PurchaseOrdersModel) ShortHelp() string {
	if m.state == purchaseOrdersStateStatus {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: change status | a: approve | x: reject | r: refresh"
}

func (m PurchaseOrdersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PurchaseOrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPurchaseOrdersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case purchaseOrderActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.note
		}

		m.state = purchaseOrdersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case purchaseOrdersStateBrowse:
		return m.updateBrowse(msg)
	case purchaseOrdersStateStatus:
		return m.updateStatusForm(msg)
	}

	return m, nil
}

func (m PurchaseOrdersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return m, m.decideCmd(approval.ActionApproved, purchaseorder.StatusOrdered)
		case "x":
			return m, m.decideCmd(approval.ActionRejected, purchaseorder.StatusCancelled)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PurchaseOrdersModel) enterStatusMode() (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok {
		return m, nil
	}

	next := purchaseorder.NextStatuses(row.po.Status)

	options := make([]huh.Option[string], len(next))
	for i, s := range next {
		options[i] = huh.NewOption(s.String(), strconv.Itoa(int(s)))
	}

	m.formStatus = strconv.Itoa(int(row.po.Status))

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title(fmt.Sprintf("Status for PO %d", row.po.ID)).
				Options(options...).
				Value(&m.formStatus),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = purchaseOrdersStateStatus
	m.table.Blur()

	return m, m.form.Init()
}

func (m PurchaseOrdersModel) updateStatusForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = purchaseOrdersStateBrowse
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

func (m PurchaseOrdersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading purchase orders...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == purchaseOrdersStateStatus && m.form != nil {
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

func (m *PurchaseOrdersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, table.Row{
			strconv.FormatInt(row.po.ID, 10),
			row.po.ProjectNo,
			row.po.VendorName,
			FormatAmount(row.po.Amount, row.po.Currency),
			row.po.Status.String(),
			string(row.derived.Badge),
			row.derived.Audit.Line(),
		})
	}

	m.table.SetRows(rows)
}

func (m PurchaseOrdersModel) selected() (purchaseOrderRow, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return purchaseOrderRow{}, false
	}

	return m.rows[idx], true
}

type loadPurchaseOrdersMsg struct {
	rows []purchaseOrderRow
	err  error
}

func (m PurchaseOrdersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		pos, err := m.svc.List(ctx, purchaseorder.ListFilter{})
		if err != nil {
			return loadPurchaseOrdersMsg{err: err}
		}

		rows := make([]purchaseOrderRow, len(pos))
		for i, po := range pos {
			history := m.approvals.History(ctx, approval.EntityPurchaseOrder, po.ID)
			rows[i] = purchaseOrderRow{
				po:      po,
				derived: approval.DerivePurchaseOrder(po, history),
			}
		}

		return loadPurchaseOrdersMsg{rows: rows}
	}
}

type purchaseOrderActionMsg struct {
	note string
	err  error
}

func (m PurchaseOrdersModel) saveStatusCmd() tea.Cmd {
	row, ok := m.selected()
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(m.formStatus)
	if err != nil {
		return nil
	}

	target := purchaseorder.NormalizeStatus(n)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.UpdateStatus(ctx, row.po.ID, target); err != nil {
			return purchaseOrderActionMsg{err: err}
		}

		return purchaseOrderActionMsg{note: fmt.Sprintf("PO %d set to %s", row.po.ID, target)}
	}
}

// decideCmd applies the decision: the order moves to the target status and
// the decision is appended to the log.
func (m PurchaseOrdersModel) decideCmd(action approval.Action, target purchaseorder.Status) tea.Cmd {
	row, ok := m.selected()
	if !ok {
		return nil
	}

	if !row.derived.CanDecide {
		return func() tea.Msg {
			return purchaseOrderActionMsg{note: fmt.Sprintf("PO %d is not awaiting a decision", row.po.ID)}
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.UpdateStatus(ctx, row.po.ID, target); err != nil {
			return purchaseOrderActionMsg{err: err}
		}

		if !m.approvals.Record(ctx, approval.EntityPurchaseOrder, row.po.ID, action) {
			return purchaseOrderActionMsg{note: fmt.Sprintf("PO %d: decision not persisted", row.po.ID)}
		}

		return purchaseOrderActionMsg{note: fmt.Sprintf("PO %d %s", row.po.ID, action)}
	}
}
