package view

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/categorize"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

type expensesState int

const (
	expensesStatePeriod expensesState = iota
	expensesStateBrowse
	expensesStateCreate
	expensesStateEdit
)

type ExpensesModel struct {
	CommonModel
	expenses   *expense.Service
	envelopes  *envelope.Service
	ledger     *ledger.Service
	categories *categorize.Service

	state  expensesState
	picker periodPicker
	period DateRange
	table  table.Model
	rows   []*expense.Expense
	labels map[uuid.UUID]string
	form   *huh.Form

	loading bool
	err     error
	status  string

	input   *expenseInput
	editing *expense.Expense
}

type expenseInput struct {
	envelope uuid.UUID
	label    string
	amount   string
	date     string
	category string
}

func NewExpensesModel(
	common CommonModel,
	expenses *expense.Service,
	envelopes *envelope.Service,
	l *ledger.Service,
	categories *categorize.Service,
) ExpensesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Libellé", Width: 30},
			{Title: "Montant", Width: 12},
			{Title: "Catégorie", Width: 16},
			{Title: "Recette", Width: 22},
			{Title: "Justif.", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return ExpensesModel{
		CommonModel: common,
		expenses:    expenses,
		envelopes:   envelopes,
		ledger:      l,
		categories:  categories,
		state:       expensesStatePeriod,
		picker:      newPeriodPicker(PeriodThisMonth),
		table:       t,
		labels:      map[uuid.UUID]string{},
	}
}

func (m ExpensesModel) Title() string { return "Dépenses" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStatePeriod:
		return "Entrée : choisir | Échap : menu"
	case expensesStateCreate, expensesStateEdit:
		return "Échap : annuler"
	}

	return "Échap : période | n : nouvelle | e : modifier | d : supprimer | r : rafraîchir"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.period = msg.Range
		m.state = expensesStateBrowse
		m.loading = true

		return m, m.loadCmd()

	case expensesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.rows = msg.expenses
		m.labels = msg.labels
		m.refreshTable()

		return m, nil

	case expenseChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur : %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case expensesStatePeriod:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	case expensesStateCreate, expensesStateEdit:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = expensesStatePeriod
			m.picker = m.picker.reset()

			return m, m.picker.Init()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreate()
		case "e":
			if x := m.selected(); x != nil {
				return m.enterEdit(x)
			}
		case "d":
			if x := m.selected(); x != nil {
				return m, m.deleteCmd(x)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) selected() *expense.Expense {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m ExpensesModel) envelopeOptions() []huh.Option[uuid.UUID] {
	opts := make([]huh.Option[uuid.UUID], 0, len(m.labels)+1)
	for id, label := range m.labels {
		opts = append(opts, huh.NewOption(label, id))
	}

	slices.SortFunc(opts, func(a, b huh.Option[uuid.UUID]) int {
		return strings.Compare(a.Key, b.Key)
	})

	return append([]huh.Option[uuid.UUID]{huh.NewOption("(aucune)", uuid.Nil)}, opts...)
}

func (m ExpensesModel) enterCreate() (tea.Model, tea.Cmd) {
	m.input = &expenseInput{date: FormatDate(time.Now())}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Recette").
				Options(m.envelopeOptions()...).
				Value(&m.input.envelope),
			huh.NewInput().
				Title("Libellé").
				Value(&m.input.label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("le libellé est obligatoire")
					}

					return nil
				}),
			huh.NewInput().
				Title("Montant").
				Value(&m.input.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Date").
				Placeholder("AAAA-MM-JJ").
				Value(&m.input.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Catégorie").
				Description("Vide : suggestion automatique").
				Value(&m.input.category),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) enterEdit(x *expense.Expense) (tea.Model, tea.Cmd) {
	m.editing = x
	m.input = &expenseInput{label: x.Label}
	if x.Category != nil {
		m.input.category = *x.Category
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Libellé").
				Value(&m.input.label),
			huh.NewInput().
				Title("Catégorie").
				Description("Mémorisée pour les prochains libellés").
				Value(&m.input.category),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	done := m.state
	m.state = expensesStateBrowse
	m.form = nil
	m.table.Focus()

	if done == expensesStateEdit {
		return m, m.editCmd()
	}

	return m, m.createCmd()
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, x := range m.rows {
		category := ""
		if x.Category != nil {
			category = *x.Category
		}

		env := ""
		if x.EnvelopeID != nil {
			env = m.labels[*x.EnvelopeID]
		}

		attached := ""
		if x.AttachmentKey != nil {
			attached = "✓"
		}

		rows = append(rows, table.Row{
			FormatDate(x.Date),
			x.Label,
			FormatAmount(x.Amount),
			category,
			env,
			attached,
		})
	}

	m.table.SetRows(rows)
}

func (m ExpensesModel) View() string {
	if m.state == expensesStatePeriod {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des dépenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Erreur : %v", m.err)))
	}

	header := fmt.Sprintf("Période : %s | %d dépense(s)", activeStyle(m.period.String()), len(m.rows))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil {
		title := "Nouvelle dépense"
		if m.state == expensesStateEdit {
			title = "Modifier la dépense"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type expensesLoadedMsg struct {
	expenses []*expense.Expense
	labels   map[uuid.UUID]string
	err      error
}

type expenseChangedMsg struct {
	status string
	err    error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	filter := m.period.expenseFilter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		xs, err := m.expenses.List(ctx, m.Owner, filter)
		if err != nil {
			return expensesLoadedMsg{err: err}
		}

		envs, err := m.envelopes.List(ctx, m.Owner, envelope.ListFilter{})
		if err != nil {
			return expensesLoadedMsg{err: err}
		}

		labels := make(map[uuid.UUID]string, len(envs))
		for _, e := range envs {
			labels[e.ID] = e.Label
		}

		return expensesLoadedMsg{expenses: xs, labels: labels}
	}
}

func (m ExpensesModel) createCmd() tea.Cmd {
	amount, _ := parseAmount(m.input.amount)
	date, _ := time.Parse(time.DateOnly, m.input.date)
	params := ledger.RecordExpenseParams{
		Label:  strings.TrimSpace(m.input.label),
		Amount: amount,
		Date:   date,
	}

	if m.input.envelope != uuid.Nil {
		params.EnvelopeID = new(m.input.envelope)
	}

	if c := strings.TrimSpace(m.input.category); c != "" {
		params.Category = &c
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.ledger.RecordExpense(ctx, m.Owner, params)
		if err != nil {
			return expenseChangedMsg{err: err}
		}

		status := "Dépense enregistrée."
		if res.Envelope != nil {
			status = fmt.Sprintf("Dépense enregistrée. Solde de %q : %s", res.Envelope.Label, FormatAmount(res.Envelope.AvailableBalance))
		}

		return expenseChangedMsg{status: status}
	}
}

func (m ExpensesModel) editCmd() tea.Cmd {
	x := m.editing
	label := strings.TrimSpace(m.input.label)
	category := strings.TrimSpace(m.input.category)

	params := expense.UpdateParams{}
	if label != "" && label != x.Label {
		params.Label = &label
	}

	if category != "" {
		params.Category = &category
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.expenses.UpdateDetails(ctx, m.Owner, x.ID, params)
		if err != nil {
			return expenseChangedMsg{err: err}
		}

		if category != "" {
			if err := m.categories.Learn(ctx, m.Owner, updated.Label, category); err != nil {
				return expenseChangedMsg{err: err}
			}
		}

		return expenseChangedMsg{status: "Dépense modifiée."}
	}
}

func (m ExpensesModel) deleteCmd(x *expense.Expense) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.ledger.DeleteExpense(ctx, m.Owner, x.ID); err != nil {
			return expenseChangedMsg{err: err}
		}

		return expenseChangedMsg{status: "Dépense supprimée."}
	}
}
