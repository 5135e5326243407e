package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
)

type accountsState int

const (
	accountsStateBrowse accountsState = iota
	accountsStateOperations
	accountsStateCreate
	accountsStatePost
	accountsStateTransfer
)

type AccountsModel struct {
	CommonModel
	accounts *account.Service

	state      accountsState
	table      table.Model
	operations table.Model
	rows       []*account.Account
	current    *account.Account

	form  *huh.Form
	input *accountInput

	loading bool
	err     error
	status  string
}

// accountInput backs every account form; each form reads only its own fields.
type accountInput struct {
	name        string
	kind        string
	initial     string
	currency    string
	opKind      account.OperationKind
	dest        uuid.UUID
	amount      string
	date        string
	description string
	tenant      string
	unit        string
	period      string
}

func NewAccountsModel(common CommonModel, accounts *account.Service) AccountsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Nom", Width: 26},
			{Title: "Type", Width: 14},
			{Title: "Solde", Width: 14},
			{Title: "Devise", Width: 7},
			{Title: "Actif", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	ops := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Sens", Width: 8},
			{Title: "Montant", Width: 14},
			{Title: "Description", Width: 36},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	ops.SetStyles(tableStyles())

	return AccountsModel{
		CommonModel: common,
		accounts:    accounts,
		table:       t,
		operations:  ops,
		loading:     true,
	}
}

func (m AccountsModel) Title() string { return "Comptes" }

func (m AccountsModel) ShortHelp() string {
	switch m.state {
	case accountsStateOperations:
		return "Échap : retour"
	case accountsStateCreate, accountsStatePost, accountsStateTransfer:
		return "Échap : annuler"
	}

	return "Échap : menu | Entrée : opérations | n : nouveau | o : opération | t : virement | a : activer/désactiver | r : rafraîchir"
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.rows = msg.accounts
		m.refreshTable()

		return m, nil

	case operationsLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur : %v", msg.err)
			return m, nil
		}

		m.setOperations(msg.operations)
		m.state = accountsStateOperations

		return m, nil

	case accountChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur : %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.operations.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case accountsStateOperations:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = accountsStateBrowse
			return m, nil
		}

		var cmd tea.Cmd
		m.operations, cmd = m.operations.Update(msg)

		return m, cmd
	case accountsStateCreate, accountsStatePost, accountsStateTransfer:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m AccountsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreate()
		}

		if a := m.selected(); a != nil {
			switch keyMsg.String() {
			case "enter":
				m.current = a
				return m, m.loadOperationsCmd(a)
			case "o":
				return m.enterPost(a)
			case "t":
				return m.enterTransfer(a)
			case "a":
				return m, m.toggleActiveCmd(a)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AccountsModel) selected() *account.Account {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s obligatoire", field)
		}

		return nil
	}
}

func (m AccountsModel) enterCreate() (tea.Model, tea.Cmd) {
	m.input = &accountInput{initial: "0", currency: "EUR", kind: "courant"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nom").
				Value(&m.input.name).
				Validate(requireText("nom")),
			huh.NewInput().
				Title("Type").
				Value(&m.input.kind),
			huh.NewInput().
				Title("Solde initial").
				Value(&m.input.initial).
				Validate(func(s string) error {
					d, err := parseAmount(s)
					if err != nil || d.IsNegative() {
						return errors.New("montant positif ou nul attendu")
					}

					return nil
				}),
			huh.NewInput().
				Title("Devise").
				Value(&m.input.currency),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = accountsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m AccountsModel) enterPost(a *account.Account) (tea.Model, tea.Cmd) {
	m.current = a
	m.input = &accountInput{opKind: account.Credit, date: FormatDate(time.Now())}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[account.OperationKind]().
				Title("Sens").
				Options(
					huh.NewOption("Crédit", account.Credit),
					huh.NewOption("Débit", account.Debit),
				).
				Value(&m.input.opKind),
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
				Title("Description").
				Value(&m.input.description),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = accountsStatePost
	m.table.Blur()

	return m, m.form.Init()
}

func (m AccountsModel) enterTransfer(a *account.Account) (tea.Model, tea.Cmd) {
	dests := make([]huh.Option[uuid.UUID], 0, len(m.rows))
	for _, other := range m.rows {
		if other.ID != a.ID && other.Active {
			dests = append(dests, huh.NewOption(other.Name, other.ID))
		}
	}

	if len(dests) == 0 {
		m.status = "Aucun autre compte actif."
		return m, nil
	}

	m.current = a
	m.input = &accountInput{date: FormatDate(time.Now())}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Vers le compte").
				Options(dests...).
				Value(&m.input.dest),
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
				Title("Description").
				Value(&m.input.description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Locataire").
				Description("Vide : pas de quittance").
				Value(&m.input.tenant),
			huh.NewInput().
				Title("Logement").
				Value(&m.input.unit),
			huh.NewInput().
				Title("Période").
				Placeholder("2026-03").
				Value(&m.input.period),
		).Title("Quittance de loyer"),
	).WithWidth(45).WithShowHelp(false)
	m.state = accountsStateTransfer
	m.table.Blur()

	return m, m.form.Init()
}

func (m AccountsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = accountsStateBrowse
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
	m.state = accountsStateBrowse
	m.form = nil
	m.table.Focus()

	switch done {
	case accountsStatePost:
		return m, m.postCmd()
	case accountsStateTransfer:
		return m, m.transferCmd()
	}

	return m, m.createCmd()
}

func (m *AccountsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, a := range m.rows {
		active := ""
		if a.Active {
			active = "✓"
		}

		rows = append(rows, table.Row{a.Name, a.Type, FormatAmount(a.Balance), a.Currency, active})
	}

	m.table.SetRows(rows)
}

func (m *AccountsModel) setOperations(ops []*account.Operation) {
	rows := make([]table.Row, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, table.Row{
			FormatDate(op.Date),
			string(op.Kind),
			FormatAmount(op.Signed()),
			op.Description,
		})
	}

	m.operations.SetRows(rows)
	m.operations.GotoTop()
}

func (m AccountsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des comptes...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Erreur : %v", m.err)))
	}

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	if m.state == accountsStateOperations && m.current != nil {
		header := fmt.Sprintf("Opérations de %s | Solde : %s",
			activeStyle(m.current.Name), FormatAmount(m.current.Balance))

		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			border.Render(m.operations.View()),
		))
	}

	total := decimal.Zero
	for _, a := range m.rows {
		if a.Active {
			total = total.Add(a.Balance)
		}
	}

	header := fmt.Sprintf("%d compte(s) | Total actif : %s", len(m.rows), activeStyle(FormatAmount(total)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		border.Render(m.table.View()),
	)

	if m.form != nil {
		title := "Nouveau compte"

		switch m.state {
		case accountsStatePost:
			title = "Opération sur " + m.current.Name
		case accountsStateTransfer:
			title = "Virement depuis " + m.current.Name
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

type accountsLoadedMsg struct {
	accounts []*account.Account
	err      error
}

type operationsLoadedMsg struct {
	operations []*account.Operation
	err        error
}

type accountChangedMsg struct {
	status string
	err    error
}

func (m AccountsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accs, err := m.accounts.List(ctx, m.Owner, false)

		return accountsLoadedMsg{accounts: accs, err: err}
	}
}

func (m AccountsModel) loadOperationsCmd(a *account.Account) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ops, err := m.accounts.Operations(ctx, m.Owner, a.ID)

		return operationsLoadedMsg{operations: ops, err: err}
	}
}

func (m AccountsModel) createCmd() tea.Cmd {
	initial, _ := parseAmount(m.input.initial)
	params := account.CreateParams{
		Name:           strings.TrimSpace(m.input.name),
		Type:           strings.TrimSpace(m.input.kind),
		InitialBalance: initial,
		Currency:       strings.TrimSpace(m.input.currency),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.accounts.Create(ctx, m.Owner, params); err != nil {
			return accountChangedMsg{err: err}
		}

		return accountChangedMsg{status: "Compte créé."}
	}
}

func (m AccountsModel) postCmd() tea.Cmd {
	a := m.current
	in := *m.input
	amount, _ := parseAmount(in.amount)
	date, _ := time.Parse(time.DateOnly, in.date)
	post := m.accounts.Credit

	if in.opKind == account.Debit {
		post = m.accounts.Debit
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := post(ctx, m.Owner, a.ID, amount, strings.TrimSpace(in.description), date); err != nil {
			return accountChangedMsg{err: err}
		}

		return accountChangedMsg{status: "Opération enregistrée."}
	}
}

func (m AccountsModel) transferCmd() tea.Cmd {
	in := *m.input
	amount, _ := parseAmount(in.amount)
	date, _ := time.Parse(time.DateOnly, in.date)
	params := account.TransferParams{
		SourceID:    m.current.ID,
		DestID:      in.dest,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(in.description),
	}

	if tenant := strings.TrimSpace(in.tenant); tenant != "" {
		params.Rent = &account.RentDetails{
			Tenant: tenant,
			Unit:   strings.TrimSpace(in.unit),
			Period: strings.TrimSpace(in.period),
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.accounts.Transfer(ctx, m.Owner, params)
		if err != nil {
			return accountChangedMsg{err: err}
		}

		switch {
		case res.ReceiptError != nil:
			return accountChangedMsg{status: fmt.Sprintf("Virement effectué, quittance non émise : %v", res.ReceiptError)}
		case res.Receipt != nil:
			return accountChangedMsg{status: fmt.Sprintf("Virement effectué, quittance %s émise pour %s.", res.Receipt.Period, res.Receipt.Tenant)}
		}

		return accountChangedMsg{status: "Virement effectué."}
	}
}

func (m AccountsModel) toggleActiveCmd(a *account.Account) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.accounts.Update(ctx, m.Owner, a.ID, account.UpdateParams{Active: new(!a.Active)}); err != nil {
			return accountChangedMsg{err: err}
		}

		return accountChangedMsg{status: "Compte mis à jour."}
	}
}
