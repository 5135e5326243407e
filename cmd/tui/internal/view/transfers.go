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

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

// destination identifies either an envelope or an account in a single select.
type destination struct {
	envelope uuid.UUID
	account  uuid.UUID
}

type TransfersModel struct {
	CommonModel
	transfers *transfer.Service
	envelopes *envelope.Service
	accounts  *account.Service
	ledger    *ledger.Service

	table table.Model
	rows  []*transfer.Transfer
	envs  []*envelope.Envelope
	accs  []*account.Account
	names map[uuid.UUID]string

	form  *huh.Form
	input *transferInput

	loading bool
	err     error
	status  string
}

type transferInput struct {
	source      uuid.UUID
	dest        destination
	amount      string
	date        string
	description string
}

func NewTransfersModel(
	common CommonModel,
	transfers *transfer.Service,
	envelopes *envelope.Service,
	accounts *account.Service,
	l *ledger.Service,
) TransfersModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Depuis", Width: 22},
			{Title: "Vers", Width: 22},
			{Title: "Montant", Width: 12},
			{Title: "Statut", Width: 10},
			{Title: "Description", Width: 24},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return TransfersModel{
		CommonModel: common,
		transfers:   transfers,
		envelopes:   envelopes,
		accounts:    accounts,
		ledger:      l,
		table:       t,
		names:       map[uuid.UUID]string{},
		loading:     true,
	}
}

func (m TransfersModel) Title() string { return "Transferts" }

func (m TransfersModel) ShortHelp() string {
	if m.form != nil {
		return "Échap : annuler"
	}

	return "Échap : menu | n : nouveau | c : terminer | f : rembourser | r : rafraîchir"
}

func (m TransfersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransfersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transfersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.rows = msg.transfers
		m.envs = msg.envelopes
		m.accs = msg.accounts
		m.names = make(map[uuid.UUID]string, len(m.envs)+len(m.accs))

		for _, e := range m.envs {
			m.names[e.ID] = e.Label
		}

		for _, a := range m.accs {
			m.names[a.ID] = a.Name
		}

		m.refreshTable()

		return m, nil

	case transferChangedMsg:
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

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreate()
		case "c":
			if t := m.selected(); t != nil {
				return m, m.completeCmd(t)
			}
		case "f":
			if t := m.selected(); t != nil {
				return m, m.refundCmd(t)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransfersModel) selected() *transfer.Transfer {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m TransfersModel) enterCreate() (tea.Model, tea.Cmd) {
	sources := make([]huh.Option[uuid.UUID], 0, len(m.envs))
	dests := make([]huh.Option[destination], 0, len(m.envs)+len(m.accs))

	var first uuid.UUID

	for _, e := range m.envs {
		if e.Status != envelope.StatusReceived {
			continue
		}

		if first == uuid.Nil {
			first = e.ID
		}

		sources = append(sources, huh.NewOption(fmt.Sprintf("%s (%s)", e.Label, FormatAmount(e.AvailableBalance)), e.ID))
		dests = append(dests, huh.NewOption("Recette : "+e.Label, destination{envelope: e.ID}))
	}

	for _, a := range m.accs {
		dests = append(dests, huh.NewOption("Compte : "+a.Name, destination{account: a.ID}))
	}

	if len(sources) == 0 {
		m.status = "Aucune recette reçue disponible."
		return m, nil
	}

	m.input = &transferInput{source: first, date: FormatDate(time.Now())}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Depuis la recette").
				Options(sources...).
				Value(&m.input.source),
			huh.NewSelect[destination]().
				Title("Vers").
				Options(dests...).
				Value(&m.input.dest).
				Validate(func(d destination) error {
					if d.envelope == m.input.source {
						return errors.New("la destination doit différer de la source")
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
				Title("Description").
				Value(&m.input.description),
		),
	).WithWidth(50).WithShowHelp(false)
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransfersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
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

	m.form = nil
	m.table.Focus()

	return m, m.createCmd()
}

func (m *TransfersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, t := range m.rows {
		to := ""

		switch {
		case t.DestEnvelopeID != nil:
			to = m.names[*t.DestEnvelopeID]
		case t.DestAccountID != nil:
			to = "⇢ " + m.names[*t.DestAccountID]
		}

		rows = append(rows, table.Row{
			FormatDate(t.Date),
			m.names[t.SourceEnvelopeID],
			to,
			FormatAmount(t.Amount),
			string(t.Status),
			t.Description,
		})
	}

	m.table.SetRows(rows)
}

func (m TransfersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des transferts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Erreur : %v", m.err)))
	}

	pending := 0
	for _, t := range m.rows {
		if t.Status == transfer.StatusPending {
			pending++
		}
	}

	header := fmt.Sprintf("%d transfert(s), dont %s en attente", len(m.rows), activeStyle(fmt.Sprint(pending)))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("Nouveau transfert\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type transfersLoadedMsg struct {
	transfers []*transfer.Transfer
	envelopes []*envelope.Envelope
	accounts  []*account.Account
	err       error
}

type transferChangedMsg struct {
	status string
	err    error
}

func (m TransfersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ts, err := m.transfers.List(ctx, m.Owner, transfer.ListFilter{})
		if err != nil {
			return transfersLoadedMsg{err: err}
		}

		envs, err := m.envelopes.List(ctx, m.Owner, envelope.ListFilter{})
		if err != nil {
			return transfersLoadedMsg{err: err}
		}

		accs, err := m.accounts.List(ctx, m.Owner, true)
		if err != nil {
			return transfersLoadedMsg{err: err}
		}

		slices.SortFunc(envs, func(a, b *envelope.Envelope) int {
			return strings.Compare(a.Label, b.Label)
		})

		return transfersLoadedMsg{transfers: ts, envelopes: envs, accounts: accs}
	}
}

func (m TransfersModel) createCmd() tea.Cmd {
	amount, _ := parseAmount(m.input.amount)
	date, _ := time.Parse(time.DateOnly, m.input.date)
	params := ledger.TransferParams{
		SourceID:    m.input.source,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(m.input.description),
	}

	if d := m.input.dest; d.account != uuid.Nil {
		params.DestAccountID = new(d.account)
	} else {
		params.DestEnvelopeID = new(d.envelope)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.ledger.Transfer(ctx, m.Owner, params)
		if err != nil {
			return transferChangedMsg{err: err}
		}

		return transferChangedMsg{status: fmt.Sprintf("Transfert créé. Solde de %q : %s",
			res.Source.Label, FormatAmount(res.Source.AvailableBalance))}
	}
}

func (m TransfersModel) completeCmd(t *transfer.Transfer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.ledger.Complete(ctx, m.Owner, t.ID); err != nil {
			return transferChangedMsg{err: err}
		}

		return transferChangedMsg{status: "Transfert terminé."}
	}
}

func (m TransfersModel) refundCmd(t *transfer.Transfer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.ledger.Refund(ctx, m.Owner, t.ID); err != nil {
			return transferChangedMsg{err: err}
		}

		return transferChangedMsg{status: "Transfert remboursé."}
	}
}
