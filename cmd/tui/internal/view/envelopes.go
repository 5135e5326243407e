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

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

type envelopesState int

const (
	envelopesStateBrowse envelopesState = iota
	envelopesStateCreate
	envelopesStateTrash
)

var (
	envelopeStatusFilters = []*envelope.Status{nil, new(envelope.StatusReceived), new(envelope.StatusPlanned), new(envelope.StatusCancelled)}
	envelopeSorts         = []envelope.SortField{envelope.SortCreated, envelope.SortDate, envelope.SortAmount}
)

type EnvelopesModel struct {
	CommonModel
	envelopes *envelope.Service
	ledger    *ledger.Service

	state   envelopesState
	table   table.Model
	index   *envelope.Index
	rows    []*envelope.Envelope
	trashed []*envelope.Envelope
	form    *huh.Form

	statusIdx int
	sortIdx   int
	ascending bool

	loading bool
	err     error
	status  string

	input *envelopeInput
}

// envelopeInput is bound to the create form. It lives behind a pointer so the
// form keeps writing to it across model copies.
type envelopeInput struct {
	label  string
	amount string
	date   string
	status envelope.Status
}

func NewEnvelopesModel(common CommonModel, envelopes *envelope.Service, l *ledger.Service) EnvelopesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Libellé", Width: 30},
			{Title: "Montant", Width: 14},
			{Title: "Disponible", Width: 14},
			{Title: "Statut", Width: 10},
			{Title: "Banque", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return EnvelopesModel{
		CommonModel: common,
		envelopes:   envelopes,
		ledger:      l,
		table:       t,
		index:       envelope.NewIndex(),
		loading:     true,
	}
}

func tableStyles() table.Styles {
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

	return s
}

func (m EnvelopesModel) Title() string { return "Recettes" }

func (m EnvelopesModel) ShortHelp() string {
	switch m.state {
	case envelopesStateCreate:
		return "Échap : annuler"
	case envelopesStateTrash:
		return "Échap : retour | u : restaurer | X : supprimer définitivement"
	}

	return "Échap : menu | n : nouvelle | v : valider banque | x : corbeille | t : voir corbeille | b : recalculer | s : statut | o : tri | r : rafraîchir"
}

func (m EnvelopesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m EnvelopesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case envelopesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.index = envelope.NewIndex(msg.envs...)
		m.trashed = msg.trashed
		m.refreshTable()

		return m, nil

	case envelopeChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur : %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		if msg.removed != uuid.Nil {
			m.index.Remove(msg.removed)
		}

		m.index.Apply(msg.env)

		if msg.reloadTrash {
			return m, m.loadCmd()
		}

		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case envelopesStateCreate:
		return m.updateCreate(msg)
	case envelopesStateTrash:
		return m.updateTrash(msg)
	}

	return m.updateBrowse(msg)
}

func (m EnvelopesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(envelopeStatusFilters)
			m.refreshTable()

			return m, nil
		case "o":
			m.sortIdx = (m.sortIdx + 1) % len(envelopeSorts)
			m.refreshTable()

			return m, nil
		case "O":
			m.ascending = !m.ascending
			m.refreshTable()

			return m, nil
		case "n":
			return m.enterCreate()
		case "t":
			m.state = envelopesStateTrash
			m.refreshTable()

			return m, nil
		}

		if e := m.selected(); e != nil {
			switch keyMsg.String() {
			case "v":
				return m, m.validateCmd(e)
			case "x":
				return m, m.trashCmd(e)
			case "b":
				return m, m.refreshBalanceCmd(e)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EnvelopesModel) updateTrash(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "t":
			m.state = envelopesStateBrowse
			m.refreshTable()

			return m, nil
		case "u":
			if e := m.selected(); e != nil {
				return m, m.restoreCmd(e)
			}
		case "X":
			if e := m.selected(); e != nil {
				return m, m.purgeCmd(e)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EnvelopesModel) enterCreate() (tea.Model, tea.Cmd) {
	m.input = &envelopeInput{date: FormatDate(time.Now()), status: envelope.StatusReceived}

	m.form = huh.NewForm(
		huh.NewGroup(
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
			huh.NewSelect[envelope.Status]().
				Title("Statut").
				Options(
					huh.NewOption("Reçue", envelope.StatusReceived),
					huh.NewOption("Prévue", envelope.StatusPlanned),
				).
				Value(&m.input.status),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = envelopesStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func validateAmount(s string) error {
	d, err := parseAmount(s)
	if err != nil || !d.IsPositive() {
		return errors.New("montant positif attendu")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return errors.New("date au format AAAA-MM-JJ")
	}

	return nil
}

func (m EnvelopesModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = envelopesStateBrowse
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

	m.state = envelopesStateBrowse
	m.form = nil
	m.table.Focus()

	return m, m.createCmd()
}

func (m EnvelopesModel) selected() *envelope.Envelope {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m *EnvelopesModel) refreshTable() {
	if m.state == envelopesStateTrash {
		m.rows = m.trashed
	} else {
		m.rows = m.rows[:0:0]

		filter := envelopeStatusFilters[m.statusIdx]
		for _, e := range m.index.Sorted(envelopeSorts[m.sortIdx], m.ascending) {
			if filter != nil && e.Status != *filter {
				continue
			}

			m.rows = append(m.rows, e)
		}
	}

	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		bank := ""
		if e.BankValidated {
			bank = "✓"
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			e.Label,
			FormatAmount(e.InitialAmount),
			FormatAmount(e.AvailableBalance),
			string(e.Status),
			bank,
		})
	}

	m.table.SetRows(rows)
}

func (m EnvelopesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des recettes...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Erreur : %v", m.err)))
	}

	statusLabel := "Toutes"
	if f := envelopeStatusFilters[m.statusIdx]; f != nil {
		statusLabel = string(*f)
	}

	order := "desc"
	if m.ascending {
		order = "asc"
	}

	header := fmt.Sprintf("[s] Statut : %s | [o] Tri : %s %s | %d recette(s)",
		activeStyle(statusLabel), activeStyle(string(envelopeSorts[m.sortIdx])), order, len(m.rows))
	if m.state == envelopesStateTrash {
		header = activeStyle(fmt.Sprintf("Corbeille : %d recette(s)", len(m.trashed)))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == envelopesStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Nouvelle recette\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type envelopesLoadedMsg struct {
	envs    []*envelope.Envelope
	trashed []*envelope.Envelope
	err     error
}

type envelopeChangedMsg struct {
	env         *envelope.Envelope
	removed     uuid.UUID
	reloadTrash bool
	status      string
	err         error
}

func (m EnvelopesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		envs, err := m.envelopes.List(ctx, m.Owner, envelope.ListFilter{})
		if err != nil {
			return envelopesLoadedMsg{err: err}
		}

		trashed, err := m.envelopes.ListDeleted(ctx, m.Owner)

		return envelopesLoadedMsg{envs: envs, trashed: trashed, err: err}
	}
}

func (m EnvelopesModel) createCmd() tea.Cmd {
	amount, _ := parseAmount(m.input.amount)
	date, _ := time.Parse(time.DateOnly, m.input.date)
	params := ledger.CreateEnvelopeParams{
		Label:  strings.TrimSpace(m.input.label),
		Amount: amount,
		Date:   date,
		Status: m.input.status,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		env, err := m.ledger.CreateEnvelope(ctx, m.Owner, params)

		return envelopeChangedMsg{env: env, status: "Recette créée.", err: err}
	}
}

func (m EnvelopesModel) validateCmd(e *envelope.Envelope) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		env, err := m.envelopes.ValidateBank(ctx, m.Owner, e.ID, !e.BankValidated)

		return envelopeChangedMsg{env: env, err: err}
	}
}

func (m EnvelopesModel) refreshBalanceCmd(e *envelope.Envelope) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		env, err := m.ledger.Refresh(ctx, m.Owner, e.ID)

		return envelopeChangedMsg{env: env, status: "Solde recalculé.", err: err}
	}
}

func (m EnvelopesModel) trashCmd(e *envelope.Envelope) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.envelopes.SoftDelete(ctx, m.Owner, e.ID)

		return envelopeChangedMsg{removed: e.ID, reloadTrash: true, status: "Recette mise à la corbeille.", err: err}
	}
}

func (m EnvelopesModel) restoreCmd(e *envelope.Envelope) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		env, err := m.envelopes.Restore(ctx, m.Owner, e.ID)

		return envelopeChangedMsg{env: env, reloadTrash: true, status: "Recette restaurée.", err: err}
	}
}

func (m EnvelopesModel) purgeCmd(e *envelope.Envelope) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.ledger.DeleteEnvelope(ctx, m.Owner, e.ID)

		return envelopeChangedMsg{removed: e.ID, reloadTrash: true, status: "Recette supprimée définitivement.", err: err}
	}
}
