package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/note"
)

type NotesModel struct {
	CommonModel
	notes     *note.Service
	envelopes *envelope.Service

	table table.Model
	rows  []*note.Note
	envs  []*envelope.Envelope
	all   bool

	form  *huh.Form
	input *noteInput

	loading bool
	err     error
	status  string
}

type noteInput struct {
	kind     note.Kind
	label    string
	amount   string
	date     string
	envelope uuid.UUID
}

func NewNotesModel(common CommonModel, notes *note.Service, envelopes *envelope.Service) NotesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Prévue le", Width: 12},
			{Title: "Type", Width: 8},
			{Title: "Libellé", Width: 30},
			{Title: "Montant", Width: 12},
			{Title: "Statut", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return NotesModel{
		CommonModel: common,
		notes:       notes,
		envelopes:   envelopes,
		table:       t,
		loading:     true,
	}
}

func (m NotesModel) Title() string { return "Notes" }

func (m NotesModel) ShortHelp() string {
	if m.form != nil {
		return "Échap : annuler"
	}

	return "Échap : menu | n : nouvelle | c : convertir | x : annuler la note | h : afficher tout | r : rafraîchir"
}

func (m NotesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.rows = msg.notes
		m.envs = msg.envelopes
		m.refreshTable()

		return m, nil

	case noteChangedMsg:
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
		case "h":
			m.all = !m.all
			m.loading = true

			return m, m.loadCmd()
		case "n":
			return m.enterCreate()
		case "c":
			if n := m.selected(); n != nil {
				return m, m.convertCmd(n)
			}
		case "x":
			if n := m.selected(); n != nil {
				return m, m.cancelCmd(n)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m NotesModel) selected() *note.Note {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m NotesModel) enterCreate() (tea.Model, tea.Cmd) {
	envOpts := []huh.Option[uuid.UUID]{huh.NewOption("(aucune)", uuid.Nil)}
	for _, e := range m.envs {
		envOpts = append(envOpts, huh.NewOption(e.Label, e.ID))
	}

	m.input = &noteInput{kind: note.KindExpense, date: FormatDate(time.Now().AddDate(0, 1, 0))}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[note.Kind]().
				Title("Type").
				Options(
					huh.NewOption("Dépense", note.KindExpense),
					huh.NewOption("Recette", note.KindIncome),
				).
				Value(&m.input.kind),
			huh.NewInput().
				Title("Libellé").
				Value(&m.input.label).
				Validate(requireText("libellé")),
			huh.NewInput().
				Title("Montant").
				Value(&m.input.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Date prévue").
				Placeholder("AAAA-MM-JJ").
				Value(&m.input.date).
				Validate(validateDate),
			huh.NewSelect[uuid.UUID]().
				Title("Recette imputée (dépense)").
				Options(envOpts...).
				Value(&m.input.envelope),
		),
	).WithWidth(45).WithShowHelp(false)
	m.table.Blur()

	return m, m.form.Init()
}

func (m NotesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *NotesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, n := range m.rows {
		rows = append(rows, table.Row{
			FormatDate(n.PlannedDate),
			string(n.Kind),
			n.Label,
			FormatAmount(n.Amount),
			string(n.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m NotesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des notes...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Erreur : %v", m.err)))
	}

	scope := "en attente"
	if m.all {
		scope = "toutes"
	}

	header := fmt.Sprintf("[h] Notes : %s | %d note(s)", activeStyle(scope), len(m.rows))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Nouvelle note\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type notesLoadedMsg struct {
	notes     []*note.Note
	envelopes []*envelope.Envelope
	err       error
}

type noteChangedMsg struct {
	status string
	err    error
}

func (m NotesModel) loadCmd() tea.Cmd {
	var status *note.Status
	if !m.all {
		status = new(note.StatusPending)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ns, err := m.notes.List(ctx, m.Owner, status)
		if err != nil {
			return notesLoadedMsg{err: err}
		}

		envs, err := m.envelopes.List(ctx, m.Owner, envelope.ListFilter{Status: new(envelope.StatusReceived)})

		return notesLoadedMsg{notes: ns, envelopes: envs, err: err}
	}
}

func (m NotesModel) createCmd() tea.Cmd {
	amount, _ := parseAmount(m.input.amount)
	date, _ := time.Parse(time.DateOnly, m.input.date)
	params := note.CreateParams{
		Kind:        m.input.kind,
		Label:       strings.TrimSpace(m.input.label),
		Amount:      amount,
		PlannedDate: date,
	}

	if m.input.kind == note.KindExpense && m.input.envelope != uuid.Nil {
		params.EnvelopeID = new(m.input.envelope)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.notes.Create(ctx, m.Owner, params); err != nil {
			return noteChangedMsg{err: err}
		}

		return noteChangedMsg{status: "Note créée."}
	}
}

func (m NotesModel) convertCmd(n *note.Note) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.notes.Convert(ctx, m.Owner, n.ID, time.Time{}); err != nil {
			return noteChangedMsg{err: err}
		}

		return noteChangedMsg{status: fmt.Sprintf("Note %q convertie.", n.Label)}
	}
}

func (m NotesModel) cancelCmd(n *note.Note) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.notes.Cancel(ctx, m.Owner, n.ID); err != nil {
			return noteChangedMsg{err: err}
		}

		return noteChangedMsg{status: "Note annulée."}
	}
}
