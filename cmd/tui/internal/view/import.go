package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateReading
	importStateDrafts
	importStateTarget
	importStateConfirming
	importStateResult
)

type ImportModel struct {
	CommonModel
	importer  *importer.Service
	envelopes *envelope.Service
	accounts  *account.Service

	state      importState
	filePicker filepicker.Model

	profile   string
	drafts    []importer.Draft
	draftList list.Model
	skipped   map[int]bool

	form   *huh.Form
	target *importTarget

	status string
	err    error
}

func NewImportModel(common CommonModel, imp *importer.Service, envelopes *envelope.Service, accounts *account.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		CommonModel: common,
		importer:    imp,
		envelopes:   envelopes,
		accounts:    accounts,
		filePicker:  fp,
		skipped:     make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import de relevé" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateDrafts:
		return "Espace : ignorer | a : tout garder | n : tout ignorer | Entrée : continuer | Échap : annuler"
	case importStateTarget:
		return "Échap : retour aux lignes"
	}

	return "Échap : retour | Entrée : choisir"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateDrafts {
			return m.updateDrafts(msg)
		}

	case previewMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Erreur : %v", msg.err)

			return m, nil
		}

		m.profile = msg.preview.Profile
		m.drafts = msg.preview.Drafts
		m.skipped = make(map[int]bool)

		for i, d := range m.drafts {
			m.skipped[i] = d.Skip
		}

		items := make([]list.Item, len(m.drafts))
		for i, d := range m.drafts {
			items[i] = draftItem{draft: d, index: i}
		}

		m.draftList = list.New(items, draftDelegate{skipped: &m.skipped}, 90, 20)
		m.draftList.Title = fmt.Sprintf("Relevé %s : %d ligne(s)", m.profile, len(m.drafts))
		m.draftList.SetShowStatusBar(false)
		m.draftList.SetFilteringEnabled(false)
		m.draftList.SetShowHelp(false)
		m.state = importStateDrafts

		return m, nil

	case targetsMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Erreur : %v", msg.err)

			return m, nil
		}

		return m.enterTarget(msg)

	case confirmResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Erreur : %v", msg.err)

			return m, nil
		}

		m.err = nil
		m.status = fmt.Sprintf("%d recette(s), %d dépense(s) importée(s), %d ignorée(s).",
			len(msg.result.Envelopes), len(msg.result.Expenses), msg.result.Skipped)

		for _, f := range msg.result.Failed {
			m.status += fmt.Sprintf("\nLigne %d : %v", f.Line, f)
		}

		return m, nil
	}

	if m.state == importStateTarget {
		return m.updateTarget(msg)
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateReading
		m.status = fmt.Sprintf("Lecture de %s...", path)

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateResult, importStateDrafts:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""
		m.drafts = nil
		m.skipped = make(map[int]bool)

		return m, m.filePicker.Init()
	case importStateTarget:
		m.state = importStateDrafts
		m.form = nil

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateDrafts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.draftList.Index()
		m.skipped[idx] = !m.skipped[idx]

		return m, nil
	case "a":
		for i := range m.drafts {
			m.skipped[i] = false
		}

		return m, nil
	case "n":
		for i := range m.drafts {
			m.skipped[i] = true
		}

		return m, nil
	case "enter":
		return m, m.loadTargetsCmd()
	}

	var cmd tea.Cmd
	m.draftList, cmd = m.draftList.Update(msg)

	return m, cmd
}

func (m ImportModel) enterTarget(t targetsMsg) (tea.Model, tea.Cmd) {
	envOpts := []huh.Option[uuid.UUID]{huh.NewOption("(aucune)", uuid.Nil)}
	for _, e := range t.envelopes {
		envOpts = append(envOpts, huh.NewOption(fmt.Sprintf("%s (%s)", e.Label, FormatAmount(e.AvailableBalance)), e.ID))
	}

	accOpts := []huh.Option[uuid.UUID]{huh.NewOption("(aucun)", uuid.Nil)}
	for _, a := range t.accounts {
		accOpts = append(accOpts, huh.NewOption(a.Name, a.ID))
	}

	m.target = &importTarget{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Recette imputée pour les dépenses").
				Options(envOpts...).
				Value(&m.target.envelope),
			huh.NewSelect[uuid.UUID]().
				Title("Compte crédité pour les recettes").
				Options(accOpts...).
				Value(&m.target.account),
		),
	).WithWidth(60).WithShowHelp(false)
	m.state = importStateTarget

	return m, m.form.Init()
}

func (m ImportModel) updateTarget(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.form = nil
	m.state = importStateConfirming
	m.status = "Enregistrement..."

	return m, m.confirmCmd()
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Relevé bancaire à importer (CSV) :\n\n" + m.filePicker.View(),
		)
	case importStateReading, importStateConfirming:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateDrafts:
		return lipgloss.NewStyle().Padding(1).Render(m.draftList.View())
	case importStateTarget:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(2).Render(m.form.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Échap : retour)")
	}

	return style.Render(successStyle(m.status) + "\n\n(Échap : retour)")
}

type importTarget struct {
	envelope uuid.UUID
	account  uuid.UUID
}

// Messages

type previewMsg struct {
	preview *importer.Preview
	err     error
}

type targetsMsg struct {
	envelopes []*envelope.Envelope
	accounts  []*account.Account
	err       error
}

type confirmResultMsg struct {
	result *importer.Result
	err    error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.importer.Preview(ctx, m.Owner, f)

		return previewMsg{preview: p, err: err}
	}
}

func (m ImportModel) loadTargetsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		envs, err := m.envelopes.List(ctx, m.Owner, envelope.ListFilter{Status: new(envelope.StatusReceived)})
		if err != nil {
			return targetsMsg{err: err}
		}

		accs, err := m.accounts.List(ctx, m.Owner, true)

		return targetsMsg{envelopes: envs, accounts: accs, err: err}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	drafts := make([]importer.Draft, len(m.drafts))
	for i, d := range m.drafts {
		d.Skip = m.skipped[i]
		drafts[i] = d
	}

	params := importer.ConfirmParams{Drafts: drafts}
	if m.target.envelope != uuid.Nil {
		params.EnvelopeID = new(m.target.envelope)
	}

	if m.target.account != uuid.Nil {
		params.AccountID = new(m.target.account)
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.importer.Confirm(ctx, m.Owner, params)

		return confirmResultMsg{result: res, err: err}
	}
}

// Draft list item

type draftItem struct {
	draft importer.Draft
	index int
}

func (i draftItem) Title() string       { return i.draft.Label }
func (i draftItem) Description() string { return "" }
func (i draftItem) FilterValue() string { return i.draft.Label }

// Draft list delegate

type draftDelegate struct {
	skipped *map[int]bool
}

func (d draftDelegate) Height() int                             { return 2 }
func (d draftDelegate) Spacing() int                            { return 0 }
func (d draftDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d draftDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(draftItem)
	if !ok {
		return
	}

	checkbox := "[x]"
	if (*d.skipped)[item.index] {
		checkbox = "[ ]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	draft := item.draft

	line1 := fmt.Sprintf("%s%s %s  %-8s %12s  %s",
		cursor, checkbox,
		FormatDate(draft.Date),
		draft.Kind,
		FormatAmount(draft.Amount),
		draft.Label,
	)

	category := "-"
	if draft.Category != nil {
		category = *draft.Category
	}

	line2 := fmt.Sprintf("      Catégorie : %s", category)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
