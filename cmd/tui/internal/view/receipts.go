package view

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
)

// ReceiptsModel walks the expenses that still lack a supporting document and
// uploads a local file for each.
type ReceiptsModel struct {
	CommonModel
	expenses *expense.Service

	queue   []*expense.Expense
	current *expense.Expense

	pathInput textinput.Model

	loading    bool
	status     string
	totalCount int
}

func NewReceiptsModel(common CommonModel, expenses *expense.Service) ReceiptsModel {
	ti := textinput.New()
	ti.Placeholder = "/chemin/vers/justificatif.pdf"
	ti.Width = 60

	return ReceiptsModel{
		CommonModel: common,
		expenses:    expenses,
		pathInput:   ti,
		loading:     true,
	}
}

func (m ReceiptsModel) Title() string { return "Justificatifs" }

func (m ReceiptsModel) ShortHelp() string {
	return "Entrée : joindre | Tab : passer | Échap : menu"
}

func (m ReceiptsModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m ReceiptsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.current != nil {
				return m, m.attachCmd(m.current, m.pathInput.Value())
			}
		case "tab":
			if m.current != nil {
				m.next()
			}

			return m, nil
		}

	case pendingReceiptsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Erreur : %v", msg.err))
			return m, nil
		}

		m.queue = msg.expenses
		m.totalCount = len(m.queue)
		m.next()

	case receiptAttachedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Erreur d'envoi : %v", msg.err))
			break
		}

		m.status = successStyle("Justificatif joint.")
		m.next()
	}

	m.pathInput, cmd = m.pathInput.Update(msg)

	return m, cmd
}

func (m ReceiptsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des dépenses sans justificatif...")
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("Toutes les dépenses ont un justificatif.\n\n(Échap : retour)")
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Échap : retour)")
	}

	info := fmt.Sprintf(
		"Date : %s\nLibellé : %s\nMontant : %s\n",
		FormatDate(m.current.Date),
		m.current.Label,
		FormatAmount(m.current.Amount),
	)

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("Dépense sans justificatif (%d restante(s))\n\n%s\nFichier :\n%s\n\n%s",
			len(m.queue)+1, info, m.pathInput.View(), m.status),
	)
}

func (m *ReceiptsModel) next() {
	m.pathInput.SetValue("")

	if len(m.queue) == 0 {
		m.current = nil
		m.status = "Terminé."

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.pathInput.Focus()
}

type pendingReceiptsMsg struct {
	expenses []*expense.Expense
	err      error
}

func (m ReceiptsModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		xs, err := m.expenses.List(ctx, m.Owner, expense.ListFilter{SortBy: expense.SortDate, Ascending: true})
		if err != nil {
			return pendingReceiptsMsg{err: err}
		}

		pending := make([]*expense.Expense, 0, len(xs))
		for _, x := range xs {
			if x.AttachmentKey == nil {
				pending = append(pending, x)
			}
		}

		return pendingReceiptsMsg{expenses: pending}
	}
}

type receiptAttachedMsg struct {
	err error
}

func (m ReceiptsModel) attachCmd(x *expense.Expense, path string) tea.Cmd {
	path = strings.TrimSpace(path)

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return receiptAttachedMsg{err: err}
		}
		defer f.Close()

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.expenses.AttachReceipt(ctx, m.Owner, x.ID, filepath.Base(path), contentType, f)

		return receiptAttachedMsg{err: err}
	}
}
