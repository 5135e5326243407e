package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/cagnotte/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	accountStore "github.com/MrJamesThe3rd/cagnotte/internal/account/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/attachment"
	"github.com/MrJamesThe3rd/cagnotte/internal/categorize"
	categorizeStore "github.com/MrJamesThe3rd/cagnotte/internal/categorize/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/config"
	"github.com/MrJamesThe3rd/cagnotte/internal/database"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	envelopeStore "github.com/MrJamesThe3rd/cagnotte/internal/envelope/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/cagnotte/internal/expense/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/export"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/note"
	noteStore "github.com/MrJamesThe3rd/cagnotte/internal/note/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
	receiptStore "github.com/MrJamesThe3rd/cagnotte/internal/receipt/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/saga"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
	transferStore "github.com/MrJamesThe3rd/cagnotte/internal/transfer/store"
)

type services struct {
	envelopes  *envelope.Service
	expenses   *expense.Service
	transfers  *transfer.Service
	accounts   *account.Service
	ledger     *ledger.Service
	notes      *note.Service
	categories *categorize.Service
	importer   *importer.Service
	export     *export.Service
}

type menuEntry struct {
	label string
	open  func(view.CommonModel, *services) view.View
}

var menu = []menuEntry{
	{"Recettes", func(c view.CommonModel, s *services) view.View {
		return view.NewEnvelopesModel(c, s.envelopes, s.ledger)
	}},
	{"Dépenses", func(c view.CommonModel, s *services) view.View {
		return view.NewExpensesModel(c, s.expenses, s.envelopes, s.ledger, s.categories)
	}},
	{"Transferts", func(c view.CommonModel, s *services) view.View {
		return view.NewTransfersModel(c, s.transfers, s.envelopes, s.accounts, s.ledger)
	}},
	{"Comptes", func(c view.CommonModel, s *services) view.View {
		return view.NewAccountsModel(c, s.accounts)
	}},
	{"Notes", func(c view.CommonModel, s *services) view.View {
		return view.NewNotesModel(c, s.notes, s.envelopes)
	}},
	{"Justificatifs", func(c view.CommonModel, s *services) view.View {
		return view.NewReceiptsModel(c, s.expenses)
	}},
	{"Import de relevé", func(c view.CommonModel, s *services) view.View {
		return view.NewImportModel(c, s.importer, s.envelopes, s.accounts)
	}},
	{"Export CSV", func(c view.CommonModel, s *services) view.View {
		return view.NewExportModel(c, s.export)
	}},
}

type model struct {
	common   view.CommonModel
	services *services

	current view.View
}

func initialModel(ctx context.Context) (model, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, nil, err
	}

	owner, err := uuid.Parse(cfg.Auth.LocalOwnerID)
	if err != nil {
		return model{}, nil, errors.New("LOCAL_OWNER_ID must be set to the owner's UUID")
	}

	rentAccount, err := regexp.Compile(cfg.Ledger.RentAccountPattern)
	if err != nil {
		return model{}, nil, fmt.Errorf("compiling rent account pattern: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return model{}, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return model{}, nil, err
	}

	files, err := attachment.New(ctx, attachment.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		URLExpiry: cfg.Storage.URLExpiry,
	})
	if err != nil {
		db.Close()
		return model{}, nil, fmt.Errorf("configuring attachment storage: %w", err)
	}

	retry := saga.RetryPolicy{MaxAttempts: cfg.Ledger.MaxAttempts, Base: cfg.Ledger.RetryBase}

	var (
		envelopes   = envelopeStore.New(db)
		expenses    = expenseStore.New(db)
		transfers   = transferStore.New(db)
		accountRepo = accountStore.New(db)
	)

	receiptService := receipt.NewService(receiptStore.New(db))
	categorizeService := categorize.NewService(categorizeStore.New(db))
	accountService := account.NewService(accountRepo, receiptService, rentAccount, retry)
	envelopeService := envelope.NewService(envelopes)
	expenseService := expense.NewService(expenses, files)
	transferService := transfer.NewService(transfers)
	ledgerService := ledger.NewService(envelopes, expenses, transfers, accountService,
		ledger.WithRetryPolicy(retry),
		ledger.WithCategorizer(categorizeService),
		ledger.WithAttachments(expenseService),
	)

	svcs := &services{
		envelopes:  envelopeService,
		expenses:   expenseService,
		transfers:  transferService,
		accounts:   accountService,
		ledger:     ledgerService,
		notes:      note.NewService(noteStore.New(db), ledgerService),
		categories: categorizeService,
		importer:   importer.NewService(ledgerService, categorizeService),
		export:     export.NewService(envelopeService, expenseService, transferService, expenseService),
	}

	return model{
		common:   view.CommonModel{Owner: owner},
		services: svcs,
	}, func() { db.Close() }, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.common.Width = msg.Width
		m.common.Height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" {
		return m, tea.Quit
	}

	for i, entry := range menu {
		if key == fmt.Sprint(i+1) {
			m.current = entry.open(m.common, m.services)
			return m, m.current.Init()
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.current != nil {
		help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.current.ShortHelp())
		title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.current.Title())

		return lipgloss.JoinVertical(lipgloss.Left, title, m.current.View(), help)
	}

	s := "Cagnotte\n\n"
	for i, entry := range menu {
		s += fmt.Sprintf("%d. %s\n", i+1, entry.label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Quitter")
}

func main() {
	_ = godotenv.Load()

	// The terminal belongs to the UI; logs go to a file.
	logFile, err := tea.LogToFile("cagnotte-tui.log", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "opening log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	m, closeDB, err := initialModel(context.Background())
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeDB()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
	}
}
