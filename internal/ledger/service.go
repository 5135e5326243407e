package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/saga"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

type Service struct {
	envelopes   EnvelopeStore
	expenses    ExpenseStore
	transfers   TransferStore
	accounts    Accounts
	categories  Categorizer
	attachments AttachmentRemover
	retry       saga.RetryPolicy
	now         func() time.Time
}

type Option func(*Service)

func WithRetryPolicy(p saga.RetryPolicy) Option {
	return func(s *Service) { s.retry = p }
}

func WithCategorizer(c Categorizer) Option {
	return func(s *Service) { s.categories = c }
}

func WithAttachments(a AttachmentRemover) Option {
	return func(s *Service) { s.attachments = a }
}

func NewService(envelopes EnvelopeStore, expenses ExpenseStore, transfers TransferStore, accounts Accounts, opts ...Option) *Service {
	s := &Service{
		envelopes: envelopes,
		expenses:  expenses,
		transfers: transfers,
		accounts:  accounts,
		retry:     saga.DefaultRetryPolicy,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) CreateEnvelope(ctx context.Context, ownerID uuid.UUID, params CreateEnvelopeParams) (*envelope.Envelope, error) {
	label := strings.TrimSpace(params.Label)
	if label == "" {
		return nil, envelope.ErrEmptyLabel
	}

	if !params.Amount.IsPositive() {
		return nil, envelope.ErrInvalidAmount
	}

	status := params.Status
	if status == "" {
		status = envelope.StatusReceived
	}

	if !status.Valid() {
		return nil, envelope.ErrInvalidStatus
	}

	env := &envelope.Envelope{
		OwnerID:          ownerID,
		Label:            label,
		InitialAmount:    params.Amount,
		AvailableBalance: params.Amount,
		Status:           status,
		Date:             s.dateOrToday(params.Date),
		AccountID:        params.AccountID,
	}

	steps := []saga.Step{{
		Name: "insert envelope",
		Do: func(ctx context.Context) error {
			return s.envelopes.CreateEnvelope(ctx, env)
		},
		Compensate: func(ctx context.Context) error {
			return s.envelopes.HardDelete(ctx, ownerID, env.ID)
		},
	}}

	if params.AccountID != nil {
		steps = append(steps, saga.Step{
			Name: "credit account",
			Do: func(ctx context.Context) error {
				_, err := s.accounts.Credit(ctx, ownerID, *params.AccountID, env.InitialAmount, "Recette : "+label, env.Date)
				return err
			},
		})
	}

	if err := saga.Run(ctx, steps...); err != nil {
		return nil, fmt.Errorf("creating envelope: %w", err)
	}

	return env, nil
}

// DeleteEnvelope removes an envelope for good. Pending and completed
// transfers count in the other side's balance, so their presence blocks the
// delete. Refunded transfers are dropped first.
func (s *Service) DeleteEnvelope(ctx context.Context, ownerID, id uuid.UUID) error {
	ts, err := s.transfers.ListTransfers(ctx, ownerID, transfer.ListFilter{EnvelopeID: &id})
	if err != nil {
		return err
	}

	for _, t := range ts {
		if t.Applied() {
			return envelope.ErrHasTransfers
		}
	}

	for _, t := range ts {
		if err := s.transfers.DeleteTransfer(ctx, ownerID, t.ID); err != nil {
			return fmt.Errorf("dropping refunded transfer %s: %w", t.ID, err)
		}
	}

	return s.envelopes.HardDelete(ctx, ownerID, id)
}

func (s *Service) RecordExpense(ctx context.Context, ownerID uuid.UUID, params RecordExpenseParams) (*ExpenseResult, error) {
	label := strings.TrimSpace(params.Label)
	if label == "" {
		return nil, expense.ErrEmptyLabel
	}

	if !params.Amount.IsPositive() {
		return nil, expense.ErrInvalidAmount
	}

	category := params.Category
	if category == nil {
		category = s.suggest(ctx, ownerID, label)
	}

	newExpense := func() *expense.Expense {
		return &expense.Expense{
			ID:         uuid.New(),
			OwnerID:    ownerID,
			EnvelopeID: params.EnvelopeID,
			Label:      label,
			Amount:     params.Amount,
			Date:       s.dateOrToday(params.Date),
			Category:   category,
		}
	}

	if params.EnvelopeID == nil {
		exp := newExpense()
		if err := s.expenses.CreateExpense(ctx, exp); err != nil {
			return nil, err
		}

		return &ExpenseResult{Expense: exp}, nil
	}

	return saga.Retry(ctx, s.retry, func(ctx context.Context) (*ExpenseResult, error) {
		env, err := s.envelopes.GetEnvelope(ctx, ownerID, *params.EnvelopeID)
		if err != nil {
			return nil, err
		}

		available, err := s.available(ctx, ownerID, env)
		if err != nil {
			return nil, err
		}

		if params.Amount.GreaterThan(available) {
			return nil, ErrInsufficientBalance
		}

		exp := newExpense()

		err = saga.Run(ctx,
			saga.Step{
				Name: "insert expense",
				Do: func(ctx context.Context) error {
					return s.expenses.CreateExpense(ctx, exp)
				},
				Compensate: func(ctx context.Context) error {
					return s.expenses.DeleteExpense(ctx, ownerID, exp.ID)
				},
			},
			saga.Step{
				Name: "write envelope balance",
				Do: func(ctx context.Context) error {
					return s.setBalance(ctx, env, available.Sub(exp.Amount))
				},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("recording expense: %w", err)
		}

		return &ExpenseResult{Expense: exp, Envelope: env}, nil
	}, envelope.ErrVersionConflict)
}

// DeleteExpense removes the expense and gives its amount back to the envelope.
// The returned envelope is nil for unlinked expenses.
func (s *Service) DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error) {
	exp, err := s.expenses.GetExpense(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if exp.EnvelopeID == nil {
		if err := s.expenses.DeleteExpense(ctx, ownerID, id); err != nil {
			return nil, err
		}

		s.dropAttachment(ctx, exp)

		return nil, nil
	}

	env, err := saga.Retry(ctx, s.retry, func(ctx context.Context) (*envelope.Envelope, error) {
		env, err := s.envelopes.GetEnvelope(ctx, ownerID, *exp.EnvelopeID)
		if err != nil {
			return nil, err
		}

		err = saga.Run(ctx,
			saga.Step{
				Name: "delete expense",
				Do: func(ctx context.Context) error {
					return s.expenses.DeleteExpense(ctx, ownerID, exp.ID)
				},
				Compensate: func(ctx context.Context) error {
					return s.expenses.CreateExpense(ctx, exp)
				},
			},
			saga.Step{
				Name: "write envelope balance",
				Do: func(ctx context.Context) error {
					available, err := s.available(ctx, ownerID, env)
					if err != nil {
						return err
					}

					return s.setBalance(ctx, env, available)
				},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("deleting expense: %w", err)
		}

		return env, nil
	}, envelope.ErrVersionConflict)
	if err != nil {
		return nil, err
	}

	s.dropAttachment(ctx, exp)

	return env, nil
}

// Transfer moves amount out of the source envelope into another envelope or
// a bank account. Invalid requests are rejected before anything is written.
func (s *Service) Transfer(ctx context.Context, ownerID uuid.UUID, params TransferParams) (*TransferResult, error) {
	if !params.Amount.IsPositive() {
		return nil, transfer.ErrInvalidAmount
	}

	if (params.DestEnvelopeID == nil) == (params.DestAccountID == nil) {
		return nil, transfer.ErrInvalidDestination
	}

	if params.DestEnvelopeID != nil && *params.DestEnvelopeID == params.SourceID {
		return nil, transfer.ErrSameEnvelope
	}

	return saga.Retry(ctx, s.retry, func(ctx context.Context) (*TransferResult, error) {
		src, err := s.envelopes.GetEnvelope(ctx, ownerID, params.SourceID)
		if err != nil {
			return nil, err
		}

		srcAvailable, err := s.available(ctx, ownerID, src)
		if err != nil {
			return nil, err
		}

		if params.Amount.GreaterThan(srcAvailable) {
			return nil, ErrInsufficientBalance
		}

		res := &TransferResult{Source: src}

		var dstAvailable decimal.Decimal

		if params.DestEnvelopeID != nil {
			if res.Destination, err = s.envelopes.GetEnvelope(ctx, ownerID, *params.DestEnvelopeID); err != nil {
				return nil, err
			}

			if dstAvailable, err = s.available(ctx, ownerID, res.Destination); err != nil {
				return nil, err
			}
		}

		t := &transfer.Transfer{
			ID:               uuid.New(),
			OwnerID:          ownerID,
			SourceEnvelopeID: src.ID,
			DestEnvelopeID:   params.DestEnvelopeID,
			DestAccountID:    params.DestAccountID,
			Amount:           params.Amount,
			Date:             s.dateOrToday(params.Date),
			Description:      strings.TrimSpace(params.Description),
			Status:           transfer.StatusPending,
		}
		res.Transfer = t

		steps := []saga.Step{
			{
				Name: "insert transfer",
				Do: func(ctx context.Context) error {
					return s.transfers.CreateTransfer(ctx, t)
				},
				Compensate: func(ctx context.Context) error {
					return s.transfers.DeleteTransfer(ctx, ownerID, t.ID)
				},
			},
			{
				Name: "write source balance",
				Do: func(ctx context.Context) error {
					return s.setBalance(ctx, src, srcAvailable.Sub(t.Amount))
				},
				Compensate: func(ctx context.Context) error {
					return s.setBalance(ctx, src, srcAvailable)
				},
			},
		}

		if res.Destination != nil {
			steps = append(steps, saga.Step{
				Name: "write destination balance",
				Do: func(ctx context.Context) error {
					return s.setBalance(ctx, res.Destination, dstAvailable.Add(t.Amount))
				},
			})
		} else {
			steps = append(steps, saga.Step{
				Name: "credit destination account",
				Do: func(ctx context.Context) error {
					op, err := s.accounts.Credit(ctx, ownerID, *t.DestAccountID, t.Amount, transferLabel("Transfert", t, src), t.Date)
					res.Operation = op

					return err
				},
			})
		}

		if err := saga.Run(ctx, steps...); err != nil {
			return nil, fmt.Errorf("transferring: %w", err)
		}

		return res, nil
	}, envelope.ErrVersionConflict)
}

// Refund reverses a pending transfer on both sides and marks it refunded.
func (s *Service) Refund(ctx context.Context, ownerID, transferID uuid.UUID) (*TransferResult, error) {
	return saga.Retry(ctx, s.retry, func(ctx context.Context) (*TransferResult, error) {
		t, err := s.transfers.GetTransfer(ctx, ownerID, transferID)
		if err != nil {
			return nil, err
		}

		if !transfer.CanTransition(t.Status, transfer.StatusRefunded) {
			return nil, transfer.ErrInvalidTransition
		}

		src, err := s.transferEnvelope(ctx, ownerID, t.SourceEnvelopeID)
		if err != nil {
			return nil, err
		}

		srcAvailable, err := s.available(ctx, ownerID, src)
		if err != nil {
			return nil, err
		}

		res := &TransferResult{Transfer: t, Source: src}

		var dstAvailable decimal.Decimal

		if t.DestEnvelopeID != nil {
			if res.Destination, err = s.transferEnvelope(ctx, ownerID, *t.DestEnvelopeID); err != nil {
				return nil, err
			}

			if dstAvailable, err = s.available(ctx, ownerID, res.Destination); err != nil {
				return nil, err
			}

			if dstAvailable.LessThan(t.Amount) {
				return nil, ErrInsufficientBalance
			}
		}

		steps := []saga.Step{
			{
				Name: "mark transfer refunded",
				Do: func(ctx context.Context) error {
					return s.transfers.UpdateStatus(ctx, ownerID, t.ID, transfer.StatusPending, transfer.StatusRefunded)
				},
				Compensate: func(ctx context.Context) error {
					return s.transfers.UpdateStatus(ctx, ownerID, t.ID, transfer.StatusRefunded, transfer.StatusPending)
				},
			},
			{
				Name: "restore source balance",
				Do: func(ctx context.Context) error {
					return s.setBalance(ctx, src, srcAvailable.Add(t.Amount))
				},
				Compensate: func(ctx context.Context) error {
					return s.setBalance(ctx, src, srcAvailable)
				},
			},
		}

		if res.Destination != nil {
			steps = append(steps, saga.Step{
				Name: "reverse destination balance",
				Do: func(ctx context.Context) error {
					return s.setBalance(ctx, res.Destination, dstAvailable.Sub(t.Amount))
				},
			})
		} else {
			steps = append(steps, saga.Step{
				Name: "debit destination account",
				Do: func(ctx context.Context) error {
					op, err := s.accounts.Debit(ctx, ownerID, *t.DestAccountID, t.Amount, transferLabel("Remboursement", t, src), s.now())
					res.Operation = op

					return err
				},
			})
		}

		if err := saga.Run(ctx, steps...); err != nil {
			return nil, fmt.Errorf("refunding transfer: %w", err)
		}

		t.Status = transfer.StatusRefunded

		return res, nil
	}, envelope.ErrVersionConflict)
}

// transferEnvelope loads one side of a transfer. Transfers keep their
// envelopes from being hard-deleted, so a missing envelope is a trashed one.
func (s *Service) transferEnvelope(ctx context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error) {
	env, err := s.envelopes.GetEnvelope(ctx, ownerID, id)
	if errors.Is(err, envelope.ErrNotFound) {
		return nil, ErrEnvelopeTrashed
	}

	return env, err
}

// Complete marks a pending transfer as final. Balances are unchanged.
func (s *Service) Complete(ctx context.Context, ownerID, transferID uuid.UUID) (*transfer.Transfer, error) {
	t, err := s.transfers.GetTransfer(ctx, ownerID, transferID)
	if err != nil {
		return nil, err
	}

	if !transfer.CanTransition(t.Status, transfer.StatusCompleted) {
		return nil, transfer.ErrInvalidTransition
	}

	if err := s.transfers.UpdateStatus(ctx, ownerID, t.ID, transfer.StatusPending, transfer.StatusCompleted); err != nil {
		return nil, err
	}

	t.Status = transfer.StatusCompleted

	return t, nil
}

func (s *Service) Balance(ctx context.Context, ownerID, envelopeID uuid.UUID) (*BalanceReport, error) {
	env, err := s.envelopes.GetEnvelope(ctx, ownerID, envelopeID)
	if err != nil {
		return nil, err
	}

	b, err := s.breakdown(ctx, ownerID, env)
	if err != nil {
		return nil, err
	}

	available := b.Available()

	return &BalanceReport{
		Envelope:  env,
		Breakdown: b,
		Available: available,
		InSync:    available.Equal(env.AvailableBalance),
	}, nil
}

// Refresh rewrites the stored projection from the derived balance.
func (s *Service) Refresh(ctx context.Context, ownerID, envelopeID uuid.UUID) (*envelope.Envelope, error) {
	return saga.Retry(ctx, s.retry, func(ctx context.Context) (*envelope.Envelope, error) {
		env, err := s.envelopes.GetEnvelope(ctx, ownerID, envelopeID)
		if err != nil {
			return nil, err
		}

		available, err := s.available(ctx, ownerID, env)
		if err != nil {
			return nil, err
		}

		if available.Equal(env.AvailableBalance) {
			return env, nil
		}

		slog.Info("envelope projection drifted", "envelope_id", env.ID, "stored", env.AvailableBalance, "derived", available)

		if err := s.setBalance(ctx, env, available); err != nil {
			return nil, err
		}

		return env, nil
	}, envelope.ErrVersionConflict)
}

func (s *Service) breakdown(ctx context.Context, ownerID uuid.UUID, env *envelope.Envelope) (Breakdown, error) {
	expenses, err := s.expenses.ListLiveByEnvelope(ctx, ownerID, env.ID)
	if err != nil {
		return Breakdown{}, fmt.Errorf("loading expenses: %w", err)
	}

	transfers, err := s.transfers.ListTransfers(ctx, ownerID, transfer.ListFilter{EnvelopeID: &env.ID})
	if err != nil {
		return Breakdown{}, fmt.Errorf("loading transfers: %w", err)
	}

	return Derive(env, expenses, transfers), nil
}

func (s *Service) available(ctx context.Context, ownerID uuid.UUID, env *envelope.Envelope) (decimal.Decimal, error) {
	b, err := s.breakdown(ctx, ownerID, env)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return b.Available(), nil
}

// setBalance writes the projection conditional on the version env was read at,
// and advances env to the written row.
func (s *Service) setBalance(ctx context.Context, env *envelope.Envelope, balance decimal.Decimal) error {
	version, err := s.envelopes.UpdateBalance(ctx, env.OwnerID, env.ID, balance, env.Version)
	if err != nil {
		return err
	}

	env.Version = version
	env.AvailableBalance = balance

	return nil
}

func (s *Service) suggest(ctx context.Context, ownerID uuid.UUID, label string) *string {
	if s.categories == nil {
		return nil
	}

	category, ok, err := s.categories.Suggest(ctx, ownerID, label)
	if err != nil {
		slog.Warn("category suggestion failed", "label", label, "error", err)
		return nil
	}

	if !ok {
		return nil
	}

	return &category
}

func (s *Service) dropAttachment(ctx context.Context, exp *expense.Expense) {
	if s.attachments == nil || exp.AttachmentKey == nil {
		return
	}

	s.attachments.RemoveAttachment(ctx, *exp.AttachmentKey)
}

func (s *Service) dateOrToday(d time.Time) time.Time {
	if d.IsZero() {
		return s.now()
	}

	return d
}

func transferLabel(prefix string, t *transfer.Transfer, src *envelope.Envelope) string {
	if t.Description != "" {
		return prefix + " : " + t.Description
	}

	return prefix + " : " + src.Label
}
