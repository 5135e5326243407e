package account

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
	"github.com/MrJamesThe3rd/cagnotte/internal/saga"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	// ApplyOperation records op and sets the balance, only if the account is
	// still at version. It returns the new version.
	ApplyOperation(ctx context.Context, op *Operation, balance decimal.Decimal, version int) (int, error)
	// RevertOperation deletes op and undoes its effect on the balance.
	RevertOperation(ctx context.Context, ownerID, opID uuid.UUID) error
	ListOperations(ctx context.Context, ownerID, accountID uuid.UUID) ([]*Operation, error)
}

type ReceiptIssuer interface {
	Generate(ctx context.Context, ownerID uuid.UUID, params receipt.GenerateParams) (*receipt.Receipt, error)
}

type Service struct {
	repo        Repository
	receipts    ReceiptIssuer
	rentAccount *regexp.Regexp
	retry       saga.RetryPolicy
}

func NewService(repo Repository, receipts ReceiptIssuer, rentAccount *regexp.Regexp, retry saga.RetryPolicy) *Service {
	return &Service{repo: repo, receipts: receipts, rentAccount: rentAccount, retry: retry}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Account, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if params.InitialBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	a := &Account{
		OwnerID:        ownerID,
		Name:           name,
		Type:           orDefault(params.Type, "courant"),
		WalletKind:     orDefault(params.WalletKind, "banque"),
		Balance:        params.InitialBalance,
		InitialBalance: params.InitialBalance,
		Currency:       orDefault(params.Currency, "XOF"),
		Active:         true,
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}

	return v
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, ownerID, activeOnly)
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Account, error) {
	a, err := s.repo.GetAccount(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, ErrEmptyName
		}

		a.Name = name
	}

	if params.Type != nil {
		a.Type = orDefault(*params.Type, a.Type)
	}

	if params.WalletKind != nil {
		a.WalletKind = orDefault(*params.WalletKind, a.WalletKind)
	}

	if params.Active != nil {
		a.Active = *params.Active
	}

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Operations(ctx context.Context, ownerID, accountID uuid.UUID) ([]*Operation, error) {
	if _, err := s.repo.GetAccount(ctx, ownerID, accountID); err != nil {
		return nil, err
	}

	return s.repo.ListOperations(ctx, ownerID, accountID)
}

func (s *Service) Credit(ctx context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*Operation, error) {
	return s.post(ctx, ownerID, accountID, Credit, amount, description, date)
}

// Debit rejects amounts above the current balance.
func (s *Service) Debit(ctx context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*Operation, error) {
	return s.post(ctx, ownerID, accountID, Debit, amount, description, date)
}

// Revert undoes a posted operation. It exists to compensate failed multi-step
// mutations.
func (s *Service) Revert(ctx context.Context, ownerID, opID uuid.UUID) error {
	return s.repo.RevertOperation(ctx, ownerID, opID)
}

func (s *Service) post(
	ctx context.Context,
	ownerID, accountID uuid.UUID,
	kind OperationKind,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*Operation, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if date.IsZero() {
		date = time.Now()
	}

	return saga.Retry(ctx, s.retry, func(ctx context.Context) (*Operation, error) {
		a, err := s.repo.GetAccount(ctx, ownerID, accountID)
		if err != nil {
			return nil, err
		}

		if !a.Active {
			return nil, ErrInactive
		}

		op := &Operation{
			OwnerID:     ownerID,
			AccountID:   accountID,
			Kind:        kind,
			Amount:      amount,
			Description: description,
			Date:        date,
		}

		balance := a.Balance.Add(op.Signed())
		if balance.IsNegative() {
			return nil, ErrInsufficientFunds
		}

		if _, err := s.repo.ApplyOperation(ctx, op, balance, a.Version); err != nil {
			return nil, err
		}

		return op, nil
	}, ErrVersionConflict)
}

type TransferResult struct {
	Debit   *Operation
	Credit  *Operation
	Receipt *receipt.Receipt
	// ReceiptError is set when the transfer went through but the rent receipt
	// could not be issued.
	ReceiptError error
}

// Transfer moves money between two accounts. When the destination looks like
// a rent account and rent details are given, a receipt is issued for the
// credit. The receipt is best effort and never undoes the transfer.
func (s *Service) Transfer(ctx context.Context, ownerID uuid.UUID, params TransferParams) (*TransferResult, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if params.SourceID == params.DestID {
		return nil, ErrSameAccount
	}

	dest, err := s.repo.GetAccount(ctx, ownerID, params.DestID)
	if err != nil {
		return nil, err
	}

	if params.Date.IsZero() {
		params.Date = time.Now()
	}

	description := strings.TrimSpace(params.Description)
	if description == "" {
		description = "Virement : " + dest.Name
	}

	res := &TransferResult{}

	if err := saga.Run(ctx,
		saga.Step{
			Name: "debit source account",
			Do: func(ctx context.Context) error {
				op, err := s.Debit(ctx, ownerID, params.SourceID, params.Amount, description, params.Date)
				res.Debit = op

				return err
			},
			Compensate: func(ctx context.Context) error {
				return s.Revert(ctx, ownerID, res.Debit.ID)
			},
		},
		saga.Step{
			Name: "credit destination account",
			Do: func(ctx context.Context) error {
				op, err := s.Credit(ctx, ownerID, params.DestID, params.Amount, description, params.Date)
				res.Credit = op

				return err
			},
		},
	); err != nil {
		return nil, fmt.Errorf("transferring between accounts: %w", err)
	}

	if params.Rent != nil && s.rentAccount != nil && s.rentAccount.MatchString(dest.Name) {
		res.Receipt, res.ReceiptError = s.receipts.Generate(ctx, ownerID, receipt.GenerateParams{
			OperationID: res.Credit.ID,
			Tenant:      params.Rent.Tenant,
			Unit:        params.Rent.Unit,
			Period:      params.Rent.Period,
			Amount:      params.Amount,
		})
		if res.ReceiptError != nil {
			slog.Warn("rent receipt not issued", "operation_id", res.Credit.ID, "error", res.ReceiptError)
		}
	}

	return res, nil
}
