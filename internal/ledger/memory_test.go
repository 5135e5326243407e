package ledger_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

// memory is an in-memory backend for the ledger. It hands out copies the way
// a database would, and can inject failures and version conflicts.
type memory struct {
	mu sync.Mutex

	envelopes map[uuid.UUID]*envelope.Envelope
	expenses  map[uuid.UUID]*expense.Expense
	transfers map[uuid.UUID]*transfer.Transfer
	accounts  map[uuid.UUID]decimal.Decimal
	ops       map[uuid.UUID]*account.Operation

	// fail holds one-shot errors keyed by method name.
	fail map[string]error
	// conflicts is the number of UpdateBalance calls that lose a race.
	conflicts int
	writes    int
}

func newMemory() *memory {
	return &memory{
		envelopes: map[uuid.UUID]*envelope.Envelope{},
		expenses:  map[uuid.UUID]*expense.Expense{},
		transfers: map[uuid.UUID]*transfer.Transfer{},
		accounts:  map[uuid.UUID]decimal.Decimal{},
		ops:       map[uuid.UUID]*account.Operation{},
		fail:      map[string]error{},
	}
}

func (m *memory) injected(method string) error {
	err, ok := m.fail[method]
	if ok {
		delete(m.fail, method)
	}

	return err
}

type state struct {
	Balances  map[uuid.UUID]string
	Accounts  map[uuid.UUID]string
	Expenses  int
	Transfers map[uuid.UUID]transfer.Status
}

func (m *memory) snapshot() state {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := state{
		Balances:  map[uuid.UUID]string{},
		Accounts:  map[uuid.UUID]string{},
		Expenses:  len(m.expenses),
		Transfers: map[uuid.UUID]transfer.Status{},
	}

	for id, e := range m.envelopes {
		st.Balances[id] = e.AvailableBalance.String()
	}

	for id, b := range m.accounts {
		st.Accounts[id] = b.String()
	}

	for id, t := range m.transfers {
		st.Transfers[id] = t.Status
	}

	return st
}

func (m *memory) stored(id uuid.UUID) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.envelopes[id].AvailableBalance
}

func (m *memory) CreateEnvelope(_ context.Context, e *envelope.Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateEnvelope"); err != nil {
		return err
	}

	m.writes++

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	e.Version = 1
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt

	cp := *e
	m.envelopes[e.ID] = &cp

	return nil
}

func (m *memory) GetEnvelope(_ context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.envelopes[id]
	if !ok || e.OwnerID != ownerID || e.DeletedAt != nil {
		return nil, envelope.ErrNotFound
	}

	cp := *e

	return &cp, nil
}

func (m *memory) UpdateBalance(_ context.Context, ownerID, id uuid.UUID, balance decimal.Decimal, version int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("UpdateBalance"); err != nil {
		return 0, err
	}

	e, ok := m.envelopes[id]
	if !ok || e.OwnerID != ownerID {
		return 0, envelope.ErrNotFound
	}

	if m.conflicts > 0 {
		m.conflicts--
		e.Version++

		return 0, envelope.ErrVersionConflict
	}

	if e.Version != version {
		return 0, envelope.ErrVersionConflict
	}

	m.writes++
	e.AvailableBalance = balance
	e.Version++

	return e.Version, nil
}

func (m *memory) HardDelete(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++

	if e, ok := m.envelopes[id]; !ok || e.OwnerID != ownerID {
		return envelope.ErrNotFound
	}

	for _, t := range m.transfers {
		if t.SourceEnvelopeID == id || (t.DestEnvelopeID != nil && *t.DestEnvelopeID == id) {
			return envelope.ErrHasTransfers
		}
	}

	delete(m.envelopes, id)

	return nil
}

func (m *memory) ListEnvelopes(_ context.Context, ownerID uuid.UUID, _ envelope.ListFilter) ([]*envelope.Envelope, error) {
	return m.listEnvelopes(ownerID, false), nil
}

func (m *memory) ListDeleted(_ context.Context, ownerID uuid.UUID) ([]*envelope.Envelope, error) {
	return m.listEnvelopes(ownerID, true), nil
}

func (m *memory) listEnvelopes(ownerID uuid.UUID, trashed bool) []*envelope.Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*envelope.Envelope

	for _, e := range m.envelopes {
		if e.OwnerID == ownerID && (e.DeletedAt != nil) == trashed {
			cp := *e
			out = append(out, &cp)
		}
	}

	return out
}

func (m *memory) UpdateDetails(_ context.Context, e *envelope.Envelope) error {
	return m.touch(e.OwnerID, e.ID, func(stored *envelope.Envelope) {
		stored.Label = e.Label
		stored.Status = e.Status
		stored.Date = e.Date
	})
}

func (m *memory) SetBankValidated(_ context.Context, e *envelope.Envelope) error {
	return m.touch(e.OwnerID, e.ID, func(stored *envelope.Envelope) {
		stored.BankValidated = e.BankValidated
	})
}

func (m *memory) touch(ownerID, id uuid.UUID, apply func(*envelope.Envelope)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.envelopes[id]
	if !ok || e.OwnerID != ownerID || e.DeletedAt != nil {
		return envelope.ErrNotFound
	}

	m.writes++
	apply(e)
	e.Version++

	return nil
}

// SoftDelete stamps the envelope and its live expenses with one shared time,
// the way the SQL store does.
func (m *memory) SoftDelete(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.envelopes[id]
	if !ok || e.OwnerID != ownerID || e.DeletedAt != nil {
		return envelope.ErrNotFound
	}

	m.writes++
	now := time.Now()
	e.DeletedAt = &now
	e.Version++

	for _, x := range m.expenses {
		if x.EnvelopeID != nil && *x.EnvelopeID == id && x.DeletedAt == nil {
			x.DeletedAt = &now
		}
	}

	return nil
}

func (m *memory) Restore(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.envelopes[id]
	if !ok || e.OwnerID != ownerID || e.DeletedAt == nil {
		return envelope.ErrNotFound
	}

	m.writes++

	for _, x := range m.expenses {
		if x.EnvelopeID != nil && *x.EnvelopeID == id && x.DeletedAt != nil && x.DeletedAt.Equal(*e.DeletedAt) {
			x.DeletedAt = nil
		}
	}

	e.DeletedAt = nil
	e.Version++

	return nil
}

func (m *memory) CreateExpense(_ context.Context, e *expense.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateExpense"); err != nil {
		return err
	}

	m.writes++

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	cp := *e
	m.expenses[e.ID] = &cp

	return nil
}

func (m *memory) GetExpense(_ context.Context, ownerID, id uuid.UUID) (*expense.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.expenses[id]
	if !ok || e.OwnerID != ownerID || e.DeletedAt != nil {
		return nil, expense.ErrNotFound
	}

	cp := *e

	return &cp, nil
}

func (m *memory) ListLiveByEnvelope(_ context.Context, ownerID, envelopeID uuid.UUID) ([]*expense.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*expense.Expense

	for _, e := range m.expenses {
		if e.OwnerID == ownerID && e.EnvelopeID != nil && *e.EnvelopeID == envelopeID && e.DeletedAt == nil {
			cp := *e
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (m *memory) DeleteExpense(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("DeleteExpense"); err != nil {
		return err
	}

	m.writes++

	if e, ok := m.expenses[id]; !ok || e.OwnerID != ownerID {
		return expense.ErrNotFound
	}

	delete(m.expenses, id)

	return nil
}

func (m *memory) CreateTransfer(_ context.Context, t *transfer.Transfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateTransfer"); err != nil {
		return err
	}

	m.writes++

	cp := *t
	m.transfers[t.ID] = &cp

	return nil
}

func (m *memory) GetTransfer(_ context.Context, ownerID, id uuid.UUID) (*transfer.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transfers[id]
	if !ok || t.OwnerID != ownerID {
		return nil, transfer.ErrNotFound
	}

	cp := *t

	return &cp, nil
}

func (m *memory) ListTransfers(_ context.Context, ownerID uuid.UUID, filter transfer.ListFilter) ([]*transfer.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*transfer.Transfer

	for _, t := range m.transfers {
		if t.OwnerID != ownerID {
			continue
		}

		if filter.EnvelopeID != nil {
			id := *filter.EnvelopeID
			if t.SourceEnvelopeID != id && (t.DestEnvelopeID == nil || *t.DestEnvelopeID != id) {
				continue
			}
		}

		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}

		cp := *t
		out = append(out, &cp)
	}

	return out, nil
}

func (m *memory) UpdateStatus(_ context.Context, ownerID, id uuid.UUID, from, to transfer.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("UpdateStatus"); err != nil {
		return err
	}

	t, ok := m.transfers[id]
	if !ok || t.OwnerID != ownerID {
		return transfer.ErrNotFound
	}

	if t.Status != from {
		return transfer.ErrInvalidTransition
	}

	m.writes++
	t.Status = to

	return nil
}

func (m *memory) DeleteTransfer(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++

	if t, ok := m.transfers[id]; !ok || t.OwnerID != ownerID {
		return transfer.ErrNotFound
	}

	delete(m.transfers, id)

	return nil
}

func (m *memory) Credit(_ context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error) {
	return m.post(ownerID, accountID, account.Credit, amount, description, date)
}

func (m *memory) Debit(_ context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error) {
	return m.post(ownerID, accountID, account.Debit, amount, description, date)
}

func (m *memory) post(ownerID, accountID uuid.UUID, kind account.OperationKind, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(string(kind)); err != nil {
		return nil, err
	}

	bal, ok := m.accounts[accountID]
	if !ok {
		return nil, account.ErrNotFound
	}

	op := &account.Operation{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		AccountID:   accountID,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	next := bal.Add(op.Signed())
	if next.IsNegative() {
		return nil, account.ErrInsufficientFunds
	}

	m.writes++
	m.accounts[accountID] = next
	m.ops[op.ID] = op

	return op, nil
}
