package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

func ids(envs []*envelope.Envelope) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(envs))
	for _, e := range envs {
		out = append(out, e.ID)
	}

	return out
}

func TestTrash_SoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	m := newMemory()
	svc := newLedger(m)
	envelopes := envelope.NewService(m)

	salary := mustEnvelope(t, svc, "Salary", 1000)
	other := mustEnvelope(t, svc, "Bonus", 300)

	rent, err := svc.RecordExpense(ctx, owner, ledger.RecordExpenseParams{EnvelopeID: &salary.ID, Label: "Rent", Amount: dec(400)})
	require.NoError(t, err)

	food, err := svc.RecordExpense(ctx, owner, ledger.RecordExpenseParams{EnvelopeID: &salary.ID, Label: "Food", Amount: dec(100)})
	require.NoError(t, err)

	// Trashed on its own earlier, so it must stay in the trash.
	earlier := time.Now().Add(-time.Hour)
	m.expenses[food.Expense.ID].DeletedAt = &earlier

	_, err = svc.Refresh(ctx, owner, salary.ID)
	require.NoError(t, err)
	assertAmount(t, 600, available(t, svc, salary.ID))

	require.NoError(t, envelopes.SoftDelete(ctx, owner, salary.ID))

	live, err := envelopes.List(ctx, owner, envelope.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other.ID}, ids(live))

	trashed, err := envelopes.ListDeleted(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{salary.ID}, ids(trashed))

	_, err = envelopes.Get(ctx, owner, salary.ID)
	assert.ErrorIs(t, err, envelope.ErrNotFound)
	assert.NotNil(t, m.expenses[rent.Expense.ID].DeletedAt)

	restored, err := envelopes.Restore(ctx, owner, salary.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)
	assertAmount(t, 1000, restored.InitialAmount)
	assertAmount(t, 600, restored.AvailableBalance)

	trashed, err = envelopes.ListDeleted(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, trashed)

	assert.Nil(t, m.expenses[rent.Expense.ID].DeletedAt)
	assert.Equal(t, &earlier, m.expenses[food.Expense.ID].DeletedAt)
	assertAmount(t, 600, available(t, svc, salary.ID))
}

func TestTrash_RestoreLiveEnvelope(t *testing.T) {
	ctx := context.Background()
	m := newMemory()
	svc := newLedger(m)
	env := mustEnvelope(t, svc, "Salary", 1000)

	_, err := envelope.NewService(m).Restore(ctx, owner, env.ID)
	assert.ErrorIs(t, err, envelope.ErrNotFound)
}
