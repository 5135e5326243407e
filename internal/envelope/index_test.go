package envelope_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
)

func env(label string, amount int64, created time.Time) *envelope.Envelope {
	return &envelope.Envelope{
		ID:            uuid.New(),
		Label:         label,
		InitialAmount: decimal.NewFromInt(amount),
		Date:          created,
		CreatedAt:     created,
		Version:       1,
	}
}

func TestIndex_ApplyReplacesNewerOnly(t *testing.T) {
	e := env("Salary", 500000, time.Now())
	ix := envelope.NewIndex(e)

	newer := *e
	newer.Version = 3
	newer.AvailableBalance = decimal.NewFromInt(300000)
	ix.Apply(&newer)

	stale := *e
	stale.Version = 2
	stale.AvailableBalance = decimal.NewFromInt(1)
	ix.Apply(&stale)

	got, ok := ix.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, 3, got.Version)
	assert.True(t, got.AvailableBalance.Equal(decimal.NewFromInt(300000)))
}

func TestIndex_ApplyTrashedRemoves(t *testing.T) {
	e := env("Salary", 500000, time.Now())
	ix := envelope.NewIndex(e)

	trashed := *e
	now := time.Now()
	trashed.DeletedAt = &now
	trashed.Version = 2
	ix.Apply(&trashed)

	_, ok := ix.Get(e.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, ix.Len())
}

func TestIndex_Sorted(t *testing.T) {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	a := env("a", 300, base)
	b := env("b", 100, base.Add(time.Hour))
	c := env("c", 200, base.Add(2*time.Hour))

	ix := envelope.NewIndex(a, b, c)

	assert.Equal(t, []*envelope.Envelope{c, b, a}, ix.Sorted(envelope.SortCreated, false))
	assert.Equal(t, []*envelope.Envelope{b, c, a}, ix.Sorted(envelope.SortAmount, true))
	assert.Equal(t, []*envelope.Envelope{a, c, b}, ix.Sorted(envelope.SortAmount, false))

	ix.Remove(c.ID)
	assert.Equal(t, 2, ix.Len())
}
