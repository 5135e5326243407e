package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer"
)

func testEnvelope(label string, amount string, status envelope.Status, day int) *envelope.Envelope {
	return &envelope.Envelope{
		ID:               uuid.New(),
		Label:            label,
		InitialAmount:    decimal.RequireFromString(amount),
		AvailableBalance: decimal.RequireFromString(amount),
		Status:           status,
		Date:             time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		CreatedAt:        time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC),
	}
}

func loadedEnvelopes(t *testing.T, envs ...*envelope.Envelope) EnvelopesModel {
	t.Helper()

	m := NewEnvelopesModel(CommonModel{Owner: uuid.New()}, nil, nil)
	next, _ := m.Update(envelopesLoadedMsg{envs: envs})

	out, ok := next.(EnvelopesModel)
	require.True(t, ok)

	return out
}

func labels(envs []*envelope.Envelope) []string {
	out := make([]string, 0, len(envs))
	for _, e := range envs {
		out = append(out, e.Label)
	}

	return out
}

func TestEnvelopesModel_FilterAndSort(t *testing.T) {
	m := loadedEnvelopes(t,
		testEnvelope("Salaire", "2500", envelope.StatusReceived, 1),
		testEnvelope("Prime", "400", envelope.StatusPlanned, 15),
		testEnvelope("Loyer", "750", envelope.StatusReceived, 5),
	)

	assert.Equal(t, []string{"Prime", "Loyer", "Salaire"}, labels(m.rows))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(EnvelopesModel)
	assert.Equal(t, []string{"Loyer", "Salaire"}, labels(m.rows))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = next.(EnvelopesModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = next.(EnvelopesModel)
	assert.Equal(t, envelope.SortAmount, envelopeSorts[m.sortIdx])
	assert.Equal(t, []string{"Salaire", "Loyer"}, labels(m.rows))
}

func TestEnvelopesModel_ChangeUpdatesIndex(t *testing.T) {
	salary := testEnvelope("Salaire", "2500", envelope.StatusReceived, 1)
	m := loadedEnvelopes(t, salary)

	validated := *salary
	validated.BankValidated = true

	next, cmd := m.Update(envelopeChangedMsg{env: &validated})
	m = next.(EnvelopesModel)
	assert.Nil(t, cmd)
	require.Len(t, m.rows, 1)
	assert.True(t, m.rows[0].BankValidated)
	assert.Equal(t, "✓", m.table.Rows()[0][5])
}

func TestImportModel_ToggleSkip(t *testing.T) {
	m := NewImportModel(CommonModel{Owner: uuid.New()}, nil, nil, nil)

	next, _ := m.Update(previewMsg{preview: &importer.Preview{
		Profile: "banque",
		Drafts: []importer.Draft{
			{Kind: importer.KindExpense, Label: "Boulangerie", Amount: decimal.NewFromInt(4)},
			{Kind: importer.KindIncome, Label: "Salaire", Amount: decimal.NewFromInt(2500), Skip: true},
		},
	}})
	m = next.(ImportModel)
	require.Equal(t, importStateDrafts, m.state)
	assert.False(t, m.skipped[0])
	assert.True(t, m.skipped[1])

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(ImportModel)
	assert.True(t, m.skipped[0])

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m = next.(ImportModel)
	assert.False(t, m.skipped[0])
	assert.False(t, m.skipped[1])
}
