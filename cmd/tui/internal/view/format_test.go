package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0,00"},
		{in: "999.5", want: "999,50"},
		{in: "1000", want: "1 000,00"},
		{in: "250000", want: "250 000,00"},
		{in: "-1234567.891", want: "-1 234 567,89"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := parseAmount(" 12 500,75 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12500.75")))

	_, err = parseAmount("douze")
	assert.Error(t, err)
}
