// Package statement parses bank statement CSV exports into signed entries.
// The column layout is detected from the header row.
package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/encoding"
)

var ErrUnknownFormat = errors.New("no matching statement format found")

// Entry is one statement line. Amount is negative for money leaving the account.
type Entry struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the entries and the name of the matched profile.
func (p *Parser) Parse(r io.Reader) ([]Entry, string, error) {
	text, err := encoding.Open(r)
	if err != nil {
		return nil, "", fmt.Errorf("detect encoding: %w", err)
	}

	slog.Debug("statement charset", "charset", text.Charset, "bom", text.BOM, "guessed", text.Guessed)

	reader := csv.NewReader(text)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, "", ErrUnknownFormat
	}

	entries, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	if err != nil {
		return nil, "", err
	}

	return entries, profile.Name, nil
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// Rows without a parseable date or with a zero amount are footers and are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Entry, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var entries []Entry

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, dateIdx), p.DateLayouts)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		entries = append(entries, Entry{Date: date, Description: desc, Amount: amount})
	}

	return entries, nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func rowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool) {
	switch p.AmountMode {
	case amountSingle:
		return nonZero(cellValue(row, cols[p.AmountCol]))
	case amountSplit:
		if d, ok := nonZero(cellValue(row, cols[p.DebitCol])); ok {
			return d.Abs().Neg(), true
		}

		if d, ok := nonZero(cellValue(row, cols[p.CreditCol])); ok {
			return d.Abs(), true
		}
	}

	return decimal.Zero, false
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
