package view

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/export"
)

// Period is a named span of days the expense list and the export are limited to.
type Period int

const (
	PeriodThisMonth Period = iota
	PeriodLastMonth
	PeriodThisQuarter
	PeriodThisYear
	PeriodLastYear
	PeriodAll
	PeriodCustom
)

var periodLabels = map[Period]string{
	PeriodThisMonth:   "Ce mois-ci",
	PeriodLastMonth:   "Mois dernier",
	PeriodThisQuarter: "Ce trimestre",
	PeriodThisYear:    "Cette année",
	PeriodLastYear:    "Année dernière",
	PeriodAll:         "Tout",
	PeriodCustom:      "Dates choisies",
}

func (p Period) String() string {
	return periodLabels[p]
}

// DateRange bounds a listing by day, both ends included. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// Range resolves p around today. PeriodAll and PeriodCustom are unbounded.
func (p Period) Range(today time.Time) DateRange {
	y, m, _ := today.Date()

	switch p {
	case PeriodThisMonth:
		return DateRange{From: day(y, m, 1), To: day(y, m+1, 0)}
	case PeriodLastMonth:
		return DateRange{From: day(y, m-1, 1), To: day(y, m, 0)}
	case PeriodThisQuarter:
		first := m - (m-1)%3
		return DateRange{From: day(y, first, 1), To: day(y, first+3, 0)}
	case PeriodThisYear:
		return DateRange{From: day(y, time.January, 1), To: day(y, time.December, 31)}
	case PeriodLastYear:
		return DateRange{From: day(y-1, time.January, 1), To: day(y-1, time.December, 31)}
	}

	return DateRange{}
}

func (r DateRange) String() string {
	switch {
	case r.From == nil:
		return "Tout"
	case r.To == nil:
		return "Depuis le " + FormatDate(*r.From)
	}

	return FormatDate(*r.From) + " → " + FormatDate(*r.To)
}

func (r DateRange) expenseFilter() expense.ListFilter {
	return expense.ListFilter{StartDate: r.From, EndDate: r.To, SortBy: expense.SortDate}
}

func (r DateRange) exportFilter(receipts bool) export.Filter {
	return export.Filter{StartDate: r.From, EndDate: r.To, IncludeReceipts: receipts}
}

// PeriodSelectedMsg is sent once the period form is submitted.
type PeriodSelectedMsg struct {
	Range DateRange
}

type periodInput struct {
	period Period
	from   string
	to     string
}

// validateTo accepts an empty end, which leaves the range open.
func (in *periodInput) validateTo(s string) error {
	if s == "" {
		return nil
	}

	if err := validateDate(s); err != nil {
		return err
	}

	// ISO dates order lexically.
	if s < in.from {
		return errors.New("la fin précède le début")
	}

	return nil
}

func (in *periodInput) dateRange(today time.Time) DateRange {
	if in.period != PeriodCustom {
		return in.period.Range(today)
	}

	var r DateRange

	if t, err := time.Parse(time.DateOnly, in.from); err == nil {
		r.From = &t
	}

	if t, err := time.Parse(time.DateOnly, in.to); err == nil {
		r.To = &t
	}

	return r
}

// periodPicker asks for a Period, then for explicit dates when it is PeriodCustom.
type periodPicker struct {
	form  *huh.Form
	input *periodInput
}

func newPeriodPicker(initial Period) periodPicker {
	in := &periodInput{period: initial}

	options := make([]huh.Option[Period], 0, len(periodLabels))
	for p := PeriodThisMonth; p <= PeriodCustom; p++ {
		options = append(options, huh.NewOption(p.String(), p))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Period]().
				Title("Période").
				Options(options...).
				Value(&in.period),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Du").
				Placeholder("AAAA-MM-JJ").
				Value(&in.from).
				Validate(validateDate),
			huh.NewInput().
				Title("Au").
				Description("Vide : sans date de fin").
				Placeholder("AAAA-MM-JJ").
				Value(&in.to).
				Validate(in.validateTo),
		).WithHideFunc(func() bool { return in.period != PeriodCustom }),
	).WithWidth(40).WithShowHelp(false)

	return periodPicker{form: form, input: in}
}

func (p periodPicker) Init() tea.Cmd {
	return p.form.Init()
}

// Update forwards msg to the form and emits PeriodSelectedMsg once it completes.
func (p periodPicker) Update(msg tea.Msg) (periodPicker, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	r := p.input.dateRange(time.Now())

	return p, func() tea.Msg { return PeriodSelectedMsg{Range: r} }
}

// reset starts the form over from the last chosen period.
func (p periodPicker) reset() periodPicker {
	return newPeriodPicker(p.input.period)
}

func (p periodPicker) View() string {
	return p.form.View()
}
