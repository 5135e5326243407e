package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day on the wire ("2026-03-09"). RFC 3339 timestamps are
// accepted on input and truncated to their date.
type Date struct {
	time.Time
}

func DateOf(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}

	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return nil
}
