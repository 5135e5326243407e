package api_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "DateOnly", in: `"2026-03-09"`, want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339Truncated", in: `"2026-03-09T18:45:00+02:00"`, want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{name: "Empty", in: `""`},
		{name: "Garbage", in: `"09/03/2026"`, wantErr: true},
		{name: "NotAString", in: `20260309`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d api.Date

			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Time)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		D api.Date `json:"d"`
		Z api.Date `json:"z"`
	}{D: api.DateOf(time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC))})
	require.NoError(t, err)

	assert.JSONEq(t, `{"d":"2026-10-19","z":null}`, string(b))
}
