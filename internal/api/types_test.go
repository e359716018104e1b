package api_test

import (
	"encoding/json"
	"testing"
	"time"

	"eventadmin/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalShapes(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2026-06-01T00:00:00Z"`, day},
		{"fractional seconds", `"2026-06-01T00:00:00.000Z"`, day},
		{"offset", `"2026-06-01T02:00:00+02:00"`, day},
		{"date only", `"2026-06-01"`, day},
		{"empty string", `""`, time.Time{}},
		{"null", `null`, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d api.Date
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &d))
			assert.True(t, d.Equal(tc.want), "got %v, want %v", d.Time, tc.want)
		})
	}
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d api.Date
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20260601`), &d))
}

func TestDate_MarshalSendsCalendarDate(t *testing.T) {
	out, err := json.Marshal(api.NewDate(time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-12"`, string(out))

	out, err = json.Marshal(api.Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestGuestCount_UnmarshalShapes(t *testing.T) {
	cases := []struct {
		raw  string
		want api.GuestCount
	}{
		{`120`, 120},
		{`120.0`, 120},
		{`"120"`, 120},
		{`" 45 "`, 45},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tc := range cases {
		var g api.GuestCount
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &g), tc.raw)
		assert.Equal(t, tc.want, g, tc.raw)
	}

	var g api.GuestCount
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &g))
	assert.Error(t, json.Unmarshal([]byte(`12.5`), &g))
}

func TestBooking_DecodesLenientPayload(t *testing.T) {
	raw := `{"_id":"b1","name":"Ada","eventDate":"2026-06-01","guestCount":"80","status":"pending"}`
	var b api.Booking
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, "2026-06-01", b.EventDate.String())
	assert.Equal(t, api.GuestCount(80), b.GuestCount)
	assert.Equal(t, api.BookingPending, b.Status)
}
