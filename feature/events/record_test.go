package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumnMap() ColumnMap {
	return BuildColumnMap([]string{
		"event_name", "start_date", "start_time", "location",
		"registration_type", "ticket_price", "capacity", "end_date", "end_time",
	})
}

func testRow(name, date, timeStr, location, regType, price, capacity string) []string {
	return []string{name, date, timeStr, location, regType, price, capacity, "", ""}
}

func TestConvertDateToISO(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"us slash", "12/25/2025", "2025-12-25", false},
		{"iso", "2025-12-25", "2025-12-25", false},
		{"us dash", "12-25-2025", "2025-12-25", false},
		{"day first when month invalid", "13/05/2025", "2025-05-13", false},
		{"ambiguous resolves us first", "03/04/2025", "2025-03-04", false},
		{"garbage", "next tuesday", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertDateToISO(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRowValid(t *testing.T) {
	cm := testColumnMap()
	row := testRow("Jazz Night", "12/25/2025", "19:00", "Main Hall", "RSVP", "0", "50")

	rec, err := ParseRow(row, cm, len(row))
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Jazz Night", rec.Name)
	assert.Equal(t, "2025-12-25", rec.StartDate)
	assert.Equal(t, "19:00", rec.StartTime)
	assert.Equal(t, "Main Hall", rec.Location)
	assert.Equal(t, "RSVP", rec.RegistrationType)
	assert.Equal(t, 50, rec.Capacity)
	// End date and time fall back to the start values.
	assert.Equal(t, "2025-12-25", rec.EndDate)
	assert.Equal(t, "19:00", rec.EndTime)
}

func TestParseRowSilentSkips(t *testing.T) {
	cm := testColumnMap()

	tests := []struct {
		name string
		row  []string
	}{
		{"entirely empty", []string{"", "", "", "", "", "", "", "", ""}},
		{"whitespace only", []string{"  ", "\t", "", "", "", "", "", "", ""}},
		{"no name", testRow("", "12/25/2025", "19:00", "Main Hall", "", "", "")},
		{"short empty row", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRow(tt.row, cm, 9)
			assert.NoError(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestParseRowValidationFailures(t *testing.T) {
	cm := testColumnMap()

	tests := []struct {
		name string
		row  []string
	}{
		{"bad date", testRow("Gig", "someday", "19:00", "Hall", "", "", "")},
		{"bad time", testRow("Gig", "12/25/2025", "7pm", "Hall", "", "", "")},
		{"12-hour time", testRow("Gig", "12/25/2025", "7:00 PM", "Hall", "", "", "")},
		{"missing location", testRow("Gig", "12/25/2025", "19:00", "", "", "", "")},
		{"missing date", testRow("Gig", "", "19:00", "Hall", "", "", "")},
		{"unknown registration", testRow("Gig", "12/25/2025", "19:00", "Hall", "WALK_IN", "", "")},
		{"zero capacity", testRow("Gig", "12/25/2025", "19:00", "Hall", "", "", "0")},
		{"negative capacity", testRow("Gig", "12/25/2025", "19:00", "Hall", "", "", "-5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRow(tt.row, cm, 9)
			assert.Error(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestParseRowDefaults(t *testing.T) {
	cm := testColumnMap()

	rec, err := ParseRow(testRow("Gig", "12/25/2025", "19:00", "Hall", "", "", ""), cm, 9)
	require.NoError(t, err)

	assert.Equal(t, "RSVP", rec.RegistrationType)
	assert.Equal(t, DefaultCapacity, rec.Capacity)
	assert.Zero(t, rec.TicketPrice)
}

func TestParseRowNumericTolerance(t *testing.T) {
	cm := testColumnMap()

	// Non-numeric price becomes zero, non-numeric capacity becomes default.
	rec, err := ParseRow(testRow("Gig", "12/25/2025", "19:00", "Hall", "", "free", "lots"), cm, 9)
	require.NoError(t, err)
	assert.Zero(t, rec.TicketPrice)
	assert.Equal(t, DefaultCapacity, rec.Capacity)

	// Negative price clamps to zero.
	rec, err = ParseRow(testRow("Gig", "12/25/2025", "19:00", "Hall", "", "-10", "25"), cm, 9)
	require.NoError(t, err)
	assert.Zero(t, rec.TicketPrice)
	assert.Equal(t, 25, rec.Capacity)
}

func TestValidateRegistrationTypeNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rsvp", "RSVP"},
		{"Ticketing", "TICKETING"},
		{"TICKETS", "TICKETING"},
		{"tickets", "TICKETING"},
		{"external", "EXTERNAL"},
		{"no_registration", "NO_REGISTRATION"},
		{"", "RSVP"},
	}

	for _, tt := range tests {
		rec := &Record{
			Name:             "Gig",
			StartDate:        "2025-12-25",
			StartTime:        "19:00",
			EndDate:          "2025-12-25",
			EndTime:          "21:00",
			Location:         "Hall",
			Capacity:         10,
			RegistrationType: tt.in,
		}
		require.NoError(t, rec.Validate(), "registration type %q", tt.in)
		assert.Equal(t, tt.want, rec.RegistrationType)
	}
}

func TestParseRowShorterThanHeader(t *testing.T) {
	// Sheets drops trailing empty cells; the row must be padded, not rejected.
	cm := testColumnMap()
	row := []string{"Gig", "12/25/2025", "19:00", "Hall"}

	rec, err := ParseRow(row, cm, 9)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "RSVP", rec.RegistrationType)
	assert.Equal(t, DefaultCapacity, rec.Capacity)
}
