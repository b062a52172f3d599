package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Event Name", "event_name"},
		{"  Start Date  ", "start_date"},
		{"ticket-price", "ticket_price"},
		{"LOCATION", "location"},
		{"Max Capacity", "max_capacity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.in))
	}
}

func TestBuildColumnMapCanonicalHeaders(t *testing.T) {
	headers := []string{
		"event_name", "event_type", "start_date", "start_time",
		"location", "ticket_price", "capacity", "registration_type",
	}
	cm := BuildColumnMap(headers)

	assert.Equal(t, 0, cm[FieldName])
	assert.Equal(t, 1, cm[FieldEventType])
	assert.Equal(t, 2, cm[FieldStartDate])
	assert.Equal(t, 3, cm[FieldStartTime])
	assert.Equal(t, 4, cm[FieldLocation])
	assert.Equal(t, 5, cm[FieldTicketPrice])
	assert.Equal(t, 6, cm[FieldCapacity])
	assert.Equal(t, 7, cm[FieldRegistrationType])
	assert.Empty(t, cm.MissingRequired())
}

func TestBuildColumnMapAliases(t *testing.T) {
	// A sheet using human spellings must map the same as canonical headers.
	headers := []string{"Event Name", "Date", "Time", "Venue", "Price", "Seats", "Photo", "Summary"}
	cm := BuildColumnMap(headers)

	assert.Equal(t, 0, cm[FieldName])
	assert.Equal(t, 1, cm[FieldStartDate])
	assert.Equal(t, 2, cm[FieldStartTime])
	assert.Equal(t, 3, cm[FieldLocation])
	assert.Equal(t, 4, cm[FieldTicketPrice])
	assert.Equal(t, 5, cm[FieldCapacity])
	assert.Equal(t, 6, cm[FieldImageURL])
	assert.Equal(t, 7, cm[FieldTeaser])
	assert.Empty(t, cm.MissingRequired())
}

func TestBuildColumnMapPermutedColumns(t *testing.T) {
	// Column order must not matter, only header names.
	headers := []string{"Location", "Time", "Date", "Title"}
	cm := BuildColumnMap(headers)

	assert.Equal(t, 0, cm[FieldLocation])
	assert.Equal(t, 1, cm[FieldStartTime])
	assert.Equal(t, 2, cm[FieldStartDate])
	assert.Equal(t, 3, cm[FieldName])
	assert.Empty(t, cm.MissingRequired())
}

func TestBuildColumnMapAliasPreference(t *testing.T) {
	// When both a canonical header and a weaker alias are present, the
	// earlier alias in the table wins.
	headers := []string{"name", "event_name", "date", "time", "location"}
	cm := BuildColumnMap(headers)

	require.Contains(t, cm, FieldName)
	assert.Equal(t, 1, cm[FieldName], "canonical alias is declared first and must win")
}

func TestMissingRequired(t *testing.T) {
	cm := BuildColumnMap([]string{"Event Name", "Date"})
	missing := cm.MissingRequired()

	assert.ElementsMatch(t, []string{FieldStartTime, FieldLocation}, missing)
}
