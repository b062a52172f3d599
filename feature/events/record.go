package events

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when optional numeric cells are blank or non-numeric.
const (
	DefaultCapacity         = 100
	DefaultRegistrationType = "RSVP"
)

// ValidRegistrationTypes is the allowed set after normalization.
var ValidRegistrationTypes = map[string]struct{}{
	"RSVP":            {},
	"TICKETING":       {},
	"EXTERNAL":        {},
	"NO_REGISTRATION": {},
}

// dateFormats are the accepted input layouts, tried in order.
var dateFormats = []string{"01/02/2006", "2006-01-02", "01-02-2006", "02/01/2006"}

// Record is the canonical, validated representation of one spreadsheet row.
// Dates are ISO-8601 and times 24-hour HH:MM by the time a Record exists.
type Record struct {
	Name             string
	EventType        string
	StartDate        string
	StartTime        string
	EndDate          string
	EndTime          string
	Location         string
	TicketPrice      float64
	Capacity         int
	RegistrationType string
	ImageURL         string
	Teaser           string
	Description      string
}

// ConvertDateToISO converts accepted date formats into ISO-8601 (yyyy-mm-dd).
// The first matching layout wins.
func ConvertDateToISO(dateStr string) (string, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unable to parse date %q, expected format MM/DD/YYYY or YYYY-MM-DD", dateStr)
}

// ParseRow turns one raw spreadsheet row into a validated Record.
//
// It returns (nil, nil) for rows that are silently excluded: entirely empty
// rows and rows with no name. A non-nil error marks a row-level validation
// failure; the caller logs it and continues with the remaining rows.
func ParseRow(row []string, cm ColumnMap, headerLen int) (*Record, error) {
	if len(row) < headerLen {
		padded := make([]string, headerLen)
		copy(padded, row)
		row = padded
	}

	allEmpty := true
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return nil, nil
	}

	col := func(field, fallback string) string {
		idx, ok := cm[field]
		if !ok || idx >= len(row) {
			return fallback
		}
		v := strings.TrimSpace(row[idx])
		if v == "" {
			return fallback
		}
		return v
	}

	name := col(FieldName, "")
	if name == "" {
		return nil, nil
	}

	rec := &Record{
		Name:             name,
		EventType:        col(FieldEventType, ""),
		StartDate:        col(FieldStartDate, ""),
		StartTime:        col(FieldStartTime, ""),
		Location:         col(FieldLocation, ""),
		RegistrationType: col(FieldRegistrationType, DefaultRegistrationType),
		ImageURL:         col(FieldImageURL, ""),
		Teaser:           col(FieldTeaser, ""),
		Description:      col(FieldDescription, ""),
	}
	rec.EndDate = col(FieldEndDate, rec.StartDate)
	rec.EndTime = col(FieldEndTime, rec.StartTime)

	// Non-numeric price is tolerated, not rejected.
	if price, err := strconv.ParseFloat(col(FieldTicketPrice, "0"), 64); err == nil {
		rec.TicketPrice = price
	}
	rec.Capacity = DefaultCapacity
	if capStr := col(FieldCapacity, ""); capStr != "" {
		if capacity, err := strconv.Atoi(capStr); err == nil {
			rec.Capacity = capacity
		}
	}

	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("row for %q: %w", name, err)
	}
	return rec, nil
}

// Validate normalizes the record in place and enforces the field constraints.
// After a successful return every identity-relevant field is populated and
// the registration type is in the allowed set.
func (r *Record) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location is required")
	}

	for _, d := range []struct {
		label string
		value *string
	}{
		{"start_date", &r.StartDate},
		{"end_date", &r.EndDate},
	} {
		v := strings.TrimSpace(*d.value)
		if v == "" {
			return fmt.Errorf("%s is required", d.label)
		}
		iso, err := ConvertDateToISO(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.label, err)
		}
		*d.value = iso
	}

	for _, tv := range []struct {
		label string
		value *string
	}{
		{"start_time", &r.StartTime},
		{"end_time", &r.EndTime},
	} {
		v := strings.TrimSpace(*tv.value)
		if v == "" {
			return fmt.Errorf("%s is required", tv.label)
		}
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("%s must be HH:MM (24-hour), got %q", tv.label, v)
		}
		*tv.value = v
	}

	reg := strings.ToUpper(strings.TrimSpace(r.RegistrationType))
	if reg == "" {
		reg = DefaultRegistrationType
	}
	// Legacy spreadsheets say TICKETS.
	if reg == "TICKETS" {
		reg = "TICKETING"
	}
	if _, ok := ValidRegistrationTypes[reg]; !ok {
		return fmt.Errorf("registration_type must be one of EXTERNAL, NO_REGISTRATION, RSVP, TICKETING, got %q", r.RegistrationType)
	}
	r.RegistrationType = reg

	if r.TicketPrice < 0 {
		r.TicketPrice = 0
	}
	if r.Capacity <= 0 {
		return fmt.Errorf("capacity must be greater than zero, got %d", r.Capacity)
	}

	r.EventType = strings.TrimSpace(r.EventType)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Teaser = strings.TrimSpace(r.Teaser)
	r.Description = strings.TrimSpace(r.Description)

	return nil
}
