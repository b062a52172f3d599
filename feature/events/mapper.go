package events

import "strings"

// Canonical field names spreadsheet headers are mapped onto.
const (
	FieldName             = "event_name"
	FieldEventType        = "event_type"
	FieldStartDate        = "start_date"
	FieldStartTime        = "start_time"
	FieldEndDate          = "end_date"
	FieldEndTime          = "end_time"
	FieldLocation         = "location"
	FieldTicketPrice      = "ticket_price"
	FieldCapacity         = "capacity"
	FieldRegistrationType = "registration_type"
	FieldImageURL         = "image_url"
	FieldTeaser           = "teaser"
	FieldDescription      = "description"
)

// FieldAliases pairs a canonical field with the header spellings it accepts,
// in preference order.
type FieldAliases struct {
	Field   string
	Aliases []string
}

// ColumnAliases is the alias table, in declared order. When two fields claim
// the same header (e.g. "type"), the earlier field wins the earlier column;
// there is no further collision resolution.
var ColumnAliases = []FieldAliases{
	{FieldName, []string{"event_name", "event name", "name", "title"}},
	{FieldEventType, []string{"event_type", "event type", "type", "category"}},
	{FieldStartDate, []string{"start_date", "start date", "date", "event date"}},
	{FieldStartTime, []string{"start_time", "start time", "time"}},
	{FieldEndDate, []string{"end_date", "end date"}},
	{FieldEndTime, []string{"end_time", "end time"}},
	{FieldLocation, []string{"location", "venue", "place", "address"}},
	{FieldTicketPrice, []string{"ticket_price", "ticket price", "price", "cost"}},
	{FieldCapacity, []string{"capacity", "max capacity", "max_capacity", "seats"}},
	{FieldRegistrationType, []string{"registration_type", "registration type", "reg type", "type"}},
	{FieldImageURL, []string{"image_url", "image url", "image", "photo", "picture"}},
	{FieldTeaser, []string{"short_description", "short description", "teaser", "summary"}},
	{FieldDescription, []string{"detailed_description", "detailed description", "desc", "details"}},
}

// RequiredFields must all be mapped before any row is processed.
var RequiredFields = []string{FieldName, FieldStartDate, FieldStartTime, FieldLocation}

// ColumnMap maps canonical field names to spreadsheet column indices.
type ColumnMap map[string]int

// NormalizeHeader lowercases a header and collapses spaces/hyphens to
// underscores so spelling variants compare equal.
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "_")
	return strings.ReplaceAll(h, "-", "_")
}

// BuildColumnMap resolves headers against the alias table. For each field the
// first alias present among the normalized headers wins, taking the first
// matching column.
func BuildColumnMap(headers []string) ColumnMap {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	cm := make(ColumnMap)
	for _, fa := range ColumnAliases {
		for _, alias := range fa.Aliases {
			want := NormalizeHeader(alias)
			idx := -1
			for i, h := range normalized {
				if h == want {
					idx = i
					break
				}
			}
			if idx >= 0 {
				cm[fa.Field] = idx
				break
			}
		}
	}
	return cm
}

// MissingRequired returns the canonical names of required fields that the
// headers did not provide. A non-empty result aborts the run.
func (m ColumnMap) MissingRequired() []string {
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := m[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
