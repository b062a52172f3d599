package events

import (
	"time"

	"github.com/sakuffo/event-automation/core/wix"
)

// BuildEventPayload assembles the full platform payload for a record.
// image may be nil; the main image is only attached when the descriptor
// carries usable dimensions. Every mapped field is always present so an
// update replaces stale remote values instead of leaving them behind.
func BuildEventPayload(rec *Record, tz string, loc *time.Location, image *wix.FileDescriptor) (*wix.Event, error) {
	start, err := UTCTimestamp(rec.StartDate, rec.StartTime, loc)
	if err != nil {
		return nil, err
	}
	end, err := UTCTimestamp(rec.EndDate, rec.EndTime, loc)
	if err != nil {
		return nil, err
	}

	ev := &wix.Event{
		Title: rec.Name,
		DateAndTimeSettings: &wix.DateAndTimeSettings{
			DateAndTimeTbd: false,
			StartDate:      start,
			EndDate:        end,
			TimeZoneID:     tz,
		},
		Location: &wix.Location{
			Type:    "VENUE",
			Address: &wix.Address{FormattedAddress: rec.Location},
		},
		Registration:        &wix.Registration{InitialType: rec.RegistrationType},
		ShortDescription:    rec.Teaser,
		DetailedDescription: FormatDescriptionHTML(rec.Description),
	}

	if image != nil && image.ID != "" {
		if w, h := image.Dimensions(); w > 0 && h > 0 {
			ev.MainImage = &wix.MainImage{ID: image.ID, Width: w, Height: h}
		}
	}
	return ev, nil
}
