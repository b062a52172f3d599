package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sakuffo/event-automation/core/logger"
	"github.com/sakuffo/event-automation/core/wix"
	"github.com/sakuffo/event-automation/feature/events"
	"github.com/sakuffo/event-automation/feature/images"
)

// EventAPI is the slice of the platform client the orchestrator drives.
type EventAPI interface {
	ListAllEvents(ctx context.Context, pageSize int) ([]wix.Event, error)
	CreateEvent(ctx context.Context, event *wix.Event) (*wix.Event, error)
	UpdateEvent(ctx context.Context, eventID string, event *wix.Event) (*wix.Event, error)
	CreateTicketDefinition(ctx context.Context, eventID, name string, price float64, capacity int, currency string) (*wix.TicketDefinition, error)
}

// RowSource reads the spreadsheet range. *gapi.SheetsClient satisfies this.
type RowSource interface {
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// ImageResolver resolves an image URL to uploaded media, nil on any soft
// failure. *images.Pipeline satisfies this.
type ImageResolver interface {
	AcquireAndUpload(ctx context.Context, imageURL, eventName string) *wix.FileDescriptor
	Stats() images.Stats
}

// Options control one sync run.
type Options struct {
	// SheetID and SheetRange locate the source rows.
	SheetID    string
	SheetRange string
	// Timezone is the IANA zone name sent in payloads; Location is its
	// loaded form used for conversions.
	Timezone string
	Location *time.Location
	// Delay is the courtesy pause after each mutating API call.
	Delay time.Duration
	// PageSize is the remote listing page size.
	PageSize int
	// AutoCreateTickets enables the ticket-definition sub-step after a
	// successful create of a priced TICKETING event.
	AutoCreateTickets bool
}

// Results collects per-record outcomes by name. The run is successful only
// when Failed is empty.
type Results struct {
	Created []string
	Updated []string
	Skipped []string
	Failed  []string
}

// Succeeded reports whether no record ended in the failed bucket.
func (r *Results) Succeeded() bool {
	return len(r.Failed) == 0
}

// Orchestrator sequences one sync run: fetch source rows, fetch the remote
// index, reconcile, apply per-record actions, report. All state it mutates
// (result buckets, image caches) lives for exactly one run.
type Orchestrator struct {
	api  EventAPI
	rows RowSource
	imgs ImageResolver
	log  *zap.Logger
	opts Options
}

// NewOrchestrator wires an orchestrator for a single run. Each run gets a
// fresh run id attached to every log line.
func NewOrchestrator(api EventAPI, rows RowSource, imgs ImageResolver, log *zap.Logger, opts Options) *Orchestrator {
	return &Orchestrator{
		api:  api,
		rows: rows,
		imgs: imgs,
		log:  logger.WithRun(log, uuid.NewString()),
		opts: opts,
	}
}

// FetchRecords reads the spreadsheet and returns every validated record.
// The run aborts when the range cannot be read or required columns are
// unmapped; individual bad rows are logged and dropped.
func (o *Orchestrator) FetchRecords(ctx context.Context) ([]*events.Record, error) {
	o.log.Info("Fetching events from spreadsheet",
		zap.String("sheet_id", o.opts.SheetID),
		zap.String("range", o.opts.SheetRange),
	)

	rows, err := o.rows.ReadRange(ctx, o.opts.SheetID, o.opts.SheetRange)
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet rows: %w", err)
	}
	if len(rows) == 0 {
		o.log.Warn("No data found in spreadsheet")
		return nil, nil
	}

	headers := rows[0]
	cm := events.BuildColumnMap(headers)
	if missing := cm.MissingRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	o.log.Info("Recognized columns", zap.Int("count", len(cm)))

	var records []*events.Record
	for _, row := range rows[1:] {
		rec, err := events.ParseRow(row, cm, len(headers))
		if err != nil {
			o.log.Error("Skipping invalid row", zap.Error(err))
			continue
		}
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}

	o.log.Info("Validated spreadsheet records", zap.Int("count", len(records)))
	return records, nil
}

// Run executes one full sync and returns the per-record outcomes. A non-nil
// error means a fatal step failed (source fetch, remote listing) and no
// per-record work happened beyond that point.
func (o *Orchestrator) Run(ctx context.Context) (*Results, error) {
	if o.opts.AutoCreateTickets {
		o.log.Info("Auto-ticket creation enabled")
	} else {
		o.log.Info("Auto-ticket creation disabled")
	}

	records, err := o.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	o.log.Info("Fetching existing remote events")
	remote, err := o.api.ListAllEvents(ctx, o.opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch remote events: %w", err)
	}
	index := events.BuildRemoteIndex(remote, o.opts.Location, o.log)
	o.log.Info("Indexed remote events",
		zap.Int("indexed", index.Indexed),
		zap.Int("total", index.Total),
	)

	plan, err := events.BuildPlan(records, index, o.opts.Timezone, o.opts.Location)
	if err != nil {
		return nil, fmt.Errorf("plan reconciliation: %w", err)
	}

	results := &Results{}
	for _, action := range plan.Actions {
		name := action.Record.Name
		switch action.Type {
		case events.ActionSkip:
			o.log.Info("Skipped event (unchanged)",
				zap.String("event", name),
				zap.String("date", action.Record.StartDate),
			)
			results.Skipped = append(results.Skipped, name)

		case events.ActionCreate:
			if err := o.createEvent(ctx, action.Record); err != nil {
				o.log.Error("Failed to create event", zap.String("event", name), zap.Error(err))
				results.Failed = append(results.Failed, name)
			} else {
				results.Created = append(results.Created, name)
			}
			o.pause()

		case events.ActionUpdate:
			o.log.Info("Updating changed event",
				zap.String("event", name),
				zap.String("changes", action.Reason),
			)
			if err := o.updateEvent(ctx, action); err != nil {
				o.log.Error("Failed to update event", zap.String("event", name), zap.Error(err))
				results.Failed = append(results.Failed, name)
			} else {
				results.Updated = append(results.Updated, name)
			}
			o.pause()
		}
	}

	o.report(results)
	return results, nil
}

// createEvent uploads the record's image (best effort), creates the event,
// and conditionally creates its ticket definition. Ticket failure does not
// fail the create.
func (o *Orchestrator) createEvent(ctx context.Context, rec *events.Record) error {
	descriptor := o.imgs.AcquireAndUpload(ctx, rec.ImageURL, rec.Name)

	payload, err := events.BuildEventPayload(rec, o.opts.Timezone, o.opts.Location, descriptor)
	if err != nil {
		return err
	}
	created, err := o.api.CreateEvent(ctx, payload)
	if err != nil {
		return err
	}
	o.log.Info("Created event", zap.String("event", rec.Name), zap.String("event_id", created.ID))

	wantsTicket := rec.RegistrationType == "TICKETING" && rec.TicketPrice > 0
	switch {
	case wantsTicket && o.opts.AutoCreateTickets:
		_, err := o.api.CreateTicketDefinition(ctx, created.ID, "General Admission", rec.TicketPrice, rec.Capacity, "")
		if err != nil {
			o.log.Warn("Ticket definition failed, event still exists",
				zap.String("event", rec.Name), zap.Error(err))
		} else {
			o.log.Info("Created ticket definition",
				zap.String("event", rec.Name),
				zap.Float64("price", rec.TicketPrice),
				zap.Int("capacity", rec.Capacity),
			)
		}
	case rec.RegistrationType == "TICKETING" && !o.opts.AutoCreateTickets:
		o.log.Info("Ticket creation skipped by flag", zap.String("event", rec.Name))
	}

	return nil
}

// updateEvent uploads the record's image (best effort) and replaces the
// remote event's mapped fields.
func (o *Orchestrator) updateEvent(ctx context.Context, action events.Action) error {
	rec := action.Record
	descriptor := o.imgs.AcquireAndUpload(ctx, rec.ImageURL, rec.Name)

	payload, err := events.BuildEventPayload(rec, o.opts.Timezone, o.opts.Location, descriptor)
	if err != nil {
		return err
	}
	if _, err := o.api.UpdateEvent(ctx, action.RemoteID, payload); err != nil {
		return err
	}
	o.log.Info("Updated event", zap.String("event", rec.Name), zap.String("event_id", action.RemoteID))
	return nil
}

// pause applies the courtesy rate-limit delay after a mutating call.
func (o *Orchestrator) pause() {
	if o.opts.Delay > 0 {
		time.Sleep(o.opts.Delay)
	}
}

// report logs the final summary: outcome counts, the names in each bucket,
// and image cache statistics.
func (o *Orchestrator) report(results *Results) {
	o.log.Info("Sync complete",
		zap.Int("created", len(results.Created)),
		zap.Int("updated", len(results.Updated)),
		zap.Int("skipped", len(results.Skipped)),
		zap.Int("failed", len(results.Failed)),
	)
	for _, name := range results.Created {
		o.log.Info("Created", zap.String("event", name))
	}
	for _, name := range results.Updated {
		o.log.Info("Updated", zap.String("event", name))
	}
	for _, name := range results.Skipped {
		o.log.Info("Skipped", zap.String("event", name))
	}
	for _, name := range results.Failed {
		o.log.Error("Failed", zap.String("event", name))
	}

	stats := o.imgs.Stats()
	o.log.Info("Image cache summary",
		zap.Int("drive_hits", stats.DriveHits),
		zap.Int("drive_misses", stats.DriveMisses),
		zap.Int("media_hits", stats.WixHits),
		zap.Int("media_uploads", stats.WixUploads),
	)
}
