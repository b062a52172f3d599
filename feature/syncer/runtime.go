package syncer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sakuffo/event-automation/core/config"
	"github.com/sakuffo/event-automation/core/gapi"
	"github.com/sakuffo/event-automation/core/wix"
	"github.com/sakuffo/event-automation/feature/images"
)

// Runtime holds the fully wired clients for one process. The cmd layer
// builds one Runtime from configuration and hands it to whichever command
// is running.
type Runtime struct {
	Config *config.Config
	Wix    *wix.Client
	Sheets *gapi.SheetsClient
	Drive  *gapi.DriveClient
	Log    *zap.Logger
}

// NewRuntime validates the configuration and constructs every client the
// commands need.
func NewRuntime(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Runtime, error) {
	if err := cfg.EnsureValid(); err != nil {
		return nil, err
	}

	wixClient, err := wix.NewClient(cfg.Wix, log)
	if err != nil {
		return nil, err
	}

	credentials := []byte(cfg.Google.Credentials)
	sheetsClient, err := gapi.NewSheetsClient(ctx, credentials, log)
	if err != nil {
		return nil, err
	}
	driveClient, err := gapi.NewDriveClient(ctx, credentials, log)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Config: cfg,
		Wix:    wixClient,
		Sheets: sheetsClient,
		Drive:  driveClient,
		Log:    log,
	}, nil
}

// NewOrchestrator assembles a single-run orchestrator from the runtime's
// clients and sync settings.
func (r *Runtime) NewOrchestrator(autoCreateTickets bool) (*Orchestrator, error) {
	loc, err := time.LoadLocation(r.Config.Sync.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", r.Config.Sync.Timezone, err)
	}

	pipeline := images.NewPipeline(r.Drive, r.Wix, r.Log)
	opts := Options{
		SheetID:           r.Config.Google.SheetID,
		SheetRange:        r.Config.Google.SheetRange,
		Timezone:          r.Config.Sync.Timezone,
		Location:          loc,
		Delay:             time.Duration(r.Config.Sync.RequestDelayMS) * time.Millisecond,
		PageSize:          r.Config.Sync.PageSize,
		AutoCreateTickets: autoCreateTickets,
	}
	return NewOrchestrator(r.Wix, r.Sheets, pipeline, r.Log, opts), nil
}
