package events

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sakuffo/event-automation/core/wix"
)

// ActionType classifies the reconciliation decision for one record.
type ActionType string

const (
	// ActionCreate creates a new remote event.
	ActionCreate ActionType = "create"
	// ActionUpdate replaces the mapped fields of an existing remote event.
	ActionUpdate ActionType = "update"
	// ActionSkip leaves an unchanged remote event alone.
	ActionSkip ActionType = "skip"
)

// Action is one planned operation for a source record.
type Action struct {
	// Type specifies the operation to perform.
	Type ActionType
	// Record is the validated source record.
	Record *Record
	// RemoteID is the matched remote event id (update and skip only).
	RemoteID string
	// Reason explains the decision, e.g. the field mismatches behind an
	// update or "unchanged" for a skip.
	Reason string
}

// PlanSummary provides aggregate counts for a reconcile plan.
type PlanSummary struct {
	Total   int
	Creates int
	Updates int
	Skips   int
}

// Plan contains the per-record decisions and aggregate counts for one run.
type Plan struct {
	Actions []Action
	Summary PlanSummary
}

// RemoteIndex maps identity keys to remote events for one run. It is built
// fresh from the full remote listing and discarded at end of run.
type RemoteIndex struct {
	byKey map[string]wix.Event

	// Total is the number of remote events seen.
	Total int
	// Indexed is the number admitted to the index. Events missing an id,
	// title or start timestamp cannot be matched and are excluded.
	Indexed int
}

// BuildRemoteIndex indexes remote events by identity key, converting each
// UTC start timestamp into loc so keys collide with local wall-clock keys.
func BuildRemoteIndex(remote []wix.Event, loc *time.Location, log *zap.Logger) *RemoteIndex {
	idx := &RemoteIndex{byKey: make(map[string]wix.Event, len(remote))}
	for _, ev := range remote {
		idx.Total++
		if ev.ID == "" || ev.Title == "" || ev.DateAndTimeSettings == nil || ev.DateAndTimeSettings.StartDate == "" {
			// Unmanaged or partial event; nothing to match against.
			continue
		}
		start, err := ParseRemoteTimestamp(ev.DateAndTimeSettings.StartDate)
		if err != nil {
			log.Warn("Skipping remote event with malformed start timestamp",
				zap.String("event_id", ev.ID),
				zap.String("title", ev.Title),
				zap.Error(err),
			)
			continue
		}
		local := start.In(loc)
		key := Key(ev.Title, local.Format("2006-01-02"), local.Format("15:04"))
		idx.byKey[key] = ev
		idx.Indexed++
	}
	return idx
}

// Lookup returns the remote event matching an identity key.
func (idx *RemoteIndex) Lookup(key string) (wix.Event, bool) {
	ev, ok := idx.byKey[key]
	return ev, ok
}

// BuildPlan classifies every record as create, update or skip against the
// remote index. Planning is read-only and idempotent: unchanged inputs
// always produce the same decisions.
func BuildPlan(records []*Record, idx *RemoteIndex, tz string, loc *time.Location) (*Plan, error) {
	plan := &Plan{Actions: make([]Action, 0, len(records))}
	plan.Summary.Total = len(records)

	for _, rec := range records {
		remote, ok := idx.Lookup(Key(rec.Name, rec.StartDate, rec.StartTime))
		if !ok {
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionCreate,
				Record: rec,
				Reason: "no matching remote event",
			})
			plan.Summary.Creates++
			continue
		}

		desired, err := BuildEventPayload(rec, tz, loc, nil)
		if err != nil {
			return nil, fmt.Errorf("build payload for %q: %w", rec.Name, err)
		}
		mismatches := DiffEvent(desired, &remote, rec.ImageURL != "")
		if len(mismatches) > 0 {
			plan.Actions = append(plan.Actions, Action{
				Type:     ActionUpdate,
				Record:   rec,
				RemoteID: remote.ID,
				Reason:   strings.Join(mismatches, ", "),
			})
			plan.Summary.Updates++
			continue
		}

		plan.Actions = append(plan.Actions, Action{
			Type:     ActionSkip,
			Record:   rec,
			RemoteID: remote.ID,
			Reason:   "unchanged",
		})
		plan.Summary.Skips++
	}
	return plan, nil
}

// DiffEvent compares every mapped field between the intended payload and the
// remote event's current state. Each mismatch is described with both values.
// Timestamp comparison normalizes both sides to the canonical UTC form so
// differing wire representations compare equal. The main image is compared
// by presence only.
func DiffEvent(desired, remote *wix.Event, wantImage bool) []string {
	var mismatches []string

	add := func(field, sheet, wixVal string) {
		mismatches = append(mismatches, fmt.Sprintf("%s: sheet=%q wix=%q", field, sheet, wixVal))
	}

	if desired.Title != remote.Title {
		add("title", desired.Title, remote.Title)
	}

	var remoteStart, remoteEnd, remoteTZ string
	if remote.DateAndTimeSettings != nil {
		remoteStart = remote.DateAndTimeSettings.StartDate
		remoteEnd = remote.DateAndTimeSettings.EndDate
		remoteTZ = remote.DateAndTimeSettings.TimeZoneID
	}
	if NormalizeUTC(desired.DateAndTimeSettings.StartDate) != NormalizeUTC(remoteStart) {
		add("startDate", desired.DateAndTimeSettings.StartDate, remoteStart)
	}
	if NormalizeUTC(desired.DateAndTimeSettings.EndDate) != NormalizeUTC(remoteEnd) {
		add("endDate", desired.DateAndTimeSettings.EndDate, remoteEnd)
	}
	if desired.DateAndTimeSettings.TimeZoneID != remoteTZ {
		add("timeZoneId", desired.DateAndTimeSettings.TimeZoneID, remoteTZ)
	}

	var remoteAddress string
	if remote.Location != nil && remote.Location.Address != nil {
		remoteAddress = remote.Location.Address.FormattedAddress
	}
	if desired.Location.Address.FormattedAddress != remoteAddress {
		add("location", desired.Location.Address.FormattedAddress, remoteAddress)
	}

	var remoteReg string
	if remote.Registration != nil {
		remoteReg = remote.Registration.InitialType
	}
	if desired.Registration.InitialType != remoteReg {
		add("registrationType", desired.Registration.InitialType, remoteReg)
	}

	if desired.ShortDescription != remote.ShortDescription {
		add("shortDescription", desired.ShortDescription, remote.ShortDescription)
	}
	if desired.DetailedDescription != remote.DetailedDescription {
		add("detailedDescription", desired.DetailedDescription, remote.DetailedDescription)
	}

	hasImage := remote.MainImage != nil
	if wantImage != hasImage {
		add("mainImage", fmt.Sprintf("present=%t", wantImage), fmt.Sprintf("present=%t", hasImage))
	}

	return mismatches
}
