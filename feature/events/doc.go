// Package events holds the domain model for spreadsheet-sourced events and
// the reconciliation logic that decides what to do with each one.
//
// The pipeline is: raw headers → ColumnMap (flexible alias mapping), raw
// rows → Record (validated, normalized), Records × RemoteIndex → Plan
// (create / update / skip per record).
//
// # Identity
//
// A record and a remote event match when their identity keys collide:
// name|date|time, with the remote UTC start converted into the configured
// timezone first. Matching on the full localized timestamp is what lets the
// tool detect "this row already exists remotely" without persisting remote
// ids back into the sheet.
//
// # Updates
//
// An update is a full payload replacement. Optional fields that are empty in
// the sheet but populated remotely (teaser, description, image) are
// deliberately cleared rather than left stale.
package events
