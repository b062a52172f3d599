// Package gapi provides thin Google API wrappers for the two sources this
// tool reads: Sheets (event rows) and Drive (event images).
//
// Both clients authenticate with the same service-account credentials JSON,
// scoped read-only. The Sheets wrapper stringifies the loosely-typed cell
// values so the rest of the pipeline only handles [][]string.
package gapi
