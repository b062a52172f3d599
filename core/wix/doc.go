// Package wix wraps the Wix Events V3, Ticket Definitions and Site Media
// REST APIs behind a single authenticated client.
//
// # Retry Policy
//
// Every request runs through go-retryablehttp with a bounded-attempt loop:
// transport failures (timeouts, connection resets) and HTTP 429 are retried
// with exponential backoff (Retry-After honored); any other error status
// fails immediately and is surfaced as *APIError.
//
// # Pagination
//
// The events listing supports two paging schemes depending on what the
// platform returns. ListAllEvents follows pagingMetadata.nextCursor when
// present and otherwise steps an offset by the page length, stopping at the
// first empty page.
//
// # Media Uploads
//
// UploadImage implements the two-phase Site Media protocol: a
// generate-upload-url call followed by a raw PUT of the bytes to the
// returned URL.
package wix
