// Package images transfers event images from the file host to the events
// platform's media manager.
//
// The pipeline extracts a file id from the hosting URL, downloads the
// content, recompresses it if it exceeds the 25 MiB upload ceiling, and
// uploads it through the two-phase media protocol. Raw downloads and
// uploaded descriptors are cached per run, keyed by file id, so rows sharing
// an image cost one download and one upload.
//
// Every failure here is soft: the image is skipped and the event sync
// proceeds without it.
package images
