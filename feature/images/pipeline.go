package images

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sakuffo/event-automation/core/wix"
)

// Downloader fetches file content plus name and mime type by file id.
// *gapi.DriveClient satisfies this.
type Downloader interface {
	GetFile(ctx context.Context, fileID string) (data []byte, name, mimeType string, err error)
}

// Uploader pushes image bytes to the events platform's media manager.
// *wix.Client satisfies this.
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, filename, mimeType string) (*wix.FileDescriptor, error)
}

// Drive file ids appear as a path segment, a query parameter, or bare.
var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]+)$`),
}

// ExtractDriveFileID pulls the file id out of a hosting URL or raw id.
// Returns "" when no pattern matches.
func ExtractDriveFileID(url string) string {
	for _, pattern := range driveIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// Stats counts cache activity for one run's final report.
type Stats struct {
	DriveHits   int
	DriveMisses int
	WixHits     int
	WixUploads  int
}

type download struct {
	data     []byte
	name     string
	mimeType string
}

// Pipeline moves images from the file host to the events platform with
// per-run caching: the same source file is downloaded and uploaded at most
// once per run, however many rows reference it. All failures are soft; a
// nil descriptor just means the event proceeds without an image.
type Pipeline struct {
	drive    Downloader
	media    Uploader
	log      *zap.Logger
	maxBytes int

	downloads map[string]download
	uploads   map[string]*wix.FileDescriptor
	stats     Stats
}

// NewPipeline creates a pipeline with empty caches and the standard upload
// ceiling.
func NewPipeline(drive Downloader, media Uploader, log *zap.Logger) *Pipeline {
	return &Pipeline{
		drive:     drive,
		media:     media,
		log:       log,
		maxBytes:  MaxUploadBytes,
		downloads: make(map[string]download),
		uploads:   make(map[string]*wix.FileDescriptor),
	}
}

// Stats returns the cache counters accumulated so far.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// AcquireAndUpload resolves an image URL to an uploaded media descriptor,
// or nil when any step fails or the URL is unusable.
func (p *Pipeline) AcquireAndUpload(ctx context.Context, imageURL, eventName string) *wix.FileDescriptor {
	if imageURL == "" {
		return nil
	}

	fileID := ExtractDriveFileID(imageURL)
	if fileID == "" {
		p.log.Warn("Unrecognized image URL, skipping image",
			zap.String("event", eventName), zap.String("url", imageURL))
		return nil
	}

	if descriptor, ok := p.uploads[fileID]; ok {
		p.stats.WixHits++
		p.log.Info("Reusing cached uploaded media", zap.String("event", eventName))
		return descriptor
	}

	dl, ok := p.downloads[fileID]
	if ok {
		p.stats.DriveHits++
	} else {
		p.stats.DriveMisses++
		data, name, mimeType, err := p.drive.GetFile(ctx, fileID)
		if err != nil {
			p.log.Error("Image download failed, skipping image",
				zap.String("event", eventName), zap.Error(err))
			return nil
		}
		dl = download{data: data, name: name, mimeType: mimeType}
		p.downloads[fileID] = dl
	}

	if !strings.HasPrefix(dl.mimeType, "image/") {
		p.log.Warn("Unsupported file type, skipping image",
			zap.String("event", eventName), zap.String("mime_type", dl.mimeType))
		return nil
	}

	prepared, filename, mimeType, resized, err := PrepareForUpload(dl.data, dl.name, dl.mimeType, p.maxBytes)
	if err != nil {
		p.log.Warn("Image exceeds upload limits, skipping image",
			zap.String("event", eventName), zap.Error(err))
		return nil
	}
	if resized {
		p.log.Info("Recompressed oversized image",
			zap.String("event", eventName),
			zap.String("filename", filename),
			zap.Int("bytes", len(prepared)),
		)
	}

	descriptor, err := p.media.UploadImage(ctx, prepared, filename, mimeType)
	if err != nil {
		p.log.Error("Image upload failed, skipping image",
			zap.String("event", eventName), zap.Error(err))
		return nil
	}

	p.stats.WixUploads++
	p.uploads[fileID] = descriptor
	p.log.Info("Uploaded image", zap.String("event", eventName), zap.String("media_id", descriptor.ID))
	return descriptor
}
