package images

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sakuffo/event-automation/core/wix"
)

type fakeDrive struct {
	getFileFn func(ctx context.Context, fileID string) ([]byte, string, string, error)
	calls     int
}

func (f *fakeDrive) GetFile(ctx context.Context, fileID string) ([]byte, string, string, error) {
	f.calls++
	return f.getFileFn(ctx, fileID)
}

type fakeMedia struct {
	uploadFn func(ctx context.Context, data []byte, filename, mimeType string) (*wix.FileDescriptor, error)
	calls    int
}

func (f *fakeMedia) UploadImage(ctx context.Context, data []byte, filename, mimeType string) (*wix.FileDescriptor, error) {
	f.calls++
	return f.uploadFn(ctx, data, filename, mimeType)
}

func happyDrive() *fakeDrive {
	return &fakeDrive{getFileFn: func(ctx context.Context, fileID string) ([]byte, string, string, error) {
		return []byte("jpeg bytes"), "poster.jpg", "image/jpeg", nil
	}}
}

func happyMedia() *fakeMedia {
	return &fakeMedia{uploadFn: func(ctx context.Context, data []byte, filename, mimeType string) (*wix.FileDescriptor, error) {
		return &wix.FileDescriptor{ID: "media-1"}, nil
	}}
}

func TestExtractDriveFileID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"share link", "https://drive.google.com/file/d/1AbC_d-EF/view?usp=sharing", "1AbC_d-EF"},
		{"open link", "https://drive.google.com/open?id=1AbC_d-EF", "1AbC_d-EF"},
		{"uc link", "https://drive.google.com/uc?export=view&id=1AbC_d-EF", "1AbC_d-EF"},
		{"bare id", "1AbC_d-EF", "1AbC_d-EF"},
		{"unrelated url", "https://example.com/poster.jpg", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDriveFileID(tt.url))
		})
	}
}

func TestAcquireAndUploadHappyPath(t *testing.T) {
	drive, media := happyDrive(), happyMedia()
	p := NewPipeline(drive, media, zap.NewNop())

	descriptor := p.AcquireAndUpload(context.Background(), "https://drive.google.com/file/d/abc123/view", "Gig")
	require.NotNil(t, descriptor)
	assert.Equal(t, "media-1", descriptor.ID)
	assert.Equal(t, Stats{DriveMisses: 1, WixUploads: 1}, p.Stats())
}

func TestAcquireAndUploadCachesPerFile(t *testing.T) {
	drive, media := happyDrive(), happyMedia()
	p := NewPipeline(drive, media, zap.NewNop())

	// Two rows sharing one poster, via different URL spellings of the same id.
	first := p.AcquireAndUpload(context.Background(), "https://drive.google.com/file/d/abc123/view", "Gig A")
	second := p.AcquireAndUpload(context.Background(), "https://drive.google.com/open?id=abc123", "Gig B")

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, 1, drive.calls)
	assert.Equal(t, 1, media.calls)
	assert.Equal(t, Stats{DriveMisses: 1, WixUploads: 1, WixHits: 1}, p.Stats())
}

func TestAcquireAndUploadSoftFailures(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		drive *fakeDrive
		media *fakeMedia
	}{
		{
			name:  "empty url",
			url:   "",
			drive: happyDrive(),
			media: happyMedia(),
		},
		{
			name:  "unrecognized url",
			url:   "https://example.com/poster.jpg",
			drive: happyDrive(),
			media: happyMedia(),
		},
		{
			name: "download error",
			url:  "abc123",
			drive: &fakeDrive{getFileFn: func(ctx context.Context, fileID string) ([]byte, string, string, error) {
				return nil, "", "", errors.New("drive unavailable")
			}},
			media: happyMedia(),
		},
		{
			name: "not an image",
			url:  "abc123",
			drive: &fakeDrive{getFileFn: func(ctx context.Context, fileID string) ([]byte, string, string, error) {
				return []byte("%PDF-1.7"), "flyer.pdf", "application/pdf", nil
			}},
			media: happyMedia(),
		},
		{
			name:  "upload error",
			url:   "abc123",
			drive: happyDrive(),
			media: &fakeMedia{uploadFn: func(ctx context.Context, data []byte, filename, mimeType string) (*wix.FileDescriptor, error) {
				return nil, errors.New("media manager down")
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(tt.drive, tt.media, zap.NewNop())
			descriptor := p.AcquireAndUpload(context.Background(), tt.url, "Gig")
			assert.Nil(t, descriptor)
		})
	}
}

func TestAcquireAndUploadOversizedUnshrinkable(t *testing.T) {
	// Content over the ceiling that cannot be decoded as an image is skipped,
	// not fatal.
	drive := &fakeDrive{getFileFn: func(ctx context.Context, fileID string) ([]byte, string, string, error) {
		return []byte("claims to be an image but is not"), "poster.jpg", "image/jpeg", nil
	}}
	media := happyMedia()

	p := NewPipeline(drive, media, zap.NewNop())
	p.maxBytes = 8

	descriptor := p.AcquireAndUpload(context.Background(), "abc123", "Gig")
	assert.Nil(t, descriptor)
	assert.Equal(t, 0, media.calls)
}

func TestAcquireAndUploadReusesDownloadAfterUploadFailure(t *testing.T) {
	drive := happyDrive()
	uploadAttempts := 0
	media := &fakeMedia{uploadFn: func(ctx context.Context, data []byte, filename, mimeType string) (*wix.FileDescriptor, error) {
		uploadAttempts++
		if uploadAttempts == 1 {
			return nil, errors.New("transient")
		}
		return &wix.FileDescriptor{ID: "media-2"}, nil
	}}

	p := NewPipeline(drive, media, zap.NewNop())

	assert.Nil(t, p.AcquireAndUpload(context.Background(), "abc123", "Gig"))
	descriptor := p.AcquireAndUpload(context.Background(), "abc123", "Gig")
	require.NotNil(t, descriptor)

	// The raw bytes were cached; only the upload was repeated.
	assert.Equal(t, 1, drive.calls)
	assert.Equal(t, 2, media.calls)
	assert.Equal(t, Stats{DriveMisses: 1, DriveHits: 1, WixUploads: 1}, p.Stats())
}
