package gapi

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveClient downloads files from Google Drive using read-only
// service-account credentials.
type DriveClient struct {
	svc *drive.Service
	log *zap.Logger
}

// NewDriveClient builds a Drive client from a service-account JSON blob.
func NewDriveClient(ctx context.Context, credentialsJSON []byte, log *zap.Logger) (*DriveClient, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	svc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveClient{svc: svc, log: log}, nil
}

// GetFile downloads a Drive file's content along with its name and mime type.
func (c *DriveClient) GetFile(ctx context.Context, fileID string) (data []byte, name, mimeType string, err error) {
	meta, err := c.svc.Files.Get(fileID).Fields("name", "mimeType").Context(ctx).Do()
	if err != nil {
		return nil, "", "", fmt.Errorf("get drive metadata for %s: %w", fileID, err)
	}

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", "", fmt.Errorf("download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", "", fmt.Errorf("read drive file %s: %w", fileID, err)
	}

	c.log.Debug("Downloaded drive file",
		zap.String("file_id", fileID),
		zap.String("name", meta.Name),
		zap.Int("bytes", len(data)),
	)
	return data, meta.Name, meta.MimeType, nil
}
