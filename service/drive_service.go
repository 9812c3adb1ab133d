package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance.
// credentialsJSON takes precedence over credentialsPath when both are set.
func NewDriveService(ctx context.Context, credentialsPath, credentialsJSON string) (*DriveService, error) {
	var opt option.ClientOption
	switch {
	case credentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	case credentialsPath != "":
		// option.WithCredentialsFile automatically handles Service Account authentication
		opt = option.WithCredentialsFile(credentialsPath)
	default:
		return nil, fmt.Errorf("no Google credentials configured")
	}

	driveService, err := drive.NewService(ctx, opt, option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// UploadFile creates a file in a Drive folder and returns its file id
func (ds *DriveService) UploadFile(ctx context.Context, folderID, name, mimeType string, data []byte) (string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{folderID},
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id, name").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", name, err)
	}

	log.Printf("✓ Uploaded %s to Drive (id=%s)", created.Name, created.Id)
	return created.Id, nil
}
