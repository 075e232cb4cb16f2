package filestorage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

type googleDrive struct {
	service *drive.Service
}

// NewGoogleDriveStorage returns a storage that creates files on Google Drive.
// credentialsFile is the OAuth client JSON and oauthToken a file holding a
// token granted for the drive scope.
func NewGoogleDriveStorage(credentialsFile, oauthToken string) (FileStorage, error) {
	if credentialsFile == "" || oauthToken == "" {
		return nil, fmt.Errorf("missing GOOGLE_DRIVE_CREDENTIALS or GOOGLE_DRIVE_TOKEN environment variable")
	}
	b, err := ioutil.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file [%s], error %w", credentialsFile, err)
	}
	config, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config from [%s], error %w", credentialsFile, err)
	}
	f, err := os.Open(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open oauth token file [%s], error %w", oauthToken, err)
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err = json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode oauth token, error %w", err)
	}
	client := config.Client(context.Background(), tok)
	service, err := drive.New(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Drive service, error %w", err)
	}
	return &googleDrive{
		service: service,
	}, nil
}

// the bucket argument for Google Drive is the folder ID.
func (gd *googleDrive) Upload(b []byte, bucket, fileName string) (string, error) {
	f := &drive.File{
		MimeType: "application/octet-stream",
		Name:     fileName,
		Parents:  []string{bucket},
	}
	created, err := gd.service.Files.Create(f).Media(bytes.NewReader(b)).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create file [%s] on Google Drive folder [%s], error %w", fileName, bucket, err)
	}
	return fmt.Sprintf("drive://%s/%s", bucket, created.Id), nil
}
