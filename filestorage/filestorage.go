// Package filestorage writes election reports to a local directory or to a
// cloud bucket.
package filestorage

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	timeout = time.Second * 50
)

// FileStorage stores files under a bucket. For local storage the bucket is
// a directory, for Google Drive it is a folder ID.
type FileStorage interface {
	Upload(b []byte, bucket, fileName string) (string, error)
}

// Open picks a storage for a target. Targets are gs://BUCKET, s3://BUCKET,
// drive://FOLDER_ID or a local directory. It returns the storage and the
// bucket to upload to.
func Open(target string) (FileStorage, string, error) {
	var (
		s   FileStorage
		err error
	)
	bucket := target
	switch {
	case strings.HasPrefix(target, "gs://"):
		bucket = strings.TrimPrefix(target, "gs://")
		s, err = NewGCSClient()
	case strings.HasPrefix(target, "s3://"):
		bucket = strings.TrimPrefix(target, "s3://")
		s, err = NewAWSClient()
	case strings.HasPrefix(target, "drive://"):
		bucket = strings.TrimPrefix(target, "drive://")
		s, err = NewGoogleDriveStorage(os.Getenv("GOOGLE_DRIVE_CREDENTIALS"), os.Getenv("GOOGLE_DRIVE_TOKEN"))
	case target == "":
		err = fmt.Errorf("empty storage target")
	default:
		s = NewLocalStorage()
	}
	if err != nil {
		return nil, "", err
	}
	return s, bucket, nil
}
