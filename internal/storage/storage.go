package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"slotbook/pkg/client"
)

// Uploader persists sponsor creative files and yields a public URL to
// store on the booking.
type Uploader interface {
	UploadCreative(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// bucketUploader talks to a hosted object-storage REST API (Supabase
// storage layout: upload to /storage/v1/object/{bucket}/{name}, serve
// from /storage/v1/object/public/{bucket}/{name}).
type bucketUploader struct {
	http    *client.HttpClient
	baseURL string
	bucket  string
}

func NewBucketUploader(baseURL, apiKey, bucket string) Uploader {
	return &bucketUploader{
		http: client.NewHttpClient(baseURL, map[string]string{
			"apikey":        apiKey,
			"Authorization": "Bearer " + apiKey,
		}),
		baseURL: baseURL,
		bucket:  bucket,
	}
}

func (u *bucketUploader) UploadCreative(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("creative file is empty")
	}

	objectName := objectNameFor(filename)
	uploadPath := fmt.Sprintf("/storage/v1/object/%s/%s", u.bucket, objectName)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := u.http.POSTBinary(ctx, uploadPath, data, contentType, nil)
	if err != nil {
		return "", fmt.Errorf("storage provider unreachable: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload rejected: %s", client.GetErrorMessage(resp))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.baseURL, u.bucket, objectName), nil
}

// objectNameFor prefixes a uuid so concurrent sponsors uploading
// "banner.png" never collide, and url-escapes what remains of the
// original name.
func objectNameFor(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "-")
	if base == "" || base == "." || base == "/" {
		base = "creative"
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().Unix(), uuid.New().String()[:8], url.PathEscape(base))
}
