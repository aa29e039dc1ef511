package utils

import (
	"fmt"
	"path/filepath"

	"skillspring/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

var storageClient = resty.New()

// UploadObject pushes an opaque blob to the object storage service and
// returns the reference URL to persist. Only the URL is ever stored in
// the database.
func UploadObject(filename string, data []byte, contentType string) (string, error) {
	if config.AppConfig.StorageBaseURL == "" {
		return "", fmt.Errorf("object storage is not configured")
	}

	key := uuid.NewString() + filepath.Ext(filename)
	url := fmt.Sprintf("%s/%s", config.AppConfig.StorageBaseURL, key)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := storageClient.R().
		SetHeader("Content-Type", contentType).
		SetAuthToken(config.AppConfig.StorageToken).
		SetBody(data).
		Put(url)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("object storage returned status %d", resp.StatusCode())
	}

	return url, nil
}
