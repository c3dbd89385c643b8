package file

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("file storage is not configured")

// Uploader stores credential documents and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, src io.Reader, folder, publicID string) (string, error)
}

type FileUploader struct {
	cloudName string
	apiKey    string
	apiSecret string
}

func New(cloudName, apiKey, apiSecret string) *FileUploader {
	return &FileUploader{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

func (f *FileUploader) Upload(ctx context.Context, src io.Reader, folder, publicID string) (string, error) {
	if f.cloudName == "" || f.apiKey == "" || f.apiSecret == "" {
		return "", ErrNotConfigured
	}

	cld, err := cloudinary.NewFromParams(f.cloudName, f.apiKey, f.apiSecret)
	if err != nil {
		return "", err
	}

	overwrite := true
	result, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		Overwrite:    &overwrite,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}

	return result.SecureURL, nil
}
