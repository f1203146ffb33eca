package utils

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrUploadsDisabled = errors.New("image uploads are not configured")

// ImageUploader stores a file and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: "tacticalgear/products"}, nil
}

// Upload streams the file to Cloudinary and returns the secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	uniqueFilename := true
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       filename,
		Folder:         u.folder,
		UniqueFilename: &uniqueFilename,
	})
	if err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary returned no url")
	}
	return result.SecureURL, nil
}

// DisabledUploader is wired when Cloudinary credentials are absent.
type DisabledUploader struct{}

func (DisabledUploader) Upload(context.Context, io.Reader, string) (string, error) {
	return "", ErrUploadsDisabled
}
