package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"

	"github.com/leafclutch/leafclutch-backend/pkg/config"
	"github.com/leafclutch/leafclutch-backend/pkg/logutils"
)

// MaxImageSize is the byte limit for the proxy upload path. Anything larger
// is rejected before the provider is contacted.
const MaxImageSize = 1_000_000

var (
	ErrImageTooLarge = errors.New("image too large (max 1MB allowed)")
	ErrNotAnImage    = errors.New("invalid image type")
)

// ValidateImage enforces the proxy upload preconditions: an image/* content
// type and a payload within MaxImageSize. Callers must run it before any
// network call.
func ValidateImage(size int64, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// AppwriteClient uploads files into a bucket under server credentials and
// builds the public view URL for the stored file.
type AppwriteClient struct {
	req      *req.Client
	endpoint string
	project  string
	bucket   string
}

func NewAppwriteClient(conf *config.Config) *AppwriteClient {
	client := req.C().
		SetBaseURL(conf.Appwrite.Endpoint).
		SetCommonHeader("X-Appwrite-Project", conf.Appwrite.ProjectID).
		SetCommonHeader("X-Appwrite-Key", conf.Appwrite.APIKey)
	return &AppwriteClient{
		req:      client,
		endpoint: conf.Appwrite.Endpoint,
		project:  conf.Appwrite.ProjectID,
		bucket:   conf.Appwrite.BucketID,
	}
}

type appwriteFile struct {
	ID string `json:"$id"`
}

// UploadImage stores the bytes in the configured bucket under a fresh file ID
// and returns the public view URL. The caller has already validated size and
// content type.
func (c *AppwriteClient) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	fileID := uuid.NewString()

	var file appwriteFile
	resp, err := c.req.R().
		SetContext(ctx).
		SetFormData(map[string]string{"fileId": fileID}).
		SetFileBytes("file", filename, data).
		SetSuccessResult(&file).
		Post(fmt.Sprintf("/storage/buckets/%s/files", c.bucket))
	if err != nil {
		logutils.Log.WithField("bucket", c.bucket).Errorf("appwrite upload failed: %v", err)
		return "", err
	}
	if resp.IsErrorState() {
		logutils.Log.WithField("bucket", c.bucket).Errorf("appwrite upload rejected: %s", resp.String())
		return "", fmt.Errorf("appwrite: %s", resp.String())
	}

	return c.ViewURL(file.ID), nil
}

// ViewURL builds the retrievable URL for a stored file.
func (c *AppwriteClient) ViewURL(fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s",
		c.endpoint, c.bucket, fileID, c.project)
}
