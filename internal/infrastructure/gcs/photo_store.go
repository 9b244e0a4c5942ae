package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// PhotoStore is the object-store used for donation photos: a byte
// stream goes in, a durable public URL comes out.
type PhotoStore struct {
	Client *storage.Client
	Bucket string
}

func NewPhotoStore(client *storage.Client, bucket string) *PhotoStore {
	return &PhotoStore{Client: client, Bucket: bucket}
}

func (s *PhotoStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r)
}
