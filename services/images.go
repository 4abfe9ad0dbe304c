package services

import (
	"context"
	"fmt"

	"menuhub-backend/utils"
)

// ImageStore turns an accepted upload into the string persisted on the
// owning entity: a data URI or a blob URL.
type ImageStore interface {
	Put(ctx context.Context, upload *Upload) (string, error)
}

// InlineImageStore embeds images in the row as data URIs.
type InlineImageStore struct{}

func (InlineImageStore) Put(_ context.Context, upload *Upload) (string, error) {
	return utils.EncodeDataURI(upload.ContentType, upload.Data), nil
}

// IngestImage validates and stores an upload. A nil or empty upload returns
// nil so the caller keeps the existing value.
func IngestImage(ctx context.Context, store ImageStore, upload *Upload, maxBytes int64) (*string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return nil, nil
	}

	upload.ContentType = utils.DetectImageType(upload.ContentType, upload.Data)
	if err := utils.ValidateImage(upload.ContentType, int64(len(upload.Data)), maxBytes); err != nil {
		return nil, &ValidationError{Field: upload.Field, Message: err.Error()}
	}

	ref, err := store.Put(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("store image %s: %w", upload.Field, err)
	}
	return &ref, nil
}
