package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type failingStore struct{}

func (failingStore) Put(context.Context, *Upload) (string, error) {
	return "", errors.New("bucket unavailable")
}

func TestIngestImageAbsent(t *testing.T) {
	ref, err := IngestImage(ctx, InlineImageStore{}, nil, 0)
	if ref != nil || err != nil {
		t.Errorf("nil upload must be a no-op, got %v %v", ref, err)
	}
	ref, err = IngestImage(ctx, InlineImageStore{}, &Upload{Field: "logo"}, 0)
	if ref != nil || err != nil {
		t.Errorf("empty upload must be a no-op, got %v %v", ref, err)
	}
}

func TestIngestImageInline(t *testing.T) {
	ref, err := IngestImage(ctx, InlineImageStore{}, &Upload{Field: "logo", ContentType: "application/octet-stream", Data: pngPixel}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ref == nil || !strings.HasPrefix(*ref, "data:image/png;base64,iVBOR") {
		t.Errorf("expected png data URI, got %v", ref)
	}
}

func TestIngestImageRejects(t *testing.T) {
	_, err := IngestImage(ctx, InlineImageStore{}, &Upload{Field: "image", ContentType: "application/pdf", Data: []byte("%PDF")}, 0)
	assertValidation(t, err, "image")

	_, err = IngestImage(ctx, InlineImageStore{}, &Upload{Field: "image", ContentType: "image/png", Data: pngPixel}, 8)
	assertValidation(t, err, "image")
}

func TestIngestImageStoreFailure(t *testing.T) {
	_, err := IngestImage(ctx, failingStore{}, &Upload{Field: "logo", ContentType: "image/png", Data: pngPixel}, 0)
	if err == nil {
		t.Fatal("expected store error")
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Error("store failures are not validation errors")
	}
}
