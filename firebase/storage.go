package firebase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"

	"menuhub-backend/services"

	"cloud.google.com/go/storage"
)

const imagePrefix = "images"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

var extensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/webp":    "webp",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

// BlobStore keeps images in a Cloud Storage bucket under a path derived from
// their content, so re-uploading the same bytes reuses one object.
type BlobStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewBlobStore opens the bucket named by FIREBASE_STORAGE_BUCKET.
func NewBlobStore(ctx context.Context) (*BlobStore, error) {
	bucketName := os.Getenv("FIREBASE_STORAGE_BUCKET")
	if bucketName == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}

	app, err := Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &BlobStore{bucket: bucket, bucketName: bucketName}, nil
}

var _ services.ImageStore = (*BlobStore)(nil)

// Put uploads the image unless an object with the same content already
// exists and returns its public URL.
func (b *BlobStore) Put(ctx context.Context, upload *services.Upload) (string, error) {
	objectPath := ObjectPath(upload.ContentType, upload.Data)
	obj := b.bucket.Object(objectPath)

	_, err := obj.Attrs(ctx)
	switch {
	case err == nil:
		return publicURL(b.bucketName, objectPath), nil
	case !errors.Is(err, storage.ErrObjectNotExist):
		return "", fmt.Errorf("failed to stat %s: %v", objectPath, err)
	}

	wc := obj.NewWriter(ctx)
	wc.ContentType = upload.ContentType
	wc.CacheControl = "public, max-age=31536000, immutable"
	wc.Metadata = map[string]string{"originalName": sanitizeFilename(upload.Filename)}

	if _, err := io.Copy(wc, bytes.NewReader(upload.Data)); err != nil {
		wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %v", err)
	}

	// Make object publicly readable so the URL works without authentication
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		log.Printf("Warning: failed to set public ACL on %s: %v", objectPath, err)
	}

	return publicURL(b.bucketName, objectPath), nil
}

// ObjectPath is images/<sha256 of data>.<ext>.
func ObjectPath(contentType string, data []byte) string {
	sum := sha256.Sum256(data)
	ext, ok := extensions[contentType]
	if !ok {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s.%s", imagePrefix, hex.EncodeToString(sum[:]), ext)
}

func publicURL(bucketName, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectPath)
}

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}
