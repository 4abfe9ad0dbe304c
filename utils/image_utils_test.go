package utils

import (
	"encoding/base64"
	"strings"
	"testing"
)

// 1x1 transparent PNG
var pngPixel, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func TestEncodeDataURI(t *testing.T) {
	uri := EncodeDataURI("image/png", []byte("abc"))
	if uri != "data:image/png;base64,YWJj" {
		t.Errorf("unexpected data URI: %s", uri)
	}
	if !IsDataURI(uri) {
		t.Error("expected IsDataURI to be true")
	}
	if IsDataURI("https://example.com/a.png") {
		t.Error("expected URL not to be a data URI")
	}
}

func TestDetectImageTypeUsesDeclaredType(t *testing.T) {
	got := DetectImageType("image/jpeg", pngPixel)
	if got != "image/jpeg" {
		t.Errorf("expected declared type to win, got %s", got)
	}
}

func TestDetectImageTypeStripsParameters(t *testing.T) {
	got := DetectImageType("Image/PNG; charset=binary", pngPixel)
	if got != "image/png" {
		t.Errorf("expected image/png, got %s", got)
	}
}

func TestDetectImageTypeSniffsGenericType(t *testing.T) {
	if got := DetectImageType("application/octet-stream", pngPixel); got != "image/png" {
		t.Errorf("expected sniffed image/png, got %s", got)
	}
	if got := DetectImageType("", pngPixel); got != "image/png" {
		t.Errorf("expected sniffed image/png for empty header, got %s", got)
	}
}

func TestValidateImage(t *testing.T) {
	if err := ValidateImage("image/png", 100, 0); err != nil {
		t.Errorf("expected valid image, got %v", err)
	}
	if err := ValidateImage("text/html", 100, 0); err == nil {
		t.Error("expected error for non-image type")
	}
	err := ValidateImage("image/png", 2048, 1024)
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("expected size error, got %v", err)
	}
}
