package utils

import (
	"strings"
	"testing"
)

func TestNormalizeSlug(t *testing.T) {
	if got := NormalizeSlug("Pizza Place"); got != "pizza-place" {
		t.Errorf("expected 'pizza-place', got %q", got)
	}
	if got := NormalizeSlug("  Café  Olé!! "); got != "cafe-ole" {
		t.Errorf("expected 'cafe-ole', got %q", got)
	}
}

func TestNormalizeSlugFallsThroughCandidates(t *testing.T) {
	if got := NormalizeSlug("", "   ", "Burger Hub"); got != "burger-hub" {
		t.Errorf("expected 'burger-hub', got %q", got)
	}
}

func TestNormalizeSlugDefault(t *testing.T) {
	if got := NormalizeSlug("", "!!!"); got != DefaultSlug {
		t.Errorf("expected default slug, got %q", got)
	}
}

func TestNormalizeSlugArabicIsURLSafe(t *testing.T) {
	got := NormalizeSlug("مطعم الشام")
	if !IsValidSlug(got) {
		t.Errorf("expected URL-safe slug, got %q", got)
	}
}

func TestNormalizeSlugLength(t *testing.T) {
	got := NormalizeSlug(strings.Repeat("word ", 40))
	if len(got) > MaxSlugLength {
		t.Errorf("expected slug of at most %d chars, got %d", MaxSlugLength, len(got))
	}
}

func TestIsValidSlug(t *testing.T) {
	for _, s := range []string{"pizza-place", "a1", "pizza-place-2"} {
		if !IsValidSlug(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"Pizza", "pizza place", "-pizza", "pizza--place", ""} {
		if IsValidSlug(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
