package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
)

type ViewKind string

const (
	ViewManagement ViewKind = "management"
	ViewMenu       ViewKind = "menu"
	ViewAbout      ViewKind = "about"
)

// View names one derived page of a restaurant that must be refreshed after
// a mutation.
type View struct {
	Kind ViewKind
	Slug string
}

// Invalidator receives the views touched by a successful mutation.
type Invalidator interface {
	Invalidate(views ...View)
}

func menuViews(slug string) []View {
	return []View{{ViewManagement, slug}, {ViewMenu, slug}}
}

func allViews(slug string) []View {
	return []View{{ViewManagement, slug}, {ViewMenu, slug}, {ViewAbout, slug}}
}

// LogInvalidator reports refreshed views to the log. It holds no state, so
// any number of instances can share one database.
type LogInvalidator struct{}

func (LogInvalidator) Invalidate(views ...View) {
	for _, v := range views {
		log.Printf("refresh view %s/%s", v.Kind, v.Slug)
	}
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(...View) {}

// ContentETag derives a weak ETag from the serialized response body. Equal
// stored data yields equal tags on every instance.
func ContentETag(lang string, body interface{}) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode view: %w", err)
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf(`W/"%s-%s"`, lang, hex.EncodeToString(sum[:12])), nil
}
