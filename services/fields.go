package services

import (
	"context"
	"strings"

	"menuhub-backend/utils"
)

// textField maps a form key onto its column.
type textField struct {
	key    string
	column string
	rule   string
}

// collectText copies every submitted text field into updates after running
// its validator rule, if any.
func collectText(form *Form, updates map[string]interface{}, fields []textField) error {
	for _, f := range fields {
		if !form.Has(f.key) {
			continue
		}
		value := form.Get(f.key)
		if f.rule != "" {
			if err := utils.ValidateValue(f.key, value, f.rule); err != nil {
				return &ValidationError{Field: f.key, Message: err.Error()}
			}
		}
		updates[f.column] = value
	}
	return nil
}

// merged returns the submitted value for key, or current when absent.
func merged(form *Form, key, current string) string {
	if form.Has(key) {
		return form.Get(key)
	}
	return current
}

func anySubmitted(form *Form, keys ...string) bool {
	for _, k := range keys {
		if form.Has(k) {
			return true
		}
	}
	return false
}

func removeFlag(key string) string {
	return "remove" + strings.ToUpper(key[:1]) + key[1:]
}

// collectImage stages an image column. The explicit remove flag wins over a
// simultaneous upload; no upload and no flag leaves the column untouched.
func (s *Service) collectImage(ctx context.Context, form *Form, key, column string, updates map[string]interface{}) error {
	if form.Bool(removeFlag(key), false) {
		updates[column] = nil
		return nil
	}
	ref, err := s.ingest(ctx, form, key)
	if err != nil {
		return err
	}
	if ref != nil {
		updates[column] = *ref
	}
	return nil
}
