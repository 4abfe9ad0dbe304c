package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Upload is a file part of a submitted form.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Form is the flat key/value payload every mutation receives. Values hold
// text parts, Files hold file parts keyed by field name.
type Form struct {
	Values map[string]string
	Files  map[string]*Upload
}

func NewForm() *Form {
	return &Form{Values: map[string]string{}, Files: map[string]*Upload{}}
}

func (f *Form) Set(key, value string) *Form {
	f.Values[key] = value
	return f
}

func (f *Form) SetFile(key, filename, contentType string, data []byte) *Form {
	f.Files[key] = &Upload{Field: key, Filename: filename, ContentType: contentType, Data: data}
	return f
}

// Has reports whether the key was submitted at all, even if empty.
func (f *Form) Has(key string) bool {
	if f == nil || f.Values == nil {
		return false
	}
	_, ok := f.Values[key]
	return ok
}

func (f *Form) Get(key string) string {
	if f == nil || f.Values == nil {
		return ""
	}
	return strings.TrimSpace(f.Values[key])
}

func (f *Form) File(key string) *Upload {
	if f == nil || f.Files == nil {
		return nil
	}
	return f.Files[key]
}

// Bool accepts true/on/1/yes. An absent key yields def.
func (f *Form) Bool(key string, def bool) bool {
	if !f.Has(key) {
		return def
	}
	return parseBool(f.Get(key))
}

// Int parses ordering fields. Missing or malformed input yields def.
func (f *Form) Int(key string, def int) int {
	n, err := strconv.Atoi(f.Get(key))
	if err != nil {
		return def
	}
	return n
}

// maxAmount is the first value a decimal(10,2) column cannot hold.
var maxAmount = decimal.New(1, 8)

// Decimal parses a price field. ok is false when the key is absent or empty.
// Negative amounts are rejected.
func (f *Form) Decimal(key string) (d decimal.Decimal, ok bool, err error) {
	raw := f.Get(key)
	if raw == "" {
		return decimal.Zero, false, nil
	}
	d, err = decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, true, invalid(key, "must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, true, invalid(key, "must not be negative")
	}
	if d.Round(2).GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, true, invalid(key, "must be less than %s", maxAmount.String())
	}
	return d, true, nil
}

// firstNonEmpty picks the canonical value of a bilingual field.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
