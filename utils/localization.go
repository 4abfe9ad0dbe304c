package utils

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	LangArabic  = "ar"
	LangEnglish = "en"
)

// Localize resolves a bilingual attribute of entity for the given language.
//
// For "ar" the lookup order is <field>Ar, <field>, "". For every other
// language it is <field>En, <field>, "". field may be given in camelCase
// ("aboutStory") or as the Go field name ("AboutStory"). entity may be a
// struct or a pointer to one; string and *string fields are both supported.
func Localize(entity any, field, lang string) string {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}

	base := exportedName(field)
	suffix := "En"
	if lang == LangArabic {
		suffix = "Ar"
	}

	if s := stringField(v, base+suffix); s != "" {
		return s
	}
	return stringField(v, base)
}

func exportedName(field string) string {
	field = strings.TrimSpace(field)
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r)) + field[size:]
}

func stringField(v reflect.Value, name string) string {
	f := v.FieldByName(name)
	if !f.IsValid() {
		return ""
	}
	switch f.Kind() {
	case reflect.String:
		return f.String()
	case reflect.Pointer:
		if f.IsNil() || f.Elem().Kind() != reflect.String {
			return ""
		}
		return f.Elem().String()
	}
	return ""
}
