package utils

import (
	"strings"

	"golang.org/x/text/language"
)

var languageMatcher = language.NewMatcher([]language.Tag{
	language.English, // first entry is the fallback
	language.Arabic,
})

// NegotiateLanguage picks "ar" or "en". An explicit lang query value wins
// over the Accept-Language header.
func NegotiateLanguage(explicit, acceptLanguage string) string {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case LangArabic:
		return LangArabic
	case LangEnglish:
		return LangEnglish
	}

	if acceptLanguage == "" {
		return LangEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LangEnglish
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return LangEnglish
	}
	if index == 1 {
		return LangArabic
	}
	return LangEnglish
}
