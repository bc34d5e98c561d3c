package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies one of the supported content languages.
type Locale string

const (
	// English is the default site locale.
	English Locale = "en"
	// French is the secondary site locale.
	French Locale = "fr"
)

// ErrUnsupportedLocale is returned when a tag does not map to a supported locale.
var ErrUnsupportedLocale = errors.New("unsupported locale")

var supported = []Locale{English, French}

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// Locales returns the supported locales in preference order.
func Locales() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Tag returns the BCP 47 tag for the locale.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, s := range supported {
		if l == s {
			return true
		}
	}
	return false
}

func (l Locale) String() string {
	return string(l)
}

// ParseLocale maps a BCP 47 tag onto a supported locale by its base language,
// so "fr-CA" yields French.
func ParseLocale(value string) (Locale, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnsupportedLocale)
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, value, err)
	}
	base, _ := tag.Base()
	locale := Locale(base.String())
	if !locale.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, value)
	}
	return locale, nil
}

// ParseLocaleOr parses value and returns fallback when it is not supported.
func ParseLocaleOr(value string, fallback Locale) Locale {
	locale, err := ParseLocale(value)
	if err != nil {
		return fallback
	}
	return locale
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string, fallback Locale) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supported[index]
}
