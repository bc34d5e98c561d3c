package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	cases := []struct {
		in   string
		want Locale
	}{
		{"en", English},
		{"fr", French},
		{" FR ", French},
		{"fr-CA", French},
		{"en-GB", English},
	}
	for _, tc := range cases {
		got, err := ParseLocale(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "de", "ky", "not a tag!"} {
		_, err := ParseLocale(bad)
		assert.ErrorIs(t, err, ErrUnsupportedLocale, bad)
	}
}

func TestParseLocaleOr(t *testing.T) {
	assert.Equal(t, French, ParseLocaleOr("fr", English))
	assert.Equal(t, English, ParseLocaleOr("ru", English))
	assert.Equal(t, French, ParseLocaleOr("", French))
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, French, Negotiate("fr-FR,fr;q=0.9,en;q=0.8", English))
	assert.Equal(t, English, Negotiate("en-US,en;q=0.9", French))
	assert.Equal(t, French, Negotiate("de-DE,fr;q=0.5", English))
	assert.Equal(t, English, Negotiate("", English))
	assert.Equal(t, French, Negotiate("ja", French))
}

func TestLocaleValid(t *testing.T) {
	assert.True(t, English.Valid())
	assert.True(t, French.Valid())
	assert.False(t, Locale("de").Valid())
	assert.Equal(t, []Locale{English, French}, Locales())
}
