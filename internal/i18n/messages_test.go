package i18n

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesLookup(t *testing.T) {
	tree := Messages{
		"title": "Cars",
		"actions": map[string]any{
			"viewAll": "View all",
			"count":   3,
		},
	}

	value, err := tree.Lookup("actions.viewAll")
	require.NoError(t, err)
	assert.Equal(t, "View all", value)

	_, err = tree.Lookup("actions")
	assert.ErrorIs(t, err, errNotString)
	_, err = tree.Lookup("actions.count")
	assert.ErrorIs(t, err, errNotString)
	_, err = tree.Lookup("title.more")
	assert.ErrorIs(t, err, errKeyNotFound)
	_, err = tree.Lookup("")
	assert.ErrorIs(t, err, errKeyNotFound)

	assert.True(t, tree.Has("title"))
	assert.False(t, tree.Has("missing"))
	assert.Equal(t, map[string]string{"title": "Cars", "actions.viewAll": "View all"}, tree.Flatten())
}

func TestCatalogNamespace(t *testing.T) {
	cars := Messages{"title": "Cars"}
	catalog := Catalog{
		"carsSection": cars,
		"pages":       Messages{"cars": map[string]any{"title": "Nested cars"}},
	}

	tree, ok := catalog.Namespace("carsSection")
	require.True(t, ok)
	assert.Equal(t, cars, tree)

	tree, ok = catalog.Namespace("pages.cars")
	require.True(t, ok)
	assert.Equal(t, "Nested cars", tree["title"])

	_, ok = catalog.Namespace("pages.home")
	assert.False(t, ok)
	_, ok = catalog.Namespace("unknown")
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	codecs := map[string]Codec{}
	for _, c := range DefaultCodecs() {
		codecs[c.Ext] = c
	}

	tree, err := Decode(codecs["json"], []byte(`{"a": {"b": "c"}}`))
	require.NoError(t, err)
	assert.Equal(t, Messages{"a": map[string]any{"b": "c"}}, tree)

	tree, err = Decode(codecs["yaml"], []byte("a:\n  1: one\n"))
	require.NoError(t, err)
	value, err := tree.Lookup("a.1")
	require.NoError(t, err)
	assert.Equal(t, "one", value)

	tree, err = Decode(codecs["json"], []byte("null"))
	require.NoError(t, err)
	assert.Equal(t, Messages{}, tree)

	tree, err = Decode(codecs["toml"], []byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Messages{}, tree)

	_, err = Decode(codecs["json"], []byte(`"just a string"`))
	assert.Error(t, err)
	_, err = Decode(codecs["json"], []byte(`{`))
	assert.Error(t, err)
	_, err = Decode(Codec{Ext: "po"}, []byte(`msgid ""`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFSSourceOpen(t *testing.T) {
	source := NewFSSource(fstest.MapFS{
		"en/pages/cars.json": {Data: []byte(`{"title": "json wins"}`)},
		"en/pages/cars.yaml": {Data: []byte(`title: yaml`)},
		"fr/pages/cars.yml":  {Data: []byte(`title: yml`)},
	})
	ctx := context.Background()

	tree, err := source.Open(ctx, English, "pages/cars")
	require.NoError(t, err)
	assert.Equal(t, "json wins", tree["title"])

	tree, err = source.Open(ctx, French, "pages/cars")
	require.NoError(t, err)
	assert.Equal(t, "yml", tree["title"])

	_, err = source.Open(ctx, English, "pages/home")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, err = source.Open(ctx, Locale("de"), "pages/cars")
	assert.ErrorIs(t, err, ErrUnsupportedLocale)
	_, err = source.Open(ctx, English, "../fr/pages/cars")
	assert.ErrorIs(t, err, ErrInvalidNamespace)
}
