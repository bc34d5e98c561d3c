package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadia/site-messages/internal/i18n"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

func testFS(t *testing.T) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, locale := range i18n.Locales() {
		for _, ns := range i18n.All() {
			path, err := i18n.ContentPath(ns)
			require.NoError(t, err)
			fsys[fmt.Sprintf("%s/%s.json", locale, path)] = &fstest.MapFile{
				Data: []byte(fmt.Sprintf(`{"title": "%s %s", "greeting": "Hi <b>{name}</b>"}`, path, locale)),
			}
		}
	}
	return fsys
}

func newTestServer(t *testing.T, fsys fstest.MapFS, notifier ReportNotifier) (*Server, *i18n.MissingLog) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := i18n.NewLoader(i18n.NewFSSource(fsys), i18n.CatalogIsolated, log)
	missing := i18n.NewMissingLog(true, i18n.WithMissingLogger(log))

	srv := New("127.0.0.1:0", log)
	srv.Mount(NewMessagesHandler(loader, missing, i18n.English, true, log))
	srv.Mount(NewDebugHandler(missing, notifier, log))
	return srv, missing
}

func do(t *testing.T, srv *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeCatalog(t *testing.T, rec *httptest.ResponseRecorder) map[string]map[string]any {
	t.Helper()
	var catalog map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	return catalog
}

func TestHealthAndReadiness(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, srv, http.MethodGet, "/readyz", nil).Code)
	srv.SetReady(true)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/readyz", nil).Code)
}

func TestAllMessages(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	rec := do(t, srv, http.MethodGet, "/v1/messages/fr", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fr", rec.Header().Get("Content-Language"))
	catalog := decodeCatalog(t, rec)
	assert.Len(t, catalog, len(i18n.CatalogKeys()))
	assert.Equal(t, "pages/cars fr", catalog["carsSection"]["title"])
	assert.Equal(t, catalog["carsPage"], catalog["carsSection"])
}

func TestUnsupportedLocaleIsDefaulted(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	rec := do(t, srv, http.MethodGet, "/v1/messages/de", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	assert.Equal(t, "common en", decodeCatalog(t, rec)["common"]["title"])
}

func TestNegotiatedMessages(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	rec := do(t, srv, http.MethodGet, "/v1/messages", http.Header{"Accept-Language": {"fr-CH, fr;q=0.9, en;q=0.8"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fr", rec.Header().Get("Content-Language"))
}

func TestPageMessages(t *testing.T) {
	fsys := testFS(t)
	delete(fsys, "fr/common.json")
	srv, _ := newTestServer(t, fsys, nil)

	rec := do(t, srv, http.MethodGet, "/v1/messages/fr/page?ns=pages.cars&ns=sections.carDetails", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decodeCatalog(t, rec)
	require.Len(t, catalog, 3)
	assert.Empty(t, catalog["common"])
	assert.Equal(t, "pages/cars fr", catalog["pages.cars"]["title"])
	assert.Equal(t, "sections/car-details fr", catalog["sections.carDetails"]["title"])
}

func TestCommonAndNamespaces(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	catalog := decodeCatalog(t, do(t, srv, http.MethodGet, "/v1/messages/en/common", nil))
	assert.Equal(t, "common en", catalog["common"]["title"])

	catalog = decodeCatalog(t, do(t, srv, http.MethodGet, "/v1/messages/en/namespaces?ns=pages.terms,pages.unknown", nil))
	require.Len(t, catalog, 2)
	assert.Equal(t, "pages/terms en", catalog["pages.terms"]["title"])
	assert.Empty(t, catalog["pages.unknown"])

	rec := do(t, srv, http.MethodGet, "/v1/messages/en/namespaces", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNamespaceRoutes(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	var list NamespacesResponse
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/v1/namespaces", nil).Body.Bytes(), &list))
	assert.Equal(t, i18n.All(), list.Namespaces)
	assert.Equal(t, i18n.CatalogKeys(), list.CatalogKeys)

	var ns NamespaceResponse
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/v1/namespaces/pages.travelPacks", nil).Body.Bytes(), &ns))
	assert.True(t, ns.Valid)
	assert.Equal(t, "pages/travel-packs", ns.Path)

	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/v1/namespaces/pages.unknown", nil).Body.Bytes(), &ns))
	assert.False(t, ns.Valid)
}

func TestTranslate(t *testing.T) {
	srv, missing := newTestServer(t, testFS(t), nil)

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/v1/translate/fr/carsSection/title", nil).Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, "pages/cars fr", resp.Value)

	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/v1/translate/en/pages.cars/title", nil).Body.Bytes(), &resp))
	assert.Equal(t, "pages/cars en", resp.Value)

	resp = TranslateResponse{}
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/v1/translate/en/pages.cars/missing.key", nil).Body.Bytes(), &resp))
	assert.False(t, resp.Found)
	assert.Equal(t, "missing.key", resp.Value)

	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/v1/translate/en/pages.cars/missing.key?fallback=Default", nil).Body.Bytes(), &resp))
	assert.Equal(t, "Default", resp.Value)

	require.Len(t, missing.List(), 1)
	assert.Equal(t, "pages.cars", missing.List()[0].Namespace)
}

func TestTranslateRich(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	var resp TranslateResponse
	rec := do(t, srv, http.MethodGet, "/v1/translate/en/home/greeting?format=html&name=%3Cscript%3E", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Hi <b>&lt;script&gt;</b>", resp.Value)

	resp = TranslateResponse{}
	rec = do(t, srv, http.MethodGet, "/v1/translate/en/home/greeting?format=html&fallback=Hi+there", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, "Hi there", resp.Value)
}

func TestDebugRoutes(t *testing.T) {
	notifier := &fakeNotifier{}
	srv, missing := newTestServer(t, testFS(t), notifier)
	missing.Log("pages.cars", "subtitle", i18n.French)

	var state MissingResponse
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodGet, "/debug/i18n/missing", nil).Body.Bytes(), &state))
	assert.True(t, state.Enabled)
	assert.Equal(t, 1, state.Count)

	rec := do(t, srv, http.MethodGet, "/debug/i18n/missing?format=text", nil)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), "1. [fr] pages.cars.subtitle")

	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodPost, "/debug/i18n/missing/notify", nil).Code)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "Total Missing: 1")

	notifier.err = errors.New("telegram down")
	assert.Equal(t, http.StatusBadGateway, do(t, srv, http.MethodPost, "/debug/i18n/missing/notify", nil).Code)

	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodPost, "/debug/i18n/missing/disable", nil).Body.Bytes(), &state))
	assert.False(t, state.Enabled)
	require.NoError(t, json.Unmarshal(do(t, srv, http.MethodPost, "/debug/i18n/missing/enable", nil).Body.Bytes(), &state))
	assert.True(t, state.Enabled)

	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/debug/i18n/missing", nil).Code)
	assert.Empty(t, missing.List())
	assert.Equal(t, i18n.NoMissingReport, do(t, srv, http.MethodGet, "/debug/i18n/missing?format=text", nil).Body.String())
}

func TestNotifyWithoutNotifier(t *testing.T) {
	srv, _ := newTestServer(t, testFS(t), nil)

	assert.Equal(t, http.StatusServiceUnavailable, do(t, srv, http.MethodPost, "/debug/i18n/missing/notify", nil).Code)
}
