package http

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nomadia/site-messages/internal/i18n"
)

// MessagesHandler serves message catalogs and single translations.
type MessagesHandler struct {
	loader        *i18n.Loader
	missing       *i18n.MissingLog
	defaultLocale i18n.Locale
	development   bool
	log           *slog.Logger
}

// NewMessagesHandler creates the catalog routes.
func NewMessagesHandler(loader *i18n.Loader, missing *i18n.MissingLog, defaultLocale i18n.Locale, development bool, log *slog.Logger) *MessagesHandler {
	return &MessagesHandler{
		loader:        loader,
		missing:       missing,
		defaultLocale: defaultLocale,
		development:   development,
		log:           log,
	}
}

// TranslateResponse is the payload of the translate route.
type TranslateResponse struct {
	Locale    i18n.Locale `json:"locale"`
	Namespace string      `json:"namespace"`
	Key       string      `json:"key"`
	Value     string      `json:"value"`
	Found     bool        `json:"found"`
}

// NamespacesResponse lists the registered namespaces.
type NamespacesResponse struct {
	Namespaces  []i18n.Namespace `json:"namespaces"`
	CatalogKeys []string         `json:"catalog_keys"`
	Locales     []i18n.Locale    `json:"locales"`
}

// NamespaceResponse reports whether a namespace key is registered.
type NamespaceResponse struct {
	Namespace string `json:"namespace"`
	Valid     bool   `json:"valid"`
	Path      string `json:"path,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register mounts the routes on mux.
func (h *MessagesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/messages", h.negotiated)
	mux.HandleFunc("GET /v1/messages/{locale}", h.all)
	mux.HandleFunc("GET /v1/messages/{locale}/common", h.common)
	mux.HandleFunc("GET /v1/messages/{locale}/page", h.page)
	mux.HandleFunc("GET /v1/messages/{locale}/namespaces", h.namespaces)
	mux.HandleFunc("GET /v1/namespaces", h.listNamespaces)
	mux.HandleFunc("GET /v1/namespaces/{namespace}", h.namespace)
	mux.HandleFunc("GET /v1/translate/{locale}/{namespace}/{key}", h.translate)
}

func (h *MessagesHandler) negotiated(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Negotiate(r.Header.Get("Accept-Language"), h.defaultLocale)
	h.respondCatalog(w, locale, h.loader.LoadAll(r.Context(), locale))
}

func (h *MessagesHandler) all(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	h.respondCatalog(w, locale, h.loader.LoadAll(r.Context(), locale))
}

func (h *MessagesHandler) common(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	h.respondCatalog(w, locale, h.loader.LoadCommon(r.Context(), locale))
}

func (h *MessagesHandler) page(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	h.respondCatalog(w, locale, h.loader.LoadPage(r.Context(), locale, queryNamespaces(r)))
}

func (h *MessagesHandler) namespaces(w http.ResponseWriter, r *http.Request) {
	requested := queryNamespaces(r)
	if len(requested) == 0 {
		respond(w, http.StatusBadRequest, errorResponse{Error: "ns is required"})
		return
	}
	locale := h.locale(r)
	h.respondCatalog(w, locale, h.loader.LoadNamespaces(r.Context(), locale, requested))
}

func (h *MessagesHandler) listNamespaces(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, NamespacesResponse{
		Namespaces:  i18n.All(),
		CatalogKeys: i18n.CatalogKeys(),
		Locales:     i18n.Locales(),
	})
}

func (h *MessagesHandler) namespace(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("namespace")
	resp := NamespaceResponse{Namespace: name, Valid: i18n.IsValidNamespace(name)}
	if resp.Valid {
		resp.Path, _ = i18n.ContentPath(i18n.Namespace(name))
	}
	respond(w, http.StatusOK, resp)
}

func (h *MessagesHandler) translate(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	namespace := r.PathValue("namespace")
	key := r.PathValue("key")
	query := r.URL.Query()

	var catalog i18n.Catalog
	if i18n.IsValidNamespace(namespace) {
		catalog = h.loader.LoadNamespaces(r.Context(), locale, []i18n.Namespace{i18n.Namespace(namespace)})
	} else {
		catalog = h.loader.LoadAll(r.Context(), locale)
	}
	translator := i18n.NewTranslator(catalog, namespace, locale,
		i18n.WithMissingLog(h.missing),
		i18n.WithTranslatorLogger(h.log),
		i18n.WithDevelopment(h.development),
	)

	resp := TranslateResponse{Locale: locale, Namespace: namespace, Key: key, Found: translator.Has(key)}
	fallback := query.Get("fallback")
	if strings.EqualFold(query.Get("format"), "html") {
		resp.Value = string(translator.Rich(key, richValues(query), fallback))
	} else {
		resp.Value = translator.T(key, fallback)
	}
	w.Header().Set("Content-Language", locale.String())
	respond(w, http.StatusOK, resp)
}

func (h *MessagesHandler) locale(r *http.Request) i18n.Locale {
	return i18n.ParseLocaleOr(r.PathValue("locale"), h.defaultLocale)
}

func (h *MessagesHandler) respondCatalog(w http.ResponseWriter, locale i18n.Locale, catalog i18n.Catalog) {
	w.Header().Set("Content-Language", locale.String())
	respond(w, http.StatusOK, catalog)
}

func respond(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// queryNamespaces reads repeated or comma separated ns parameters.
func queryNamespaces(r *http.Request) []i18n.Namespace {
	var out []i18n.Namespace
	for _, raw := range r.URL.Query()["ns"] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, i18n.Namespace(part))
			}
		}
	}
	return out
}

// inlineTags are the markup spans the translate route renders as themselves.
var inlineTags = []string{"b", "em", "i", "strong"}

// richValues turns the non reserved query parameters into template values and
// adds a renderer for every inline tag not overridden by a parameter.
func richValues(query map[string][]string) map[string]any {
	values := make(map[string]any, len(query)+len(inlineTags))
	for name, v := range query {
		if name == "fallback" || name == "format" || len(v) == 0 {
			continue
		}
		values[name] = v[0]
	}
	for _, name := range inlineTags {
		if _, ok := values[name]; !ok {
			values[name] = i18n.RichTag(func(chunks string) template.HTML {
				return template.HTML("<" + name + ">" + chunks + "</" + name + ">")
			})
		}
	}
	return values
}
