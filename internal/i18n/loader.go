package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CatalogMode controls how LoadAll reacts to a failing document.
type CatalogMode string

const (
	// CatalogIsolated degrades each failing document to an empty tree.
	CatalogIsolated CatalogMode = "isolated"
	// CatalogStrict returns an empty catalog when any document fails.
	CatalogStrict CatalogMode = "strict"
)

// ParseCatalogMode parses a mode name; empty selects CatalogIsolated.
func ParseCatalogMode(value string) (CatalogMode, error) {
	switch mode := CatalogMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return CatalogIsolated, nil
	case CatalogIsolated, CatalogStrict:
		return mode, nil
	default:
		return "", fmt.Errorf("catalog mode must be %q or %q, got %q", CatalogIsolated, CatalogStrict, value)
	}
}

type catalogEntry struct {
	namespace Namespace
	aliases   []string
}

// fullCatalog is the document set served by LoadAll and the flat keys each
// document is exposed under.
var fullCatalog = []catalogEntry{
	{Common, []string{"common"}},
	{PagesHome, []string{"home", "homePage"}},
	{PagesCars, []string{"carsPage", "carsSection"}},
	{PagesActivities, []string{"activitiesPage", "activities"}},
	{PagesGallery, []string{"galleryPage", "gallery"}},
	{PagesTravelPacks, []string{"travelPacksPage", "travelPacks"}},
	{PagesContact, []string{"contactPage", "contact"}},
	{PagesOurStory, []string{"ourStoryPage", "ourStory"}},
	{PagesPrivacy, []string{"privacyPage"}},
	{PagesTerms, []string{"terms"}},
	{SectionsCarDetails, []string{"carDetails", "carGallery"}},
	{SectionsActivityDetails, []string{"activityDetails"}},
	{SectionsTravelPackDetails, []string{"travelPackDetails"}},
	{SectionsServices, []string{"servicesSection"}},
	{ComponentsLightbox, []string{"lightbox"}},
	{ComponentsGallery, []string{"ResponsiveGallery", "galleryDetails"}},
}

// CatalogKeys returns every flat key produced by LoadAll, in table order.
func CatalogKeys() []string {
	var keys []string
	for _, e := range fullCatalog {
		keys = append(keys, e.aliases...)
	}
	return keys
}

// Loader builds message catalogs from a Source.
type Loader struct {
	source Source
	mode   CatalogMode
	log    *slog.Logger
}

// NewLoader creates a loader. An empty mode selects CatalogIsolated.
func NewLoader(source Source, mode CatalogMode, log *slog.Logger) *Loader {
	if mode == "" {
		mode = CatalogIsolated
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{source: source, mode: mode, log: log}
}

// Mode returns the LoadAll failure mode.
func (l *Loader) Mode() CatalogMode {
	return l.mode
}

// LoadNamespaces loads each namespace concurrently. The result holds one entry
// per requested namespace; a namespace that fails to load is logged and
// replaced by an empty tree. Duplicates resolve to the last request.
func (l *Loader) LoadNamespaces(ctx context.Context, locale Locale, namespaces []Namespace) Catalog {
	results := make([]Messages, len(namespaces))
	var g errgroup.Group
	for i, ns := range namespaces {
		g.Go(func() error {
			results[i] = l.loadOrEmpty(ctx, locale, ns)
			return nil
		})
	}
	_ = g.Wait()

	catalog := make(Catalog, len(namespaces))
	for i, ns := range namespaces {
		catalog[string(ns)] = results[i]
	}
	return catalog
}

// LoadCommon loads the shared namespace. Failures are logged at error level
// and yield an empty common tree.
func (l *Loader) LoadCommon(ctx context.Context, locale Locale) Catalog {
	messages, err := l.load(ctx, locale, Common)
	if err != nil {
		l.log.Error("failed to load common messages", "locale", locale, "error", err)
		messages = Messages{}
	}
	return Catalog{string(Common): messages}
}

// LoadPage loads common and the page namespaces concurrently and merges them.
// Page entries never replace common.
func (l *Loader) LoadPage(ctx context.Context, locale Locale, pageNamespaces []Namespace) Catalog {
	var common, page Catalog
	var g errgroup.Group
	g.Go(func() error {
		common = l.LoadCommon(ctx, locale)
		return nil
	})
	g.Go(func() error {
		page = l.LoadNamespaces(ctx, locale, pageNamespaces)
		return nil
	})
	_ = g.Wait()

	merged := make(Catalog, len(common)+len(page))
	for k, v := range page {
		merged[k] = v
	}
	for k, v := range common {
		merged[k] = v
	}
	return merged
}

// LoadAll loads every catalog document and exposes each under its flat keys.
// Aliases of one document share the same tree.
func (l *Loader) LoadAll(ctx context.Context, locale Locale) Catalog {
	results := make([]Messages, len(fullCatalog))

	if l.mode == CatalogStrict {
		g, gctx := errgroup.WithContext(ctx)
		for i, e := range fullCatalog {
			g.Go(func() error {
				messages, err := l.load(gctx, locale, e.namespace)
				if err != nil {
					return fmt.Errorf("%s: %w", e.namespace, err)
				}
				results[i] = messages
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			l.log.Error("failed to load all messages", "locale", locale, "error", err)
			return Catalog{}
		}
	} else {
		var g errgroup.Group
		for i, e := range fullCatalog {
			g.Go(func() error {
				results[i] = l.loadOrEmpty(ctx, locale, e.namespace)
				return nil
			})
		}
		_ = g.Wait()
	}

	catalog := make(Catalog, 2*len(fullCatalog))
	for i, e := range fullCatalog {
		for _, alias := range e.aliases {
			catalog[alias] = results[i]
		}
	}
	return catalog
}

func (l *Loader) loadOrEmpty(ctx context.Context, locale Locale, ns Namespace) Messages {
	messages, err := l.load(ctx, locale, ns)
	if err != nil {
		l.log.Warn("failed to load namespace", "namespace", ns, "locale", locale, "error", err)
		return Messages{}
	}
	return messages
}

func (l *Loader) load(ctx context.Context, locale Locale, ns Namespace) (Messages, error) {
	contentPath, err := ContentPath(ns)
	if err != nil {
		return nil, err
	}
	return l.source.Open(ctx, locale, contentPath)
}
