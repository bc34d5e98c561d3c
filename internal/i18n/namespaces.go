package i18n

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Namespace is a dotted key naming one group of translated strings.
type Namespace string

// Registered namespaces.
const (
	Common Namespace = "common"

	PagesHome        Namespace = "pages.home"
	PagesCars        Namespace = "pages.cars"
	PagesActivities  Namespace = "pages.activities"
	PagesGallery     Namespace = "pages.gallery"
	PagesTravelPacks Namespace = "pages.travelPacks"
	PagesContact     Namespace = "pages.contact"
	PagesOurStory    Namespace = "pages.ourStory"
	PagesPrivacy     Namespace = "pages.privacy"
	PagesTerms       Namespace = "pages.terms"

	SectionsCarDetails        Namespace = "sections.carDetails"
	SectionsActivityDetails   Namespace = "sections.activityDetails"
	SectionsTravelPackDetails Namespace = "sections.travelPackDetails"
	SectionsServices          Namespace = "sections.services"

	ComponentsLightbox Namespace = "components.lightbox"
	ComponentsGallery  Namespace = "components.gallery"
)

// Namespaces groups the registered keys the way page code refers to them,
// e.g. Namespaces.Pages.Cars.
var Namespaces = struct {
	Common Namespace
	Pages  struct {
		Home, Cars, Activities, Gallery, TravelPacks, Contact, OurStory, Privacy, Terms Namespace
	}
	Sections struct {
		CarDetails, ActivityDetails, TravelPackDetails, Services Namespace
	}
	Components struct {
		Lightbox, Gallery Namespace
	}
}{
	Common: Common,
	Pages: struct {
		Home, Cars, Activities, Gallery, TravelPacks, Contact, OurStory, Privacy, Terms Namespace
	}{
		Home:        PagesHome,
		Cars:        PagesCars,
		Activities:  PagesActivities,
		Gallery:     PagesGallery,
		TravelPacks: PagesTravelPacks,
		Contact:     PagesContact,
		OurStory:    PagesOurStory,
		Privacy:     PagesPrivacy,
		Terms:       PagesTerms,
	},
	Sections: struct {
		CarDetails, ActivityDetails, TravelPackDetails, Services Namespace
	}{
		CarDetails:        SectionsCarDetails,
		ActivityDetails:   SectionsActivityDetails,
		TravelPackDetails: SectionsTravelPackDetails,
		Services:          SectionsServices,
	},
	Components: struct {
		Lightbox, Gallery Namespace
	}{
		Lightbox: ComponentsLightbox,
		Gallery:  ComponentsGallery,
	},
}

// ErrInvalidNamespace is returned when a key cannot be mapped to a content path.
var ErrInvalidNamespace = errors.New("invalid namespace")

type registryEntry struct {
	symbol    string
	namespace Namespace
	path      string
}

// registry is the single table from namespace key to content path.
var registry = []registryEntry{
	{"COMMON", Common, "common"},
	{"PAGES.HOME", PagesHome, "pages/home"},
	{"PAGES.CARS", PagesCars, "pages/cars"},
	{"PAGES.ACTIVITIES", PagesActivities, "pages/activities"},
	{"PAGES.GALLERY", PagesGallery, "pages/gallery"},
	{"PAGES.TRAVEL_PACKS", PagesTravelPacks, "pages/travel-packs"},
	{"PAGES.CONTACT", PagesContact, "pages/contact"},
	{"PAGES.OUR_STORY", PagesOurStory, "pages/our-story"},
	{"PAGES.PRIVACY", PagesPrivacy, "pages/privacy"},
	{"PAGES.TERMS", PagesTerms, "pages/terms"},
	{"SECTIONS.CAR_DETAILS", SectionsCarDetails, "sections/car-details"},
	{"SECTIONS.ACTIVITY_DETAILS", SectionsActivityDetails, "sections/activity-details"},
	{"SECTIONS.TRAVEL_PACK_DETAILS", SectionsTravelPackDetails, "sections/travel-pack-details"},
	{"SECTIONS.SERVICES", SectionsServices, "sections/services"},
	{"COMPONENTS.LIGHTBOX", ComponentsLightbox, "components/lightbox"},
	{"COMPONENTS.GALLERY", ComponentsGallery, "components/gallery"},
}

// All returns every registered namespace in registry order.
func All() []Namespace {
	out := make([]Namespace, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.namespace)
	}
	return out
}

// Resolve looks up a symbolic path such as "PAGES.CARS".
func Resolve(symbolicPath string) (Namespace, bool) {
	for _, e := range registry {
		if e.symbol == symbolicPath {
			return e.namespace, true
		}
	}
	return "", false
}

// IsValidNamespace reports whether candidate is exactly one of the registered keys.
func IsValidNamespace(candidate string) bool {
	for _, e := range registry {
		if string(e.namespace) == candidate {
			return true
		}
	}
	return false
}

// ContentPath returns the slash separated path of the document backing ns.
// Unregistered keys follow the registry convention: dots become separators
// and camelCase segments become kebab-case.
func ContentPath(ns Namespace) (string, error) {
	for _, e := range registry {
		if e.namespace == ns {
			return e.path, nil
		}
	}
	return derivePath(ns)
}

func derivePath(ns Namespace) (string, error) {
	if ns == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidNamespace)
	}
	segments := strings.Split(string(ns), ".")
	for i, segment := range segments {
		if segment == "" {
			return "", fmt.Errorf("%w: %q has an empty segment", ErrInvalidNamespace, ns)
		}
		for _, r := range segment {
			if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-') {
				return "", fmt.Errorf("%w: %q contains %q", ErrInvalidNamespace, ns, r)
			}
		}
		segments[i] = kebab(segment)
	}
	return strings.Join(segments, "/"), nil
}

func kebab(segment string) string {
	var b strings.Builder
	b.Grow(len(segment) + 4)
	for i, r := range segment {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
