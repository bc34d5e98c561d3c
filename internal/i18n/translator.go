package i18n

import (
	"errors"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

// RichTag renders the chunks enclosed by <name>...</name> in a rich message.
type RichTag func(chunks string) template.HTML

// Translator resolves keys within one namespace of a catalog and always
// returns something displayable.
type Translator struct {
	namespace   string
	locale      Locale
	tree        Messages
	missing     *MissingLog
	log         *slog.Logger
	development bool

	bundleOnce sync.Once
	bundle     *goi18n.Bundle
}

// TranslatorOption customises a Translator.
type TranslatorOption func(*Translator)

// WithMissingLog records misses into m.
func WithMissingLog(m *MissingLog) TranslatorOption {
	return func(t *Translator) { t.missing = m }
}

// WithTranslatorLogger sets the logger used for development diagnostics.
func WithTranslatorLogger(log *slog.Logger) TranslatorOption {
	return func(t *Translator) { t.log = log }
}

// WithDevelopment enables diagnostics for misses and rendering errors.
func WithDevelopment(development bool) TranslatorOption {
	return func(t *Translator) { t.development = development }
}

// NewTranslator binds a translator to namespace within catalog.
func NewTranslator(catalog Catalog, namespace string, locale Locale, opts ...TranslatorOption) *Translator {
	tree, _ := catalog.Namespace(namespace)
	t := &Translator{
		namespace: namespace,
		locale:    locale,
		tree:      tree,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Namespace returns the bound namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}

// Has reports whether key holds a non-empty string.
func (t *Translator) Has(key string) bool {
	value, err := t.tree.Lookup(key)
	return err == nil && value != ""
}

// T returns the translation for key. On a miss it returns the first non-empty
// fallback, or the key itself.
func (t *Translator) T(key string, fallback ...string) string {
	value, err := t.tree.Lookup(key)
	if err == nil && value != "" {
		return value
	}
	t.miss(key, err)
	return pick(key, fallback)
}

// Rich renders key with values as template data. Message placeholders are
// written {name} and every placeholder needs a value. Literal text and string
// values are escaped; template.HTML values are trusted. Each <name>...</name>
// span needs a RichTag value of the same name. Any failure yields the escaped
// fallback.
func (t *Translator) Rich(key string, values map[string]any, fallback ...string) template.HTML {
	out, err := t.rich(key, values)
	if err == nil {
		return out
	}
	if t.missing != nil && !t.Has(key) {
		t.missing.Log(t.namespace, key, t.locale)
	}
	if t.development {
		t.log.Error("rich translation error", "namespace", t.namespace, "key", key, "locale", t.locale, "error", err)
	}
	return template.HTML(html.EscapeString(pick(key, fallback)))
}

func (t *Translator) rich(key string, values map[string]any) (template.HTML, error) {
	source, err := t.tree.Lookup(key)
	if err != nil {
		return "", err
	}
	if source == "" {
		return "", fmt.Errorf("%w: %s", errKeyNotFound, key)
	}

	data, tags := splitRichValues(values)
	markers := make(map[string]string, len(data))
	for _, m := range placeholderPattern.FindAllStringSubmatch(source, -1) {
		if _, ok := data[m[1]]; !ok {
			return "", fmt.Errorf("%w: {%s}", errMissingValue, m[1])
		}
		markers[m[1]] = valueMarker + m[1] + valueMarker
	}

	localizer := goi18n.NewLocalizer(t.richBundle(), t.locale.String())
	text, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: markers,
	})
	if err != nil {
		return "", err
	}
	out, err := renderMarkup(text, tags, data)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

func (t *Translator) miss(key string, err error) {
	if t.missing != nil {
		t.missing.Log(t.namespace, key, t.locale)
	}
	if !t.development {
		return
	}
	if errors.Is(err, errNotString) {
		t.log.Error("translation error", "namespace", t.namespace, "key", key, "locale", t.locale, "error", err)
		return
	}
	t.log.Warn("missing translation", "namespace", t.namespace, "key", key, "locale", t.locale)
}

func (t *Translator) richBundle() *goi18n.Bundle {
	t.bundleOnce.Do(func() {
		tag := t.locale.Tag()
		t.bundle = goi18n.NewBundle(tag)
		for id, text := range t.tree.Flatten() {
			msg := &goi18n.Message{ID: id, Other: placeholderPattern.ReplaceAllString(text, "{{.${1}}}")}
			if err := t.bundle.AddMessages(tag, msg); err != nil {
				t.log.Warn("skipping rich message", "namespace", t.namespace, "key", id, "error", err)
			}
		}
	})
	return t.bundle
}

var (
	errMissingValue = errors.New("placeholder has no value")
	errUnhandledTag = errors.New("tag has no renderer")

	placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)
	tagPattern         = regexp.MustCompile(`<(/?)([A-Za-z][\w-]*)>`)
	markerPattern      = regexp.MustCompile(valueMarker + `(\w+)` + valueMarker)
)

// valueMarker brackets placeholder names in rendered templates until the
// literal text around them has been escaped.
const valueMarker = "\x1a"

func splitRichValues(values map[string]any) (map[string]string, map[string]RichTag) {
	data := make(map[string]string, len(values))
	tags := make(map[string]RichTag)
	for name, v := range values {
		switch value := v.(type) {
		case RichTag:
			tags[name] = value
		case func(string) template.HTML:
			tags[name] = value
		case template.HTML:
			data[name] = string(value)
		case string:
			data[name] = html.EscapeString(value)
		default:
			data[name] = html.EscapeString(fmt.Sprint(value))
		}
	}
	return data, tags
}

// renderMarkup escapes literal text, substitutes values and hands each tag
// span to its renderer.
func renderMarkup(text string, tags map[string]RichTag, data map[string]string) (string, error) {
	var b strings.Builder
	for text != "" {
		loc := tagPattern.FindStringSubmatchIndex(text)
		if loc == nil {
			b.WriteString(literal(text, data))
			break
		}
		b.WriteString(literal(text[:loc[0]], data))

		name := text[loc[4]:loc[5]]
		if loc[3] > loc[2] {
			return "", fmt.Errorf("%w: </%s> without <%s>", errUnhandledTag, name, name)
		}
		tag, ok := tags[name]
		if !ok {
			return "", fmt.Errorf("%w: <%s>", errUnhandledTag, name)
		}
		rest := text[loc[1]:]
		closing := "</" + name + ">"
		end := strings.Index(rest, closing)
		if end < 0 {
			return "", fmt.Errorf("%w: <%s> is not closed", errUnhandledTag, name)
		}
		inner, err := renderMarkup(rest[:end], tags, data)
		if err != nil {
			return "", err
		}
		b.WriteString(string(tag(inner)))
		text = rest[end+len(closing):]
	}
	return b.String(), nil
}

func literal(text string, data map[string]string) string {
	return markerPattern.ReplaceAllStringFunc(html.EscapeString(text), func(m string) string {
		return data[m[len(valueMarker):len(m)-len(valueMarker)]]
	})
}

func pick(key string, fallback []string) string {
	for _, f := range fallback {
		if f != "" {
			return f
		}
	}
	return key
}
