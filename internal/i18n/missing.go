package i18n

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// MissingRecord describes one translation lookup that found nothing.
type MissingRecord struct {
	Namespace string    `json:"namespace"`
	Key       string    `json:"key"`
	Locale    Locale    `json:"locale"`
	Timestamp time.Time `json:"timestamp"`
}

// MissingLog collects deduplicated lookup misses. It only records in
// development and while enabled.
type MissingLog struct {
	mu          sync.Mutex
	records     []MissingRecord
	enabled     bool
	development bool
	now         func() time.Time
	log         *slog.Logger
}

// MissingLogOption customises a MissingLog.
type MissingLogOption func(*MissingLog)

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) MissingLogOption {
	return func(m *MissingLog) { m.now = now }
}

// WithMissingLogger sets the logger that announces first-time misses.
func WithMissingLogger(log *slog.Logger) MissingLogOption {
	return func(m *MissingLog) { m.log = log }
}

// NewMissingLog creates a log; it starts enabled only in development.
func NewMissingLog(development bool, opts ...MissingLogOption) *MissingLog {
	m := &MissingLog{
		enabled:     development,
		development: development,
		now:         time.Now,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Log records a miss unless the same namespace, key and locale is already known.
func (m *MissingLog) Log(namespace, key string, locale Locale) {
	m.mu.Lock()
	if !m.development || !m.enabled {
		m.mu.Unlock()
		return
	}
	for _, r := range m.records {
		if r.Namespace == namespace && r.Key == key && r.Locale == locale {
			m.mu.Unlock()
			return
		}
	}
	record := MissingRecord{Namespace: namespace, Key: key, Locale: locale, Timestamp: m.now()}
	m.records = append(m.records, record)
	m.mu.Unlock()

	m.log.Warn("missing translation",
		"namespace", namespace,
		"key", key,
		"locale", locale,
		"time", record.Timestamp.Format(time.RFC3339),
	)
}

// List returns a copy of the recorded misses in insertion order.
func (m *MissingLog) List() []MissingRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MissingRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Len returns the number of recorded misses.
func (m *MissingLog) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Clear drops every record.
func (m *MissingLog) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}

// Enable turns recording on.
func (m *MissingLog) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
}

// Disable turns recording off. Existing records are kept.
func (m *MissingLog) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}

// IsEnabled reports the enabled flag.
func (m *MissingLog) IsEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

const (
	reportRule = 60
	// NoMissingReport is the report text when nothing was recorded.
	NoMissingReport = "No missing translations found!"
)

// Report renders the records for translators.
func (m *MissingLog) Report() string {
	records := m.List()
	if len(records) == 0 {
		return NoMissingReport
	}

	heavy := strings.Repeat("=", reportRule)
	var b strings.Builder
	b.WriteString(heavy + "\n")
	b.WriteString("Missing Translations Report\n")
	b.WriteString(heavy + "\n")
	fmt.Fprintf(&b, "Total Missing: %d\n\n", len(records))
	b.WriteString("Details:\n")
	b.WriteString(strings.Repeat("-", reportRule) + "\n")
	for i, r := range records {
		fmt.Fprintf(&b, "%d. [%s] %s.%s\n", i+1, r.Locale, r.Namespace, r.Key)
		fmt.Fprintf(&b, "   Time: %s\n\n", r.Timestamp.Format(time.DateTime))
	}
	b.WriteString(heavy)
	return b.String()
}
