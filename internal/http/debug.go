package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nomadia/site-messages/internal/i18n"
)

// ReportNotifier delivers the missing translation report somewhere humans read it.
type ReportNotifier interface {
	Notify(ctx context.Context, text string) error
}

// DebugHandler exposes the missing translation log. It is mounted in
// development only.
type DebugHandler struct {
	missing  *i18n.MissingLog
	notifier ReportNotifier
	log      *slog.Logger
}

// NewDebugHandler creates the debug routes. notifier may be nil.
func NewDebugHandler(missing *i18n.MissingLog, notifier ReportNotifier, log *slog.Logger) *DebugHandler {
	return &DebugHandler{missing: missing, notifier: notifier, log: log}
}

// MissingResponse is the JSON view of the missing translation log.
type MissingResponse struct {
	Enabled bool                 `json:"enabled"`
	Count   int                  `json:"count"`
	Records []i18n.MissingRecord `json:"records"`
}

// Register mounts the routes on mux.
func (h *DebugHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/i18n/missing", h.list)
	mux.HandleFunc("DELETE /debug/i18n/missing", h.clear)
	mux.HandleFunc("POST /debug/i18n/missing/enable", h.toggle(true))
	mux.HandleFunc("POST /debug/i18n/missing/disable", h.toggle(false))
	mux.HandleFunc("POST /debug/i18n/missing/notify", h.notify)
}

func (h *DebugHandler) list(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.URL.Query().Get("format"), "text") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(h.missing.Report()))
		return
	}
	h.respondState(w)
}

func (h *DebugHandler) clear(w http.ResponseWriter, _ *http.Request) {
	h.missing.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *DebugHandler) toggle(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if enabled {
			h.missing.Enable()
		} else {
			h.missing.Disable()
		}
		h.log.Info("missing translation logging toggled", "enabled", enabled)
		h.respondState(w)
	}
}

func (h *DebugHandler) notify(w http.ResponseWriter, r *http.Request) {
	if h.notifier == nil {
		respond(w, http.StatusServiceUnavailable, errorResponse{Error: "no report notifier configured"})
		return
	}
	if err := h.notifier.Notify(r.Context(), h.missing.Report()); err != nil {
		h.log.Error("failed to send missing translation report", "error", err)
		respond(w, http.StatusBadGateway, errorResponse{Error: "report delivery failed"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DebugHandler) respondState(w http.ResponseWriter) {
	records := h.missing.List()
	respond(w, http.StatusOK, MissingResponse{
		Enabled: h.missing.IsEnabled(),
		Count:   len(records),
		Records: records,
	})
}
