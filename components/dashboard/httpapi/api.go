package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
	"github.com/goliatone/go-admin-panel/components/dashboard/commands"
	gocommand "github.com/goliatone/go-command"
	"go.uber.org/zap"
)

const (
	// HeaderUserName carries the display name of the signed-in user.
	HeaderUserName = "X-User-Name"
	// HeaderUserModules carries a comma separated list of module keys.
	HeaderUserModules = "X-User-Modules"
)

const maxActivityBody = 64 << 10

var errForbidden = errors.New("admin access required")

// DashboardView is the controller surface the handlers need.
type DashboardView interface {
	View(ctx context.Context, session dashboard.Session) dashboard.View
	Render(ctx context.Context, session dashboard.Session, out io.Writer) error
}

// SessionResolver extracts the dashboard session from a request.
type SessionResolver func(*http.Request) dashboard.Session

// Handlers exposes HTTP endpoints backed by the controller and shared commands.
type Handlers struct {
	Dashboard   DashboardView
	Sessions    SessionResolver
	Reload      gocommand.Commander[commands.ReloadContentInput]
	Record      gocommand.Commander[commands.RecordActivityInput]
	ContentPath string
	Log         *zap.Logger

	// AdminModule gates the reload and activity handlers. Blank selects
	// dashboard.AdminModule.
	AdminModule string

	// TrustHeaders lets the default resolver read the user headers. Enable it only
	// behind a proxy that strips client supplied copies.
	TrustHeaders bool
}

// HandleDashboard renders the dashboard markup.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Dashboard.Render(r.Context(), h.session(r), &buf); err != nil {
		h.log().Error("render dashboard", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// HandleView returns the resolved view model as JSON.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	view := h.Dashboard.View(r.Context(), h.session(r))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.log().Error("encode dashboard view", zap.Error(err))
	}
}

// HandleReloadContent reloads the configured content document. Only sessions granted
// the admin module may trigger it.
func (h *Handlers) HandleReloadContent(w http.ResponseWriter, r *http.Request) {
	if h.Reload == nil || strings.TrimSpace(h.ContentPath) == "" {
		http.Error(w, "content reload not configured", http.StatusNotImplemented)
		return
	}
	if !dashboard.CanAdminister(h.session(r), h.AdminModule) {
		http.Error(w, errForbidden.Error(), http.StatusForbidden)
		return
	}
	if err := h.Reload.Execute(r.Context(), commands.ReloadContentInput{Path: h.ContentPath}); err != nil {
		h.log().Warn("reload dashboard content", zap.String("path", h.ContentPath), zap.Error(err))
		http.Error(w, "content reload failed", http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleRecordActivity appends an activity entry to the live feed. Only sessions granted
// the admin module may write.
func (h *Handlers) HandleRecordActivity(w http.ResponseWriter, r *http.Request) {
	if h.Record == nil {
		http.Error(w, "activity feed not configured", http.StatusNotImplemented)
		return
	}
	if !dashboard.CanAdminister(h.session(r), h.AdminModule) {
		http.Error(w, errForbidden.Error(), http.StatusForbidden)
		return
	}
	var entry dashboard.ActivityEntry
	if err := json.NewDecoder(io.LimitReader(r.Body, maxActivityBody)).Decode(&entry); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Record.Execute(r.Context(), commands.RecordActivityInput{Entry: entry}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HeaderSession builds a session from the user headers set by an upstream auth proxy.
func HeaderSession(r *http.Request) dashboard.Session {
	session := dashboard.StaticSession{
		Modules: dashboard.ParseModuleList(r.Header.Get(HeaderUserModules)),
	}
	if name := strings.TrimSpace(r.Header.Get(HeaderUserName)); name != "" {
		session.CurrentUser = &dashboard.User{Name: name}
	}
	return session
}

func (h *Handlers) session(r *http.Request) dashboard.Session {
	if h.Sessions == nil {
		if h.TrustHeaders {
			return HeaderSession(r)
		}
		return dashboard.StaticSession{}
	}
	return h.Sessions(r)
}

func (h *Handlers) log() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
