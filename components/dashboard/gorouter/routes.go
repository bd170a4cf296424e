package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
	"github.com/goliatone/go-admin-panel/components/dashboard/commands"
	"github.com/goliatone/go-admin-panel/components/dashboard/httpapi"
	gocommand "github.com/goliatone/go-command"
	"go.uber.org/zap"
)

var (
	errForbidden    = errors.New("admin access required")
	errReloadFailed = errors.New("content reload failed")
)

// SessionResolver converts a router.Context into a dashboard.Session.
type SessionResolver func(router.Context) dashboard.Session

// Config wires go-router with the dashboard controller and admin commands.
type Config[T any] struct {
	Router          router.Router[T]
	Controller      *dashboard.Controller
	Reload          gocommand.Commander[commands.ReloadContentInput]
	Record          gocommand.Commander[commands.RecordActivityInput]
	ContentPath     string
	SessionResolver SessionResolver
	BasePath        string
	Routes          RouteConfig
	Log             *zap.Logger

	// AdminModule gates the reload and activity routes. Blank selects
	// dashboard.AdminModule.
	AdminModule string

	// TrustHeaders lets the default resolver read the X-User-* headers. Enable it only
	// behind a proxy that strips client supplied copies.
	TrustHeaders bool
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML     string
	View     string
	Reload   string
	Activity string
}

// Register mounts the dashboard routes on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	resolve := cfg.SessionResolver
	if resolve == nil {
		resolve = localsSessionResolver(cfg.TrustHeaders)
	}

	logger := cfg.Log
	if logger == nil {
		logger = zap.NewNop()
	}

	group := cfg.Router.Group(basePath(cfg.BasePath))

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.Render(ctx.Context(), resolve(ctx), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.View, router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, cfg.Controller.View(ctx.Context(), resolve(ctx)))
	}))

	if cfg.Reload != nil && strings.TrimSpace(cfg.ContentPath) != "" {
		group.Post(routes.Reload, router.WrapHandler(func(ctx router.Context) error {
			if !dashboard.CanAdminister(resolve(ctx), cfg.AdminModule) {
				return respondError(ctx, http.StatusForbidden, errForbidden)
			}
			if err := cfg.Reload.Execute(ctx.Context(), commands.ReloadContentInput{Path: cfg.ContentPath}); err != nil {
				logger.Warn("reload dashboard content", zap.String("path", cfg.ContentPath), zap.Error(err))
				return respondError(ctx, http.StatusUnprocessableEntity, errReloadFailed)
			}
			return ctx.JSON(http.StatusAccepted, map[string]string{"status": "reloaded"})
		}))
	}

	if cfg.Record != nil {
		group.Post(routes.Activity, router.WrapHandler(func(ctx router.Context) error {
			if !dashboard.CanAdminister(resolve(ctx), cfg.AdminModule) {
				return respondError(ctx, http.StatusForbidden, errForbidden)
			}
			var entry dashboard.ActivityEntry
			if err := json.Unmarshal(ctx.Body(), &entry); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			if err := cfg.Record.Execute(ctx.Context(), commands.RecordActivityInput{Entry: entry}); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			return ctx.JSON(http.StatusCreated, map[string]string{"status": "recorded"})
		}))
	}

	return nil
}

// localsSessionResolver reads the values stored by auth middleware. When trustHeaders
// is set it falls back to the proxy headers understood by httpapi.
func localsSessionResolver(trustHeaders bool) SessionResolver {
	return func(ctx router.Context) dashboard.Session {
		name, _ := ctx.Locals("user_name").(string)
		modules := modulesFromLocal(ctx.Locals("modules"))
		if trustHeaders {
			if name == "" {
				name = ctx.Header(httpapi.HeaderUserName)
			}
			if modules == nil {
				modules = dashboard.ParseModuleList(ctx.Header(httpapi.HeaderUserModules))
			}
		}
		return newSession(name, modules)
	}
}

func newSession(name string, modules dashboard.ModuleSet) dashboard.StaticSession {
	session := dashboard.StaticSession{Modules: modules}
	if name = strings.TrimSpace(name); name != "" {
		session.CurrentUser = &dashboard.User{Name: name}
	}
	return session
}

func modulesFromLocal(v any) dashboard.ModuleSet {
	switch modules := v.(type) {
	case dashboard.ModuleSet:
		return modules
	case []string:
		return dashboard.NewModuleSet(modules...)
	case string:
		return dashboard.ParseModuleList(modules)
	default:
		return nil
	}
}

func basePath(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "/admin"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.View == "" {
		routes.View = "/dashboard/_view"
	}
	if routes.Reload == "" {
		routes.Reload = "/dashboard/content/reload"
	}
	if routes.Activity == "" {
		routes.Activity = "/dashboard/activity"
	}
	return routes
}
