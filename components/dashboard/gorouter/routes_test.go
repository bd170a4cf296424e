package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
	"github.com/goliatone/go-admin-panel/components/dashboard/commands"
	"github.com/goliatone/go-admin-panel/components/dashboard/httpapi"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{View: "/home/_view"})
	if routes.HTML != "/dashboard" {
		t.Fatalf("unexpected html route %q", routes.HTML)
	}
	if routes.View != "/home/_view" {
		t.Fatalf("custom view route overwritten: %q", routes.View)
	}
	if routes.Reload != "/dashboard/content/reload" || routes.Activity != "/dashboard/activity" {
		t.Fatalf("unexpected admin routes %+v", routes)
	}
}

func TestBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/admin",
		"  ":      "/admin",
		"/":       "/admin",
		"panel":   "/panel",
		"/panel/": "/panel",
		"/a/b":    "/a/b",
	}
	for input, want := range cases {
		if got := basePath(input); got != want {
			t.Fatalf("basePath(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestModulesFromLocal(t *testing.T) {
	if modulesFromLocal(nil) != nil {
		t.Fatalf("expected nil for missing local")
	}
	if modulesFromLocal(42) != nil {
		t.Fatalf("expected nil for unsupported local type")
	}
	if set := modulesFromLocal([]string{"pos", "pedidos"}); !set.Allows("pos") || !set.Allows("pedidos") || set.Allows("empleados") {
		t.Fatalf("unexpected set from slice %#v", set)
	}
	if set := modulesFromLocal("productos, pos"); !set.Allows("productos") || !set.Allows("pos") {
		t.Fatalf("unexpected set from csv %#v", set)
	}
	given := dashboard.NewModuleSet("*")
	if set := modulesFromLocal(given); !set.Allows("empleados") {
		t.Fatalf("expected wildcard set to pass through")
	}
}

func TestNewSession(t *testing.T) {
	anon := newSession("  ", nil)
	if anon.User() != nil {
		t.Fatalf("blank name must not create a user")
	}
	if anon.CanAccessModule("pos") {
		t.Fatalf("nil modules must deny access")
	}
	named := newSession("Ana García", dashboard.NewModuleSet("pos"))
	if named.User() == nil || named.User().Name != "Ana García" {
		t.Fatalf("unexpected user %#v", named.User())
	}
	if !named.CanAccessModule("pos") {
		t.Fatalf("expected pos access")
	}
}

// --- Route tests ---

const contentPath = "/etc/panel/content.yaml"

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubRenderer struct {
	calls int
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<p>ok</p>"))
	}
	return "<p>ok</p>", nil
}

func withLocals(name string, modules any) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if name != "" {
				ctx.Locals("user_name", name)
			}
			if modules != nil {
				ctx.Locals("modules", modules)
			}
			return next(ctx)
		}
	}
}

func newTestApp(t *testing.T, cfg Config[*fiber.App], mw ...router.MiddlewareFunc) *fiber.App {
	t.Helper()
	server := router.NewFiberAdapter()
	r := server.Router()
	if len(mw) > 0 {
		r.Use(mw...)
	}
	cfg.Router = r
	if cfg.Controller == nil {
		cfg.Controller = dashboard.NewController(dashboard.ControllerOptions{Renderer: &stubRenderer{}})
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	return server.WrappedRouter()
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func decodeView(t *testing.T, body string) dashboard.View {
	t.Helper()
	var view dashboard.View
	if err := json.Unmarshal([]byte(body), &view); err != nil {
		t.Fatalf("decode view: %v (%s)", err, body)
	}
	return view
}

func TestRegisterHTMLRoute(t *testing.T) {
	renderer := &stubRenderer{}
	app := newTestApp(t, Config[*fiber.App]{
		Controller: dashboard.NewController(dashboard.ControllerOptions{Renderer: renderer}),
	})

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if body != "<p>ok</p>" || renderer.calls != 1 {
		t.Fatalf("renderer not used: body=%q calls=%d", body, renderer.calls)
	}
}

func TestRegisterHTMLRouteRendererFailure(t *testing.T) {
	app := newTestApp(t, Config[*fiber.App]{
		Controller: dashboard.NewController(dashboard.ControllerOptions{}),
	})
	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"error"`) {
		t.Fatalf("expected JSON error body, got %q", body)
	}
}

func TestRegisterViewRouteUsesLocals(t *testing.T) {
	app := newTestApp(t, Config[*fiber.App]{BasePath: "/panel"}, withLocals("Ana", []string{"pos"}))

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/panel/dashboard/_view", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	view := decodeView(t, body)
	if view.Greeting != "Bienvenido, Ana" {
		t.Fatalf("unexpected greeting %q", view.Greeting)
	}
	if len(view.QuickActions.Links) != 1 || view.QuickActions.Links[0].Href != "/pos" {
		t.Fatalf("expected only /pos, got %#v", view.QuickActions.Links)
	}
}

func TestRegisterViewRouteHeaderTrust(t *testing.T) {
	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/admin/dashboard/_view", nil)
		r.Header.Set(httpapi.HeaderUserName, "Carlos")
		r.Header.Set(httpapi.HeaderUserModules, "productos,pedidos")
		return r
	}

	untrusted := newTestApp(t, Config[*fiber.App]{})
	_, body := doRequest(t, untrusted, req())
	if view := decodeView(t, body); view.Greeting != "Bienvenido, Usuario" || len(view.QuickActions.Links) != 0 {
		t.Fatalf("headers must be ignored unless trusted, got %#v", view)
	}

	trusted := newTestApp(t, Config[*fiber.App]{TrustHeaders: true})
	_, body = doRequest(t, trusted, req())
	view := decodeView(t, body)
	if view.Greeting != "Bienvenido, Carlos" || len(view.QuickActions.Links) != 2 {
		t.Fatalf("expected header session, got %#v", view)
	}
}

func TestRegisterReloadRoute(t *testing.T) {
	reload := &stubCommander[commands.ReloadContentInput]{}
	cfg := Config[*fiber.App]{Reload: reload, ContentPath: contentPath}
	app := newTestApp(t, cfg, withLocals("Ana", dashboard.AdminModule))

	post := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/admin/dashboard/content/reload", strings.NewReader(body))
	}

	resp, _ := doRequest(t, app, post(`{"path":"/etc/passwd"}`))
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}
	if reload.last.Path != contentPath {
		t.Fatalf("request body must not pick the file, got %q", reload.last.Path)
	}

	reload.err = errors.New("dashboard: decode content: line 1: DB_PASS=hunter2")
	resp, body := doRequest(t, app, post(""))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "DB_PASS") {
		t.Fatalf("reload failure must not echo file contents: %q", body)
	}
}

func TestRegisterReloadRouteForbidden(t *testing.T) {
	cases := []struct {
		name string
		mw   []router.MiddlewareFunc
	}{
		{name: "anonymous"},
		{name: "without admin", mw: []router.MiddlewareFunc{withLocals("Ana", []string{"pos", "pedidos"})}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reload := &stubCommander[commands.ReloadContentInput]{}
			app := newTestApp(t, Config[*fiber.App]{Reload: reload, ContentPath: contentPath}, tc.mw...)
			req := httptest.NewRequest(http.MethodPost, "/admin/dashboard/content/reload", nil)
			req.Header.Set(httpapi.HeaderUserModules, dashboard.AdminModule)

			resp, _ := doRequest(t, app, req)
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", resp.StatusCode)
			}
			if reload.calls != 0 {
				t.Fatalf("reload must not run for a denied session")
			}
		})
	}
}

func TestRegisterReloadRouteRequiresContentPath(t *testing.T) {
	reload := &stubCommander[commands.ReloadContentInput]{}
	app := newTestApp(t, Config[*fiber.App]{Reload: reload}, withLocals("Ana", "*"))

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/admin/dashboard/content/reload", nil))
	if resp.StatusCode < 400 {
		t.Fatalf("reload route must not be mounted without a content path, got %d", resp.StatusCode)
	}
	if reload.calls != 0 {
		t.Fatalf("reload must not run without a content path")
	}
}

func TestRegisterActivityRoute(t *testing.T) {
	feed := dashboard.NewMemoryActivityFeed(5)
	cfg := Config[*fiber.App]{
		Controller: dashboard.NewController(dashboard.ControllerOptions{Activity: feed}),
		Record:     commands.NewRecordActivityCommand(feed, nil),
	}
	app := newTestApp(t, cfg, withLocals("Ana", dashboard.NewModuleSet(dashboard.AdminModule)))

	post := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/admin/dashboard/activity", strings.NewReader(body))
	}

	resp, _ := doRequest(t, app, post(`{"action":"Pedido enviado","user":"Luis","time":"Hace un momento","type":"success"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp, _ = doRequest(t, app, post("{"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.StatusCode)
	}
	resp, _ = doRequest(t, app, post(`{"action":" "}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank action, got %d", resp.StatusCode)
	}

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/admin/dashboard/_view", nil))
	view := decodeView(t, body)
	if len(view.Activity.Entries) != 1 || view.Activity.Entries[0].Action != "Pedido enviado" {
		t.Fatalf("expected recorded entry in view, got %#v", view.Activity.Entries)
	}
}

func TestRegisterActivityRouteForbidden(t *testing.T) {
	feed := dashboard.NewMemoryActivityFeed(5)
	cfg := Config[*fiber.App]{
		Controller: dashboard.NewController(dashboard.ControllerOptions{Activity: feed}),
		Record:     commands.NewRecordActivityCommand(feed, nil),
	}
	app := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/admin/dashboard/activity", strings.NewReader(`{"action":"Pedido falso"}`))
	resp, _ := doRequest(t, app, req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if feed.Len() != 0 {
		t.Fatalf("denied write must not reach the feed")
	}

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/admin/dashboard/_view", nil))
	if strings.Contains(body, "Pedido falso") {
		t.Fatalf("denied entry leaked into the view")
	}
}
