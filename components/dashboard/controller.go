package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultTemplate is the template rendered by Controller.Render.
const DefaultTemplate = "dashboard"

var errMissingRenderer = errors.New("dashboard: renderer not configured")

// ControllerOptions wires the collaborators used to build and render the dashboard.
type ControllerOptions struct {
	Content       ContentProvider
	Activity      ActivityFeed
	ActivityLimit int
	Renderer      Renderer
	Template      string
	DebugBuild    bool
	Telemetry     Telemetry
}

// Controller builds dashboard views for transports (HTML, JSON).
type Controller struct {
	opts ControllerOptions
}

// NewController builds a controller with safe defaults.
func NewController(opts ControllerOptions) *Controller {
	if opts.Content == nil {
		opts.Content = StaticContent(DefaultContent())
	}
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = defaultActivityLimit
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}
}

// View resolves the dashboard for session.
func (c *Controller) View(ctx context.Context, session Session) View {
	content := c.opts.Content.Current()
	if entries, ok := c.liveActivity(ctx); ok {
		content.Activity = entries
	}
	view := BuildView(session, content, ViewOptions{DebugBuild: c.opts.DebugBuild})
	c.opts.Telemetry.Record(ctx, "dashboard.view.build", map[string]any{
		"stats":   len(view.Stats),
		"actions": len(view.QuickActions.Links),
		"entries": len(view.Activity.Entries),
		"debug":   view.Diagnostics != nil,
	})
	return view
}

// Render writes the dashboard markup for session to out.
func (c *Controller) Render(ctx context.Context, session Session, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errMissingRenderer
	}
	data, err := TemplateData(c.View(ctx, session))
	if err != nil {
		return err
	}
	if _, err := c.opts.Renderer.Render(c.opts.Template, data, out); err != nil {
		return fmt.Errorf("dashboard: render %s: %w", c.opts.Template, err)
	}
	return nil
}

func (c *Controller) liveActivity(ctx context.Context) ([]ActivityEntry, bool) {
	if c.opts.Activity == nil {
		return nil, false
	}
	entries, err := c.opts.Activity.Recent(ctx, c.opts.ActivityLimit)
	if err != nil {
		c.opts.Telemetry.Record(ctx, "dashboard.activity.feed_error", map[string]any{
			"error": err.Error(),
		})
		return nil, false
	}
	if len(entries) == 0 {
		return nil, false
	}
	return entries, true
}

// TemplateData converts view into the generic map handed to template engines. Keys
// follow the JSON field names (snake_case).
func TemplateData(view View) (map[string]any, error) {
	raw, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal view: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("dashboard: normalize view: %w", err)
	}
	return data, nil
}
