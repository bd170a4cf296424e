package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
)

type cli struct {
	Init     initCmd     `cmd:"" help:"Write the built-in dashboard content as a YAML document."`
	Validate validateCmd `cmd:"" help:"Validate a dashboard content document against its schema."`
	Render   renderCmd   `cmd:"" help:"Render the dashboard for a simulated session."`
}

type initCmd struct {
	Out       string `required:"" type:"path" help:"Destination path for the content document."`
	Overwrite bool   `help:"Replace the destination if it already exists."`
}

type validateCmd struct {
	Content string `arg:"" type:"existingfile" help:"Content document to validate."`
}

type renderCmd struct {
	Content string   `type:"existingfile" help:"Content document to render (defaults to the built-in tables)."`
	User    string   `help:"Display name of the simulated user."`
	Module  []string `help:"Module keys the simulated user may access (repeat the flag, * grants all)."`
	Debug   bool     `help:"Render as a development build, including diagnostics."`
	JSON    bool     `name:"json" help:"Print the view model as JSON instead of HTML."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Content tooling for the admin dashboard."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *initCmd) Run(_ context.Context) error {
	if _, err := os.Stat(cmd.Out); err == nil && !cmd.Overwrite {
		return fmt.Errorf("panelctl: %s already exists (use --overwrite to replace)", cmd.Out)
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("panelctl: mkdir %s: %w", filepath.Dir(cmd.Out), err)
	}
	file, err := os.Create(cmd.Out) //nolint:gosec
	if err != nil {
		return fmt.Errorf("panelctl: create %s: %w", cmd.Out, err)
	}
	defer file.Close()
	if err := dashboard.EncodeContent(file, dashboard.DefaultContent()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote dashboard content to %s\n", cmd.Out)
	return nil
}

func (cmd *validateCmd) Run(_ context.Context) error {
	doc, err := dashboard.ReadContent(cmd.Content)
	if err != nil {
		return err
	}
	if err := dashboard.NewJSONSchemaValidator(nil).Validate(*doc); err != nil {
		return fmt.Errorf("panelctl: %s: %w", cmd.Content, err)
	}
	fmt.Fprintf(os.Stdout, "✓ %s is valid (%d stats, %d quick actions, %d activity entries, %d status rows)\n",
		cmd.Content, len(doc.Stats), len(doc.QuickActions), len(doc.Activity), len(doc.Status))
	return nil
}

func (cmd *renderCmd) Run(ctx context.Context) error {
	return cmd.render(ctx, os.Stdout)
}

func (cmd *renderCmd) render(ctx context.Context, out io.Writer) error {
	content := dashboard.DefaultContent()
	if cmd.Content != "" {
		doc, err := dashboard.ReadContent(cmd.Content)
		if err != nil {
			return err
		}
		content = *doc
	}
	opts := dashboard.ControllerOptions{
		Content:    dashboard.StaticContent(content),
		DebugBuild: cmd.Debug,
	}
	if !cmd.JSON {
		renderer, err := dashboard.NewTemplateRenderer()
		if err != nil {
			return fmt.Errorf("panelctl: template renderer: %w", err)
		}
		opts.Renderer = renderer
	}
	controller := dashboard.NewController(opts)
	session := cmd.session()
	if cmd.JSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(controller.View(ctx, session))
	}
	return controller.Render(ctx, session, out)
}

func (cmd *renderCmd) session() dashboard.Session {
	session := dashboard.StaticSession{Modules: dashboard.NewModuleSet(cmd.Module...)}
	if cmd.User != "" {
		session.CurrentUser = &dashboard.User{Name: cmd.User}
	}
	return session
}
