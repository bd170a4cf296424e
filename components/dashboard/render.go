package dashboard

import (
	"embed"
	"io"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Renderer turns the template data for a view into markup. Render writes to out[0] when
// given and also returns the markup.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// NewTemplateRenderer creates a go-template renderer over the embedded dashboard
// template. Templates are addressed without the .html extension.
func NewTemplateRenderer() (Renderer, error) {
	return template.NewRenderer(
		template.WithFS(embeddedTemplates),
		template.WithBaseDir("templates"),
		template.WithExtension(".html"),
	)
}
