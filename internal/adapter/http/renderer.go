package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/numfmt"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	TemplateIndex = "index.html"
	TemplateError = "error.html"
)

// TemplateRenderer renders the embedded HTML pages for echo.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("pages").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// MustTemplateRenderer is like NewTemplateRenderer but panics on error.
func MustTemplateRenderer() *TemplateRenderer {
	r, err := NewTemplateRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render implements echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"miles":    numfmt.Miles,
		"usd":      numfmt.USD,
		"money":    numfmt.Money,
		"cents":    numfmt.Cents,
		"readable": timeutil.ReadableLocal,
		"typeName": func(t domain.RedemptionType) string { return t.DisplayName() },
		"isGiftCard": func(t domain.RedemptionType) bool {
			return t == domain.RedemptionGiftCard
		},
		"inc": func(i int) int { return i + 1 },
	}
}

var _ echo.Renderer = (*TemplateRenderer)(nil)
