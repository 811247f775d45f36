package swagger

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/knadh/koanf/parsers/yaml"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
	ErrSpec  = errors.New("invalid openapi document")
)

// OpenAPI contains the embedded OpenAPI YAML document.
//
//go:embed openapi.yaml
var OpenAPI []byte

// redocScript is loaded from the ReDoc CDN.
const redocScript = "https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"

// Info is the document's info block.
type Info struct {
	Title   string
	Version string
}

// ParseInfo reads the info block of the embedded document.
func ParseInfo() (Info, error) {
	const op = "swagger.parse_info"
	doc, err := yaml.Parser().Unmarshal(OpenAPI)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w: %w", op, ErrSpec, err)
	}
	raw, ok := doc["info"].(map[string]interface{})
	if !ok {
		return Info{}, fmt.Errorf("%s: %w: missing info", op, ErrSpec)
	}
	info := Info{}
	info.Title, _ = raw["title"].(string)
	info.Version = fmt.Sprint(raw["version"])
	if info.Title == "" {
		return Info{}, fmt.Errorf("%s: %w: missing title", op, ErrSpec)
	}
	return info, nil
}

var indexTmpl = template.Must(template.New("redoc").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}} {{.Version}} - API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + redocScript + `"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`))

// Register attaches the docs page and the OpenAPI document to mux.
// Routes:
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> embedded OpenAPI document
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	info, err := ParseInfo()
	if err != nil {
		panic(err)
	}

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTmpl.Execute(w, info); err != nil {
			http.Error(w, fmt.Errorf("%w: %w", ErrServe, err).Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}
