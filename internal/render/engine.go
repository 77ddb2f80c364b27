package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"text/template"
)

// Context is the flat variable set available to one file's templates.
// Values are plain strings; booleans are rendered as "true"/"false".
type Context map[string]string

// Engine compiles operator templates into renderables. Fields escape
// HTML-sensitive characters by default; fields named in the no-escape set
// (pre-formatted content such as diff blocks) render verbatim.
type Engine struct {
	noEscape map[string]bool
}

// NewEngine returns an Engine whose no-escape set contains the given fields.
func NewEngine(noEscape ...string) *Engine {
	set := make(map[string]bool, len(noEscape))
	for _, f := range noEscape {
		set[f] = true
	}
	return &Engine{noEscape: set}
}

// Template is a compiled template ready to render against a Context.
type Template struct {
	tmpl   *template.Template
	engine *Engine
}

var (
	tripleVar = regexp.MustCompile(`\{\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}\}`)
	doubleVar = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
)

// Compile parses template text. Both `{{ var }}` and the legacy `{{{ var }}}`
// spellings resolve to the same field lookup; trust is decided by the
// engine's per-field escaping policy, not by the delimiter.
func (e *Engine) Compile(text string) (*Template, error) {
	normalized := tripleVar.ReplaceAllString(text, `{{index . "$1"}}`)
	normalized = doubleVar.ReplaceAllString(normalized, `{{index . "$1"}}`)
	tmpl, err := template.New("issuegen").Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{tmpl: tmpl, engine: e}, nil
}

// Render substitutes the context into the template. Unknown variables render
// as empty strings.
func (t *Template) Render(ctx Context) (string, error) {
	data := make(map[string]string, len(ctx))
	for k, v := range ctx {
		if t.engine.noEscape[k] {
			data[k] = v
		} else {
			data[k] = html.EscapeString(v)
		}
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}
