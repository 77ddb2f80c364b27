package render

import (
	"fmt"

	"github.com/roivaz/issuegen/internal/config"
	"github.com/roivaz/issuegen/internal/logging"
)

// Renderer holds the compiled title and body templates for a run. Rendering
// is a pure function of the compiled pair and a Context.
type Renderer struct {
	title *Template
	body  *Template
}

// NewRenderer resolves and compiles both templates once. A body template that
// fails to compile falls back to the built-in default with a warning; the
// defaults themselves must always compile.
func NewRenderer(opts config.Options, log logging.Logger) (*Renderer, error) {
	log = log.WithName("render")
	engine := NewEngine(NoEscapeFields...)

	title, err := engine.Compile(ResolveTitle(opts.TitleTemplate))
	if err != nil {
		log.Info("title template invalid, using default", "reason", err.Error())
		if title, err = engine.Compile(DefaultTitleTemplate); err != nil {
			return nil, fmt.Errorf("compile default title template: %w", err)
		}
	}

	body, err := engine.Compile(ResolveBody(opts.BodyTemplate, opts.RepoPath, log))
	if err != nil {
		log.Info("body template invalid, using default", "reason", err.Error())
		if body, err = engine.Compile(DefaultBodyTemplate); err != nil {
			return nil, fmt.Errorf("compile default body template: %w", err)
		}
	}

	return &Renderer{title: title, body: body}, nil
}

// Render produces the final issue text for one file.
func (r *Renderer) Render(ctx Context) (RenderedIssue, error) {
	title, err := r.title.Render(ctx)
	if err != nil {
		return RenderedIssue{}, fmt.Errorf("render title: %w", err)
	}
	body, err := r.body.Render(ctx)
	if err != nil {
		return RenderedIssue{}, fmt.Errorf("render body: %w", err)
	}
	return RenderedIssue{Title: title, Body: body}, nil
}
