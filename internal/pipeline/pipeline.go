package pipeline

import (
	"context"
	"fmt"

	"github.com/roivaz/issuegen/internal/config"
	"github.com/roivaz/issuegen/internal/detect"
	"github.com/roivaz/issuegen/internal/event"
	"github.com/roivaz/issuegen/internal/extract"
	"github.com/roivaz/issuegen/internal/issues"
	"github.com/roivaz/issuegen/internal/logging"
	"github.com/roivaz/issuegen/internal/render"
)

// IssueCreator is the external work-item creation collaborator. It is invoked
// once per surviving file and must report failures independently.
type IssueCreator interface {
	Create(ctx context.Context, issue render.RenderedIssue) (issues.Created, error)
}

// Summary is the run outcome handed back for downstream reporting.
type Summary struct {
	ChangedPaths []string
	Results      []issues.Result
	Created      []issues.Created
}

// Pipeline wires detection, filtering, extraction, rendering and creation
// into one sequential run. Files are processed one at a time; per-file state
// is never shared.
type Pipeline struct {
	opts      config.Options
	trigger   event.Trigger
	detector  *detect.Detector
	matcher   *detect.Matcher
	extractor *extract.Extractor
	renderer  *render.Renderer
	creator   IssueCreator
	log       logging.Logger
}

func New(opts config.Options, trigger event.Trigger, detector *detect.Detector, matcher *detect.Matcher,
	extractor *extract.Extractor, renderer *render.Renderer, creator IssueCreator, log logging.Logger) *Pipeline {
	return &Pipeline{
		opts:      opts,
		trigger:   trigger,
		detector:  detector,
		matcher:   matcher,
		extractor: extractor,
		renderer:  renderer,
		creator:   creator,
		log:       log.WithName("pipeline"),
	}
}

// Run executes the full pipeline. Per-file failures are collected, not
// propagated; the run only fails outright when git itself is unusable or when
// every creation attempt of a non-empty, non-dry-run batch failed.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if p.trigger.Kind == event.KindUnsupported {
		p.log.Info("unsupported trigger kind, nothing to do", "event", p.trigger.EventName)
		return summary, nil
	}

	detected, base, err := p.detector.Detect(ctx, p.trigger)
	if err != nil {
		return summary, fmt.Errorf("detect changes: %w", err)
	}
	p.log.Info("changes detected", "total", len(detected), "base", base)

	matched := p.matcher.Filter(detected)
	for _, f := range matched {
		summary.ChangedPaths = append(summary.ChangedPaths, f.Path)
	}
	p.log.Info("files selected", "count", len(matched))
	if len(matched) == 0 {
		return summary, nil
	}

	for _, f := range matched {
		fd := p.extractor.Extract(ctx, base, f)
		tctx := render.BuildContext(fd, p.trigger, p.opts)

		issue, err := p.renderer.Render(tctx)
		if err != nil {
			p.log.Error(err, "render failed", "path", f.Path)
			summary.Results = append(summary.Results, issues.Result{Path: f.Path, Err: err})
			continue
		}

		created, err := p.creator.Create(ctx, issue)
		if err != nil {
			p.log.Error(err, "issue creation failed", "path", f.Path)
			summary.Results = append(summary.Results, issues.Result{Path: f.Path, Err: err})
			continue
		}
		p.log.Info("issue created", "path", f.Path, "number", created.Number, "url", created.URL)
		summary.Results = append(summary.Results, issues.Result{Path: f.Path, Created: &created})
		summary.Created = append(summary.Created, created)
	}

	if !p.opts.DryRun && len(summary.Created) == 0 {
		return summary, fmt.Errorf("all %d issue creations failed", len(matched))
	}
	return summary, nil
}
