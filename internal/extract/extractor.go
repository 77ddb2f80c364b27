package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/roivaz/issuegen/internal/detect"
	"github.com/roivaz/issuegen/internal/gitrepo"
	"github.com/roivaz/issuegen/internal/logging"
)

// PlaceholderDiff stands in for a file whose diff could not be generated.
const PlaceholderDiff = "unable to generate diff"

// Options bound diff extraction for a run. Immutable once constructed.
type Options struct {
	ContextLines int // >= 0
	MaxLines     int // > 0
}

// FileDiff is the bounded diff for one changed file. LineCount always reports
// the pre-truncation line total so callers can tell how much was hidden.
type FileDiff struct {
	File      detect.ChangedFile
	Diff      string
	Truncated bool
	LineCount int
	Additions int
	Deletions int
}

// Extractor produces one FileDiff per surviving file.
type Extractor struct {
	repo *gitrepo.Repo
	opts Options
	log  logging.Logger
}

func NewExtractor(repo *gitrepo.Repo, opts Options, log logging.Logger) *Extractor {
	return &Extractor{repo: repo, opts: opts, log: log.WithName("extract")}
}

// Extract diffs base..HEAD scoped to the file. A failure never aborts the
// batch: the file gets a placeholder diff and the caller continues. For an
// empty base (degraded detection) the placeholder is returned directly since
// there is nothing to compare against.
func (e *Extractor) Extract(ctx context.Context, base string, file detect.ChangedFile) FileDiff {
	if base == "" {
		return placeholder(file)
	}

	paths := []string{file.Path}
	if file.Type == detect.Renamed && file.PreviousPath != "" {
		paths = []string{file.PreviousPath, file.Path}
	}

	raw, err := e.repo.DiffFile(ctx, base, "HEAD", e.opts.ContextLines, paths...)
	if err != nil {
		e.log.Info("diff generation failed, using placeholder", "path", file.Path, "reason", err.Error())
		return placeholder(file)
	}

	additions, deletions := countChanges(raw)
	diff, truncated, total := Truncate(raw, e.opts.MaxLines)
	return FileDiff{
		File:      file,
		Diff:      diff,
		Truncated: truncated,
		LineCount: total,
		Additions: additions,
		Deletions: deletions,
	}
}

// Truncate bounds text to maxLines lines. When the input exceeds the bound,
// the result keeps exactly the first maxLines lines followed by a blank line
// and an omitted-count note. The returned total is always the pre-truncation
// line count.
func Truncate(text string, maxLines int) (out string, truncated bool, total int) {
	lines := strings.Split(text, "\n")
	total = len(lines)
	if total <= maxLines {
		return text, false, total
	}
	kept := strings.Join(lines[:maxLines], "\n")
	omitted := total - maxLines
	return fmt.Sprintf("%s\n\ndiff truncated, %d more lines", kept, omitted), true, total
}

// countChanges parses the raw diff to count added and deleted lines. Parse
// failures leave both counts at zero; stats are advisory.
func countChanges(raw string) (additions, deletions int) {
	files, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return 0, 0
	}
	for _, f := range files {
		for _, frag := range f.TextFragments {
			additions += int(frag.LinesAdded)
			deletions += int(frag.LinesDeleted)
		}
	}
	return additions, deletions
}

func placeholder(file detect.ChangedFile) FileDiff {
	return FileDiff{File: file, Diff: PlaceholderDiff}
}
