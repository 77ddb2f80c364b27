package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/roivaz/issuegen/internal/event"
	"github.com/roivaz/issuegen/internal/gitrepo"
	"github.com/roivaz/issuegen/internal/logging"
)

// Detector enumerates the changed files for the current trigger.
type Detector struct {
	repo *gitrepo.Repo
	log  logging.Logger
}

func NewDetector(repo *gitrepo.Repo, log logging.Logger) *Detector {
	return &Detector{repo: repo, log: log.WithName("detect")}
}

// Detect resolves the base reference for the trigger, diffs it against HEAD
// and classifies each changed path. When the comparison itself fails (no
// parent commit, unreachable base) it degrades to listing every tracked file
// as added so the pipeline always has an answer.
func (d *Detector) Detect(ctx context.Context, trigger event.Trigger) ([]ChangedFile, string, error) {
	base, err := d.resolveBase(ctx, trigger)
	if err != nil {
		d.log.Info("base resolution failed, treating all tracked files as added", "reason", err.Error())
		files, err := d.allTrackedAsAdded(ctx)
		return files, "", err
	}

	out, err := d.repo.DiffNameStatus(ctx, base, "HEAD")
	if err != nil {
		d.log.Info("name-status comparison failed, treating all tracked files as added", "base", base, "reason", err.Error())
		files, err := d.allTrackedAsAdded(ctx)
		return files, "", err
	}

	return d.parseNameStatus(out), base, nil
}

func (d *Detector) resolveBase(ctx context.Context, trigger event.Trigger) (string, error) {
	switch trigger.Kind {
	case event.KindPullRequest:
		if trigger.BaseBranch == "" {
			return "", fmt.Errorf("pull request trigger without base branch")
		}
		ref := fmt.Sprintf("%s/%s", d.repo.Remote(), trigger.BaseBranch)
		if !d.repo.HasRef(ctx, ref) {
			if err := d.repo.FetchShallowBranch(ctx, trigger.BaseBranch); err != nil {
				return "", fmt.Errorf("fetch base branch %s: %w", trigger.BaseBranch, err)
			}
		}
		return ref, nil
	case event.KindPush:
		if !d.repo.HasRef(ctx, "HEAD^") {
			return "", fmt.Errorf("no parent commit")
		}
		return "HEAD^", nil
	default:
		return "", fmt.Errorf("unsupported trigger kind %q", trigger.Kind)
	}
}

// parseNameStatus turns `status\tpath[\tnewPath]` lines into ChangedFiles.
// Unrecognized status letters classify as Modified; a rename without a
// resolvable new path is dropped.
func (d *Detector) parseNameStatus(out string) []ChangedFile {
	var files []ChangedFile
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			d.log.Debug("skipping malformed name-status line", "line", line)
			continue
		}
		status := fields[0]
		switch {
		case status == "A":
			files = append(files, ChangedFile{Path: fields[1], Type: Added})
		case status == "D":
			files = append(files, ChangedFile{Path: fields[1], Type: Deleted})
		case strings.HasPrefix(status, "R"):
			if len(fields) < 3 || fields[2] == "" {
				d.log.Debug("dropping rename without new path", "line", line)
				continue
			}
			files = append(files, ChangedFile{Path: fields[2], Type: Renamed, PreviousPath: fields[1]})
		case strings.HasPrefix(status, "C"):
			// Copies keep the destination path and classify as modified.
			path := fields[1]
			if len(fields) >= 3 && fields[2] != "" {
				path = fields[2]
			}
			files = append(files, ChangedFile{Path: path, Type: Modified})
		default:
			if status != "M" {
				d.log.Debug("unrecognized change status, classifying as modified", "status", status, "path", fields[1])
			}
			files = append(files, ChangedFile{Path: fields[1], Type: Modified})
		}
	}
	return files
}

func (d *Detector) allTrackedAsAdded(ctx context.Context) ([]ChangedFile, error) {
	paths, err := d.repo.ListTrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}
	files := make([]ChangedFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, ChangedFile{Path: p, Type: Added})
	}
	return files, nil
}
