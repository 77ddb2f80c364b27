package render

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/roivaz/issuegen/internal/config"
	"github.com/roivaz/issuegen/internal/event"
	"github.com/roivaz/issuegen/internal/extract"
)

// NoEscapeFields are the pre-formatted context fields that templates receive
// verbatim. Everything else is escaped on render.
var NoEscapeFields = []string{"diff", "diff_raw"}

var nowFunc = time.Now

// BuildContext assembles the flat template variable set for one file from the
// file's diff, the trigger metadata and the run options. The result is never
// mutated after construction.
func BuildContext(fd extract.FileDiff, trigger event.Trigger, opts config.Options) Context {
	slug := trigger.Slug()

	ctx := Context{
		"filename":      path.Base(fd.File.Path),
		"file_path":     fd.File.Path,
		"previous_path": fd.File.PreviousPath,
		"change_type":   fd.File.Type.String(),

		"truncated":  strconv.FormatBool(fd.Truncated),
		"diff_lines": strconv.Itoa(fd.LineCount),
		"additions":  strconv.Itoa(fd.Additions),
		"deletions":  strconv.Itoa(fd.Deletions),

		"commit_sha":     trigger.HeadSHA,
		"commit_message": trigger.CommitMessage,
		"commit_author":  trigger.CommitAuthor,
		"commit_date":    trigger.CommitDate,
		"branch":         trigger.Branch,
		"repository":     slug,
		"server_url":     trigger.ServerURL,

		"pr_title":     trigger.PRTitle,
		"pull_request": strconv.FormatBool(trigger.PRNumber > 0),
	}

	if ctx["commit_date"] == "" {
		ctx["commit_date"] = nowFunc().Format(time.RFC3339)
	}

	if trigger.PRNumber > 0 {
		ctx["pr_number"] = strconv.Itoa(trigger.PRNumber)
	} else {
		ctx["pr_number"] = ""
	}

	ctx["diff"], ctx["diff_raw"] = diffFields(fd.Diff, opts.IncludeDiff)

	ctx["file_link"], ctx["commit_link"], ctx["pr_link"] = "", "", ""
	if opts.IncludeLinks && slug != "" {
		base := trigger.ServerURL + "/" + slug
		if trigger.HeadSHA != "" {
			ctx["file_link"] = base + "/blob/" + trigger.HeadSHA + "/" + fd.File.Path
			ctx["commit_link"] = base + "/commit/" + trigger.HeadSHA
		}
		if trigger.PRNumber > 0 {
			ctx["pr_link"] = base + "/pull/" + strconv.Itoa(trigger.PRNumber)
		}
	}

	return ctx
}

// diffFields renders the fenced and raw diff variables. An empty or
// whitespace-only diff becomes a literal "No changes detected" block rather
// than an empty fence.
func diffFields(diff string, include bool) (fenced, raw string) {
	if !include {
		return "", ""
	}
	if strings.TrimSpace(diff) == "" {
		return "```\nNo changes detected\n```", diff
	}
	return "```diff\n" + diff + "\n```", diff
}
