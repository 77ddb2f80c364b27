package render

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/roivaz/issuegen/internal/logging"
)

// DefaultTitleTemplate is the built-in title used when the operator supplies
// none.
const DefaultTitleTemplate = "Specification Change: {{ filename }}"

// DefaultBodyTemplate is the built-in, always-available body template.
const DefaultBodyTemplate = `## Specification Change Detected

A tracked file changed in {{ repository }} and needs review.

**File:** {{ file_path }}
**Change type:** {{ change_type }}
**Commit:** {{ commit_sha }}
**Author:** {{ commit_author }}
**Date:** {{ commit_date }}

{{{ diff }}}

### Review Checklist

- [ ] Review the specification changes
- [ ] Update affected implementation
- [ ] Update tests to match the new behavior
- [ ] Update related documentation
`

// RenderedIssue is the final title/body pair for one file.
type RenderedIssue struct {
	Title string
	Body  string
}

var pathExt = regexp.MustCompile(`\.[A-Za-z0-9]+$`)

// looksLikePath reports whether a template value should be treated as a file
// reference rather than inline template text.
func looksLikePath(value string) bool {
	if strings.ContainsAny(value, "\n\r") || strings.Contains(value, "{{") {
		return false
	}
	return strings.Contains(value, "/") || pathExt.MatchString(value)
}

// ResolveBody picks the body template text: inline value, repo-relative file,
// or the built-in default. A file reference that resolves outside the
// repository root is rejected and never read; a missing file likewise falls
// back to the default. Both fallbacks log a warning with the offending path.
func ResolveBody(value, repoRoot string, log logging.Logger) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultBodyTemplate
	}
	if !looksLikePath(value) {
		return value
	}

	absRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		log.Info("cannot resolve repository root, using default template", "reason", err.Error())
		return DefaultBodyTemplate
	}
	resolved := filepath.Join(absRoot, filepath.FromSlash(value))
	resolved = filepath.Clean(resolved)
	if resolved != absRoot && !strings.HasPrefix(resolved, absRoot+string(filepath.Separator)) {
		log.Info("template path escapes repository root, using default template", "path", value)
		return DefaultBodyTemplate
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		log.Info("template file not readable, using default template", "path", value, "reason", err.Error())
		return DefaultBodyTemplate
	}
	return string(raw)
}

// ResolveTitle picks the title template text, falling back to the default.
func ResolveTitle(value string) string {
	if strings.TrimSpace(value) == "" {
		return DefaultTitleTemplate
	}
	return value
}
