package detect

import (
	"regexp"
	"strings"

	"github.com/roivaz/issuegen/internal/logging"
)

// Matcher reduces the detected file set to those the operator cares about:
// include globs, exclude globs, and per-change-type toggles for added and
// deleted files.
type Matcher struct {
	include        *regexp.Regexp
	exclude        *regexp.Regexp
	includeAdded   bool
	includeDeleted bool
	log            logging.Logger
}

type MatcherConfig struct {
	Include        []string // non-empty; caller supplies the default
	Exclude        []string
	CaseSensitive  bool
	IncludeAdded   bool
	IncludeDeleted bool
}

func NewMatcher(cfg MatcherConfig, log logging.Logger) *Matcher {
	return &Matcher{
		include:        globsToRegexp(cfg.Include, cfg.CaseSensitive),
		exclude:        globsToRegexp(cfg.Exclude, cfg.CaseSensitive),
		includeAdded:   cfg.IncludeAdded,
		includeDeleted: cfg.IncludeDeleted,
		log:            log.WithName("match"),
	}
}

// Filter returns the files that match an include pattern, match no exclude
// pattern, and are not gated off by the added/deleted toggles. The toggles
// never gate modified or renamed files.
func (m *Matcher) Filter(files []ChangedFile) []ChangedFile {
	var out []ChangedFile
	for _, f := range files {
		if m.include != nil && !m.include.MatchString(f.Path) {
			m.log.Debug("path matches no include pattern", "path", f.Path)
			continue
		}
		if m.exclude != nil && m.exclude.MatchString(f.Path) {
			m.log.Debug("path excluded", "path", f.Path)
			continue
		}
		if f.Type == Added && !m.includeAdded {
			m.log.Debug("added files disabled", "path", f.Path)
			continue
		}
		if f.Type == Deleted && !m.includeDeleted {
			m.log.Debug("deleted files disabled", "path", f.Path)
			continue
		}
		out = append(out, f)
	}
	return out
}

// globsToRegexp compiles a glob list into a single alternation regexp.
// Translation: `**/` matches zero or more directories, `**` any characters,
// `*` any characters except `/`, `?` a single non-separator character.
func globsToRegexp(globs []string, caseSensitive bool) *regexp.Regexp {
	var parts []string
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		r := regexp.QuoteMeta(g)
		// `**/` must be rewritten before the bare `**` form.
		r = strings.ReplaceAll(r, "\\*\\*/", "(.*/)?")
		r = strings.ReplaceAll(r, "\\*\\*", ".*")
		r = strings.ReplaceAll(r, "\\*", "[^/]*")
		r = strings.ReplaceAll(r, "\\?", "[^/]")
		parts = append(parts, "^"+r+"$")
	}
	if len(parts) == 0 {
		return nil
	}
	expr := strings.Join(parts, "|")
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.MustCompile(expr)
}
