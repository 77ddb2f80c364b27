package config

import (
	"fmt"
	"strings"
)

// Options carries the full run configuration. It is built exactly once at the
// process boundary via LoadOptions and handed to every component; nothing
// downstream reads viper or the environment directly.
type Options struct {
	// Hosting environment.
	EventName      string
	EventPath      string
	HeadSHA        string
	Branch         string
	BaseBranch     string
	RepositorySlug string // owner/name
	ServerURL      string
	OutputsPath    string

	RepoPath string
	Token    string

	// File selection.
	IncludePatterns []string
	ExcludePatterns []string
	CaseSensitive   bool
	IncludeAdded    bool
	IncludeDeleted  bool

	// Diff extraction.
	ContextLines int
	MaxDiffLines int

	// Rendering.
	TitleTemplate string
	BodyTemplate  string
	IncludeDiff   bool
	IncludeLinks  bool

	// Issue creation.
	Labels    []string
	Assignees []string
	Milestone string
	DryRun    bool

	Verbose bool
}

// LoadOptions reads the bound configuration into an Options value, applies the
// repo-local rules file overlay and validates numeric bounds.
func LoadOptions() (Options, error) {
	opts := Options{
		EventName:      GitHubEventName(),
		EventPath:      GitHubEventPath(),
		HeadSHA:        GitHubSHA(),
		Branch:         GitHubRefName(),
		BaseBranch:     GitHubBaseRef(),
		RepositorySlug: GitHubRepo(),
		ServerURL:      strings.TrimSuffix(GitHubServerURL(), "/"),
		OutputsPath:    GitHubOutput(),
		RepoPath:       RepoPath(),
		Token:          GitHubToken(),

		IncludePatterns: SplitList(IncludePatterns()),
		ExcludePatterns: SplitList(ExcludePatterns()),
		CaseSensitive:   CaseSensitive(),
		IncludeAdded:    IncludeAdded(),
		IncludeDeleted:  IncludeDeleted(),

		ContextLines: ContextLines(),
		MaxDiffLines: MaxDiffLines(),

		TitleTemplate: TitleTemplate(),
		BodyTemplate:  BodyTemplate(),
		IncludeDiff:   IncludeDiff(),
		IncludeLinks:  IncludeLinks(),

		Labels:    SplitList(Labels()),
		Assignees: SplitList(Assignees()),
		Milestone: Milestone(),
		DryRun:    DryRun(),

		Verbose: Verbose(),
	}

	if err := applyRules(&opts, RulesFile()); err != nil {
		return Options{}, err
	}

	if len(opts.IncludePatterns) == 0 {
		opts.IncludePatterns = []string{"**/*.md"}
	}
	if opts.ContextLines < 0 {
		return Options{}, fmt.Errorf("context_lines must be >= 0, got %d", opts.ContextLines)
	}
	if opts.MaxDiffLines <= 0 {
		return Options{}, fmt.Errorf("max_diff_lines must be > 0, got %d", opts.MaxDiffLines)
	}

	return opts, nil
}

// SplitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
