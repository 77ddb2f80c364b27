package config

const (
	KeyGitHubToken     = "github_token"
	KeyGitHubEventName = "github_event_name"
	KeyGitHubEventPath = "github_event_path"
	KeyGitHubSHA       = "github_sha"
	KeyGitHubRefName   = "github_ref_name"
	KeyGitHubBaseRef   = "github_base_ref"
	KeyGitHubRepo      = "github_repository"
	KeyGitHubServerURL = "github_server_url"
	KeyGitHubOutput    = "github_output"

	KeyRepoPath        = "repo_path"
	KeyIncludePatterns = "include_patterns"
	KeyExcludePatterns = "exclude_patterns"
	KeyCaseSensitive   = "case_sensitive"
	KeyIncludeAdded    = "include_added"
	KeyIncludeDeleted  = "include_deleted"
	KeyContextLines    = "context_lines"
	KeyMaxDiffLines    = "max_diff_lines"
	KeyTitleTemplate   = "title_template"
	KeyBodyTemplate    = "body_template"
	KeyLabels          = "labels"
	KeyAssignees       = "assignees"
	KeyMilestone       = "milestone"
	KeyIncludeDiff     = "include_diff"
	KeyIncludeLinks    = "include_links"
	KeyDryRun          = "dry_run"
	KeyRulesFile       = "rules_file"
	KeyVerbose         = "verbose"
)
