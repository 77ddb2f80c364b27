package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".issuegen.env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyRepoPath, ".")
	viper.SetDefault(KeyIncludePatterns, "**/*.md")
	viper.SetDefault(KeyCaseSensitive, true)
	viper.SetDefault(KeyIncludeAdded, true)
	viper.SetDefault(KeyIncludeDeleted, true)
	viper.SetDefault(KeyContextLines, 3)
	viper.SetDefault(KeyMaxDiffLines, 500)
	viper.SetDefault(KeyTitleTemplate, "")
	viper.SetDefault(KeyBodyTemplate, "")
	viper.SetDefault(KeyIncludeDiff, true)
	viper.SetDefault(KeyIncludeLinks, true)
	viper.SetDefault(KeyDryRun, false)
	viper.SetDefault(KeyRulesFile, ".issuegen.yaml")
	viper.SetDefault(KeyGitHubServerURL, "https://github.com")
}

func GitHubToken() string     { return viper.GetString(KeyGitHubToken) }
func GitHubEventName() string { return viper.GetString(KeyGitHubEventName) }
func GitHubEventPath() string { return viper.GetString(KeyGitHubEventPath) }
func GitHubSHA() string       { return viper.GetString(KeyGitHubSHA) }
func GitHubRefName() string   { return viper.GetString(KeyGitHubRefName) }
func GitHubBaseRef() string   { return viper.GetString(KeyGitHubBaseRef) }
func GitHubRepo() string      { return viper.GetString(KeyGitHubRepo) }
func GitHubServerURL() string { return viper.GetString(KeyGitHubServerURL) }
func GitHubOutput() string    { return viper.GetString(KeyGitHubOutput) }
func RepoPath() string        { return viper.GetString(KeyRepoPath) }
func IncludePatterns() string { return viper.GetString(KeyIncludePatterns) }
func ExcludePatterns() string { return viper.GetString(KeyExcludePatterns) }
func CaseSensitive() bool     { return viper.GetBool(KeyCaseSensitive) }
func IncludeAdded() bool      { return viper.GetBool(KeyIncludeAdded) }
func IncludeDeleted() bool    { return viper.GetBool(KeyIncludeDeleted) }
func ContextLines() int       { return viper.GetInt(KeyContextLines) }
func MaxDiffLines() int       { return viper.GetInt(KeyMaxDiffLines) }
func TitleTemplate() string   { return viper.GetString(KeyTitleTemplate) }
func BodyTemplate() string    { return viper.GetString(KeyBodyTemplate) }
func Labels() string          { return viper.GetString(KeyLabels) }
func Assignees() string       { return viper.GetString(KeyAssignees) }
func Milestone() string       { return viper.GetString(KeyMilestone) }
func IncludeDiff() bool       { return viper.GetBool(KeyIncludeDiff) }
func IncludeLinks() bool      { return viper.GetBool(KeyIncludeLinks) }
func DryRun() bool            { return viper.GetBool(KeyDryRun) }
func RulesFile() string       { return viper.GetString(KeyRulesFile) }
func Verbose() bool           { return viper.GetBool(KeyVerbose) }
