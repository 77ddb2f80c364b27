package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roivaz/issuegen/internal/config"
	"github.com/roivaz/issuegen/internal/detect"
	"github.com/roivaz/issuegen/internal/event"
	"github.com/roivaz/issuegen/internal/extract"
	"github.com/roivaz/issuegen/internal/gitrepo"
	"github.com/roivaz/issuegen/internal/issues"
	"github.com/roivaz/issuegen/internal/logging"
	"github.com/roivaz/issuegen/internal/pipeline"
	"github.com/roivaz/issuegen/internal/render"
)

var rootCmd = &cobra.Command{
	Use:           "issuegen",
	Short:         "Create templated work items from the changed files of a push or pull request",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String(config.KeyRepoPath, ".", "path to the git checkout")
	f.String(config.KeyIncludePatterns, "**/*.md", "comma-separated include globs")
	f.String(config.KeyExcludePatterns, "", "comma-separated exclude globs")
	f.Bool(config.KeyCaseSensitive, true, "match globs case-sensitively")
	f.Bool(config.KeyIncludeAdded, true, "process added files")
	f.Bool(config.KeyIncludeDeleted, true, "process deleted files")
	f.Int(config.KeyContextLines, 3, "diff context lines")
	f.Int(config.KeyMaxDiffLines, 500, "maximum diff lines before truncation")
	f.String(config.KeyTitleTemplate, "", "title template")
	f.String(config.KeyBodyTemplate, "", "body template text or repo-relative file")
	f.String(config.KeyLabels, "", "comma-separated issue labels")
	f.String(config.KeyAssignees, "", "comma-separated issue assignees")
	f.String(config.KeyMilestone, "", "milestone name or number")
	f.Bool(config.KeyIncludeDiff, true, "include the diff in the template context")
	f.Bool(config.KeyIncludeLinks, true, "include file/commit/PR links in the template context")
	f.Bool(config.KeyDryRun, false, "render issues without creating them")
	f.String(config.KeyRulesFile, ".issuegen.yaml", "repo-local rules file name")
	f.Bool(config.KeyVerbose, false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := config.LoadOptions()
	if err != nil {
		return err
	}
	logger := logging.New(logging.DefaultLogger(opts.Verbose)).WithName("issuegen")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; cancel() }()

	repo := gitrepo.New(gitrepo.RepoConfig{Path: opts.RepoPath})
	trigger := event.Load(ctx, opts, repo, logger)

	if trigger.Kind != event.KindUnsupported && trigger.Slug() == "" && !opts.DryRun {
		return fmt.Errorf("repository identity unknown: set %s or a resolvable git remote", config.KeyGitHubRepo)
	}

	renderer, err := render.NewRenderer(opts, logger)
	if err != nil {
		return err
	}

	detector := detect.NewDetector(repo, logger)
	matcher := detect.NewMatcher(detect.MatcherConfig{
		Include:        opts.IncludePatterns,
		Exclude:        opts.ExcludePatterns,
		CaseSensitive:  opts.CaseSensitive,
		IncludeAdded:   opts.IncludeAdded,
		IncludeDeleted: opts.IncludeDeleted,
	}, logger)
	extractor := extract.NewExtractor(repo, extract.Options{
		ContextLines: opts.ContextLines,
		MaxLines:     opts.MaxDiffLines,
	}, logger)
	creator := issues.NewCreator(ctx, issues.NewClient(opts.Token), trigger.Owner, trigger.RepoName, opts, logger)

	p := pipeline.New(opts, trigger, detector, matcher, extractor, renderer, creator, logger)
	summary, runErr := p.Run(ctx)

	if err := summary.WriteOutputs(opts.OutputsPath); err != nil {
		logger.Error(err, "writing outputs failed")
	}
	return runErr
}

func main() {
	config.Init(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("issuegen: %v", err)
	}
}
