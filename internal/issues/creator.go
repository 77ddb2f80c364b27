package issues

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/roivaz/issuegen/internal/config"
	"github.com/roivaz/issuegen/internal/logging"
	"github.com/roivaz/issuegen/internal/render"
)

// NewClient builds a GitHub API client, authenticated when a token is given.
func NewClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// Created describes one successfully created work item.
type Created struct {
	Number int
	URL    string
	Title  string
}

// Result is the per-item outcome of a creation attempt. Exactly one of
// Created or Err is set.
type Result struct {
	Path    string
	Created *Created
	Err     error
}

// Creator files one issue per rendered title/body pair. Failures are reported
// per item; the caller decides what the aggregate means.
type Creator struct {
	client    *github.Client
	owner     string
	repo      string
	labels    []string
	assignees []string
	milestone *int
	dryRun    bool
	log       logging.Logger
}

func NewCreator(ctx context.Context, client *github.Client, owner, repo string, opts config.Options, log logging.Logger) *Creator {
	c := &Creator{
		client:    client,
		owner:     owner,
		repo:      repo,
		labels:    opts.Labels,
		assignees: opts.Assignees,
		dryRun:    opts.DryRun,
		log:       log.WithName("issues"),
	}
	if opts.Milestone != "" && !opts.DryRun {
		c.milestone = c.resolveMilestone(ctx, opts.Milestone)
	}
	return c
}

// resolveMilestone turns a milestone name or numeric literal into an
// identifier. Numeric literals pass through verbatim; names resolve by
// case-insensitive exact match against open milestones. No match means no
// milestone, with a warning.
func (c *Creator) resolveMilestone(ctx context.Context, value string) *int {
	if n, err := strconv.Atoi(value); err == nil {
		return &n
	}
	opt := &github.MilestoneListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		milestones, resp, err := c.client.Issues.ListMilestones(ctx, c.owner, c.repo, opt)
		if err != nil {
			c.log.Info("milestone lookup failed, creating without milestone", "milestone", value, "reason", err.Error())
			return nil
		}
		for _, m := range milestones {
			if strings.EqualFold(m.GetTitle(), value) {
				n := m.GetNumber()
				return &n
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	c.log.Info("no open milestone matches, creating without milestone", "milestone", value)
	return nil
}

// Create files one issue, or logs the would-be request in dry-run mode.
func (c *Creator) Create(ctx context.Context, issue render.RenderedIssue) (Created, error) {
	if c.dryRun {
		c.log.Info("dry run, skipping issue creation",
			"title", issue.Title, "labels", c.labels, "assignees", c.assignees, "bodyBytes", len(issue.Body))
		return Created{Title: issue.Title}, nil
	}

	req := &github.IssueRequest{
		Title:     github.String(issue.Title),
		Body:      github.String(issue.Body),
		Milestone: c.milestone,
	}
	if len(c.labels) > 0 {
		req.Labels = &c.labels
	}
	if len(c.assignees) > 0 {
		req.Assignees = &c.assignees
	}

	created, _, err := c.client.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return Created{}, fmt.Errorf("create issue %q: %w", issue.Title, err)
	}
	return Created{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
		Title:  created.GetTitle(),
	}, nil
}
