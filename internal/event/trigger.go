package event

import (
	"context"
	"os"
	"strings"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/tidwall/gjson"

	"github.com/roivaz/issuegen/internal/config"
	"github.com/roivaz/issuegen/internal/gitrepo"
	"github.com/roivaz/issuegen/internal/logging"
)

// Kind classifies the trigger event.
type Kind string

const (
	KindPush        Kind = "push"
	KindPullRequest Kind = "pull_request"
	KindUnsupported Kind = "unsupported"
)

// Classify maps the hosting environment's event name onto a Kind.
func Classify(eventName string) Kind {
	switch eventName {
	case "push":
		return KindPush
	case "pull_request", "pull_request_target":
		return KindPullRequest
	default:
		return KindUnsupported
	}
}

// Trigger is the run-level context derived from the hosting environment and
// the event payload. It is constructed once at the boundary and handed to the
// pipeline; no component reads ambient environment state.
type Trigger struct {
	Kind       Kind
	EventName  string
	HeadSHA    string
	Branch     string
	BaseBranch string

	CommitMessage string
	CommitAuthor  string
	CommitDate    string // RFC3339 as delivered; empty when unknown

	PRNumber int
	PRTitle  string

	Owner     string
	RepoName  string
	ServerURL string
}

// Slug returns "owner/name", or empty when either half is unknown.
func (t Trigger) Slug() string {
	if t.Owner == "" || t.RepoName == "" {
		return ""
	}
	return t.Owner + "/" + t.RepoName
}

// Load assembles a Trigger from the boundary options, the event payload file
// and, as a last resort for repository identity and commit metadata, the
// local git checkout. Any missing metadata degrades to the zero value.
func Load(ctx context.Context, opts config.Options, repo *gitrepo.Repo, log logging.Logger) Trigger {
	t := Trigger{
		Kind:       Classify(opts.EventName),
		EventName:  opts.EventName,
		HeadSHA:    opts.HeadSHA,
		Branch:     opts.Branch,
		BaseBranch: opts.BaseBranch,
		ServerURL:  opts.ServerURL,
	}
	t.Owner, t.RepoName = splitSlug(opts.RepositorySlug)

	if opts.EventPath != "" {
		raw, err := os.ReadFile(opts.EventPath)
		if err != nil {
			log.Info("event payload not readable, continuing without it", "path", opts.EventPath, "reason", err.Error())
		} else {
			applyPayload(&t, raw)
		}
	}

	if repo != nil {
		if t.Owner == "" || t.RepoName == "" {
			if url, err := repo.RemoteURL(ctx); err == nil {
				if info, err := vcsurl.Parse(url); err == nil {
					t.Owner, t.RepoName = info.Username, info.Name
					log.Debug("repository identity derived from remote", "slug", t.Slug())
				}
			}
		}
		if t.CommitMessage == "" {
			fillCommitFromGit(ctx, &t, repo)
		}
	}

	return t
}

func applyPayload(t *Trigger, raw []byte) {
	payload := string(raw)

	if n := gjson.Get(payload, "pull_request.number"); n.Exists() {
		t.PRNumber = int(n.Int())
	}
	if v := gjson.Get(payload, "pull_request.title"); v.Exists() {
		t.PRTitle = v.String()
	}
	if t.BaseBranch == "" {
		t.BaseBranch = gjson.Get(payload, "pull_request.base.ref").String()
	}
	if sha := gjson.Get(payload, "pull_request.head.sha").String(); sha != "" && t.HeadSHA == "" {
		t.HeadSHA = sha
	}

	if v := gjson.Get(payload, "head_commit.message"); v.Exists() {
		t.CommitMessage = v.String()
	}
	if v := gjson.Get(payload, "head_commit.author.name"); v.Exists() {
		t.CommitAuthor = v.String()
	}
	if v := gjson.Get(payload, "head_commit.timestamp"); v.Exists() {
		t.CommitDate = v.String()
	}

	if t.Owner == "" || t.RepoName == "" {
		t.Owner, t.RepoName = splitSlug(gjson.Get(payload, "repository.full_name").String())
	}
}

// fillCommitFromGit backfills commit metadata from the checkout when the
// payload carried none (pull-request payloads have no head_commit block).
func fillCommitFromGit(ctx context.Context, t *Trigger, repo *gitrepo.Repo) {
	ref := t.HeadSHA
	if ref == "" {
		ref = "HEAD"
	}
	out, err := repo.Run(ctx, "log", "-1", "--pretty=format:%s%n%an%n%cI", ref)
	if err != nil {
		return
	}
	parts := strings.SplitN(out, "\n", 3)
	if len(parts) > 0 {
		t.CommitMessage = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 && t.CommitAuthor == "" {
		t.CommitAuthor = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 && t.CommitDate == "" {
		t.CommitDate = strings.TrimSpace(parts[2])
	}
}

func splitSlug(slug string) (owner, name string) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", ""
	}
	parts := strings.SplitN(slug, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}
