package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-github/v66/github"

	"github.com/roivaz/issuegen/internal/config"
	"github.com/roivaz/issuegen/internal/logging"
	"github.com/roivaz/issuegen/internal/render"
)

func testClient(t *testing.T, handler http.Handler) *github.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	client.BaseURL = base
	return client
}

func TestResolveMilestone_NumericPassthrough(t *testing.T) {
	c := &Creator{log: logging.New(logr.Discard())}
	got := c.resolveMilestone(context.Background(), "7")
	if got == nil || *got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
}

func TestResolveMilestone_CaseInsensitiveMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/milestones", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]*github.Milestone{
			{Number: github.Int(1), Title: github.String("Backlog")},
			{Number: github.Int(4), Title: github.String("V2 Launch")},
		})
	})
	c := &Creator{
		client: testClient(t, mux),
		owner:  "acme", repo: "widgets",
		log: logging.New(logr.Discard()),
	}
	got := c.resolveMilestone(context.Background(), "v2 launch")
	if got == nil || *got != 4 {
		t.Fatalf("expected milestone 4, got %v", got)
	}
}

func TestResolveMilestone_NoMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/milestones", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]*github.Milestone{})
	})
	c := &Creator{
		client: testClient(t, mux),
		owner:  "acme", repo: "widgets",
		log: logging.New(logr.Discard()),
	}
	if got := c.resolveMilestone(context.Background(), "nope"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestCreate_DryRunSkipsAPI(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		called = true
		http.Error(w, "must not be called", http.StatusInternalServerError)
	})
	c := NewCreator(context.Background(), testClient(t, mux), "acme", "widgets",
		config.Options{DryRun: true, Milestone: "v1"}, logging.New(logr.Discard()))

	created, err := c.Create(context.Background(), render.RenderedIssue{Title: "t", Body: "b"})
	if err != nil {
		t.Fatalf("dry run must not fail: %v", err)
	}
	if created.Number != 0 || created.Title != "t" {
		t.Fatalf("unexpected dry-run result %+v", created)
	}
	if called {
		t.Fatal("dry run must not call the API")
	}
}

func TestCreate_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/issues", func(w http.ResponseWriter, r *http.Request) {
		var req github.IssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.GetTitle() != "Specification Change: x.md" {
			t.Fatalf("unexpected title %q", req.GetTitle())
		}
		if len(req.GetLabels()) != 1 || req.GetLabels()[0] != "spec-change" {
			t.Fatalf("unexpected labels %v", req.GetLabels())
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 123, "html_url": "https://github.com/acme/widgets/issues/123", "title": "Specification Change: x.md"}`)
	})
	c := NewCreator(context.Background(), testClient(t, mux), "acme", "widgets",
		config.Options{Labels: []string{"spec-change"}}, logging.New(logr.Discard()))

	created, err := c.Create(context.Background(), render.RenderedIssue{Title: "Specification Change: x.md", Body: "body"})
	if err != nil {
		t.Fatal(err)
	}
	if created.Number != 123 || created.URL != "https://github.com/acme/widgets/issues/123" {
		t.Fatalf("unexpected result %+v", created)
	}
}

func TestCreate_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/issues", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Validation Failed"}`, http.StatusUnprocessableEntity)
	})
	c := NewCreator(context.Background(), testClient(t, mux), "acme", "widgets",
		config.Options{}, logging.New(logr.Discard()))

	if _, err := c.Create(context.Background(), render.RenderedIssue{Title: "t", Body: "b"}); err == nil {
		t.Fatal("expected creation error")
	}
}
