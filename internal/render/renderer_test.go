package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderer_DefaultTemplates(t *testing.T) {
	opts := defaultOpts()
	opts.RepoPath = t.TempDir()
	r, err := NewRenderer(opts, discard())
	require.NoError(t, err)

	ctx := BuildContext(testFileDiff(), testTrigger(), defaultOpts())
	issue, err := r.Render(ctx)
	require.NoError(t, err)

	require.Equal(t, "Specification Change: x-specification.md", issue.Title)
	require.Contains(t, issue.Body, "```diff\n-old\n+new\n```")
	require.Contains(t, issue.Body, "- [ ] Review the specification changes")
	require.Contains(t, issue.Body, "- [ ] Update affected implementation")
	require.Contains(t, issue.Body, "- [ ] Update tests to match the new behavior")
	require.Contains(t, issue.Body, "- [ ] Update related documentation")
	require.Contains(t, issue.Body, "**File:** docs/x-specification.md")
}

func TestRenderer_CustomTitleTemplate(t *testing.T) {
	opts := defaultOpts()
	opts.RepoPath = t.TempDir()
	opts.TitleTemplate = "[{{ change_type }}] {{ file_path }}"
	r, err := NewRenderer(opts, discard())
	require.NoError(t, err)

	ctx := BuildContext(testFileDiff(), testTrigger(), defaultOpts())
	issue, err := r.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, "[modified] docs/x-specification.md", issue.Title)
}

func TestRenderer_InvalidBodyFallsBackToDefault(t *testing.T) {
	opts := defaultOpts()
	opts.RepoPath = t.TempDir()
	opts.BodyTemplate = "broken {{ stray action {{end}}"
	r, err := NewRenderer(opts, discard())
	require.NoError(t, err)

	ctx := BuildContext(testFileDiff(), testTrigger(), defaultOpts())
	issue, err := r.Render(ctx)
	require.NoError(t, err)
	require.Contains(t, issue.Body, "- [ ] Review the specification changes")
}

func TestRenderer_Idempotent(t *testing.T) {
	opts := defaultOpts()
	opts.RepoPath = t.TempDir()
	r, err := NewRenderer(opts, discard())
	require.NoError(t, err)

	ctx := BuildContext(testFileDiff(), testTrigger(), defaultOpts())
	first, err := r.Render(ctx)
	require.NoError(t, err)
	second, err := r.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
