package extract

import (
	"fmt"
	"strings"
	"testing"
)

func TestTruncate_UnderLimit(t *testing.T) {
	text := "line1\nline2\nline3"
	out, truncated, total := Truncate(text, 10)
	if out != text {
		t.Fatalf("expected byte-identical output, got %q", out)
	}
	if truncated {
		t.Fatalf("expected truncated=false")
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
}

func TestTruncate_OverLimit(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf("line%d", i))
	}
	text := strings.Join(lines, "\n")

	out, truncated, total := Truncate(text, 5)
	if !truncated {
		t.Fatalf("expected truncated=true")
	}
	if total != 20 {
		t.Fatalf("expected pre-truncation total 20, got %d", total)
	}
	outLines := strings.Split(out, "\n")
	for i := 0; i < 5; i++ {
		if outLines[i] != lines[i] {
			t.Fatalf("line %d: got %q, want %q", i, outLines[i], lines[i])
		}
	}
	if outLines[5] != "" {
		t.Fatalf("expected blank separator line, got %q", outLines[5])
	}
	if outLines[6] != "diff truncated, 15 more lines" {
		t.Fatalf("unexpected note %q", outLines[6])
	}
}

func TestTruncate_ExactLimit(t *testing.T) {
	text := "a\nb\nc"
	out, truncated, total := Truncate(text, 3)
	if truncated || out != text || total != 3 {
		t.Fatalf("expected untouched output at exact limit, got truncated=%v total=%d", truncated, total)
	}
}

func TestCountChanges(t *testing.T) {
	diff := `diff --git a/docs/x.md b/docs/x.md
index 1111111..2222222 100644
--- a/docs/x.md
+++ b/docs/x.md
@@ -1,3 +1,4 @@
 unchanged
-removed line
+added line one
+added line two
 unchanged tail
`
	additions, deletions := countChanges(diff)
	if additions != 2 {
		t.Fatalf("expected 2 additions, got %d", additions)
	}
	if deletions != 1 {
		t.Fatalf("expected 1 deletion, got %d", deletions)
	}
}

func TestCountChanges_UnparseableIsZero(t *testing.T) {
	additions, deletions := countChanges("not a diff at all")
	if additions != 0 || deletions != 0 {
		t.Fatalf("expected zero counts, got +%d -%d", additions, deletions)
	}
}
