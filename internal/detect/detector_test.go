package detect

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/roivaz/issuegen/internal/logging"
)

func testDetector() *Detector {
	return NewDetector(nil, logging.New(logr.Discard()))
}

func TestParseNameStatus_Basic(t *testing.T) {
	out := "A\tdocs/new.md\nM\tdocs/changed.md\nD\tdocs/gone.md\n"
	files := testDetector().parseNameStatus(out)
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	want := []ChangedFile{
		{Path: "docs/new.md", Type: Added},
		{Path: "docs/changed.md", Type: Modified},
		{Path: "docs/gone.md", Type: Deleted},
	}
	for i, w := range want {
		if files[i] != w {
			t.Fatalf("file %d: got %+v, want %+v", i, files[i], w)
		}
	}
}

func TestParseNameStatus_Rename(t *testing.T) {
	files := testDetector().parseNameStatus("R100\told/spec.md\tnew/spec.md\n")
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	got := files[0]
	if got.Path != "new/spec.md" || got.Type != Renamed || got.PreviousPath != "old/spec.md" {
		t.Fatalf("unexpected rename entry %+v", got)
	}
}

func TestParseNameStatus_RenameWithoutNewPathDropped(t *testing.T) {
	files := testDetector().parseNameStatus("R090\told/spec.md\n")
	if len(files) != 0 {
		t.Fatalf("expected rename without new path to be dropped, got %+v", files)
	}
}

func TestParseNameStatus_CopyIsModified(t *testing.T) {
	files := testDetector().parseNameStatus("C075\tsrc/a.md\tsrc/b.md\n")
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Path != "src/b.md" || files[0].Type != Modified || files[0].PreviousPath != "" {
		t.Fatalf("unexpected copy entry %+v", files[0])
	}
}

func TestParseNameStatus_UnknownStatusIsModified(t *testing.T) {
	for _, status := range []string{"T", "U", "X"} {
		files := testDetector().parseNameStatus(status + "\tweird.md\n")
		if len(files) != 1 || files[0].Type != Modified {
			t.Fatalf("status %s: expected modified classification, got %+v", status, files)
		}
	}
}

func TestParseNameStatus_SkipsBlankAndMalformedLines(t *testing.T) {
	out := "\nM\n\nM\tok.md\n   \n"
	files := testDetector().parseNameStatus(out)
	if len(files) != 1 || files[0].Path != "ok.md" {
		t.Fatalf("expected only ok.md, got %+v", files)
	}
}
