package imageref

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const base = "http://localhost:5000"

func TestCandidatesEmpty(t *testing.T) {
	got := Candidates("", base, "http")
	if len(got) != 1 {
		t.Fatalf("expected single placeholder candidate, got %d: %v", len(got), got)
	}
	if got[0] != Placeholder {
		t.Errorf("expected placeholder, got %q", got[0])
	}

	got = Candidates("   ", base, "http")
	if len(got) != 1 || got[0] != Placeholder {
		t.Errorf("whitespace reference should resolve to placeholder only, got %v", got)
	}
}

func TestCandidatesAbsolute(t *testing.T) {
	got := Candidates("https://cdn.example.com/a.jpg", base, "http")
	want := []string{"https://cdn.example.com/a.jpg", Placeholder}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate chain mismatch (-want +got):\n%s", diff)
	}

	// Scheme matching is case-insensitive.
	got = Candidates("HTTP://cdn.example.com/a.jpg", base, "http")
	if got[0] != "HTTP://cdn.example.com/a.jpg" {
		t.Errorf("uppercase scheme should still be treated as absolute, got %v", got)
	}
}

func TestCandidatesProtocolRelative(t *testing.T) {
	got := Candidates("//cdn.example.com/a.jpg", base, "https:")
	want := []string{"https://cdn.example.com/a.jpg", Placeholder}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate chain mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidatesRootRelative(t *testing.T) {
	got := Candidates("/static/uploads/a.jpg", base, "http")
	want := []string{
		base + "/static/uploads/a.jpg",
		"/static/uploads/a.jpg",
		Placeholder,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate chain mismatch (-want +got):\n%s", diff)
	}

	// Without a base only the relative path remains.
	got = Candidates("/static/uploads/a.jpg", "", "http")
	want = []string{"/static/uploads/a.jpg", Placeholder}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate chain mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidatesBareFilename(t *testing.T) {
	got := Candidates("a.jpg", base, "http")
	want := []string{
		base + "/static/uploads/a.jpg",
		"/static/uploads/a.jpg",
		"/a.jpg",
		"a.jpg",
		Placeholder,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate chain mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidatesPlaceholderAlwaysLast(t *testing.T) {
	refs := []string{"", "a.jpg", "/x/y.png", "//cdn/x.png", "http://h/x.png", Placeholder}
	for _, raw := range refs {
		got := Candidates(raw, base, "http")
		if len(got) == 0 {
			t.Fatalf("raw %q: empty chain", raw)
		}
		if got[len(got)-1] != Placeholder {
			t.Errorf("raw %q: chain does not end in placeholder: %v", raw, got)
		}
		seen := map[string]bool{}
		for _, c := range got {
			if seen[c] {
				t.Errorf("raw %q: duplicate candidate %q", raw, c)
			}
			seen[c] = true
		}
	}
}

func TestPlaceholderIsDataURI(t *testing.T) {
	if !strings.HasPrefix(Placeholder, "data:image/svg+xml") {
		t.Errorf("placeholder is not an inline data URI: %q", Placeholder[:40])
	}
}

func TestResolverMemoizes(t *testing.T) {
	r := NewResolver(base, "http")
	first := r.Candidates("a.jpg")
	second := r.Candidates("a.jpg")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("memoized chains differ (-first +second):\n%s", diff)
	}
	if &first[0] != &second[0] {
		t.Errorf("expected the cached slice to be returned, got a recomputed copy")
	}
}

func TestImageCursor(t *testing.T) {
	r := NewResolver(base, "http")
	im := r.NewImage("a.jpg")

	if im.Raw() != "a.jpg" {
		t.Fatalf("Raw = %q, want a.jpg", im.Raw())
	}
	if im.Current() != base+"/static/uploads/a.jpg" {
		t.Fatalf("first candidate = %q", im.Current())
	}

	steps := 0
	for im.Fail() {
		steps++
		if steps > 10 {
			t.Fatal("cursor did not terminate")
		}
	}
	if !im.Exhausted() {
		t.Error("cursor should be exhausted after walking the chain")
	}
	if im.Current() != Placeholder {
		t.Errorf("exhausted cursor should sit on placeholder, got %q", im.Current())
	}
	// Parked: further failures change nothing.
	if im.Fail() {
		t.Error("Fail on the placeholder should report no new candidate")
	}
}

func TestImageResetSameRawKeepsPosition(t *testing.T) {
	r := NewResolver(base, "http")
	im := r.NewImage("a.jpg")
	im.Fail()
	pos := im.Current()

	im.Reset(r, "a.jpg")
	if im.Current() != pos {
		t.Errorf("reset with same raw moved the cursor: %q -> %q", pos, im.Current())
	}

	im.Reset(r, "b.jpg")
	if im.Current() != base+"/static/uploads/b.jpg" {
		t.Errorf("reset with new raw should rewind, got %q", im.Current())
	}
}
