package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/songserve/pkg/catalog"
	"github.com/bastiangx/songserve/pkg/dataset"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func runWalkthrough(t *testing.T, input string) string {
	t.Helper()
	c := catalog.New(16)
	c.Seed(dataset.Default())

	var out bytes.Buffer
	h := NewInputHandler(c, 3, strings.NewReader(input), &out, false)
	if err := h.Start(); err != nil {
		t.Fatalf("walkthrough failed: %v", err)
	}
	return out.String()
}

func TestWalkthrough(t *testing.T) {
	out := runWalkthrough(t, "B\nShape of You\n")

	expected := []string{
		"Songs matching 'B':",
		"Blinding Lights",
		"Believer",
		"Top Recommended Songs:",
		"Shape of You (Popularity: 95)",
		"Blinding Lights (Popularity: 90)",
		"Despacito (Popularity: 85)",
		"Similar Songs to 'Shape of You':",
		"Perfect",
	}
	for _, e := range expected {
		if !strings.Contains(out, e) {
			t.Errorf("output missing %q:\n%s", e, out)
		}
	}
	if strings.Contains(out, "Believer (Popularity") {
		t.Errorf("only the top 3 songs should be listed:\n%s", out)
	}
}

func TestWalkthroughNoResults(t *testing.T) {
	out := runWalkthrough(t, "Zzz\nUnknown Song\n")

	for _, e := range []string{"No matches found.", "No similar songs found."} {
		if !strings.Contains(out, e) {
			t.Errorf("output missing %q:\n%s", e, out)
		}
	}
}

func TestWalkthroughReadsFirstTokenAndFullTitle(t *testing.T) {
	out := runWalkthrough(t, "Hav ignored words\n  Blinding Lights  \n")

	if !strings.Contains(out, "Songs matching 'Hav':") || !strings.Contains(out, "Havana") {
		t.Errorf("expected prefix Hav to match Havana:\n%s", out)
	}
	if !strings.Contains(out, "Save Your Tears") {
		t.Errorf("expected neighbors of Blinding Lights:\n%s", out)
	}
}

func TestWalkthroughEOF(t *testing.T) {
	out := runWalkthrough(t, "")

	// an empty prefix matches every title
	if !strings.Contains(out, "Songs matching '':") || !strings.Contains(out, "Havana") {
		t.Errorf("expected all titles for empty prefix:\n%s", out)
	}
	if !strings.Contains(out, "No similar songs found.") {
		t.Errorf("expected no similar songs on EOF:\n%s", out)
	}
}

func TestFirstField(t *testing.T) {
	testCases := map[string]string{
		"":            "",
		"   ":         "",
		"Clos":        "Clos",
		"  Clos er  ": "Clos",
	}
	for in, want := range testCases {
		if got := firstField(in); got != want {
			t.Errorf("firstField(%q) = %q, want %q", in, got, want)
		}
	}
}
