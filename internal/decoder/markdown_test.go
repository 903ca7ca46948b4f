package decoder

import (
	"strings"
	"testing"

	"github.com/structify/outliner/internal/outline"
)

func TestMarkdownDecoder_FirstH1IsTitle(t *testing.T) {
	input := `# User Guide

Intro paragraph.

# Configuration

## Environment Variables
`
	d := &MarkdownDecoder{}
	frags, err := d.Decode(strings.NewReader(input), "guide.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		text string
		size float64
	}{
		{"User Guide", sizeTitle},
		{"Intro paragraph.", sizeBody},
		{"Configuration", sizeH1},
		{"Environment Variables", sizeH2},
	}
	if len(frags) != len(want) {
		t.Fatalf("expected %d fragments, got %d: %v", len(want), len(frags), frags)
	}
	for i, w := range want {
		if frags[i].Text != w.text || frags[i].FontSize != w.size {
			t.Errorf("fragment %d: expected (%q, %.0f), got (%q, %.0f)",
				i, w.text, w.size, frags[i].Text, frags[i].FontSize)
		}
	}
}

func TestMarkdownDecoder_DeepHeadingsRankAsBody(t *testing.T) {
	input := "#### Too Deep\n"
	d := &MarkdownDecoder{}
	frags, err := d.Decode(strings.NewReader(input), "deep.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 || frags[0].FontSize != sizeBody {
		t.Errorf("expected h4 at body size, got %v", frags)
	}
}

func TestMarkdownDecoder_EmptyInput(t *testing.T) {
	d := &MarkdownDecoder{}
	frags, err := d.Decode(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 0 {
		t.Errorf("expected no fragments, got %d", len(frags))
	}
}

func TestMarkdownDecoder_FeedsPipeline(t *testing.T) {
	input := `# Release Notes

# Version 2.1

Fixed several bugs in the scheduler.

## New Features

### Scheduler

The scheduler now supports cron expressions.

# Version 2.0

Initial stable release with full API coverage.
`
	d := &MarkdownDecoder{}
	frags, err := d.Decode(strings.NewReader(input), "notes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := outline.New(outline.DefaultConfig()).Extract(frags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Title != "Release Notes" {
		t.Errorf("expected title %q, got %q", "Release Notes", res.Title)
	}

	wantTexts := []string{"Version 2.1", "New Features", "Scheduler", "Version 2.0"}
	var gotTexts []string
	for _, e := range res.Outline {
		gotTexts = append(gotTexts, e.Text)
	}
	if len(gotTexts) != len(wantTexts) {
		t.Fatalf("expected outline %v, got %v", wantTexts, res.Outline)
	}
	for i := range wantTexts {
		if gotTexts[i] != wantTexts[i] {
			t.Errorf("entry %d: expected %q, got %q", i, wantTexts[i], gotTexts[i])
		}
	}
}
