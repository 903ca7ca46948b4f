package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/structify/outliner/internal/outline"
)

func testResult(title string) *outline.Result {
	return &outline.Result{
		Title: title,
		Outline: []outline.Entry{
			{Level: outline.LevelH1, Text: "Introduction", Page: 1},
			{Level: outline.LevelH2, Text: "Background", Page: 2},
		},
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := testResult("Example Report")
	if err := s.Save("doc-1", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load("doc-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save("doc", testResult("First")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("doc", testResult("Second")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load("doc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Title != "Second" {
		t.Errorf("expected overwrite, got title %q", got.Title)
	}
}

func TestStore_List(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save("a", testResult("Doc A")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("b", testResult("Doc B")); err != nil {
		t.Fatalf("save: %v", err)
	}

	metas, err := s.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(metas))
	}
	for _, m := range metas {
		if m.Headings != 2 {
			t.Errorf("doc %s: expected 2 headings, got %d", m.DocID, m.Headings)
		}
	}

	limited, err := s.List(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit respected, got %d", len(limited))
	}
}

func TestStore_Delete(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save("doc", testResult("Doc")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete("doc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load("doc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete("doc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := s.Save(id, testResult("x")); err == nil {
			t.Errorf("expected invalid id error for %q", id)
		}
	}
}
