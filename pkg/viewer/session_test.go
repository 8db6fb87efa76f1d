package viewer

import (
	"os"
	"path/filepath"
	"testing"
)

func testSession(files ...string) *Session {
	return &Session{
		Config:   Config{Extensions: DefaultExtensions},
		Files:    files,
		Selected: map[int]bool{},
	}
}

func TestNextPrevClamp(t *testing.T) {
	s := testSession("a.arw", "b.arw", "c.arw")

	for i := 0; i < len(s.Files)-1; i++ {
		s.Index = i
		s.Next()
		s.Prev()
		if s.Index != i {
			t.Errorf("next then prev from %d: got %d, want %d", i, s.Index, i)
		}
	}

	s.Index = 0
	s.Prev()
	if s.Index != 0 {
		t.Errorf("prev at lower boundary moved index to %d", s.Index)
	}

	s.Index = len(s.Files) - 1
	s.Next()
	if s.Index != len(s.Files)-1 {
		t.Errorf("next at upper boundary moved index to %d", s.Index)
	}
}

func TestNavigationEmpty(t *testing.T) {
	s := testSession()
	s.Next()
	s.Prev()
	s.Toggle()
	if s.Index != 0 || s.SelectedCount() != 0 {
		t.Errorf("empty session mutated: index=%d selected=%d", s.Index, s.SelectedCount())
	}
	if s.Current() != "" || s.CurrentPath() != "" {
		t.Errorf("empty session has a current file: %q", s.Current())
	}
}

func TestToggleTwice(t *testing.T) {
	s := testSession("a.arw", "b.arw")
	s.Index = 1
	s.Toggle()
	if !s.IsSelected(1) || s.SelectedCount() != 1 {
		t.Fatalf("toggle did not select index 1: %v", s.Selected)
	}
	s.Toggle()
	if s.IsSelected(1) || s.SelectedCount() != 0 {
		t.Errorf("double toggle did not restore selection set: %v", s.Selected)
	}
}

func TestSelectedIndicesSorted(t *testing.T) {
	s := testSession("a.arw", "b.arw", "c.arw", "d.arw")
	for _, i := range []int{3, 0, 2} {
		s.Index = i
		s.Toggle()
	}

	got := s.SelectedIndices()
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestWindow(t *testing.T) {
	s := testSession("a", "b", "c", "d", "e", "f", "g")

	cases := []struct {
		index string
		idx   int
		start int
		end   int
	}{
		{"first", 0, 0, 5},
		{"second", 1, 0, 5},
		{"middle", 3, 1, 6},
		{"near end", 5, 3, 7},
		{"last", 6, 4, 7},
	}

	for _, c := range cases {
		s.Index = c.idx
		start, end := s.Window(5)
		if start != c.start || end != c.end {
			t.Errorf("%s: window at %d = [%d, %d), want [%d, %d)", c.index, c.idx, start, end, c.start, c.end)
		}
	}

	short := testSession("a", "b")
	start, end := short.Window(5)
	if start != 0 || end != 2 {
		t.Errorf("short list window = [%d, %d), want [0, 2)", start, end)
	}
}

func TestLoadResetsState(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.ARW", "a.arw", "c.jpg", ".hidden.arw"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "d.arw"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := testSession()
	s.Index = 3
	s.Selected = map[int]bool{2: true}

	if err := s.Load(dir); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Case-insensitive extension match, non-recursive, no dotfiles.
	if len(s.Files) != 2 || s.Files[0] != "a.arw" || s.Files[1] != "b.ARW" {
		t.Errorf("unexpected file list: %v", s.Files)
	}
	if s.Index != 0 || s.SelectedCount() != 0 {
		t.Errorf("load did not reset state: index=%d selected=%d", s.Index, s.SelectedCount())
	}
}

func TestLoadEmptyDir(t *testing.T) {
	s := testSession()
	if err := s.Load(t.TempDir()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Empty() {
		t.Errorf("expected no files, got %v", s.Files)
	}

	// The display update path treats an empty list as a no-op.
	s.Next()
	s.Toggle()
	start, end := s.Window(5)
	if start != 0 || end != 0 {
		t.Errorf("window on empty list = [%d, %d)", start, end)
	}
}
