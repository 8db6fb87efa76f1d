package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// Session is the single long-lived object behind the browser: the loaded
// file list, the current index, the selection set, and two exiftool handles
// held open for the session lifetime (one for tag I/O, one configured for
// binary preview extraction).
//
// Invariant: Index is within [0, len(Files)) whenever Files is non-empty,
// and every selected index is a valid index into Files.
type Session struct {
	Config Config

	SrcDir   string
	Files    []string
	Index    int
	Selected map[int]bool

	et  *exiftool.Exiftool
	bet *exiftool.Exiftool
}

// NewSession starts the exiftool helpers and returns a session in the
// no-files-loaded state.
func NewSession(cfg Config) (*Session, error) {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	if cfg.MainSize == (Size{}) {
		cfg.MainSize = DefaultMainSize
	}
	if cfg.ThumbSize == (Size{}) {
		cfg.ThumbSize = DefaultThumbSize
	}
	if cfg.CacheDir == "" {
		ucd, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		cfg.CacheDir = filepath.Join(ucd, "photo-veiwer-copier")
	}

	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}

	bet, err := exiftool.NewExiftool(exiftool.ExtractAllBinaryMetadata())
	if err != nil {
		et.Close()
		return nil, fmt.Errorf("exiftool: %w", err)
	}

	return &Session{
		Config:   cfg,
		Selected: map[int]bool{},
		et:       et,
		bet:      bet,
	}, nil
}

// Close shuts down the exiftool helpers.
func (s *Session) Close() {
	for _, et := range []*exiftool.Exiftool{s.et, s.bet} {
		if et == nil {
			continue
		}
		if err := et.Close(); err != nil {
			klog.Errorf("exiftool close: %v", err)
		}
	}
}

// Load scans dir and resets the session to its first image. A directory
// with no matching files leaves the session in the no-files-loaded state.
func (s *Session) Load(dir string) error {
	exts := s.Config.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	files, err := Find(dir, exts)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}

	s.SrcDir = dir
	s.Files = files
	s.Index = 0
	s.Selected = map[int]bool{}

	klog.Infof("loaded %d files from %s", len(files), dir)
	return nil
}

// Empty reports whether no files are loaded.
func (s *Session) Empty() bool {
	return len(s.Files) == 0
}

// Path returns the full path of the file at index i.
func (s *Session) Path(i int) string {
	return filepath.Join(s.SrcDir, s.Files[i])
}

// Current returns the base name of the current file, or "" when empty.
func (s *Session) Current() string {
	if s.Empty() {
		return ""
	}
	return s.Files[s.Index]
}

// CurrentPath returns the full path of the current file, or "" when empty.
func (s *Session) CurrentPath() string {
	if s.Empty() {
		return ""
	}
	return s.Path(s.Index)
}

// Next advances the current index by one, clamped at the last file.
func (s *Session) Next() {
	if !s.Empty() && s.Index < len(s.Files)-1 {
		s.Index++
	}
}

// Prev moves the current index back by one, clamped at the first file.
func (s *Session) Prev() {
	if !s.Empty() && s.Index > 0 {
		s.Index--
	}
}

// Toggle flips membership of the current index in the selection set.
func (s *Session) Toggle() {
	if s.Empty() {
		return
	}
	if s.Selected[s.Index] {
		delete(s.Selected, s.Index)
		return
	}
	s.Selected[s.Index] = true
}

// IsSelected reports whether index i is in the selection set.
func (s *Session) IsSelected(i int) bool {
	return s.Selected[i]
}

// SelectedCount returns the size of the selection set.
func (s *Session) SelectedCount() int {
	return len(s.Selected)
}

// SelectedIndices returns the selection set in ascending index order, so
// batch operations proceed deterministically.
func (s *Session) SelectedIndices() []int {
	idxs := make([]int, 0, len(s.Selected))
	for i := range s.Selected {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs
}

// Window returns the [start, end) bounds of an n-slot strip sliding over
// the file list, keeping the current index two slots from the left edge
// where possible.
func (s *Session) Window(n int) (int, int) {
	start := s.Index - 2
	if start < 0 {
		start = 0
	}
	end := start + n
	if end > len(s.Files) {
		end = len(s.Files)
	}
	return start, end
}
