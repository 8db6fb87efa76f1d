// Package viewer implements a raw photo browsing session: scanning a source
// directory for camera files, reading and writing tags through exiftool,
// extracting embedded previews, and copying selections into a date tree.
package viewer

// Size is a target pixel dimension for preview rendering.
type Size struct {
	X int
	Y int
}

// Config holds configuration for a browsing session.
type Config struct {
	SrcDir     string
	DestDir    string
	Extensions []string
	MainSize   Size
	ThumbSize  Size
	CacheDir   string
}

// DefaultExtensions are the raw container formats scanned by default.
var DefaultExtensions = []string{".arw", ".cr2", ".nef", ".dng", ".raf"}

var (
	DefaultMainSize  = Size{X: 800, Y: 600}
	DefaultThumbSize = Size{X: 200, Y: 150}
)
