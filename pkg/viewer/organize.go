package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// DateDir creates the year/year_month/year_month_day hierarchy for t under
// base and returns the leaf path. Existing directories are left untouched.
func DateDir(base string, t time.Time) (string, error) {
	year := fmt.Sprintf("%d", t.Year())
	month := fmt.Sprintf("%s_%02d", year, int(t.Month()))
	day := fmt.Sprintf("%s_%02d", month, t.Day())

	p := filepath.Join(base, year, month, day)
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", p, err)
	}

	return p, nil
}

// CopyDated copies src into its date directory under destBase, preserving
// file times.
func CopyDated(src string, destBase string, taken time.Time) error {
	dir, err := DateDir(destBase, taken)
	if err != nil {
		return err
	}

	dst := filepath.Join(dir, filepath.Base(src))
	klog.V(1).Infof("%s -> %s", src, dst)
	if err := copy.Copy(src, dst, copy.Options{PreserveTimes: true}); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	return nil
}

// CopySelected copies the selected files into date directories under
// destBase, in ascending index order. Files without a capture date and
// per-file copy failures are logged and skipped; the batch always runs to
// completion. Returns the number of files copied.
func (s *Session) CopySelected(destBase string) int {
	copied := 0

	for _, idx := range s.SelectedIndices() {
		if idx >= len(s.Files) {
			continue
		}
		src := s.Path(idx)

		taken, err := s.CaptureDate(src)
		if err != nil {
			klog.Warningf("could not determine date for %s: %v", src, err)
			continue
		}

		if err := CopyDated(src, destBase, taken); err != nil {
			klog.Errorf("copying %s: %v", src, err)
			continue
		}
		copied++
	}

	return copied
}
