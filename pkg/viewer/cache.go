package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

var cacheTimeFormat = "150405"

// CachedPreview returns the path of an on-disk JPEG preview for path at the
// given size, rendering it if the cache entry is missing or stale. Only
// pixels are cached; tag reads always go back to exiftool.
func (s *Session) CachedPreview(path string, size Size) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat: %w", err)
	}

	full := filepath.Join(s.Config.CacheDir, cacheName(filepath.Base(path), size, st.ModTime()))

	cst, err := os.Stat(full)
	if err == nil && cst.Size() > int64(128) && !cst.ModTime().Before(st.ModTime()) {
		klog.V(1).Infof("%s exists (%d bytes)", full, cst.Size())
		return full, nil
	}

	p, err := s.ExtractPreview(path, size)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	if err := os.WriteFile(full, p.Data, 0o644); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	klog.V(1).Infof("cached %dx%d preview: %s", p.Width, p.Height, full)
	return full, nil
}

// cacheName keys an entry on source name, target size and source modtime,
// so an edited source busts its own entry.
func cacheName(base string, size Size, mod time.Time) string {
	ext := filepath.Ext(base)
	noExt := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s@x%dy%d_%s.jpg", noExt, size.X, size.Y, mod.Format(cacheTimeFormat))
}
