package viewer

import (
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Find scans dir non-recursively for files matching the given extensions
// (case-insensitive) and returns their base names in lexical order.
func Find(dir string, exts []string) ([]string, error) {
	want := map[string]bool{}
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}

	found := []string{}
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if path == dir {
					return nil
				}
				return godirwalk.SkipThis
			}

			base := filepath.Base(path)
			if base[0] == '.' {
				return nil
			}

			if want[strings.ToLower(filepath.Ext(base))] {
				klog.V(1).Infof("found %s", path)
				found = append(found, base)
			}

			return nil
		},
	})

	return found, err
}
