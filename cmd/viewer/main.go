// viewer is an interactive terminal browser for raw camera files: it shows
// embedded previews and EXIF details, lets you rate and select images, and
// copies selections into a date-structured folder tree.
package main

import (
	"flag"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/franktheglock/photo-veiwer-copier/pkg/tui"
	"github.com/franktheglock/photo-veiwer-copier/pkg/viewer"
)

var (
	srcDir  = flag.String("src", "", "Source directory to load on startup")
	destDir = flag.String("dest", "", "Destination directory for organized copies")
	exts    = flag.String("ext", strings.Join(viewer.DefaultExtensions, ","), "Comma-separated raw extensions to scan")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// klog output would tear up the alt screen; send it to log files
	// unless the caller overrode the destination.
	seen := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	if !seen["logtostderr"] {
		_ = flag.Set("logtostderr", "false")
	}

	c := viewer.Config{
		SrcDir:     *srcDir,
		DestDir:    *destDir,
		Extensions: splitExts(*exts),
	}

	s, err := viewer.NewSession(c)
	if err != nil {
		klog.Exitf("session failed: %v", err)
	}
	defer s.Close()

	p := tea.NewProgram(tui.New(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		klog.Exitf("run failed: %v", err)
	}
}

func splitExts(s string) []string {
	out := []string{}
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
