// datecopy copies every dated raw file in a directory into a
// YEAR/YEAR_MM/YEAR_MM_DD tree under the destination.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
	bar "github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/franktheglock/photo-veiwer-copier/pkg/viewer"
)

var (
	srcDir  = flag.String("src", "", "Source directory to scan")
	destDir = flag.String("dest", "", "Destination root for the date tree")
	exts    = flag.String("ext", strings.Join(viewer.DefaultExtensions, ","), "Comma-separated raw extensions to scan")
	dryRun  = flag.Bool("n", false, "dry-run mode, don't copy things")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *srcDir == "" {
		klog.Exitf("--src is a required flag")
	}
	if *destDir == "" {
		klog.Exitf("--dest is a required flag")
	}

	et, err := exiftool.NewExiftool()
	if err != nil {
		klog.Exitf("exiftool failed: %v", err)
	}
	defer et.Close()

	files, err := viewer.Find(*srcDir, splitExts(*exts))
	if err != nil {
		klog.Exitf("find failed: %v", err)
	}
	if len(files) == 0 {
		fmt.Printf("No matching files in %s\n", *srcDir)
		return
	}

	pb := bar.Default(int64(len(files)), "organizing")
	copied, skipped := 0, 0

	for _, f := range files {
		pb.Add(1)
		path := filepath.Join(*srcDir, f)

		taken, err := captureDate(path, et)
		if err != nil {
			klog.Warningf("skipping %s: %v", path, err)
			skipped++
			continue
		}

		if *dryRun {
			dst := filepath.Join(*destDir, taken.Format("2006"), taken.Format("2006_01"), taken.Format("2006_01_02"), f)
			klog.Infof("would copy %s -> %s", path, dst)
			copied++
			continue
		}

		if err := viewer.CopyDated(path, *destDir, taken); err != nil {
			klog.Errorf("copying %s: %v", path, err)
			skipped++
			continue
		}
		copied++
	}

	fmt.Printf("Copied %d images, skipped %d.\n", copied, skipped)
}

// captureDate tries an in-process EXIF parse before falling back to the
// exiftool helper, which handles containers goexif cannot.
func captureDate(path string, et *exiftool.Exiftool) (time.Time, error) {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if x, err := exif.Decode(f); err == nil {
			if t, err := x.DateTime(); err == nil {
				return t, nil
			}
		}
	}

	return viewer.CaptureDate(et, path)
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
