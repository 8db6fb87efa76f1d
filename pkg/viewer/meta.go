package viewer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

var exifDate = "2006:01:02 15:04:05"

var errNoExiftool = errors.New("exiftool handle not open")

// ReadInfo fetches the fixed tag set for path. Individual absent tags are
// left at their zero value; only a whole-file extraction failure is an error.
func (s *Session) ReadInfo(path string) (Image, error) {
	i := Image{Path: path}
	if s.et == nil {
		return i, errNoExiftool
	}

	fis := s.et.ExtractMetadata(path)
	fi := fis[0]
	if fi.Err != nil {
		return i, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	var err error

	i.Model, err = fi.GetString("Model")
	if err != nil {
		klog.V(1).Infof("unable to get model for %s: %v", path, err)
	}

	i.ISO, err = fi.GetInt("ISO")
	if err != nil {
		klog.V(1).Infof("unable to get ISO for %s: %v", path, err)
	}

	i.Speed, err = fi.GetString("ShutterSpeed")
	if err != nil {
		klog.V(1).Infof("unable to get shutter speed for %s: %v", path, err)
	}

	i.FNumber, err = fi.GetFloat("FNumber")
	if err != nil {
		klog.V(1).Infof("unable to get f-number for %s: %v", path, err)
	}

	i.FocalLength, err = fi.GetString("FocalLength")
	if err != nil {
		klog.V(1).Infof("unable to get focal length for %s: %v", path, err)
	}
	i.FocalLength = strings.TrimSuffix(i.FocalLength, " mm")
	i.FocalLength = strings.ReplaceAll(i.FocalLength, ".0", "")

	i.Rating, err = fi.GetInt("Rating")
	if err != nil {
		klog.V(2).Infof("no rating for %s: %v", path, err)
	}

	ds, err := fi.GetString("DateTimeOriginal")
	if err != nil {
		klog.V(1).Infof("unable to get date time for %s: %v", path, err)
		return i, nil
	}

	i.Taken, err = time.Parse(exifDate, ds)
	if err != nil {
		klog.V(1).Infof("parse time %q: %v", ds, err)
		i.Taken = time.Time{}
	}

	return i, nil
}

// CaptureDate returns the capture timestamp for path. An absent or
// unparsable DateTimeOriginal is an error: the caller must skip any
// date-dependent operation for that file.
func CaptureDate(et *exiftool.Exiftool, path string) (time.Time, error) {
	if et == nil {
		return time.Time{}, errNoExiftool
	}

	fis := et.ExtractMetadata(path)
	fi := fis[0]
	if fi.Err != nil {
		return time.Time{}, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	ds, err := fi.GetString("DateTimeOriginal")
	if err != nil {
		return time.Time{}, fmt.Errorf("get DateTimeOriginal: %w", err)
	}

	t, err := time.Parse(exifDate, ds)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", ds, err)
	}

	return t, nil
}

// CaptureDate reads the capture timestamp through the session handle.
func (s *Session) CaptureDate(path string) (time.Time, error) {
	return CaptureDate(s.et, path)
}

// WriteRating sets the rating on both the XMP and EXIF namespaces.
// Failures are logged, never raised.
func (s *Session) WriteRating(path string, rating int) bool {
	if s.et == nil {
		klog.Errorf("rating write for %s: %v", path, errNoExiftool)
		return false
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	fm.SetInt("XMP:Rating", int64(rating))
	fm.SetInt("EXIF:Rating", int64(rating))

	fms := []exiftool.FileMetadata{fm}
	s.et.WriteMetadata(fms)
	if fms[0].Err != nil {
		klog.Errorf("rating write for %s: %v", path, fms[0].Err)
		return false
	}

	klog.Infof("rated %s: %d", path, rating)
	return true
}
