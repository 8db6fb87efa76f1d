package viewer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// ErrNoPreview is returned when no displayable preview can be produced for
// a file. Callers treat it as a skip condition, never a crash.
var ErrNoPreview = errors.New("no preview available")

var jpegQuality = 85

// previewTags are the embedded preview fields tried in order of size.
var previewTags = []string{"JpgFromRaw", "PreviewImage", "ThumbnailImage"}

// Preview is an encoded in-memory JPEG rendering of a file.
type Preview struct {
	Data   []byte
	Width  int
	Height int
}

// ExtractPreview reads an embedded preview from the raw container, falling
// back to decoding the file itself, and resizes the result to fit within
// size without upscaling.
func (s *Session) ExtractPreview(path string, size Size) (*Preview, error) {
	img, err := s.previewImage(path)
	if err != nil {
		return nil, err
	}
	return renderPreview(img, size)
}

func (s *Session) previewImage(path string) (image.Image, error) {
	if s.bet != nil {
		fis := s.bet.ExtractMetadata(path)
		fi := fis[0]
		if fi.Err != nil {
			klog.V(1).Infof("extract fail for %q: %v", path, fi.Err)
		} else {
			for _, tag := range previewTags {
				v, err := fi.GetString(tag)
				if err != nil {
					continue
				}
				img, err := decodeEmbedded(v)
				if err != nil {
					klog.V(1).Infof("embedded %s in %s: %v", tag, path, err)
					continue
				}
				return img, nil
			}
		}
	}

	// No usable embedded preview: decode the container directly. This covers
	// JPEG, PNG and TIFF sources; an undecodable raw ends up as no preview.
	img, err := imgio.Open(path)
	if err != nil {
		klog.V(1).Infof("decode %s: %v", path, err)
		return nil, fmt.Errorf("%s: %w", path, ErrNoPreview)
	}

	return img, nil
}

// decodeEmbedded decodes a binary exiftool field value, transported as a
// base64 string with a "base64:" prefix.
func decodeEmbedded(v string) (image.Image, error) {
	enc, ok := strings.CutPrefix(v, "base64:")
	if !ok {
		return nil, fmt.Errorf("not a binary field: %.16q", v)
	}

	bs, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return img, nil
}

// fitTo returns dimensions that fit w x h within size, preserving aspect
// ratio and never upscaling.
func fitTo(w, h int, size Size) (int, int) {
	if w <= size.X && h <= size.Y {
		return w, h
	}

	sx := float64(size.X) / float64(w)
	sy := float64(size.Y) / float64(h)
	scale := sx
	if sy < sx {
		scale = sy
	}

	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func renderPreview(img image.Image, size Size) (*Preview, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty image: %w", ErrNoPreview)
	}

	nw, nh := fitTo(w, h, size)
	if nw != w || nh != h {
		img = transform.Resize(img, nw, nh, transform.Lanczos)
	}

	var buf bytes.Buffer
	if err := imgio.JPEGEncoder(jpegQuality)(&buf, img); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return &Preview{Data: buf.Bytes(), Width: nw, Height: nh}, nil
}
