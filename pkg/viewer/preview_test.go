package viewer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 128, A: 255})
		}
	}
	return img
}

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	var enc imgio.Encoder
	switch filepath.Ext(path) {
	case ".png":
		enc = imgio.PNGEncoder()
	default:
		enc = imgio.JPEGEncoder(jpegQuality)
	}
	if err := imgio.Save(path, testImage(w, h), enc); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

func TestFitTo(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		size   Size
		nw, nh int
	}{
		{"landscape bound by width", 4000, 3000, Size{800, 600}, 800, 600},
		{"wide bound by width", 4000, 1000, Size{800, 600}, 800, 200},
		{"tall bound by height", 1000, 4000, Size{800, 600}, 150, 600},
		{"smaller is never upscaled", 200, 100, Size{800, 600}, 200, 100},
		{"exact fit unchanged", 800, 600, Size{800, 600}, 800, 600},
		{"extreme ratio clamps to one", 10000, 2, Size{100, 100}, 100, 1},
	}

	for _, c := range cases {
		nw, nh := fitTo(c.w, c.h, c.size)
		if nw != c.nw || nh != c.nh {
			t.Errorf("%s: fitTo(%d, %d, %v) = %dx%d, want %dx%d", c.name, c.w, c.h, c.size, nw, nh, c.nw, c.nh)
		}
	}
}

func TestDecodeEmbedded(t *testing.T) {
	var buf bytes.Buffer
	if err := imgio.JPEGEncoder(jpegQuality)(&buf, testImage(8, 4)); err != nil {
		t.Fatal(err)
	}

	v := "base64:" + base64.StdEncoding.EncodeToString(buf.Bytes())
	img, err := decodeEmbedded(v)
	if err != nil {
		t.Fatalf("decodeEmbedded: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded bounds %v, want 8x4", img.Bounds())
	}

	if _, err := decodeEmbedded("(Binary data 12345 bytes)"); err == nil {
		t.Error("expected error for non-binary field value")
	}
	if _, err := decodeEmbedded("base64:!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestExtractPreviewFallback(t *testing.T) {
	// A session without exiftool handles exercises the direct-decode
	// fallback used for containers without an embedded preview.
	s := testSession()

	path := filepath.Join(t.TempDir(), "img.png")
	writeTestImage(t, path, 640, 480)

	p, err := s.ExtractPreview(path, Size{X: 200, Y: 150})
	if err != nil {
		t.Fatalf("ExtractPreview: %v", err)
	}
	if p.Width != 200 || p.Height != 150 {
		t.Errorf("preview %dx%d, want 200x150", p.Width, p.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("preview data does not decode: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("encoded width %d, want 200", img.Bounds().Dx())
	}
}

func TestExtractPreviewCorrupt(t *testing.T) {
	s := testSession()

	path := filepath.Join(t.TempDir(), "broken.arw")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.ExtractPreview(path, Size{X: 200, Y: 150})
	if err == nil {
		t.Fatal("expected an error for a corrupt file")
	}
	if !errors.Is(err, ErrNoPreview) {
		t.Errorf("expected ErrNoPreview, got %v", err)
	}
}

func TestCachedPreview(t *testing.T) {
	s := testSession()
	s.Config.CacheDir = t.TempDir()

	path := filepath.Join(t.TempDir(), "img.jpg")
	writeTestImage(t, path, 640, 480)

	first, err := s.CachedPreview(path, Size{X: 200, Y: 150})
	if err != nil {
		t.Fatalf("CachedPreview: %v", err)
	}

	second, err := s.CachedPreview(path, Size{X: 200, Y: 150})
	if err != nil {
		t.Fatalf("CachedPreview (cached): %v", err)
	}
	if first != second {
		t.Errorf("cache path changed between calls: %q vs %q", first, second)
	}

	img, err := imgio.Open(second)
	if err != nil {
		t.Fatalf("cached preview does not decode: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 150 {
		t.Errorf("cached preview %v, want 200x150", img.Bounds())
	}
}
