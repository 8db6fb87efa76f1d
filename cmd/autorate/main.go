// autorate suggests 1-5 quality ratings for raw files using Gemini and
// writes them back through exiftool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"google.golang.org/genai"
	"k8s.io/klog/v2"

	"github.com/franktheglock/photo-veiwer-copier/pkg/viewer"
)

var (
	dryRun    = flag.Bool("n", false, "dry-run mode, don't rate things")
	overwrite = flag.Bool("o", false, "overwrite existing ratings")
	modelName = flag.String("model", "gemini-2.5-flash", "Gemini model to use")
)

var ratePrompt = "Rate this photograph on a scale of 1 to 5, where 1 is a technically " +
	"failed image (out of focus, badly exposed, accidental shutter press) and 5 is a " +
	"keeper a professional photographer would shortlist. Judge focus, exposure, and " +
	"composition. Respond with a single digit and nothing else."

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if len(flag.Args()) == 0 {
		klog.Exitf("no input directories provided. Usage: %s <dir1> [dir2 ...]", os.Args[0])
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GOOGLE_AI_API_KEY"),
	})
	if err != nil {
		klog.Exitf("genai client: %v", err)
	}

	s, err := viewer.NewSession(viewer.Config{})
	if err != nil {
		klog.Exitf("session failed: %v", err)
	}
	defer s.Close()

	rated := 0
	for _, dir := range flag.Args() {
		if err := s.Load(dir); err != nil {
			klog.Errorf("load %s: %v", dir, err)
			continue
		}

		for i := range s.Files {
			path := s.Path(i)

			info, err := s.ReadInfo(path)
			if err != nil {
				klog.Errorf("read %s: %v", path, err)
				continue
			}
			if !*overwrite && info.Rating > 0 {
				klog.Infof("%s already rated: %d", path, info.Rating)
				continue
			}

			p, err := s.ExtractPreview(path, viewer.Size{X: 640, Y: 640})
			if err != nil {
				klog.Errorf("preview %s: %v", path, err)
				continue
			}

			rating, err := suggestRating(ctx, client, *modelName, p.Data)
			if err != nil {
				klog.Errorf("rating %s: %v", path, err)
				continue
			}

			klog.Infof("rating %s: %d", path, rating)
			if *dryRun {
				rated++
				continue
			}
			if s.WriteRating(path, rating) {
				rated++
			}
		}
	}

	fmt.Printf("Rated %d images.\n", rated)
}

func suggestRating(ctx context.Context, client *genai.Client, model string, jpg []byte) (int, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(jpg, "image/jpeg"),
		genai.NewPartFromText(ratePrompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return 0, fmt.Errorf("generate: %w", err)
	}

	txt := strings.TrimSpace(resp.Text())
	if txt == "" {
		return 0, fmt.Errorf("empty response")
	}

	n, err := strconv.Atoi(txt[:1])
	if err != nil || n < 1 || n > 5 {
		return 0, fmt.Errorf("unexpected response %q", txt)
	}

	return n, nil
}
