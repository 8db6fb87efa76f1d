package viewer

import (
	"fmt"
	"strconv"
	"time"
)

// Image holds the tags read for a single file. Records are transient: they
// are re-read from exiftool on every display update, never cached.
type Image struct {
	Path string

	Model       string
	ISO         int64
	Speed       string
	FNumber     float64
	FocalLength string
	Rating      int64

	Taken time.Time
}

const missing = "N/A"

// InfoLine composes the one-line summary shown under the main pane. Absent
// tags render as a placeholder rather than dropping out of the line.
func (i Image) InfoLine() string {
	model := i.Model
	if model == "" {
		model = missing
	}

	iso := missing
	if i.ISO > 0 {
		iso = strconv.FormatInt(i.ISO, 10)
	}

	speed := i.Speed
	if speed == "" {
		speed = missing
	}

	fnum := missing
	if i.FNumber > 0 {
		fnum = strconv.FormatFloat(i.FNumber, 'f', -1, 64)
	}

	focal := i.FocalLength
	if focal == "" {
		focal = missing
	}

	taken := missing
	if !i.Taken.IsZero() {
		taken = i.Taken.Format(exifDate)
	}

	return fmt.Sprintf("Camera: %s  |  ISO: %s  |  Shutter: %s  |  f/%s  |  Focal Length: %smm  |  Date: %s",
		model, iso, speed, fnum, focal, taken)
}
