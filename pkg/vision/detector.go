package vision

import (
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/ecosort/wastescan/pkg/processing"
	"github.com/ecosort/wastescan/pkg/types"
)

// Detector scans images against an ordered set of material color profiles
type Detector struct {
	profiles []Profile
	parallel bool
}

// Config holds configuration for material detection
type Config struct {
	// Profiles overrides the built-in material table; nil keeps the default.
	Profiles []Profile
	// Parallel scans profiles concurrently. Each profile scan is
	// independent and read-only over the shared pixel grid, so the output
	// is identical to the sequential scan.
	Parallel bool
}

// New creates a Detector with the default material table
func New() *Detector {
	return &Detector{profiles: DefaultProfiles()}
}

// NewWithConfig creates a Detector with custom configuration
func NewWithConfig(config Config) *Detector {
	profiles := config.Profiles
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	return &Detector{profiles: profiles, parallel: config.Parallel}
}

// Detect scans the image against every profile in table order and returns
// the detections sorted by coverage descending. Equal coverage keeps table
// order. The result is never empty for a nonzero-area image: when no
// profile reaches its pixel threshold a single brightness-based fallback
// detection is emitted instead.
func (d *Detector) Detect(img image.Image) ([]types.Detection, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, processing.ErrDegenerateImage
	}

	// Clone to a zero-based NRGBA grid for direct pixel access
	grid := imaging.Clone(img)

	var detections []types.Detection
	if d.parallel && len(d.profiles) > 1 {
		results := make([]*types.Detection, len(d.profiles))
		var g errgroup.Group
		for i := range d.profiles {
			i := i
			g.Go(func() error {
				results[i] = scanProfile(grid, d.profiles[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		// Collect in profile-table order so tie-breaks match the
		// sequential scan
		for _, det := range results {
			if det != nil {
				detections = append(detections, *det)
			}
		}
	} else {
		for _, profile := range d.profiles {
			if det := scanProfile(grid, profile); det != nil {
				detections = append(detections, *det)
			}
		}
	}

	if len(detections) == 0 {
		detections = append(detections, fallbackDetection(grid))
	}

	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Coverage > detections[j].Coverage
	})

	return detections, nil
}

// Profiles returns the detector's material table in scan order.
func (d *Detector) Profiles() []Profile {
	return d.profiles
}

// scanProfile counts pixels inside the profile's color range and builds a
// detection when the count reaches the profile's threshold. Returns nil
// when the profile does not qualify.
func scanProfile(grid *image.NRGBA, profile Profile) *types.Detection {
	width, height := grid.Rect.Dx(), grid.Rect.Dy()

	count := 0
	minX, minY := width, height
	maxX, maxY := -1, -1

	for y := 0; y < height; y++ {
		row := grid.Pix[y*grid.Stride : y*grid.Stride+width*4]
		for x := 0; x < width; x++ {
			i := x * 4
			c := types.RGB{R: row[i], G: row[i+1], B: row[i+2]}
			if !profile.Contains(c) {
				continue
			}
			count++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if count < profile.MinPixels {
		return nil
	}

	percentage := float64(count) / float64(width*height) * 100
	box := types.BoundingBox{minX, minY, maxX, maxY}

	return &types.Detection{
		Material: profile.Name,
		// percentage is already 0-100; the direct offset is the intended
		// scoring curve, saturating at 25% coverage
		Confidence:      math.Min(0.95, 0.70+percentage/100),
		Coverage:        round2(percentage),
		Characteristics: profile.Characteristics,
		Position: &types.Position{
			CenterX:     (minX + maxX) / 2,
			CenterY:     (minY + maxY) / 2,
			BoundingBox: box,
		},
		RegionStats: regionStats(grid, box),
	}
}

// fallbackDetection classifies the whole image as light or dark waste by
// overall brightness when no profile qualified.
func fallbackDetection(grid *image.NRGBA) types.Detection {
	width, height := grid.Rect.Dx(), grid.Rect.Dy()
	box := types.BoundingBox{0, 0, width - 1, height - 1}
	stats := regionStats(grid, box)

	material := DarkWaste
	if stats.Brightness > FallbackBrightnessThreshold {
		material = LightWaste
	}

	return types.Detection{
		Material:        material,
		Confidence:      0.65,
		Coverage:        100.0,
		Characteristics: "unidentified material",
		Position: &types.Position{
			CenterX:     (width - 1) / 2,
			CenterY:     (height - 1) / 2,
			BoundingBox: box,
		},
		RegionStats: stats,
	}
}

// regionStats computes per-channel means, overall brightness and overall
// variance across every channel sample inside the box.
func regionStats(grid *image.NRGBA, box types.BoundingBox) *types.RegionStats {
	var sumR, sumG, sumB, sumSq float64
	pixels := 0

	for y := box[1]; y <= box[3]; y++ {
		row := grid.Pix[y*grid.Stride:]
		for x := box[0]; x <= box[2]; x++ {
			i := x * 4
			r := float64(row[i])
			g := float64(row[i+1])
			b := float64(row[i+2])
			sumR += r
			sumG += g
			sumB += b
			sumSq += r*r + g*g + b*b
			pixels++
		}
	}

	samples := float64(pixels * 3)
	mean := (sumR + sumG + sumB) / samples

	return &types.RegionStats{
		AvgColor: [3]float64{
			sumR / float64(pixels),
			sumG / float64(pixels),
			sumB / float64(pixels),
		},
		Brightness: mean,
		Variance:   sumSq/samples - mean*mean,
	}
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
