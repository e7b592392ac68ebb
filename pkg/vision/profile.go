package vision

import "github.com/ecosort/wastescan/pkg/types"

// Profile defines the color signature of one waste material. A pixel
// belongs to the profile when every channel lies within [Min, Max]
// inclusive. Matches below MinPixels are discarded as noise.
type Profile struct {
	Name            string
	Min             types.RGB
	Max             types.RGB
	MinPixels       int
	Characteristics string
}

// Contains reports whether the color falls inside the profile's range.
func (p Profile) Contains(c types.RGB) bool {
	return c.R >= p.Min.R && c.R <= p.Max.R &&
		c.G >= p.Min.G && c.G <= p.Max.G &&
		c.B >= p.Min.B && c.B <= p.Max.B
}

// DefaultProfiles returns the built-in material table. The slice order is
// significant: it is the tie-break order when detections have equal
// coverage. Ranges deliberately overlap (Metal Can and Aluminum Foil both
// cover mid-grays); every qualifying profile reports its own detection.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name:            "Plastic Bottle",
			Min:             types.RGB{R: 100, G: 150, B: 200},
			Max:             types.RGB{R: 200, G: 220, B: 255},
			MinPixels:       500,
			Characteristics: "transparent, blue tint",
		},
		{
			Name:            "Food Waste",
			Min:             types.RGB{R: 50, G: 80, B: 20},
			Max:             types.RGB{R: 180, G: 220, B: 100},
			MinPixels:       400,
			Characteristics: "organic texture",
		},
		{
			Name:            "Paper/Cardboard",
			Min:             types.RGB{R: 180, G: 160, B: 140},
			Max:             types.RGB{R: 255, G: 240, B: 220},
			MinPixels:       600,
			Characteristics: "fibrous, matte",
		},
		{
			Name:            "Metal Can",
			Min:             types.RGB{R: 150, G: 150, B: 150},
			Max:             types.RGB{R: 220, G: 220, B: 230},
			MinPixels:       300,
			Characteristics: "metallic, reflective",
		},
		{
			Name:            "Aluminum Foil",
			Min:             types.RGB{R: 160, G: 160, B: 165},
			Max:             types.RGB{R: 230, G: 230, B: 240},
			MinPixels:       300,
			Characteristics: "thin, crinkled, reflective",
		},
		{
			Name:            "Battery",
			Min:             types.RGB{R: 0, G: 0, B: 0},
			Max:             types.RGB{R: 80, G: 80, B: 80},
			MinPixels:       200,
			Characteristics: "cylindrical, dark",
		},
		{
			Name:            "Electronic Device",
			Min:             types.RGB{R: 0, G: 0, B: 0},
			Max:             types.RGB{R: 60, G: 60, B: 70},
			MinPixels:       250,
			Characteristics: "dark casing, rigid",
		},
		{
			Name:            "Glass",
			Min:             types.RGB{R: 200, G: 200, B: 200},
			Max:             types.RGB{R: 255, G: 255, B: 255},
			MinPixels:       400,
			Characteristics: "smooth, translucent",
		},
		{
			Name:            "Plastic Bag",
			Min:             types.RGB{R: 220, G: 220, B: 220},
			Max:             types.RGB{R: 255, G: 255, B: 255},
			MinPixels:       350,
			Characteristics: "thin film, crinkled",
		},
		{
			Name:            "Food Container",
			Min:             types.RGB{R: 210, G: 210, B: 210},
			Max:             types.RGB{R: 255, G: 255, B: 255},
			MinPixels:       350,
			Characteristics: "molded, lightweight",
		},
	}
}

// Fallback material names used when no profile matches, chosen by overall
// image brightness.
const (
	LightWaste = "Light-colored Waste"
	DarkWaste  = "Dark-colored Waste"
)

// FallbackBrightnessThreshold separates light from dark fallback
// detections. Brightness above this value reports LightWaste.
const FallbackBrightnessThreshold = 180.0
