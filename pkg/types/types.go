package types

// RGB is an 8-bit color triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// BoundingBox is an axis-aligned pixel rectangle as [xmin, ymin, xmax, ymax],
// inclusive on all four bounds.
type BoundingBox [4]int

// Width returns the pixel width of the box.
func (b BoundingBox) Width() int {
	return b[2] - b[0] + 1
}

// Height returns the pixel height of the box.
func (b BoundingBox) Height() int {
	return b[3] - b[1] + 1
}

// Position locates a detection within the image
type Position struct {
	CenterX     int         `json:"center_x"`
	CenterY     int         `json:"center_y"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// RegionStats holds pixel statistics computed over a detection's bounding box
type RegionStats struct {
	AvgColor   [3]float64 `json:"avg_color"`
	Brightness float64    `json:"brightness"`
	Variance   float64    `json:"variance"`
}

// Detection is one material found in an image by the color-range scan.
// Coverage is the percentage of image pixels inside the profile's color
// range, rounded to two decimals. Confidence is derived from coverage and
// capped at 0.95 (fixed at 0.65 for brightness fallback detections).
type Detection struct {
	Material        string
	Confidence      float64
	Coverage        float64
	Characteristics string
	Position        *Position
	RegionStats     *RegionStats
}

// Classification is the disposal record for one material
type Classification struct {
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory,omitempty"`
	BinColor     string `json:"bin_color"`
	Instructions string `json:"instructions"`
	Color        string `json:"color"`
	Recyclable   bool   `json:"recyclable"`
	Hazardous    bool   `json:"hazardous"`
}

// MaterialItem pairs a detection with its classification in the response
type MaterialItem struct {
	DetectedMaterial   string         `json:"detected_material"`
	Confidence         float64        `json:"confidence"`
	CoveragePercentage float64        `json:"coverage_percentage"`
	Characteristics    string         `json:"characteristics"`
	Position           *Position      `json:"position,omitempty"`
	RegionStats        *RegionStats   `json:"region_stats,omitempty"`
	Classification     Classification `json:"classification"`
}

// Summary counts items by disposal kind. GeneralWasteItems is always
// total - recyclable - hazardous.
type Summary struct {
	RecyclableItems   int `json:"recyclable_items"`
	HazardousItems    int `json:"hazardous_items"`
	GeneralWasteItems int `json:"general_waste_items"`
}

// PrimaryClassification is the top-line summary taken from the
// highest-coverage item.
type PrimaryClassification struct {
	Material     string `json:"material"`
	Category     string `json:"category"`
	BinColor     string `json:"bin_color"`
	Instructions string `json:"instructions"`
}

// Report is the full analysis result returned per request
type Report struct {
	Success                bool                   `json:"success"`
	TotalMaterialsDetected int                    `json:"total_materials_detected"`
	Summary                Summary                `json:"summary"`
	Materials              []MaterialItem         `json:"materials"`
	Primary                *PrimaryClassification `json:"primary_classification,omitempty"`
}
