// Package classify maps detected material names to disposal
// classifications. The mapping is a static table fixed at process start;
// Classify is total over all strings and falls back to the General Waste
// record for names without an entry, including the brightness fallback
// materials.
package classify

import "github.com/ecosort/wastescan/pkg/types"

// Classifier resolves material names to disposal records
type Classifier struct {
	records map[string]types.Classification
	general types.Classification
}

// New creates a Classifier with the built-in disposal table
func New() *Classifier {
	return &Classifier{
		records: defaultRecords(),
		general: GeneralWaste(),
	}
}

// Classify returns the disposal record for the material, or the General
// Waste default when the material has no entry. It never fails.
func (c *Classifier) Classify(material string) types.Classification {
	if record, ok := c.records[material]; ok {
		return record
	}
	return c.general
}

// Known reports whether the material has its own disposal record.
func (c *Classifier) Known(material string) bool {
	_, ok := c.records[material]
	return ok
}

// GeneralWaste returns the default disposal record used for unknown
// materials.
func GeneralWaste() types.Classification {
	return types.Classification{
		Category:     "General Waste",
		BinColor:     "Black Bin",
		Instructions: "Dispose responsibly.",
		Color:        "gray",
		Recyclable:   false,
		Hazardous:    false,
	}
}

func defaultRecords() map[string]types.Classification {
	return map[string]types.Classification{
		"Plastic Bottle": {
			Category:     "Recyclable",
			Subcategory:  "PET Plastic",
			BinColor:     "Blue Bin",
			Instructions: "Rinse and crush before recycling.",
			Color:        "blue",
			Recyclable:   true,
		},
		"Food Waste": {
			Category:     "Organic Waste",
			BinColor:     "Green Bin",
			Instructions: "Place in compost or biodegradable bin.",
			Color:        "green",
		},
		"Paper/Cardboard": {
			Category:     "Recyclable",
			Subcategory:  "Paper",
			BinColor:     "Blue Bin",
			Instructions: "Keep clean and dry before recycling.",
			Color:        "yellow",
			Recyclable:   true,
		},
		"Metal Can": {
			Category:     "Recyclable",
			Subcategory:  "Metal",
			BinColor:     "Blue Bin",
			Instructions: "Rinse and crush before recycling.",
			Color:        "gray",
			Recyclable:   true,
		},
		"Aluminum Foil": {
			Category:     "Recyclable",
			Subcategory:  "Metal",
			BinColor:     "Blue Bin",
			Instructions: "Ball up clean foil before recycling.",
			Color:        "gray",
			Recyclable:   true,
		},
		"Battery": {
			Category:     "Hazardous Waste",
			BinColor:     "Special Bin",
			Instructions: "Dispose at a battery recycling point.",
			Color:        "red",
			Hazardous:    true,
		},
		"Electronic Device": {
			Category:     "Hazardous Waste",
			Subcategory:  "E-Waste",
			BinColor:     "Special Bin",
			Instructions: "Take to an e-waste collection center.",
			Color:        "orange",
			Hazardous:    true,
		},
		"Glass": {
			Category:     "Recyclable",
			Subcategory:  "Glass",
			BinColor:     "Blue Bin",
			Instructions: "Rinse and recycle whole; do not break.",
			Color:        "teal",
			Recyclable:   true,
		},
		"Plastic Bag": {
			Category:     "General Waste",
			Subcategory:  "Soft Plastic",
			BinColor:     "Black Bin",
			Instructions: "Reuse if possible; soft plastics are not curbside recyclable.",
			Color:        "gray",
		},
		"Food Container": {
			Category:     "Recyclable",
			Subcategory:  "Rigid Plastic",
			BinColor:     "Blue Bin",
			Instructions: "Rinse off food residue before recycling.",
			Color:        "blue",
			Recyclable:   true,
		},
	}
}
