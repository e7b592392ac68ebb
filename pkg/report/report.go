// Package report assembles detection and classification results into the
// per-request response shape.
package report

import (
	"math"

	"github.com/ecosort/wastescan/pkg/classify"
	"github.com/ecosort/wastescan/pkg/types"
)

// Assembler pairs detections with disposal records and computes the
// response summary.
type Assembler struct {
	classifier *classify.Classifier
}

// NewAssembler creates an Assembler using the given classifier
func NewAssembler(classifier *classify.Classifier) *Assembler {
	return &Assembler{classifier: classifier}
}

// Assemble builds the full report from detections already sorted by
// coverage. The summary's general-waste count is the remainder
// total - recyclable - hazardous, not an independently derived count.
func (a *Assembler) Assemble(detections []types.Detection) types.Report {
	items := make([]types.MaterialItem, 0, len(detections))
	recyclable := 0
	hazardous := 0

	for _, det := range detections {
		classification := a.classifier.Classify(det.Material)
		if classification.Recyclable {
			recyclable++
		}
		if classification.Hazardous {
			hazardous++
		}
		items = append(items, types.MaterialItem{
			DetectedMaterial:   det.Material,
			Confidence:         round2(det.Confidence),
			CoveragePercentage: det.Coverage,
			Characteristics:    det.Characteristics,
			Position:           det.Position,
			RegionStats:        det.RegionStats,
			Classification:     classification,
		})
	}

	return types.Report{
		Success:                true,
		TotalMaterialsDetected: len(items),
		Summary: types.Summary{
			RecyclableItems:   recyclable,
			HazardousItems:    hazardous,
			GeneralWasteItems: len(items) - recyclable - hazardous,
		},
		Materials: items,
		Primary:   primary(items),
	}
}

// primary derives the top-line classification from the highest-coverage
// item, or a fixed placeholder when nothing was detected.
func primary(items []types.MaterialItem) *types.PrimaryClassification {
	if len(items) == 0 {
		return &types.PrimaryClassification{
			Material:     "None",
			Category:     "No materials detected",
			BinColor:     "Black Bin",
			Instructions: "Dispose responsibly.",
		}
	}
	first := items[0]
	return &types.PrimaryClassification{
		Material:     first.DetectedMaterial,
		Category:     first.Classification.Category,
		BinColor:     first.Classification.BinColor,
		Instructions: first.Classification.Instructions,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
