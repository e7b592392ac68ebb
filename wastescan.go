// Package wastescan classifies images of waste items by detecting likely
// material types with color-range heuristics and mapping each detected
// material to a disposal category with handling instructions.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/ecosort/wastescan"
//	)
//
//	func main() {
//		pipeline := wastescan.New()
//
//		result, err := pipeline.AnalyzeSource("waste.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("detected %d materials\n", result.TotalMaterialsDetected)
//		for _, m := range result.Materials {
//			fmt.Printf("  %s (%.0f%%) -> %s\n",
//				m.DetectedMaterial, m.CoveragePercentage, m.Classification.Category)
//		}
//	}
//
// The package consists of four main components:
//
//  1. Processing (pkg/processing): image decoding and loading
//  2. Vision (pkg/vision): color-range material detection
//  3. Classify (pkg/classify): material to disposal-record lookup
//  4. Report (pkg/report): response assembly and summary counts
//
// Detection is a fixed-threshold color-mask scan: a pixel matches a
// material profile when all three channels fall inside the profile's
// range, and a profile qualifies when enough pixels match. There is no
// learned model and no real segmentation; the heuristic knowingly lets
// multiple overlapping profiles report the same pixels.
package wastescan

import (
	"image"

	"github.com/ecosort/wastescan/pkg/classify"
	"github.com/ecosort/wastescan/pkg/processing"
	"github.com/ecosort/wastescan/pkg/report"
	"github.com/ecosort/wastescan/pkg/types"
	"github.com/ecosort/wastescan/pkg/vision"
)

// Version of the wastescan library
const Version = "1.0.0"

// Pipeline runs the full analysis: decode, detect, classify, assemble
type Pipeline struct {
	processor *processing.Processor
	detector  *vision.Detector
	assembler *report.Assembler

	maxScanDimension int
}

// Options configures a Pipeline
type Options struct {
	// Detector configures the material scan.
	Detector vision.Config
	// MaxScanDimension downscales images whose long side exceeds this
	// many pixels before scanning. 0 disables downscaling.
	MaxScanDimension int
}

// New creates a Pipeline with default configuration
func New() *Pipeline {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Pipeline with custom configuration
func NewWithOptions(opts Options) *Pipeline {
	return &Pipeline{
		processor:        processing.NewProcessor(),
		detector:         vision.NewWithConfig(opts.Detector),
		assembler:        report.NewAssembler(classify.New()),
		maxScanDimension: opts.MaxScanDimension,
	}
}

// Analyze runs detection and classification on a decoded image
func (p *Pipeline) Analyze(img image.Image) (types.Report, error) {
	img = p.processor.Downscale(img, p.maxScanDimension)

	detections, err := p.detector.Detect(img)
	if err != nil {
		return types.Report{}, err
	}

	return p.assembler.Assemble(detections), nil
}

// AnalyzeBytes decodes raw image bytes and analyzes them. Decode
// failures are reported as *processing.DecodeError; zero-area images as
// processing.ErrDegenerateImage.
func (p *Pipeline) AnalyzeBytes(data []byte) (types.Report, error) {
	img, err := p.processor.DecodeBytes(data)
	if err != nil {
		return types.Report{}, err
	}
	return p.Analyze(img)
}

// AnalyzeSource loads an image from a file path or URL and analyzes it
func (p *Pipeline) AnalyzeSource(source string) (types.Report, error) {
	img, err := p.processor.LoadImageSmart(source)
	if err != nil {
		return types.Report{}, err
	}
	return p.Analyze(img)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
