package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ecosort/wastescan"
	"github.com/ecosort/wastescan/pkg/vision"
)

func main() {
	var in, out string
	var parallel, pretty bool
	var maxDim int

	flag.StringVar(&in, "in", "", "input image path or URL (jpg/png/gif/webp/bmp/tiff)")
	flag.StringVar(&out, "out", "", "write the JSON report to this file instead of stdout")
	flag.BoolVar(&parallel, "parallel", false, "scan material profiles concurrently")
	flag.BoolVar(&pretty, "pretty", true, "indent the JSON output")
	flag.IntVar(&maxDim, "maxdim", 0, "downscale long side to at most this many pixels before scanning, 0=off")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in input.jpg|URL [-out report.json] [-parallel] [-maxdim 1536]", filepath.Base(os.Args[0]))
	}

	pipeline := wastescan.NewWithOptions(wastescan.Options{
		Detector:         vision.Config{Parallel: parallel},
		MaxScanDimension: maxDim,
	})

	result, err := pipeline.AnalyzeSource(in)
	if err != nil {
		log.Fatal(err)
	}

	for _, m := range result.Materials {
		log.Printf("material=%q conf=%.2f coverage=%.2f%% -> %s (%s)",
			m.DetectedMaterial, m.Confidence, m.CoveragePercentage,
			m.Classification.Category, m.Classification.BinColor)
	}
	log.Printf("summary: %d detected, %d recyclable, %d hazardous, %d general",
		result.TotalMaterialsDetected, result.Summary.RecyclableItems,
		result.Summary.HazardousItems, result.Summary.GeneralWasteItems)

	var js []byte
	if pretty {
		js, err = json.MarshalIndent(result, "", "  ")
	} else {
		js, err = json.Marshal(result)
	}
	if err != nil {
		log.Fatal(err)
	}

	if out == "" {
		fmt.Println(string(js))
		return
	}
	if err := os.WriteFile(out, js, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", out)
}
