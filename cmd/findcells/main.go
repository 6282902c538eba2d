package main

import (
	"os"

	"github.com/akamensky/argparse"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/cyclopcam/logs"

	"cell-finder/config"
	"cell-finder/internal/domain/entity"
	"cell-finder/internal/infrastructure/vision"
)

func main() {
	logger, err := logs.NewLog()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}
	defaults := cfg.Defaults

	parser := argparse.NewParser("findcells", "Find bright round cells on a fluorescence frame and report their centroids")
	input := parser.String("i", "input", &argparse.Options{Help: "Input frame (PNG, TIFF, JPEG, BMP)", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Detections JSON file", Default: "detections.json"})
	overlay := parser.String("", "overlay", &argparse.Options{Help: "Write frame with outlined cells to this PNG/JPEG file", Default: ""})
	maskOut := parser.String("", "mask", &argparse.Options{Help: "Write thresholded mask to this PNG file", Default: ""})
	workSide := parser.Int("", "workside", &argparse.Options{Help: "Fit frame into this many pixels before detection (0 keeps original size)", Default: cfg.WorkSide})
	colorSigma := parser.Float("", "color-sigma", &argparse.Options{Help: "Intensity bandwidth, fraction of frame width", Default: defaults.ColorSigma})
	spaceSigma := parser.Float("", "space-sigma", &argparse.Options{Help: "Spatial bandwidth, fraction of frame width", Default: defaults.SpaceSigma})
	diameter := parser.Float("", "diameter", &argparse.Options{Help: "Smoothing window, fraction of frame width", Default: defaults.FilterDiameter})
	percentile := parser.Float("p", "percentile", &argparse.Options{Help: "Threshold percentile of normalized intensities", Default: defaults.ThresholdPercentile})
	minArea := parser.Float("", "min-area", &argparse.Options{Help: "Minimum cell area, fraction of frame area", Default: defaults.MinAreaFraction})
	maxArea := parser.Float("", "max-area", &argparse.Options{Help: "Maximum cell area, fraction of frame area", Default: defaults.MaxAreaFraction})
	roundness := parser.Float("r", "roundness", &argparse.Options{Help: "Minimum share of the enclosing circle the cell must fill", Default: defaults.RoundnessFactor})
	sweep := parser.Flag("", "sweep", &argparse.Options{Help: "Count cells over a grid of parameters instead of a single run", Default: false})
	sweepColor := parser.String("", "sweep-color", &argparse.Options{Help: "Comma-separated color sigmas for --sweep", Default: ""})
	sweepSpace := parser.String("", "sweep-space", &argparse.Options{Help: "Comma-separated space sigmas for --sweep", Default: ""})
	sweepPercentiles := parser.String("", "sweep-percentiles", &argparse.Options{Help: "Comma-separated percentiles for --sweep", Default: "90,95,97,99"})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	params := entity.DetectionParameters{
		ColorSigma:          *colorSigma,
		SpaceSigma:          *spaceSigma,
		FilterDiameter:      *diameter,
		ThresholdPercentile: *percentile,
		MinAreaFraction:     *minArea,
		MaxAreaFraction:     *maxArea,
		RoundnessFactor:     *roundness,
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		logger.Errorf("Failed to read %v: %v", *input, err)
		os.Exit(1)
	}
	frame, img, err := vision.LoadFrame(data, *workSide)
	if err != nil {
		logger.Errorf("Failed to load %v: %v", *input, err)
		os.Exit(1)
	}
	logger.Infof("Loaded %v (%vx%v)", *input, frame.Cols, frame.Rows)

	if *sweep {
		grid, err := parseGrid(*sweepColor, *sweepSpace, *sweepPercentiles)
		if err != nil {
			logger.Errorf("Invalid sweep grid: %v", err)
			os.Exit(1)
		}
		results := vision.Sweep(frame, params, grid)
		for _, r := range results {
			if r.Err != nil {
				logger.Warnf("color %g space %g percentile %g: %v", r.Params.ColorSigma, r.Params.SpaceSigma, r.Params.ThresholdPercentile, r.Err)
				continue
			}
			logger.Infof("color %g space %g percentile %g: %v cells", r.Params.ColorSigma, r.Params.SpaceSigma, r.Params.ThresholdPercentile, r.Count)
		}
		if err := writeJSON(*output, sweepReport(results)); err != nil {
			logger.Errorf("Failed to write %v: %v", *output, err)
			os.Exit(1)
		}
		return
	}

	stages, err := vision.RunStages(frame, params)
	if err != nil {
		logger.Errorf("Detection failed: %v", err)
		os.Exit(1)
	}
	result := &entity.DetectionResult{
		ImageWidth:  frame.Cols,
		ImageHeight: frame.Rows,
		Cutoff:      stages.Cutoff,
		Contours:    len(stages.Contours),
		Detections:  vision.Filter(stages.Contours, frame.Rows, frame.Cols, params),
	}
	logger.Infof("Cutoff %.4f, %v contours, %v cells", result.Cutoff, result.Contours, len(result.Detections))

	if err := writeJSON(*output, result); err != nil {
		logger.Errorf("Failed to write %v: %v", *output, err)
		os.Exit(1)
	}

	if *maskOut != "" {
		if err := imgio.Save(*maskOut, vision.MaskImage(stages.Mask), imgio.PNGEncoder()); err != nil {
			logger.Errorf("Failed to write mask: %v", err)
			os.Exit(1)
		}
	}
	if *overlay != "" {
		if err := imgio.Save(*overlay, vision.Annotate(img, result.Detections), encoderFor(*overlay)); err != nil {
			logger.Errorf("Failed to write overlay: %v", err)
			os.Exit(1)
		}
	}
}
