package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/tmayer/go-stl-raytracer/pkg/renderer"
)

func main() {
	stlFile := flag.String("stl", "", "Path to the STL file to render (required)")
	configFile := flag.String("config", "", "Path to a TOML render configuration (optional)")
	output := flag.String("o", "render.png", "Output image path; the extension selects png, tiff or bmp")
	width := flag.Int("width", 512, "Output width in pixels (overridden by -config)")
	height := flag.Int("height", 512, "Output height in pixels (overridden by -config)")
	crop := flag.Bool("crop", false, "Crop transparent borders from the output (overridden by -config)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *stlFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: go-stl-raytracer -stl <file.stl> [options]")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(2)
	}

	config, err := loadConfig(*configFile, *width, *height, *crop)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	img, err := renderer.New(config, logger).RenderSTL(ctx, *stlFile)
	if err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
	logger.Info("render complete", "elapsed", time.Since(start).Round(time.Millisecond))

	if err := renderer.WriteImageFile(*output, img); err != nil {
		logger.Error("failed to write output", "error", err)
		os.Exit(1)
	}
	logger.Info("wrote image", "file", *output)
}

// loadConfig resolves the render configuration: a config file when given,
// otherwise the defaults adjusted by the flags. The default setup lights the
// mesh from over the camera's shoulder.
func loadConfig(configFile string, width, height int, crop bool) (renderer.Config, error) {
	if configFile != "" {
		return renderer.LoadConfig(configFile)
	}

	config := renderer.DefaultConfig(width, height)
	config.Crop = crop
	config.Lights = []renderer.LightConfig{{
		Position:  renderer.Spherical{Radius: 4, Theta: 30, Phi: 30},
		Intensity: [3]float64{20, 20, 20},
	}}
	return config, config.Validate()
}
