package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/sheetslice/sheetslice/internal/config"
	"github.com/sheetslice/sheetslice/internal/extract"
	"github.com/sheetslice/sheetslice/internal/importer"
	"github.com/sheetslice/sheetslice/internal/render"
	"github.com/sheetslice/sheetslice/internal/sizing"
	"github.com/sheetslice/sheetslice/pkg/logger"
	"github.com/sheetslice/sheetslice/pkg/models"
	"github.com/sheetslice/sheetslice/pkg/updater"
	"github.com/sheetslice/sheetslice/pkg/utils"
	"github.com/sheetslice/sheetslice/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	inputPath := flag.String("input", "", "PDF/image file or directory (overrides config)")
	outputDir := flag.String("output-dir", "", "directory to save extracted cards (overrides config)")
	workers := flag.Int("workers", 0, "number of extraction workers (overrides config)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	checkUpdate := flag.Bool("check-update", false, "check for a newer release and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[sheetslice] "))
	if *verbose {
		log.SetLevel(logger.LevelDebug)
		log.Debug("Verbose logging enabled")
	}
	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	if *checkUpdate {
		info, err := updater.NewChecker(log).CheckForUpdates()
		if err != nil {
			log.Fatal("Update check failed: %v", err)
		}
		if info != nil && info.IsAvailable {
			log.Info("Update available: %s -> %s (%s)", info.CurrentVersion, info.LatestVersion, info.DownloadURL)
		} else {
			log.Info("Already up to date")
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("Error loading config: %v", err)
		}
		// No config file is fine when the input comes from flags.
		cfg = config.Default()
	}

	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if cfg.InputPath == "" {
		log.Fatal("No input given: set input_path in the config or pass -input")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = utils.GetDefaultOutputDir()
	}

	settings, err := cfg.Resolve()
	if err != nil {
		log.Fatal("Invalid settings: %v", err)
	}

	start := time.Now()

	log.Info("Importing pages from %s", cfg.InputPath)
	result, err := importer.ImportPath(cfg.InputPath, settings.Mode, log)
	if err != nil {
		log.Fatal("Error importing pages: %v", err)
	}
	for _, idx := range cfg.SkipPages {
		if idx >= 0 && idx < len(result.Pages) {
			result.Pages[idx].Skip = true
		}
	}
	result.DropSkipped()
	log.Info("Imported %d active pages (%s layout, %dx%d grid)",
		len(result.Pages), settings.Mode, settings.Grid.Rows, settings.Grid.Columns)

	sources := render.NewSources(result.Sources)
	defer sources.Close()

	pipeline, err := extract.New(result.Pages, settings, sources, nil, nil, log)
	if err != nil {
		log.Fatal("Error building extraction pipeline: %v", err)
	}

	total := pipeline.AddressableCards()
	if total == 0 || pipeline.TotalCards() == 0 {
		log.Fatal("Nothing to extract: no cards found")
	}

	geom := sizing.Card(cfg.CardSize.WidthInches, cfg.CardSize.HeightInches,
		cfg.CardSize.BleedInches, cfg.CardSize.ScalePercent)
	log.Info("Extracting %d cards, %d unique (output size %.2fx%.2fin, %dx%dpx)",
		total, pipeline.TotalCards(), geom.WidthInches, geom.HeightInches, geom.PixelWidth(), geom.PixelHeight())

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatal("Error creating output directory: %v", err)
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Extracting cards"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	used := make(map[string]bool)
	report := pipeline.ExtractAll(context.Background(), cfg.Workers, func(res extract.CardResult) {
		defer bar.Add(1)
		if res.Err != nil {
			return
		}
		data, err := extract.EncodePNG(res.Image)
		if err != nil {
			log.Info("Error encoding card %d: %v", res.CardIndex, err)
			return
		}
		name := cardFileName(used, res.Identity, res.CardIndex)
		if err := os.WriteFile(filepath.Join(cfg.OutputDir, name), data, 0644); err != nil {
			log.Info("Error writing card %d: %v", res.CardIndex, err)
			return
		}
		log.Debug("Wrote %s", name)
	})
	fmt.Println()

	log.Info("Extraction complete in %s:", time.Since(start).Round(time.Millisecond))
	log.Info("- Cards extracted: %d", report.Extracted)
	log.Info("- Cells skipped: %d", report.Skipped)
	log.Info("- Cards saved to: %s", cfg.OutputDir)
	if len(report.Failed) > 0 {
		log.Info("- Failed cards: %d", len(report.Failed))
		for _, f := range report.Failed {
			log.Info("  card %d (logical id %d, %s): %v",
				f.CardIndex, f.Identity.LogicalID, f.Identity.Face, f.Err)
		}
		os.Exit(1)
	}
}

// cardFileName names an output file by logical id and face. Duplicate
// ids (the duplex shared-back fallback can produce them) get the card
// index appended instead of overwriting an earlier file.
func cardFileName(used map[string]bool, id models.CardIdentity, cardIndex int) string {
	name := fmt.Sprintf("card_%03d_%s.png", id.LogicalID, id.Face)
	if used[name] {
		name = fmt.Sprintf("card_%03d_%s_%d.png", id.LogicalID, id.Face, cardIndex)
	}
	used[name] = true
	return name
}
