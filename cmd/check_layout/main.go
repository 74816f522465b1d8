package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/sheetslice/sheetslice/internal/config"
	"github.com/sheetslice/sheetslice/internal/geometry"
)

// check_layout prints the page dimensions of a PDF and the card
// rectangles the current settings would cut out of each page at the
// extraction DPI. Useful for dialing in margins and gutter width
// without running a full extraction.
func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	settings, err := cfg.Resolve()
	if err != nil {
		fmt.Printf("Invalid settings: %v\n", err)
		os.Exit(1)
	}

	dims, err := api.PageDimsFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error getting page dimensions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Analyzing PDF: %s (%s layout, %dx%d grid)\n",
		*pdfPath, settings.Mode, settings.Grid.Rows, settings.Grid.Columns)

	scale := geometry.RenderScale()
	for i, dim := range dims {
		surfaceW := int(math.Round(dim.Width * scale))
		surfaceH := int(math.Round(dim.Height * scale))
		fmt.Printf("\nPage %d: %.3f x %.3f points -> %d x %d px at %d DPI\n",
			i+1, dim.Width, dim.Height, surfaceW, surfaceH, geometry.ExtractionDPI)

		for row := 0; row < settings.Grid.Rows; row++ {
			for col := 0; col < settings.Grid.Columns; col++ {
				r := geometry.CardRect(surfaceW, surfaceH, settings, row, col)
				fmt.Printf("  cell (%d,%d): x=%d y=%d w=%d h=%d\n",
					row, col, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
			}
		}
	}
}
