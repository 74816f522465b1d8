// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sheetslice/sheetslice/pkg/models"
)

type Margins struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

type Config struct {
	InputPath string `yaml:"input_path"`
	OutputDir string `yaml:"output_dir"`

	Layout struct {
		Mode        string `yaml:"mode"`        // simplex, duplex, gutter-fold
		FlipEdge    string `yaml:"flip_edge"`   // short, long
		Orientation string `yaml:"orientation"` // vertical, horizontal
	} `yaml:"layout"`

	Grid struct {
		Rows    int `yaml:"rows"`
		Columns int `yaml:"columns"`
	} `yaml:"grid"`

	CropMargins Margins `yaml:"crop_margins"`
	GutterWidth int     `yaml:"gutter_width"`

	Rotation struct {
		Front int `yaml:"front"`
		Back  int `yaml:"back"`
	} `yaml:"rotation"`

	CardCrop Margins `yaml:"card_crop"`

	CardSize struct {
		WidthInches  float64 `yaml:"width"`
		HeightInches float64 `yaml:"height"`
		BleedInches  float64 `yaml:"bleed"`
		ScalePercent float64 `yaml:"scale_percent"`
	} `yaml:"card_size"`

	SkipPages []int `yaml:"skip_pages"`
	Workers   int   `yaml:"workers"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Layout.Mode == "" {
		cfg.Layout.Mode = "simplex"
	}
	if cfg.Layout.FlipEdge == "" {
		cfg.Layout.FlipEdge = "short"
	}
	if cfg.Layout.Orientation == "" {
		cfg.Layout.Orientation = "vertical"
	}
	if cfg.Grid.Rows == 0 {
		cfg.Grid.Rows = 3
	}
	if cfg.Grid.Columns == 0 {
		cfg.Grid.Columns = 3
	}
	if cfg.CardSize.WidthInches == 0 {
		cfg.CardSize.WidthInches = 2.5
	}
	if cfg.CardSize.HeightInches == 0 {
		cfg.CardSize.HeightInches = 3.5
	}
	if cfg.CardSize.ScalePercent == 0 {
		cfg.CardSize.ScalePercent = 100
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
}

// Resolve turns the raw config into a validated Settings value. This
// is the single place partial input becomes a fully populated
// configuration; nothing downstream re-checks it.
func (cfg *Config) Resolve() (models.Settings, error) {
	var mode models.LayoutMode
	switch cfg.Layout.Mode {
	case "simplex", "":
		mode = models.Simplex()
	case "duplex":
		edge := models.FlipShortEdge
		switch cfg.Layout.FlipEdge {
		case "short", "":
		case "long":
			edge = models.FlipLongEdge
		default:
			return models.Settings{}, fmt.Errorf("unknown flip edge %q", cfg.Layout.FlipEdge)
		}
		mode = models.Duplex(edge)
	case "gutter-fold", "gutterfold":
		orientation := models.GutterVertical
		switch cfg.Layout.Orientation {
		case "vertical", "":
		case "horizontal":
			orientation = models.GutterHorizontal
		default:
			return models.Settings{}, fmt.Errorf("unknown gutter orientation %q", cfg.Layout.Orientation)
		}
		mode = models.GutterFold(orientation)
	default:
		return models.Settings{}, fmt.Errorf("unknown layout mode %q", cfg.Layout.Mode)
	}

	settings := models.Settings{
		Mode: mode,
		Grid: models.Grid{Rows: cfg.Grid.Rows, Columns: cfg.Grid.Columns},
		Margins: models.CropMargins{
			Top:    cfg.CropMargins.Top,
			Right:  cfg.CropMargins.Right,
			Bottom: cfg.CropMargins.Bottom,
			Left:   cfg.CropMargins.Left,
		},
		GutterWidth: cfg.GutterWidth,
		Rotation: models.Rotation{
			Front: cfg.Rotation.Front,
			Back:  cfg.Rotation.Back,
		},
		CardCrop: models.CropMargins{
			Top:    cfg.CardCrop.Top,
			Right:  cfg.CardCrop.Right,
			Bottom: cfg.CardCrop.Bottom,
			Left:   cfg.CardCrop.Left,
		},
	}

	if err := settings.Validate(); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
