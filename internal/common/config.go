package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/pdftables-go/pkg/pdftables"
	"github.com/ukaji3/pdftables-go/pkg/pdftables/parser"
)

// Config represents the application configuration
type Config struct {
	Paths     PathsConfig     `toml:"paths"`
	Detection DetectionConfig `toml:"detection"`
	Output    OutputConfig    `toml:"output"`
	Logging   LoggingConfig   `toml:"logging"`
}

// PathsConfig holds the default input and output locations. Relative paths
// are resolved against the directory of the executable.
type PathsConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

// DetectionConfig mirrors parser.DetectionParams
type DetectionConfig struct {
	Strategy           string  `toml:"strategy"` // "auto", "lines", "text", "geometric"
	MinRows            int     `toml:"min_rows"`
	MinCols            int     `toml:"min_cols"`
	MinConfidence      float64 `toml:"min_confidence"`
	UseLines           bool    `toml:"use_lines"`
	UseWhitespace      bool    `toml:"use_whitespace"`
	MaxCellGap         float64 `toml:"max_cell_gap"`
	AlignmentTolerance float64 `toml:"alignment_tolerance"`
	DetectMergedCells  bool    `toml:"detect_merged_cells"`
	SnapTolerance      float64 `toml:"snap_tolerance"`
	TextTolerance      float64 `toml:"text_tolerance"`
}

type OutputConfig struct {
	PreviewRows int `toml:"preview_rows"` // Rows shown after a successful run, 0 disables the preview
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig returns the built-in configuration
func NewDefaultConfig() *Config {
	d := parser.DefaultDetectionParams()
	return &Config{
		Paths: PathsConfig{
			Input:  "input.pdf",
			Output: "csv_file.csv",
		},
		Detection: DetectionConfig{
			Strategy:           string(d.Strategy),
			MinRows:            d.MinRows,
			MinCols:            d.MinCols,
			MinConfidence:      d.MinConfidence,
			UseLines:           d.UseLines,
			UseWhitespace:      d.UseWhitespace,
			MaxCellGap:         d.MaxCellGap,
			AlignmentTolerance: d.AlignmentTolerance,
			DetectMergedCells:  d.DetectMergedCells,
			SnapTolerance:      d.SnapTolerance,
			TextTolerance:      d.TextTolerance,
		},
		Output: OutputConfig{
			PreviewRows: pdftables.DefaultPreviewRows,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration: defaults -> files (in order) -> .env -> environment.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// Missing .env is fine
	_ = godotenv.Load()

	applyEnvOverrides(config)

	if _, err := parser.ParseStrategy(config.Detection.Strategy); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("PDFTABLES_INPUT"); v != "" {
		config.Paths.Input = v
	}
	if v := os.Getenv("PDFTABLES_OUTPUT"); v != "" {
		config.Paths.Output = v
	}
	if v := os.Getenv("PDFTABLES_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("PDFTABLES_PREVIEW_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Output.PreviewRows = n
		}
	}
	if v := os.Getenv("PDFTABLES_STRATEGY"); v != "" {
		config.Detection.Strategy = v
	}
	if v := os.Getenv("PDFTABLES_MIN_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Detection.MinRows = n
		}
	}
	if v := os.Getenv("PDFTABLES_MIN_COLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Detection.MinCols = n
		}
	}
	if v := os.Getenv("PDFTABLES_MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Detection.MinConfidence = f
		}
	}
}

// DetectionParams converts the detection section to parser parameters
func (c *Config) DetectionParams() (parser.DetectionParams, error) {
	strategy, err := parser.ParseStrategy(c.Detection.Strategy)
	if err != nil {
		return parser.DetectionParams{}, err
	}
	return parser.DetectionParams{
		Strategy:           strategy,
		MinRows:            c.Detection.MinRows,
		MinCols:            c.Detection.MinCols,
		MinConfidence:      c.Detection.MinConfidence,
		UseLines:           c.Detection.UseLines,
		UseWhitespace:      c.Detection.UseWhitespace,
		MaxCellGap:         c.Detection.MaxCellGap,
		AlignmentTolerance: c.Detection.AlignmentTolerance,
		DetectMergedCells:  c.Detection.DetectMergedCells,
		SnapTolerance:      c.Detection.SnapTolerance,
		TextTolerance:      c.Detection.TextTolerance,
	}, nil
}

// ResolvePath returns path unchanged when absolute, otherwise joined to baseDir.
func ResolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ExecutableDir returns the directory holding the running executable,
// falling back to the working directory.
func ExecutableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Dir(execPath)
}
