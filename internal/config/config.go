// Package config loads server settings from defaults, an optional YAML file
// and environment variables, in that order of precedence (later wins).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/sobel-edge-mcp/internal/sobel"
)

// Environment variables read by Load.
const (
	EnvConfigFile    = "SOBEL_MCP_CONFIG"
	EnvLogLevel      = "SOBEL_MCP_LOG_LEVEL"
	EnvLogFile       = "SOBEL_MCP_LOG_FILE"
	EnvKernelSize    = "SOBEL_MCP_KERNEL_SIZE"
	EnvOutputFormat  = "SOBEL_MCP_OUTPUT_FORMAT"
	EnvScale         = "SOBEL_MCP_SCALE"
	EnvEdgeThreshold = "SOBEL_MCP_EDGE_THRESHOLD"
)

// Config holds all server settings.
type Config struct {
	LogLevel string   `yaml:"log_level"`
	LogFile  string   `yaml:"log_file"`
	Defaults Defaults `yaml:"defaults"`
}

// Defaults are applied to image_sobel calls that omit the matching argument.
type Defaults struct {
	KernelSize    int     `yaml:"kernel_size"`
	OutputFormat  string  `yaml:"output_format"`
	Scale         float64 `yaml:"scale"`
	EdgeThreshold int     `yaml:"edge_threshold"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Defaults: Defaults{
			KernelSize:    int(sobel.DefaultKernelSize),
			OutputFormat:  string(sobel.FormatMagnitude),
			Scale:         1,
			EdgeThreshold: 50,
		},
	}
}

// Load builds a Config. When path is empty, the file named by
// SOBEL_MCP_CONFIG is used, if any. A missing file named explicitly is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvOutputFormat); ok {
		cfg.Defaults.OutputFormat = v
	}
	if v, ok := os.LookupEnv(EnvKernelSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvKernelSize, err)
		}
		cfg.Defaults.KernelSize = n
	}
	if v, ok := os.LookupEnv(EnvScale); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvScale, err)
		}
		cfg.Defaults.Scale = f
	}
	if v, ok := os.LookupEnv(EnvEdgeThreshold); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvEdgeThreshold, err)
		}
		cfg.Defaults.EdgeThreshold = n
	}
	return nil
}

// Validate checks the defaults. Unknown output formats are normalized to
// magnitude rather than rejected.
func (c *Config) Validate() error {
	size, err := sobel.ParseKernelSize(c.Defaults.KernelSize)
	if err != nil {
		return fmt.Errorf("invalid default kernel size: %w", err)
	}
	c.Defaults.KernelSize = int(size)
	c.Defaults.OutputFormat = string(sobel.ParseFormat(c.Defaults.OutputFormat))

	if c.Defaults.Scale <= 0 {
		return fmt.Errorf("invalid default scale %v: must be positive", c.Defaults.Scale)
	}
	if c.Defaults.EdgeThreshold < 0 || c.Defaults.EdgeThreshold > 255 {
		return fmt.Errorf("invalid default edge threshold %d: must be 0-255", c.Defaults.EdgeThreshold)
	}
	return nil
}
