// Package config loads the scanner's configuration: a YAML file with
// scanner/performance/output sections, overlaid with a .env file and
// process environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete, resolved configuration for one scan run.
type Config struct {
	Scanner     ScannerConfig     `yaml:"scanner"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
}

// ScannerConfig governs which files are visited.
type ScannerConfig struct {
	ExcludedDirs       []string `yaml:"excluded_dirs"`
	ExcludedExtensions []string `yaml:"excluded_extensions"`
	MaxFileSizeBytes   int64    `yaml:"max_file_size_bytes"`
	FollowSymlinks     bool     `yaml:"follow_symlinks"`
	IncludeHidden      bool     `yaml:"include_hidden"`
	NoGitignore        bool     `yaml:"no_gitignore"`
	DatabasePath       string   `yaml:"database_path"`
	IncludeGlobs       []string `yaml:"include_globs"`
}

// PerformanceConfig governs concurrency and caching.
type PerformanceConfig struct {
	Workers       int  `yaml:"workers"`
	CacheEnabled  bool `yaml:"cache_enabled"`
}

// OutputConfig governs result shaping.
type OutputConfig struct {
	MaxResults     int    `yaml:"max_results"`
	MinSeverity    string `yaml:"min_severity"`
	Format         string `yaml:"format"` // "console" or "json"
}

// Default returns the configuration used when no file overrides a field.
func Default() Config {
	return Config{
		Scanner: ScannerConfig{
			ExcludedDirs:       []string{".git", "vendor", "node_modules", "dist", "build", ".govulnscan"},
			ExcludedExtensions: []string{"png", "jpg", "jpeg", "gif", "pdf", "zip", "tar", "gz", "exe", "bin"},
			MaxFileSizeBytes:   5 * 1024 * 1024,
			DatabasePath:       ".govulnscan/cache.db",
		},
		Performance: PerformanceConfig{
			Workers:      0, // 0 means "use GOMAXPROCS"
			CacheEnabled: true,
		},
		Output: OutputConfig{
			MaxResults:  1000,
			MinSeverity: "LOW",
			Format:      "console",
		},
	}
}

// Load reads a YAML config file (if it exists), loads a .env file from the
// working directory into the process environment, and applies a fixed set of GOVULNSCAN_*
// environment overrides on top, in that precedence order (env wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// no config file is not an error; defaults apply
		default:
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	// .env is optional and silently ignored if absent.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOVULNSCAN_DATABASE_PATH"); v != "" {
		cfg.Scanner.DatabasePath = v
	}
	if v := os.Getenv("GOVULNSCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Performance.Workers = n
		}
	}
	if v := os.Getenv("GOVULNSCAN_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Output.MaxResults = n
		}
	}
	if v := os.Getenv("GOVULNSCAN_MIN_SEVERITY"); v != "" {
		cfg.Output.MinSeverity = v
	}
	if v := os.Getenv("GOVULNSCAN_CACHE_ENABLED"); v != "" {
		cfg.Performance.CacheEnabled = v != "false" && v != "0"
	}
}
