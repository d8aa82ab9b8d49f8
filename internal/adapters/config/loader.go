// Package config provides the configuration loader for blast.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file blast looks for in the working
// directory.
const DefaultFilename = "blast.yaml"

// Config holds the effective configuration after defaulting.
type Config struct {
	// IndexURL is the base URL of the package index.
	IndexURL string

	// CacheDir is where downloaded artifacts are kept, content-addressed.
	CacheDir string

	// Parallelism bounds concurrent artifact fetches during staging.
	Parallelism int

	// FetchRetries is the number of extra attempts for transient network
	// failures. Retries happen at the fetch layer only.
	FetchRetries int

	// FetchBackoff is the base delay between retries, doubled per attempt.
	FetchBackoff time.Duration

	// FetchTimeout bounds a single index or download request.
	FetchTimeout time.Duration
}

// schema is the YAML shape of blast.yaml. All fields are optional.
type schema struct {
	IndexURL       string `yaml:"indexUrl"`
	CacheDir       string `yaml:"cacheDir"`
	Parallelism    int    `yaml:"parallelism"`
	FetchRetries   *int   `yaml:"fetchRetries"`
	FetchBackoffMS int    `yaml:"fetchBackoffMs"`
	FetchTimeoutS  int    `yaml:"fetchTimeoutS"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		IndexURL:     "https://pypi.org/pypi",
		CacheDir:     defaultCacheDir(),
		Parallelism:  runtime.NumCPU(),
		FetchRetries: 3,
		FetchBackoff: 500 * time.Millisecond,
		FetchTimeout: 30 * time.Second,
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; a present but malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var raw schema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := Default()
	if raw.IndexURL != "" {
		cfg.IndexURL = raw.IndexURL
	}
	if raw.CacheDir != "" {
		cfg.CacheDir = raw.CacheDir
	}
	if raw.Parallelism > 0 {
		cfg.Parallelism = raw.Parallelism
	}
	if raw.FetchRetries != nil && *raw.FetchRetries >= 0 {
		cfg.FetchRetries = *raw.FetchRetries
	}
	if raw.FetchBackoffMS > 0 {
		cfg.FetchBackoff = time.Duration(raw.FetchBackoffMS) * time.Millisecond
	}
	if raw.FetchTimeoutS > 0 {
		cfg.FetchTimeout = time.Duration(raw.FetchTimeoutS) * time.Second
	}
	return cfg, nil
}

func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "blast")
	}
	return filepath.Join(os.TempDir(), "blast-cache")
}
