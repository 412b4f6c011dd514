// Package configloader discovers and loads mdtty configuration files.
//
// Configuration is layered: user config, then project config, then CLI
// flags (applied by the caller). Later layers win.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds file-configurable defaults. Every field can be overridden by
// the matching CLI flag.
type Config struct {
	// Pager is the pager command line, e.g. "less -R".
	Pager string `yaml:"pager"`

	// Columns is the maximum output width; 0 means detect from the terminal.
	Columns int `yaml:"columns"`

	// LocalOnly disables remote resource access.
	LocalOnly bool `yaml:"local_only"`

	// NoColour disables all styling.
	NoColour bool `yaml:"no_colour"`

	// LineNumbers shows line numbers by default.
	LineNumbers bool `yaml:"line_numbers"`

	// Stats shows document statistics by default.
	Stats bool `yaml:"stats"`
}

// LoadOptions controls configuration discovery.
type LoadOptions struct {
	// WorkingDir is where the upward project-config search starts.
	WorkingDir string

	// ExplicitPath, when set, is loaded instead of discovered files and
	// must exist.
	ExplicitPath string
}

// LoadResult is the outcome of loading configuration.
type LoadResult struct {
	Config     Config
	LoadedFrom []string
}

// projectConfigFiles are the config file names searched for upward from the
// working directory, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".mdtty.yml",
	".mdtty.yaml",
}

// vcsRootMarkers are directories that stop the upward search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// Load discovers and loads configuration files, lowest priority first.
// Missing discovered files are not errors; a missing ExplicitPath is.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config: %w", ctx.Err())
	default:
	}

	result := &LoadResult{}

	if opts.ExplicitPath != "" {
		if err := loadFile(opts.ExplicitPath, &result.Config); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
		return result, nil
	}

	for _, path := range []string{findUserConfig(), findProjectConfig(opts.WorkingDir)} {
		if path == "" {
			continue
		}
		if err := loadFile(path, &result.Config); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	return result, nil
}

// loadFile reads a YAML config file into cfg, layering over existing values.
func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// findUserConfig locates the user-level config under XDG_CONFIG_HOME (or
// ~/.config). Returns "" when absent.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(configHome, "mdtty", name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// findProjectConfig searches upward from workDir for a project config,
// stopping at a VCS root or the filesystem root. Returns "" when absent.
func findProjectConfig(workDir string) string {
	if workDir == "" {
		return ""
	}

	dir := workDir
	for {
		for _, name := range projectConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path
			}
		}

		atVCSRoot := false
		for _, marker := range vcsRootMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
				atVCSRoot = true
				break
			}
		}

		parent := filepath.Dir(dir)
		if atVCSRoot || parent == dir {
			return ""
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
