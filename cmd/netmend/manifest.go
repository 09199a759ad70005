package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// projectManifest — необязательный netmend.toml рядом с дампами.
// Он задаёт только умолчания; флаги командной строки всегда главнее.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Output  outputConfig  `toml:"output"`
	Recover recoverConfig `toml:"recover"`
}

type outputConfig struct {
	Suffix string `toml:"suffix"`
}

type recoverConfig struct {
	Ext  string `toml:"ext"`
	Jobs int    `toml:"jobs"`
}

func findNetmendToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "netmend.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findNetmendToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	// все секции опциональны, но заданные значения должны быть валидными
	if meta.IsDefined("output", "suffix") {
		suffix := strings.TrimSpace(cfg.Output.Suffix)
		if suffix == "" || !strings.HasPrefix(suffix, ".") {
			return projectConfig{}, fmt.Errorf("%s: [output].suffix must start with '.'", path)
		}
		cfg.Output.Suffix = suffix
	}
	if meta.IsDefined("recover", "ext") {
		ext := strings.TrimSpace(cfg.Recover.Ext)
		if ext == "" || !strings.HasPrefix(ext, ".") {
			return projectConfig{}, fmt.Errorf("%s: [recover].ext must start with '.'", path)
		}
		cfg.Recover.Ext = ext
	}
	if cfg.Recover.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [recover].jobs must not be negative", path)
	}
	return cfg, nil
}
