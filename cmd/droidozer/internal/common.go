package internal

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/droidozer/droidozer/buildozer"
	"github.com/droidozer/droidozer/internal/driver"
	"github.com/droidozer/droidozer/internal/env"
	"github.com/droidozer/droidozer/internal/toolchain"
	"github.com/droidozer/droidozer/manifest"
)

// loadTool resolves the driver config and the packaging tool command.
func loadTool() (env.Config, buildozer.Command, error) {
	cfgPath, err := env.ConfigPath()
	if err != nil {
		return env.Config{}, "", fmt.Errorf("resolve driver config path: %w", err)
	}
	cfg, err := env.LoadConfig(cfgPath)
	if err != nil {
		return env.Config{}, "", err
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	tool := buildozer.Command(buildozer.Name)
	if cfg.ToolPath != "" {
		tool = buildozer.Command(cfg.ToolPath)
	}
	return cfg, tool, nil
}

// newDriver assembles a Driver for the project the manifest lives in.
func newDriver() (*driver.Driver, error) {
	cfg, tool, err := loadTool()
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(specPath)
	if err != nil {
		return nil, err
	}

	// Best effort: without a resolvable cache dir the build still works,
	// only the stamp mirror is skipped.
	workDir, err := env.WorkDir()
	if err != nil {
		logger.Warn().Err(err).Msg("no user cache dir, stamp mirroring disabled")
		workDir = ""
	}

	projectDir := filepath.Dir(specPath)
	return &driver.Driver{
		ProjectDir: projectDir,
		Manifest:   m,
		Packager:   tool,
		Checker:    toolchain.New(tool),
		Config:     cfg,
		Log:        logger,
		RunID:      runID,
		Verbose:    verbose,
		WorkDir:    workDir,
	}, nil
}
