// Package driver orchestrates a build: prerequisite checks, packaging tool
// invocation, artifact enumeration and cleanup. It owns no packaging
// semantics; every compile step belongs to the external tool.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/droidozer/droidozer/buildozer"
	"github.com/droidozer/droidozer/internal/env"
	"github.com/droidozer/droidozer/manifest"
)

// stateDir holds the driver's per-project state (build stamp, lock file).
const stateDir = ".droidozer"

// Packager is the slice of the external tool the driver needs. Satisfied by
// buildozer.Command; tests substitute a recorder.
type Packager interface {
	Build(ctx context.Context, mode buildozer.Mode, opts *buildozer.Options) error
	Clean(ctx context.Context, opts *buildozer.Options) error
}

// Checker prepares the host toolchain. Satisfied by toolchain.Toolchain.
type Checker interface {
	Ensure(ctx context.Context) error
}

// Driver runs build operations for a single project directory.
type Driver struct {
	ProjectDir string
	Manifest   *manifest.Manifest
	Packager   Packager
	Checker    Checker
	Config     env.Config
	Log        zerolog.Logger
	RunID      string
	Verbose    bool
	// WorkDir is the per-user cache directory (env.WorkDir). When set,
	// successful builds mirror their stamp there, keyed by application
	// identifier, so tool state survives a project-local clean.
	WorkDir string
}

// Build validates the manifest, readies the toolchain, invokes the tool in
// the given mode and reports the produced artifacts. Failures are fatal to
// the invocation; nothing is retried.
func (d *Driver) Build(ctx context.Context, mode buildozer.Mode) error {
	if err := d.Manifest.Validate(); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if err := d.Checker.Ensure(ctx); err != nil {
		return err
	}

	unlock, err := lockProject(d.stateDirPath())
	if err != nil {
		return err
	}
	defer unlock()

	opts := &buildozer.Options{
		Verbose: d.Verbose,
		Dir:     d.ProjectDir,
		Env:     d.Config.ToolEnv(),
	}
	if mode == buildozer.ModeRelease {
		if signing := d.Manifest.SigningEnv(); signing != nil {
			opts.Env = append(opts.Env, signing...)
			d.Log.Info().Str("keystore", d.Manifest.Signing.Keystore).Msg("release will be signed")
		} else {
			d.Log.Info().Msg("no signing block configured, release will be unsigned")
		}
	}

	d.Log.Info().
		Str("mode", string(mode)).
		Str("app", d.Manifest.ApplicationID()).
		Str("version", d.Manifest.Version).
		Msg("invoking packaging tool")

	if err := d.Packager.Build(ctx, mode, opts); err != nil {
		return fmt.Errorf("packaging tool: %w", err)
	}

	return d.reportArtifacts(mode)
}

// Deps readies the toolchain without building.
func (d *Driver) Deps(ctx context.Context) error {
	return d.Checker.Ensure(ctx)
}

// Clean removes the build cache directory, the output directory and the
// driver's own state so a following build starts from nothing. The tool's
// clean target runs first, best effort, so it can drop internal state.
func (d *Driver) Clean(ctx context.Context) error {
	if err := d.Packager.Clean(ctx, &buildozer.Options{Dir: d.ProjectDir}); err != nil {
		d.Log.Warn().Err(err).Msg("packaging tool clean failed, removing directories anyway")
	}
	for _, dir := range []string{d.buildDirPath(), d.binDirPath(), d.stateDirPath()} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
		d.Log.Info().Str("dir", dir).Msg("removed")
	}
	return nil
}

// reportArtifacts enumerates the output directory, logs every artifact with
// its size and records the build stamp. An empty output directory after a
// successful tool run gets a diagnostic rather than an error: the tool is
// the authority on where artifacts land.
func (d *Driver) reportArtifacts(mode buildozer.Mode) error {
	arts, err := ListArtifacts(d.binDirPath())
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}

	expected := ExpectedName(d.Manifest, mode)
	if len(arts) == 0 {
		d.Log.Warn().
			Str("dir", d.binDirPath()).
			Str("expected", expected).
			Msg("tool reported success but no artifact found")
		return nil
	}

	for _, a := range arts {
		d.Log.Info().
			Str("artifact", a.Name).
			Str("size", FormatSize(a.Size)).
			Msg("artifact")
	}

	newest := Newest(arts)
	if newest.Name != expected {
		d.Log.Warn().
			Str("got", newest.Name).
			Str("expected", expected).
			Msg("newest artifact does not match expected name")
	}

	stamp := Stamp{
		Mode:      string(mode),
		AppID:     d.Manifest.ApplicationID(),
		Version:   d.Manifest.Version,
		Artifact:  newest.Name,
		Size:      newest.Size,
		BuildTime: newest.ModTime,
		RunID:     d.RunID,
	}
	if err := saveStamp(d.stateDirPath(), &stamp); err != nil {
		return fmt.Errorf("save build stamp: %w", err)
	}
	if d.WorkDir != "" {
		if err := saveStamp(d.mirrorDirPath(), &stamp); err != nil {
			d.Log.Warn().Err(err).Msg("mirror build stamp to cache dir")
		}
	}
	return nil
}

// mirrorDirPath is where the per-user cache keeps this application's stamp.
func (d *Driver) mirrorDirPath() string {
	return filepath.Join(d.WorkDir, "stamps", d.Manifest.ApplicationID())
}

// LastBuild returns the stamp of the previous successful build, if any.
func (d *Driver) LastBuild() (*Stamp, error) {
	return loadStamp(d.stateDirPath())
}

func (d *Driver) stateDirPath() string {
	return filepath.Join(d.ProjectDir, stateDir)
}

func (d *Driver) buildDirPath() string {
	return d.resolve(d.Manifest.BuildDir)
}

func (d *Driver) binDirPath() string {
	return d.resolve(d.Manifest.BinDir)
}

// resolve interprets a manifest path relative to the project directory.
func (d *Driver) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.ProjectDir, path)
}
