// Package toolchain verifies and installs the commands the packaging tool
// needs on the host. Ensure is idempotent: a host that already has
// everything passes through without side effects.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/droidozer/droidozer/buildozer"
)

// ErrMissingTool reports a prerequisite that is absent and cannot be
// installed on this host. The CLI exits 1 on it.
var ErrMissingTool = errors.New("missing prerequisite")

// systemTools are the commands the packaging tool shells out to during a
// build. Probed before every build and installed by Ensure when a package
// manager is available.
var systemTools = []string{"git", "java", "pip3", "python3", "unzip", "zip"}

// packagesFor maps a missing command to the package name each supported
// package manager installs it from.
var packagesFor = map[string]map[string]string{
	"apt-get": {
		"git":     "git",
		"java":    "default-jdk",
		"pip3":    "python3-pip",
		"python3": "python3",
		"unzip":   "unzip",
		"zip":     "zip",
	},
	"dnf": {
		"git":     "git",
		"java":    "java-17-openjdk-devel",
		"pip3":    "python3-pip",
		"python3": "python3",
		"unzip":   "unzip",
		"zip":     "zip",
	},
	"brew": {
		"git":     "git",
		"java":    "openjdk",
		"pip3":    "python3",
		"python3": "python3",
		"unzip":   "unzip",
		"zip":     "zip",
	},
}

// Toolchain checks and installs prerequisites. The zero value is not
// usable; call New.
type Toolchain struct {
	tool buildozer.Command

	// lookPath, runner and version are swapped out in tests.
	lookPath func(string) (string, error)
	runner   func(ctx context.Context, name string, args ...string) error
	version  func(ctx context.Context) (string, error)
}

// New returns a Toolchain that verifies the given packaging tool command.
func New(tool buildozer.Command) *Toolchain {
	return &Toolchain{
		tool:     tool,
		lookPath: exec.LookPath,
		runner:   runCommand,
		version:  tool.Version,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	//nolint:gosec
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Probe returns the system commands that are absent, sorted by name.
// Probing is read-only and runs concurrently; installation never does.
func (t *Toolchain) Probe(ctx context.Context) ([]string, error) {
	var (
		mu      sync.Mutex
		missing []string
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range systemTools {
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := t.lookPath(name); err != nil {
				mu.Lock()
				missing = append(missing, name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(missing)
	return missing, nil
}

// Ensure makes the host ready to build: it installs any missing system
// commands through the platform package manager, then installs the
// packaging tool itself via pip when absent. Each step is sequential and a
// failure aborts the remainder.
func (t *Toolchain) Ensure(ctx context.Context) error {
	missing, err := t.Probe(ctx)
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		if err := t.installSystem(ctx, missing); err != nil {
			return err
		}
	}

	return t.ensurePackagingTool(ctx)
}

// installSystem installs the named commands with the first package manager
// found on PATH.
func (t *Toolchain) installSystem(ctx context.Context, missing []string) error {
	for _, manager := range []string{"apt-get", "dnf", "brew"} {
		if _, err := t.lookPath(manager); err != nil {
			continue
		}
		pkgs := make([]string, 0, len(missing))
		for _, name := range missing {
			pkgs = append(pkgs, packagesFor[manager][name])
		}
		args := append(installArgs(manager), pkgs...)
		if err := t.runner(ctx, manager, args...); err != nil {
			return fmt.Errorf("install %v via %s: %w", missing, manager, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %v (no supported package manager found)", ErrMissingTool, missing)
}

func installArgs(manager string) []string {
	switch manager {
	case "apt-get":
		return []string{"install", "-y"}
	case "dnf":
		return []string{"install", "-y"}
	case "brew":
		return []string{"install"}
	}
	return nil
}

// ensurePackagingTool verifies the packaging tool runs, installing it via
// pip on first use. Presence on PATH is not enough: a broken install (stale
// shim, missing interpreter) only shows up when the tool executes, so the
// check always runs it.
func (t *Toolchain) ensurePackagingTool(ctx context.Context) error {
	if _, err := t.lookPath(t.tool.String()); err == nil {
		return t.verifyTool(ctx)
	}
	if err := t.runner(ctx, "pip3", "install", "--user", buildozer.Name); err != nil {
		return fmt.Errorf("install %s: %w", buildozer.Name, err)
	}
	if _, err := t.lookPath(t.tool.String()); err != nil {
		return fmt.Errorf("%w: %s not on PATH after install (is ~/.local/bin on PATH?)", ErrMissingTool, t.tool)
	}
	return t.verifyTool(ctx)
}

// verifyTool runs the tool's version query to prove the executable works.
func (t *Toolchain) verifyTool(ctx context.Context) error {
	if _, err := t.version(ctx); err != nil {
		return fmt.Errorf("%s is installed but failed to run: %w", t.tool, err)
	}
	return nil
}
