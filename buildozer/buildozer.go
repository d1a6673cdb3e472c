// Package buildozer wraps the external Android packaging tool's command-line
// interface. The tool owns all compilation and packaging semantics; this
// package only constructs invocations and surfaces the tool's exit status
// verbatim.
package buildozer

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Name is the executable looked up on PATH when no explicit path is
// configured.
const Name = "buildozer"

// Mode selects the packaging profile of an invocation.
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// Options adjust a single tool invocation.
type Options struct {
	// Verbose passes -v to the tool.
	Verbose bool
	// Dir is the working directory, normally the directory holding the
	// build manifest. Empty means the current directory.
	Dir string
	// Env is appended to the inherited environment. Release signing
	// credentials travel here.
	Env []string
	// Stdout and Stderr receive the tool's output. Nil means the driver
	// process's own stdio.
	Stdout, Stderr io.Writer
}

// Command represents the path to a buildozer executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// LookPath locates the tool on PATH. The returned error wraps
// exec.ErrNotFound when the tool is simply not installed.
func (c Command) LookPath() (string, error) {
	return exec.LookPath(c.String())
}

// Build runs the tool with the android target in the given mode. The call
// blocks until the tool exits; a non-zero exit is returned as the
// *exec.ExitError produced by os/exec so the caller can mirror the code.
func (c Command) Build(ctx context.Context, mode Mode, opts *Options) error {
	return c.run(ctx, buildArgs(mode, opts), opts)
}

// Clean runs the tool's own clean target. Callers remove the build and
// output directories themselves afterwards; this only lets the tool drop
// whatever internal state it tracks.
func (c Command) Clean(ctx context.Context, opts *Options) error {
	return c.run(ctx, []string{"android", "clean"}, opts)
}

// Version reports the tool's version string, used by the prerequisite check.
func (c Command) Version(ctx context.Context) (string, error) {
	//nolint:gosec
	out, err := exec.CommandContext(ctx, c.String(), "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// buildArgs constructs the argument vector for a build invocation.
func buildArgs(mode Mode, opts *Options) []string {
	var args []string
	if opts != nil && opts.Verbose {
		args = append(args, "-v")
	}
	return append(args, "android", string(mode))
}

func (c Command) run(ctx context.Context, args []string, opts *Options) error {
	//nolint:gosec
	cmd := exec.CommandContext(ctx, c.String(), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if opts != nil {
		if opts.Dir != "" {
			cmd.Dir = opts.Dir
		}
		if len(opts.Env) > 0 {
			cmd.Env = append(os.Environ(), opts.Env...)
		}
		if opts.Stdout != nil {
			cmd.Stdout = opts.Stdout
		}
		if opts.Stderr != nil {
			cmd.Stderr = opts.Stderr
		}
	}
	return cmd.Run()
}

// ExitCode maps an invocation error to the process exit code the driver
// should terminate with: the tool's own code when it ran and failed,
// 0 for nil, 1 for everything else (tool missing, context canceled, ...).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
