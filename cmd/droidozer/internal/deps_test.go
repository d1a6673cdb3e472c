package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// fakeHost populates a PATH directory with working stand-ins for every
// command the toolchain probes, plus the packaging tool itself.
func fakeHost(t *testing.T) string {
	t.Helper()
	bin := t.TempDir()
	for _, name := range []string{"git", "java", "pip3", "python3", "unzip", "zip"} {
		script := "#!/bin/sh\nexit 0\n"
		if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0o755); err != nil {
			t.Fatalf("write fake %s: %v", name, err)
		}
	}
	tool := "#!/bin/sh\necho \"Buildozer 1.5.0\"\n"
	if err := os.WriteFile(filepath.Join(bin, "buildozer"), []byte(tool), 0o755); err != nil {
		t.Fatalf("write fake buildozer: %v", err)
	}
	return bin
}

func TestDepsReadyHost(t *testing.T) {
	bin := fakeHost(t)
	t.Setenv("PATH", bin)
	t.Setenv("DROIDOZER_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	saved := logger
	logger = zerolog.Nop()
	t.Cleanup(func() { logger = saved })

	depsCmd.SetContext(context.Background())

	// A ready host passes without installing anything; deps resolves and
	// reports the tool it verified.
	if err := runDeps(depsCmd, nil); err != nil {
		t.Fatalf("deps: %v", err)
	}
}

func TestDepsBrokenToolFails(t *testing.T) {
	bin := fakeHost(t)
	// Tool present on PATH but failing to run.
	broken := "#!/bin/sh\necho 'ModuleNotFoundError' >&2\nexit 1\n"
	if err := os.WriteFile(filepath.Join(bin, "buildozer"), []byte(broken), 0o755); err != nil {
		t.Fatalf("write broken buildozer: %v", err)
	}
	t.Setenv("PATH", bin)
	t.Setenv("DROIDOZER_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	saved := logger
	logger = zerolog.Nop()
	t.Cleanup(func() { logger = saved })

	depsCmd.SetContext(context.Background())

	if err := runDeps(depsCmd, nil); err == nil {
		t.Fatal("expected failure for a tool that cannot run")
	}
}
