package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/droidozer/droidozer/buildozer"
)

// fakeLookPath returns a lookup function that only finds the given names.
func fakeLookPath(present ...string) func(string) (string, error) {
	set := make(map[string]bool, len(present))
	for _, name := range present {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}
}

type call struct {
	name string
	args []string
}

// recorder captures commands the toolchain would run.
type recorder struct {
	calls []call
	err   error
}

func (r *recorder) run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	return r.err
}

func newTest(rec *recorder, present ...string) *Toolchain {
	t := New(buildozer.Command(buildozer.Name))
	t.lookPath = fakeLookPath(present...)
	t.runner = rec.run
	t.version = func(context.Context) (string, error) { return "Buildozer 1.5.0", nil }
	return t
}

func TestProbeAllPresent(t *testing.T) {
	tc := newTest(&recorder{}, systemTools...)
	missing, err := tc.Probe(context.Background())
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}

func TestProbeReportsMissingSorted(t *testing.T) {
	tc := newTest(&recorder{}, "git", "python3", "pip3", "unzip")
	missing, err := tc.Probe(context.Background())
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if got := strings.Join(missing, " "); got != "java zip" {
		t.Errorf("missing = %q, want %q", got, "java zip")
	}
}

func TestEnsureNoopWhenReady(t *testing.T) {
	rec := &recorder{}
	tc := newTest(rec, append([]string{buildozer.Name}, systemTools...)...)
	if err := tc.Ensure(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("ensure on ready host ran %v, want nothing", rec.calls)
	}
}

func TestEnsureInstallsMissingSystemTools(t *testing.T) {
	rec := &recorder{}
	// java and zip missing; apt-get available; packaging tool present.
	tc := newTest(rec, "git", "python3", "pip3", "unzip", "apt-get", buildozer.Name)
	if err := tc.Ensure(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("calls = %v, want one apt-get invocation", rec.calls)
	}
	got := rec.calls[0]
	if got.name != "apt-get" {
		t.Errorf("installer = %q, want apt-get", got.name)
	}
	if want := "install -y default-jdk zip"; strings.Join(got.args, " ") != want {
		t.Errorf("args = %q, want %q", strings.Join(got.args, " "), want)
	}
}

func TestEnsureNoPackageManager(t *testing.T) {
	tc := newTest(&recorder{}, "git", "python3", "pip3", "unzip")
	err := tc.Ensure(context.Background())
	if !errors.Is(err, ErrMissingTool) {
		t.Fatalf("ensure = %v, want ErrMissingTool", err)
	}
}

func TestEnsureInstallsPackagingTool(t *testing.T) {
	rec := &recorder{}
	tc := New(buildozer.Command(buildozer.Name))

	versions := 0
	tc.version = func(context.Context) (string, error) {
		versions++
		return "Buildozer 1.5.0", nil
	}

	// Tool absent on first lookup, present after the pip install.
	installed := false
	base := fakeLookPath(systemTools...)
	tc.lookPath = func(name string) (string, error) {
		if name == buildozer.Name {
			if installed {
				return "/home/u/.local/bin/" + name, nil
			}
			return "", exec.ErrNotFound
		}
		return base(name)
	}
	tc.runner = func(ctx context.Context, name string, args ...string) error {
		err := rec.run(ctx, name, args...)
		installed = true
		return err
	}

	if err := tc.Ensure(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("calls = %v, want one pip invocation", rec.calls)
	}
	if want := "install --user buildozer"; strings.Join(rec.calls[0].args, " ") != want {
		t.Errorf("pip args = %q, want %q", strings.Join(rec.calls[0].args, " "), want)
	}
	if rec.calls[0].name != "pip3" {
		t.Errorf("installer = %q, want pip3", rec.calls[0].name)
	}
	if versions != 1 {
		t.Errorf("tool verified %d times after install, want 1", versions)
	}
}

func TestEnsureVerifiesToolRuns(t *testing.T) {
	rec := &recorder{}
	tc := newTest(rec, append([]string{buildozer.Name}, systemTools...)...)

	versions := 0
	tc.version = func(context.Context) (string, error) {
		versions++
		return "", errors.New("ModuleNotFoundError: No module named 'buildozer'")
	}

	err := tc.Ensure(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to run") {
		t.Fatalf("ensure = %v, want broken-install failure", err)
	}
	if versions != 1 {
		t.Errorf("tool verified %d times, want 1", versions)
	}
}

func TestEnsurePackagingToolStillMissing(t *testing.T) {
	rec := &recorder{}
	tc := newTest(rec, systemTools...)
	err := tc.Ensure(context.Background())
	if !errors.Is(err, ErrMissingTool) {
		t.Fatalf("ensure = %v, want ErrMissingTool when tool missing after install", err)
	}
}

func TestInstallSystemFailurePropagates(t *testing.T) {
	rec := &recorder{err: errors.New("dpkg lock held")}
	tc := newTest(rec, "git", "python3", "pip3", "unzip", "apt-get", buildozer.Name)
	err := tc.Ensure(context.Background())
	if err == nil || !strings.Contains(err.Error(), "dpkg lock held") {
		t.Fatalf("ensure = %v, want install failure surfaced", err)
	}
}
