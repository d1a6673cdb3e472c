package driver

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFile = ".lock"

// lockProject takes an exclusive lock on the project's state directory so
// two driver invocations cannot run the packaging tool against the same
// project at once. The lock is advisory and released by unlock or process
// exit.
func lockProject(dir string) (unlock func(), err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, lockFile), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := flock(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("another build is running in this project: %w", err)
	}
	return func() {
		funlock(f)
		f.Close()
	}, nil
}
