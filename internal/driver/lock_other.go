//go:build !unix

package driver

import "os"

// Non-unix hosts fall back to the O_CREATE lock file alone; the flock is
// advisory anyway and the packaging tool itself is unix-only.
func flock(f *os.File) error   { return nil }
func funlock(f *os.File) error { return nil }
