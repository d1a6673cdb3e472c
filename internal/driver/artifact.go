package driver

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/droidozer/droidozer/buildozer"
	"github.com/droidozer/droidozer/manifest"
)

// Artifact is a packaged application bundle found in the output directory.
type Artifact struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// ListArtifacts enumerates the .apk and .aab files in dir, sorted by name.
// A missing directory yields an empty list, not an error: the tool may not
// have created it.
func ListArtifacts(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var arts []Artifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".apk") && !strings.HasSuffix(name, ".aab") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		arts = append(arts, Artifact{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(arts, func(i, j int) bool { return arts[i].Name < arts[j].Name })
	return arts, nil
}

// Newest returns the most recently modified artifact. Callers ensure the
// list is non-empty.
func Newest(arts []Artifact) Artifact {
	newest := arts[0]
	for _, a := range arts[1:] {
		if a.ModTime.After(newest.ModTime) {
			newest = a
		}
	}
	return newest
}

// ExpectedName returns the artifact file name the packaging tool produces
// for the manifest and mode: <name>-<version>-<archs>-<mode>.<ext>, archs
// joined with underscores. Release artifacts follow android.release_artifact;
// debug is always an apk.
func ExpectedName(m *manifest.Manifest, mode buildozer.Mode) string {
	ext := "apk"
	if mode == buildozer.ModeRelease && m.ReleaseArtifact != "" {
		ext = m.ReleaseArtifact
	}
	return fmt.Sprintf("%s-%s-%s-%s.%s",
		m.PackageName, m.Version, strings.Join(m.Archs, "_"), mode, ext)
}

// FormatSize renders a byte count for reporting, using binary units.
func FormatSize(n int64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
	)
	switch {
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/kib)
	}
	return fmt.Sprintf("%d B", n)
}
