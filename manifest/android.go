package manifest

import "fmt"

// API levels droidozer knows how to target. The lower bound follows the
// oldest level the packaging tool still produces working bundles for; the
// upper bound is the newest published platform.
const (
	MinSupportedAPI = 21
	MaxKnownAPI     = 36
)

// apiLevelNames maps numeric API levels to their Android release names,
// used in diagnostics only.
var apiLevelNames = map[int]string{
	21: "Lollipop",
	22: "Lollipop MR1",
	23: "Marshmallow",
	24: "Nougat",
	25: "Nougat MR1",
	26: "Oreo",
	27: "Oreo MR1",
	28: "Pie",
	29: "Android 10",
	30: "Android 11",
	31: "Android 12",
	32: "Android 12L",
	33: "Android 13",
	34: "Android 14",
	35: "Android 15",
	36: "Android 16",
}

// APILevelName returns the release name for a numeric API level, or "" when
// the level is unknown.
func APILevelName(level int) string {
	return apiLevelNames[level]
}

func checkAPILevel(key string, level int) error {
	if level < MinSupportedAPI || level > MaxKnownAPI {
		return fmt.Errorf("%s %d: must be between %d and %d", key, level, MinSupportedAPI, MaxKnownAPI)
	}
	return nil
}

// knownArchs are the Android ABIs the packaging tool can target.
var knownArchs = map[string]bool{
	"arm64-v8a":   true,
	"armeabi-v7a": true,
	"x86":         true,
	"x86_64":      true,
}

// KnownArch reports whether name is an Android ABI the packaging tool
// can target.
func KnownArch(name string) bool {
	return knownArchs[name]
}
