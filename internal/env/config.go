package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the driver's own configuration, distinct from the build
// manifest: it points at local tooling rather than describing the
// application. Every field is optional.
type Config struct {
	// ToolPath overrides the packaging tool executable. Empty means
	// lookup on PATH.
	ToolPath string
	// AndroidSDKDir and AndroidNDKDir are exported to tool invocations
	// as ANDROIDSDK / ANDROIDNDK when set, so the tool skips its own
	// SDK/NDK download.
	AndroidSDKDir string
	AndroidNDKDir string
	// Env is extra environment for tool invocations, "KEY=VALUE" form.
	Env []string
	// LogLevel is the driver log level: debug, info, warn or error.
	LogLevel string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

type fileConfig struct {
	ToolPath      string   `toml:"tool_path"`
	AndroidSDKDir string   `toml:"android_sdk_dir"`
	AndroidNDKDir string   `toml:"android_ndk_dir"`
	Env           []string `toml:"env"`
	LogLevel      string   `toml:"log_level"`
}

// LoadConfig reads the driver config at path on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load driver config: %w", err)
	}

	if meta.IsDefined("tool_path") {
		cfg.ToolPath = strings.TrimSpace(raw.ToolPath)
	}
	if meta.IsDefined("android_sdk_dir") {
		cfg.AndroidSDKDir = strings.TrimSpace(raw.AndroidSDKDir)
	}
	if meta.IsDefined("android_ndk_dir") {
		cfg.AndroidNDKDir = strings.TrimSpace(raw.AndroidNDKDir)
	}
	if meta.IsDefined("env") {
		for _, e := range raw.Env {
			if !strings.Contains(e, "=") {
				return Config{}, fmt.Errorf("driver config: env entry %q is not KEY=VALUE", e)
			}
		}
		cfg.Env = raw.Env
	}
	if meta.IsDefined("log_level") {
		switch lvl := strings.TrimSpace(raw.LogLevel); lvl {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = lvl
		default:
			return Config{}, fmt.Errorf("driver config: unknown log_level %q", lvl)
		}
	}

	return cfg, nil
}

// ToolEnv returns the environment entries derived from the config that
// every tool invocation receives.
func (c Config) ToolEnv() []string {
	env := append([]string(nil), c.Env...)
	if c.AndroidSDKDir != "" {
		env = append(env, "ANDROIDSDK="+c.AndroidSDKDir)
	}
	if c.AndroidNDKDir != "" {
		env = append(env, "ANDROIDNDK="+c.AndroidNDKDir)
	}
	return env
}
