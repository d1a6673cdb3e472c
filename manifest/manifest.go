// Package manifest loads and validates the buildozer.spec build manifest.
//
// The manifest is an INI file with an [app] section describing the
// application (title, identifier, version, requirements, Android targets,
// signing credentials) and a [buildozer] section tuning the external
// packaging tool. The external tool reads the same file; droidozer only
// validates it and derives values from it, it never mutates it.
package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/mod/semver"
)

// DefaultFile is the manifest file name the external packaging tool expects
// in the project directory.
const DefaultFile = "buildozer.spec"

// Signing holds the release signing credentials. All four fields must be
// set together or left empty together; see Manifest.Validate.
type Signing struct {
	Keystore       string
	KeystorePasswd string
	Keyalias       string
	KeyaliasPasswd string
}

// Manifest is the typed form of a buildozer.spec file.
type Manifest struct {
	// [app]
	Title            string
	PackageName      string
	PackageDomain    string
	Version          string
	SourceDir        string
	IncludeExts      []string
	Requirements     []string
	Orientation      string
	Fullscreen       bool
	Permissions      []string
	API              int
	MinAPI           int
	NDK              string
	Archs            []string
	AcceptSDKLicense bool
	ReleaseArtifact  string
	Signing          Signing

	// [buildozer]
	LogLevel   int
	WarnOnRoot bool
	BuildDir   string
	BinDir     string
}

// Load reads the manifest at path and applies the documented defaults for
// absent keys. It does not validate; call Validate on the result.
func Load(path string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m := &Manifest{
		Title:            v.GetString("app.title"),
		PackageName:      v.GetString("app.package.name"),
		PackageDomain:    v.GetString("app.package.domain"),
		Version:          v.GetString("app.version"),
		SourceDir:        v.GetString("app.source.dir"),
		IncludeExts:      splitList(v.GetString("app.source.include_exts")),
		Requirements:     splitList(v.GetString("app.requirements")),
		Orientation:      v.GetString("app.orientation"),
		Fullscreen:       v.GetBool("app.fullscreen"),
		Permissions:      splitList(v.GetString("app.android.permissions")),
		API:              v.GetInt("app.android.api"),
		MinAPI:           v.GetInt("app.android.minapi"),
		NDK:              v.GetString("app.android.ndk"),
		Archs:            splitList(v.GetString("app.android.archs")),
		AcceptSDKLicense: v.GetBool("app.android.accept_sdk_license"),
		ReleaseArtifact:  v.GetString("app.android.release_artifact"),
		Signing: Signing{
			Keystore:       v.GetString("app.android.release_keystore"),
			KeystorePasswd: v.GetString("app.android.release_keystore_passwd"),
			Keyalias:       v.GetString("app.android.release_keyalias"),
			KeyaliasPasswd: v.GetString("app.android.release_keyalias_passwd"),
		},
		LogLevel:   v.GetInt("buildozer.log_level"),
		WarnOnRoot: v.GetBool("buildozer.warn_on_root"),
		BuildDir:   v.GetString("buildozer.build_dir"),
		BinDir:     v.GetString("buildozer.bin_dir"),
	}
	return m, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.title", "My Application")
	v.SetDefault("app.package.name", "myapp")
	v.SetDefault("app.package.domain", "org.test")
	v.SetDefault("app.version", "0.1")
	v.SetDefault("app.source.dir", ".")
	v.SetDefault("app.source.include_exts", "py,png,jpg,kv,atlas")
	v.SetDefault("app.requirements", "python3,kivy")
	v.SetDefault("app.orientation", "portrait")
	v.SetDefault("app.fullscreen", false)
	v.SetDefault("app.android.api", 31)
	v.SetDefault("app.android.minapi", 21)
	v.SetDefault("app.android.archs", "arm64-v8a,armeabi-v7a")
	v.SetDefault("app.android.accept_sdk_license", false)
	v.SetDefault("app.android.release_artifact", "aab")
	v.SetDefault("buildozer.log_level", 2)
	v.SetDefault("buildozer.warn_on_root", true)
	v.SetDefault("buildozer.build_dir", "./.buildozer")
	v.SetDefault("buildozer.bin_dir", "./bin")
}

// splitList parses a comma-separated manifest value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var (
	packageNameRe   = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	packageDomainRe = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z][a-z0-9_]*)+$`)
)

// Validate checks the manifest for configurations the external tool would
// reject late or, worse, accept silently. All failures are reported at once.
func (m *Manifest) Validate() error {
	var errs []error

	if m.Title == "" {
		errs = append(errs, errors.New("title must not be empty"))
	}
	if !packageNameRe.MatchString(m.PackageName) {
		errs = append(errs, fmt.Errorf("package.name %q: must be lowercase letters, digits or underscores and not start with a digit", m.PackageName))
	}
	if !packageDomainRe.MatchString(m.PackageDomain) {
		errs = append(errs, fmt.Errorf("package.domain %q: must be a reverse-DNS name with at least two labels", m.PackageDomain))
	}
	if m.Version == "" {
		errs = append(errs, errors.New("version must not be empty"))
	}
	switch m.Orientation {
	case "portrait", "landscape", "all":
	default:
		errs = append(errs, fmt.Errorf("orientation %q: must be portrait, landscape or all", m.Orientation))
	}
	if err := checkAPILevel("android.api", m.API); err != nil {
		errs = append(errs, err)
	}
	if err := checkAPILevel("android.minapi", m.MinAPI); err != nil {
		errs = append(errs, err)
	}
	if m.MinAPI > m.API {
		errs = append(errs, fmt.Errorf("android.minapi %d exceeds android.api %d", m.MinAPI, m.API))
	}
	for _, arch := range m.Archs {
		if !KnownArch(arch) {
			errs = append(errs, fmt.Errorf("android.archs: unknown ABI %q", arch))
		}
	}
	if len(m.Archs) == 0 {
		errs = append(errs, errors.New("android.archs must name at least one ABI"))
	}
	switch m.ReleaseArtifact {
	case "apk", "aab":
	default:
		errs = append(errs, fmt.Errorf("android.release_artifact %q: must be apk or aab", m.ReleaseArtifact))
	}
	for _, req := range m.Requirements {
		if name, ver, ok := strings.Cut(req, "=="); ok {
			if name == "" || !semver.IsValid("v"+ver) {
				errs = append(errs, fmt.Errorf("requirements: invalid pinned entry %q", req))
			}
		}
	}
	if err := m.Signing.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validate enforces the all-or-none rule on the signing block. A partially
// filled block is the one state the external tool's behavior is undefined
// for, so it is rejected before any tool invocation.
func (s *Signing) validate() error {
	set := 0
	for _, field := range []string{s.Keystore, s.KeystorePasswd, s.Keyalias, s.KeyaliasPasswd} {
		if field != "" {
			set++
		}
	}
	if set != 0 && set != 4 {
		return fmt.Errorf("signing: %d of 4 android.release_keystore* fields set; set all four or none", set)
	}
	return nil
}

// Complete reports whether all four signing fields are present.
func (s *Signing) Complete() bool {
	return s.Keystore != "" && s.KeystorePasswd != "" && s.Keyalias != "" && s.KeyaliasPasswd != ""
}

// ApplicationID returns the Android application identifier,
// <package.domain>.<package.name>.
func (m *Manifest) ApplicationID() string {
	return m.PackageDomain + "." + m.PackageName
}

// SigningEnv returns the four environment variables the external tool reads
// the release signing credentials from, exactly as configured. It returns
// nil when the signing block is absent so an unsigned release omits them all.
func (m *Manifest) SigningEnv() []string {
	if !m.Signing.Complete() {
		return nil
	}
	return []string{
		"P4A_RELEASE_KEYSTORE=" + m.Signing.Keystore,
		"P4A_RELEASE_KEYSTORE_PASSWD=" + m.Signing.KeystorePasswd,
		"P4A_RELEASE_KEYALIAS=" + m.Signing.Keyalias,
		"P4A_RELEASE_KEYALIAS_PASSWD=" + m.Signing.KeyaliasPasswd,
	}
}
