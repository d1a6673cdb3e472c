package manifest

import (
	"fmt"
	"os"
)

// template is the manifest written by Scaffold. Commented keys document the
// optional signing block without enabling it.
const template = `[app]

# (str) Title of your application
title = %s

# (str) Package name
package.name = %s

# (str) Package domain (needed for android/ios packaging)
package.domain = %s

# (str) Source code where the main.py lives
source.dir = .

# (list) Source files to include (let empty to include all the files)
source.include_exts = py,png,jpg,kv,atlas

# (str) Application versioning
version = 0.1

# (list) Application requirements
requirements = python3,kivy

# (str) Supported orientation: landscape, portrait or all
orientation = portrait

# (bool) Indicate if the application should be fullscreen or not
fullscreen = 0

# (list) Permissions
android.permissions = INTERNET

# (int) Target Android API, should be as high as possible
android.api = 31

# (int) Minimum API your APK / AAB will support
android.minapi = 21

# (list) The Android archs to build for
android.archs = arm64-v8a,armeabi-v7a

# (bool) Accept the Android SDK license automatically
android.accept_sdk_license = True

# (str) The format used to package the app for release mode (aab or apk)
android.release_artifact = aab

# Release signing: set all four keys or none.
# android.release_keystore = %%(source.dir)s/release.keystore
# android.release_keystore_passwd =
# android.release_keyalias =
# android.release_keyalias_passwd =

[buildozer]

# (int) Log level (0 = error only, 1 = info, 2 = debug (with command output))
log_level = 2

# (int) Display warning if buildozer is run as root (0 = False, 1 = True)
warn_on_root = 1

# (str) Path to build artifact storage, absolute or relative to spec file
build_dir = ./.buildozer

# (str) Path to build output (i.e. .apk, .aab, .ipa) storage
bin_dir = ./bin
`

// ScaffoldOptions set the identity fields of a scaffolded manifest.
// Zero-value fields fall back to the documented defaults.
type ScaffoldOptions struct {
	Title         string
	PackageName   string
	PackageDomain string
}

// Scaffold writes a commented default manifest to path. It refuses to
// overwrite an existing file.
func Scaffold(path string, opts ScaffoldOptions) error {
	if opts.Title == "" {
		opts.Title = "My Application"
	}
	if opts.PackageName == "" {
		opts.PackageName = "myapp"
	}
	if opts.PackageDomain == "" {
		opts.PackageDomain = "org.test"
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	content := fmt.Sprintf(template, opts.Title, opts.PackageName, opts.PackageDomain)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
