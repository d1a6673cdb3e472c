package manifest

import "testing"

func TestAPILevelName(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{21, "Lollipop"},
		{31, "Android 12"},
		{36, "Android 16"},
		{20, ""},
		{99, ""},
	}
	for _, tt := range tests {
		if got := APILevelName(tt.level); got != tt.want {
			t.Errorf("APILevelName(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestCheckAPILevel(t *testing.T) {
	if err := checkAPILevel("android.api", MinSupportedAPI); err != nil {
		t.Errorf("checkAPILevel(min) = %v", err)
	}
	if err := checkAPILevel("android.api", MaxKnownAPI); err != nil {
		t.Errorf("checkAPILevel(max) = %v", err)
	}
	if err := checkAPILevel("android.api", MinSupportedAPI-1); err == nil {
		t.Error("checkAPILevel below range: expected error")
	}
	if err := checkAPILevel("android.api", MaxKnownAPI+1); err == nil {
		t.Error("checkAPILevel above range: expected error")
	}
}

func TestKnownArch(t *testing.T) {
	for _, arch := range []string{"arm64-v8a", "armeabi-v7a", "x86", "x86_64"} {
		if !KnownArch(arch) {
			t.Errorf("KnownArch(%q) = false", arch)
		}
	}
	for _, arch := range []string{"mips", "armeabi", ""} {
		if KnownArch(arch) {
			t.Errorf("KnownArch(%q) = true", arch)
		}
	}
}
