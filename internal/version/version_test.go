package version

import "testing"

func TestGetCurrentVersion(t *testing.T) {
	if got := GetCurrentVersion("prod"); got != Version {
		t.Errorf("expected %q, got %q", Version, got)
	}
	if got := GetCurrentVersion("dev"); got == Version {
		t.Errorf("expected dev suffix, got %q", got)
	}
}

func TestCompareVersion(t *testing.T) {
	tests := []struct {
		a, b    string
		greater bool
	}{
		{"1.0.0", "0.9.9", true},
		{"0.9.9", "1.0.0", false},
		{"0.2.0", "0.2.0", false},
		{"0.10.0", "0.9.0", true},
		{"1.0", "1.0.0", false},
	}
	for _, tt := range tests {
		if got := IsVersionGreaterThan(tt.a, tt.b); got != tt.greater {
			t.Errorf("IsVersionGreaterThan(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.greater)
		}
	}

	if !IsVersionGreaterOrEqualThan("0.2.0", "0.2.0") {
		t.Error("expected equal versions to compare greater-or-equal")
	}
}
