package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the service version, overridable at build time with
// -ldflags "-X github.com/homematch/preferences/internal/version.Version=...".
var Version = "0.3.1"

// DevVersion is the suffix appended in non-prod modes.
var DevVersion = "dev"

func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return fmt.Sprintf("%s-%s", Version, DevVersion)
}

// GetMinorVersion returns the major.minor part of a semver string.
func GetMinorVersion(version string) string {
	versionList := strings.Split(version, ".")
	if len(versionList) < 3 {
		return version
	}
	return strings.Join(versionList[0:2], ".")
}

// IsVersionGreaterThan returns true if version is greater than target.
func IsVersionGreaterThan(version, target string) bool {
	return compareVersion(version, target) > 0
}

// IsVersionGreaterOrEqualThan returns true if version is greater than or equal to target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return compareVersion(version, target) >= 0
}

func compareVersion(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var ai, bi int
		if i < len(as) {
			ai, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bi, _ = strconv.Atoi(bs[i])
		}
		if ai != bi {
			if ai > bi {
				return 1
			}
			return -1
		}
	}
	return 0
}
