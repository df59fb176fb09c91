// internal/ua/ua.go
//
// User-Agent parsing helpers.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.  The access
// log is the only consumer; it records which browser and device touched
// each record.
package ua

import (
	"strconv"
	"strings"

	"github.com/avct/uasurfer"
)

// Info carries the UA attributes used by the access-log middleware.
type Info struct {
	Browser   string // "Chrome", "Firefox", "Safari", ...
	Version   string // "124.0.6367", trailing ".0" trimmed
	OS        string // "macOS", "Windows", "Android", "iOS", ...
	OSVersion string // "14.5", "11", "10.0"
	Device    string // "Desktop", "Phone", "Tablet", "TV", ...
	Platform  string // "Mac", "Windows", "Linux", "iPad", ...
	IsBot     bool
	Raw       string
}

// Parse converts a raw User-Agent header into an Info struct.
func Parse(raw string) Info {
	u := uasurfer.Parse(raw)

	// The generated enum stringers carry their type name as a prefix
	// ("BrowserChrome", "OSWindows", "PlatformMac"); trim it.
	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return Info{
		Browser:   strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Version:   trimVersion(u.Browser.Version),
		OS:        osName,
		OSVersion: trimVersion(u.OS.Version),
		Device:    deviceTypeToString(u.DeviceType),
		Platform:  strings.TrimPrefix(u.OS.Platform.String(), "Platform"),
		IsBot:     u.IsBot(),
		Raw:       raw,
	}
}

// trimVersion builds "major.minor.patch" and removes trailing ".0".
func trimVersion(v uasurfer.Version) string {
	out := strings.Join([]string{
		strconv.Itoa(v.Major),
		strconv.Itoa(v.Minor),
		strconv.Itoa(v.Patch),
	}, ".")
	for strings.HasSuffix(out, ".0") {
		out = strings.TrimSuffix(out, ".0")
	}
	if out == "" {
		return "0"
	}
	return out
}

// deviceTypeToString maps uasurfer.DeviceType to a user-friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}
