// internal/ua/ua_test.go
//
// Run: go test ./internal/ua -v

package ua

import (
	"testing"

	"github.com/avct/uasurfer"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

func TestParseDesktopChrome(t *testing.T) {
	info := Parse(chromeMac)

	if info.Browser != "Chrome" {
		t.Fatalf("browser = %q", info.Browser)
	}
	if info.Device != "Desktop" {
		t.Fatalf("device = %q", info.Device)
	}
	if info.OS != "macOS" {
		t.Fatalf("os = %q", info.OS)
	}
	if info.IsBot {
		t.Fatalf("desktop browser flagged as bot")
	}
	if info.Raw != chromeMac {
		t.Fatalf("raw header not preserved")
	}
}

func TestParseFlagsCrawlers(t *testing.T) {
	info := Parse("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	if !info.IsBot {
		t.Fatalf("Googlebot not flagged as bot")
	}
}

func TestTrimVersionDropsTrailingZeros(t *testing.T) {
	cases := []struct {
		major, minor, patch int
		want                string
	}{
		{17, 0, 0, "17"},
		{17, 3, 0, "17.3"},
		{17, 3, 1, "17.3.1"},
		{0, 0, 0, "0"},
	}
	for _, c := range cases {
		got := trimVersion(uasurfer.Version{Major: c.major, Minor: c.minor, Patch: c.patch})
		if got != c.want {
			t.Errorf("%d.%d.%d → %q, want %q", c.major, c.minor, c.patch, got, c.want)
		}
	}
}
