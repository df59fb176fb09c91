// internal/comics/model_test.go
//
// Run: go test ./internal/comics -v

package comics

import (
	"testing"
)

func TestPanelsValueScanRoundTrip(t *testing.T) {
	in := Panels{
		{PanelNumber: 1, Setting: "A kitchen at dawn", Dialogue: "Who ate my cereal?"},
		{PanelNumber: 2, Setting: "The same kitchen", Dialogue: "The cat did."},
	}

	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}

	var out Panels
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(out) != 2 || out[1].Dialogue != "The cat did." {
		t.Fatalf("round trip lost data: %#v", out)
	}
}

func TestPanelsScanHandlesStringAndNil(t *testing.T) {
	var p Panels
	if err := p.Scan(`[{"panelNumber":1,"setting":"park","dialogue":"hi"}]`); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if len(p) != 1 || p[0].Setting != "park" {
		t.Fatalf("unexpected panels: %#v", p)
	}

	if err := p.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if p != nil {
		t.Fatalf("nil scan should clear the slice")
	}

	if err := p.Scan(42); err == nil {
		t.Fatalf("int scan should fail")
	}
}
