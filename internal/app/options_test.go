package app

import "testing"

func TestOptionsDefaults(t *testing.T) {
	o := Options{Scale: 0, SplitsPerSecond: -2, PanelWidth: -1}.withDefaults()
	if o.Scale != 1 || o.SplitsPerSecond != 0 || o.PanelWidth != 0 {
		t.Fatalf("unexpected defaults %+v", o)
	}
	if o.Logger == nil {
		t.Fatal("logger must default to a no-op logger")
	}

	kept := Options{Scale: 3, SplitsPerSecond: 5, PanelWidth: 200}.withDefaults()
	if kept.Scale != 3 || kept.SplitsPerSecond != 5 || kept.PanelWidth != 200 {
		t.Fatalf("explicit values overwritten: %+v", kept)
	}
}
