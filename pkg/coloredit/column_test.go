package coloredit

import (
	"testing"

	"github.com/aredhel/polytone-edit/pkg/polytone"
)

var testPixels = []uint32{
	0xFF336699,
	0xFF000000,
	0xFFFFFFFF,
	0x80C08040,
	0xFF00FF00,
}

func testColumn() *Column {
	id := polytone.ResourceIdentifier{
		Namespace: polytone.Namespace{Scope: "arda", LocalName: "grass"},
		Path:      "minecraft:plains",
		Index:     1,
	}
	return NewColumn(id, testPixels)
}

func TestAdjustHSB_ZeroShiftRestoresBaseline(t *testing.T) {
	c := testColumn()

	c.AdjustHSB(HSB{Hue: 120, Saturation: 0.3, Brightness: -0.2})
	if !c.Modified() {
		t.Fatal("expected column modified after nonzero shift")
	}

	// Each adjustment recomputes from the baseline, so the zero shift must
	// restore the original bytes exactly.
	c.AdjustHSB(HSB{})
	if c.Modified() {
		t.Error("zero shift should restore the baseline exactly")
	}
	cur := c.Current()
	for i, want := range testPixels {
		if cur[i] != want {
			t.Errorf("pixel %d: got %08X, want %08X", i, cur[i], want)
		}
	}
}

func TestAdjustHSB_IdempotentUnderRepetition(t *testing.T) {
	c := testColumn()
	shift := HSB{Hue: 45, Saturation: -0.1, Brightness: 0.1}

	c.AdjustHSB(shift)
	first := c.Current()
	c.AdjustHSB(shift)
	c.AdjustHSB(shift)
	third := c.Current()

	for i := range first {
		if first[i] != third[i] {
			t.Errorf("pixel %d drifted under repeated equal shifts: %08X -> %08X", i, first[i], third[i])
		}
	}
}

func TestAdjustHSB_PreservesAlpha(t *testing.T) {
	c := testColumn()
	c.AdjustHSB(HSB{Hue: 200})

	cur := c.Current()
	for i, orig := range testPixels {
		if cur[i]>>24 != orig>>24 {
			t.Errorf("pixel %d alpha changed by HSB shift", i)
		}
	}
}

func TestAdjustOpacity_OnlyAlpha(t *testing.T) {
	c := testColumn()
	c.AdjustOpacity(0.5)

	cur := c.Current()
	for i, orig := range testPixels {
		if cur[i]&0x00FFFFFF != orig&0x00FFFFFF {
			t.Errorf("pixel %d color channels changed by opacity", i)
		}
		if cur[i]>>24 != 0x80 {
			t.Errorf("pixel %d alpha: got %02X, want 80", i, cur[i]>>24)
		}
	}
}

func TestResetAndCommit(t *testing.T) {
	c := testColumn()

	c.SetPixel(0, 0xFFFF0000)
	if !c.Modified() {
		t.Fatal("expected modified after SetPixel")
	}

	c.Reset()
	if c.Modified() {
		t.Error("Reset should clear modified state")
	}
	if c.Current()[0] != testPixels[0] {
		t.Error("Reset should restore baseline pixels")
	}

	c.SetPixel(0, 0xFFFF0000)
	c.Commit()
	if c.Modified() {
		t.Error("Commit should clear modified state")
	}
	if c.Original()[0] != 0xFFFF0000 {
		t.Error("Commit should promote working pixels into the baseline")
	}
}

func TestAdjustColor_FullSaturationShiftClamps(t *testing.T) {
	got := AdjustColor(0xFF808080, HSB{Saturation: 5})
	if got>>24 != 0xFF {
		t.Error("alpha must pass through")
	}

	low := AdjustColor(0xFF336699, HSB{Brightness: -5})
	if low&0x00FFFFFF != 0 {
		t.Errorf("brightness floor should reach black, got %08X", low)
	}
}

func TestShiftBetweenAndOpacity(t *testing.T) {
	orig := uint32(0xFF0000FF)
	mod := AdjustColor(orig, HSB{Hue: 90})

	shift := ShiftBetween(orig, mod)
	if shift.Hue < 89 || shift.Hue > 91 {
		t.Errorf("recovered hue shift %f, want ~90", shift.Hue)
	}

	if got := Opacity(0x80000000); got < 0.49 || got > 0.51 {
		t.Errorf("Opacity(0x80...) = %f, want ~0.5", got)
	}
}
