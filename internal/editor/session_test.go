package editor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/aredhel/polytone-edit/internal/logger"
	"github.com/aredhel/polytone-edit/internal/resolver"
	"github.com/aredhel/polytone-edit/pkg/codec"
	"github.com/aredhel/polytone-edit/pkg/polytone"
)

func TestMain(m *testing.M) {
	logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	os.Exit(m.Run())
}

// writeGradientPNG writes a w x h texture where every pixel encodes its own
// coordinates, so tests can tell exactly which pixels changed.
func writeGradientPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(10 + x), G: uint8(10 + y), B: 100, A: 255})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// gradientARGB is the packed value writeGradientPNG puts at (x, y).
func gradientARGB(x, y int) uint32 {
	return 0xFF<<24 | uint32(10+x)<<16 | uint32(10+y)<<8 | 100
}

// biomeColormap builds a standalone X-biome-mapped colormap backed by a
// gradient texture in a temp directory.
func biomeColormap(t *testing.T, name string, w, h int) *polytone.Colormap {
	t.Helper()
	texture := filepath.Join(t.TempDir(), name+".png")
	writeGradientPNG(t, texture, w, h)

	cm := polytone.NewColormap(name, "", texture, polytone.Standalone())
	cm.XAxis = polytone.AxisBiomeID
	return cm
}

func TestSelectBiome_EditCommitRoundTrip(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "assets", "arda", "polytone")
	if err := os.MkdirAll(filepath.Join(base, "biome_id_mappers"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "biome_id_mappers", "biomes.json"),
		[]byte(`{"minecraft:plains": 1, "texture_size": 4}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(base, "colormaps"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "colormaps", "grass.json"),
		[]byte(`{"x_axis": "biome_id", "biome_id_mapper": "arda:biomes"}`), 0644); err != nil {
		t.Fatal(err)
	}
	writeGradientPNG(t, filepath.Join(base, "colormaps", "grass.png"), 4, 2)

	pack, err := resolver.Resolve(root)
	if err != nil {
		t.Fatal(err)
	}

	session := NewSession(pack)
	ns := polytone.Namespace{Scope: "arda", LocalName: "grass"}

	col, err := session.SelectBiome(ns, "minecraft:plains")
	if err != nil {
		t.Fatal(err)
	}
	if col.Len() != 2 {
		t.Fatalf("column length %d, want texture height 2", col.Len())
	}
	if col.Identifier.Index != 1 {
		t.Fatalf("resolved index %d, want 1", col.Identifier.Index)
	}

	col.SetPixel(0, 0xFFFF0000)
	col.SetPixel(1, 0xFFFF0000)
	if !session.HasUnsavedChanges() {
		t.Fatal("session must report unsaved changes after an edit")
	}

	saved, failed := session.CommitAll(nil)
	if saved != 1 || failed != 0 {
		t.Fatalf("commit saved=%d failed=%d, want 1/0", saved, failed)
	}
	if session.HasUnsavedChanges() {
		t.Error("commit must clear the modified state")
	}

	// Re-read the texture through a fresh colormap handle.
	cm, _ := pack.Colormap(ns)
	fresh := polytone.NewColormap("grass", "", cm.TexturePath, polytone.Standalone())
	fresh.XAxis = polytone.AxisBiomeID

	edited, err := codec.ExtractSlice(fresh, 1)
	if err != nil {
		t.Fatal(err)
	}
	for row, argb := range edited {
		if argb != 0xFFFF0000 {
			t.Errorf("edited column row %d = %08X, want FFFF0000", row, argb)
		}
	}

	neighbor, err := codec.ExtractSlice(fresh, 2)
	if err != nil {
		t.Fatal(err)
	}
	for row, argb := range neighbor {
		if argb != gradientARGB(2, row) {
			t.Errorf("untouched column row %d = %08X, want %08X", row, argb, gradientARGB(2, row))
		}
	}
}

func TestSelect_NumericPathIsAnIndex(t *testing.T) {
	pack := polytone.NewResourcePack()
	cm := biomeColormap(t, "grass", 4, 2)
	pack.AddColormap("arda", cm)

	session := NewSession(pack)
	id := polytone.NewResourceIdentifier(
		polytone.Namespace{Scope: "arda", LocalName: "grass"}, "2",
		polytone.DisplayDefault, polytone.CompareIndex)

	col, err := session.Select(id)
	if err != nil {
		t.Fatal(err)
	}
	if col.Identifier.Index != 2 {
		t.Errorf("index %d, want 2", col.Identifier.Index)
	}
	if got := col.Current()[0]; got != gradientARGB(2, 0) {
		t.Errorf("pixel %08X, want %08X", got, gradientARGB(2, 0))
	}
}

func TestSelectBiome_UnknownBiome(t *testing.T) {
	pack := polytone.NewResourcePack()
	cm := biomeColormap(t, "grass", 4, 2)
	cm.Mapper = polytone.NewBiomeIdMapper("biomes", "", polytone.Standalone())
	cm.Mapper.Put("minecraft:plains", 0)
	pack.AddColormap("arda", cm)

	session := NewSession(pack)
	_, err := session.SelectBiome(polytone.Namespace{Scope: "arda", LocalName: "grass"}, "minecraft:swamp")
	if !errors.Is(err, ErrUnknownBiome) {
		t.Fatalf("expected ErrUnknownBiome, got %v", err)
	}
}

func TestSelectBiome_ScopeFallbackMapper(t *testing.T) {
	pack := polytone.NewResourcePack()
	cm := biomeColormap(t, "grass", 4, 2) // no mapper of its own
	pack.AddColormap("arda", cm)

	mapper := polytone.NewBiomeIdMapper("biomes", "", polytone.Standalone())
	mapper.Put("minecraft:desert", 3)
	pack.AddBiomeIdMapper("arda", mapper)

	session := NewSession(pack)
	col, err := session.SelectBiome(polytone.Namespace{Scope: "arda", LocalName: "grass"}, "minecraft:desert")
	if err != nil {
		t.Fatal(err)
	}
	if col.Identifier.Index != 3 {
		t.Errorf("fallback mapper resolved index %d, want 3", col.Identifier.Index)
	}
}

func TestSelect_MissingColormap(t *testing.T) {
	session := NewSession(polytone.NewResourcePack())
	_, err := session.SelectBiome(polytone.Namespace{Scope: "arda", LocalName: "nope"}, "0")
	if !errors.Is(err, ErrColormapNotFound) {
		t.Fatalf("expected ErrColormapNotFound, got %v", err)
	}
}

func TestSelect_ReturnsSameColumnWithPendingEdits(t *testing.T) {
	pack := polytone.NewResourcePack()
	pack.AddColormap("arda", biomeColormap(t, "grass", 4, 2))

	session := NewSession(pack)
	ns := polytone.Namespace{Scope: "arda", LocalName: "grass"}

	first, err := session.SelectBiome(ns, "0")
	if err != nil {
		t.Fatal(err)
	}
	first.SetPixel(0, 0xFF123456)

	second, err := session.SelectBiome(ns, "0")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("re-selecting a loaded slice must return the same column")
	}
	if second.Current()[0] != 0xFF123456 {
		t.Error("pending edit lost on re-select")
	}
}

func TestSelectColormap_LoadsAllColumnsSorted(t *testing.T) {
	pack := polytone.NewResourcePack()
	cm := biomeColormap(t, "grass", 4, 2)
	cm.XAxis = polytone.AxisFunction
	pack.AddColormap("arda", cm)

	session := NewSession(pack)
	cols, err := session.SelectColormap(polytone.Namespace{Scope: "arda", LocalName: "grass"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 4 {
		t.Fatalf("got %d columns, want 4", len(cols))
	}
	for i, col := range cols {
		if col.Identifier.Index != i {
			t.Errorf("column %d has index %d", i, col.Identifier.Index)
		}
		if col.Current()[1] != gradientARGB(i, 1) {
			t.Errorf("column %d pixel mismatch", i)
		}
	}
}

func TestCommitAll_FailedAssetDoesNotBlockOthers(t *testing.T) {
	pack := polytone.NewResourcePack()
	good := biomeColormap(t, "good", 4, 2)
	bad := biomeColormap(t, "bad", 4, 2)
	pack.AddColormap("arda", good)
	pack.AddColormap("arda", bad)

	session := NewSession(pack)
	goodCol, err := session.SelectBiome(polytone.Namespace{Scope: "arda", LocalName: "good"}, "0")
	if err != nil {
		t.Fatal(err)
	}
	badCol, err := session.SelectBiome(polytone.Namespace{Scope: "arda", LocalName: "bad"}, "0")
	if err != nil {
		t.Fatal(err)
	}

	goodCol.SetPixel(0, 0xFF00FF00)
	badCol.SetPixel(0, 0xFF00FF00)

	// Make the second asset unwritable by removing its texture.
	if err := os.Remove(bad.TexturePath); err != nil {
		t.Fatal(err)
	}

	var labels []string
	var last float64
	saved, failed := session.CommitAll(func(label string, percent float64) {
		labels = append(labels, label)
		last = percent
	})

	if saved != 1 || failed != 1 {
		t.Fatalf("saved=%d failed=%d, want 1/1", saved, failed)
	}
	if goodCol.Modified() {
		t.Error("saved column must be committed")
	}
	if !badCol.Modified() {
		t.Error("failed column must keep its pending edits")
	}
	if len(labels) != 2 || last != 100 {
		t.Errorf("progress labels=%v last=%f, want 2 calls ending at 100", labels, last)
	}
}

func TestCommitAllContext_Cancelled(t *testing.T) {
	pack := polytone.NewResourcePack()
	pack.AddColormap("arda", biomeColormap(t, "grass", 4, 2))

	session := NewSession(pack)
	col, err := session.SelectBiome(polytone.Namespace{Scope: "arda", LocalName: "grass"}, "0")
	if err != nil {
		t.Fatal(err)
	}
	col.SetPixel(0, 0xFF00FF00)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	saved, failed, err := session.CommitAllContext(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if saved != 0 || failed != 0 {
		t.Errorf("saved=%d failed=%d, want 0/0", saved, failed)
	}
	if !col.Modified() {
		t.Error("cancelled commit must leave edits pending")
	}
}

func TestResetAll(t *testing.T) {
	pack := polytone.NewResourcePack()
	pack.AddColormap("arda", biomeColormap(t, "grass", 4, 2))

	session := NewSession(pack)
	col, err := session.SelectBiome(polytone.Namespace{Scope: "arda", LocalName: "grass"}, "1")
	if err != nil {
		t.Fatal(err)
	}
	col.SetPixel(0, 0xFF000001)

	session.ResetAll()
	if session.HasUnsavedChanges() {
		t.Error("reset must discard all pending edits")
	}
	if col.Current()[0] != gradientARGB(1, 0) {
		t.Error("reset must restore the baseline pixel")
	}
}
