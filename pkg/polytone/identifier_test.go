package polytone

import "testing"

func TestResourceIdentifierString(t *testing.T) {
	ns := Namespace{Scope: "arda", LocalName: "grass"}

	def := ResourceIdentifier{Namespace: ns, Path: "minecraft:dark_forest", Index: 3}
	if got, want := def.String(), "arda:grass/minecraft:dark_forest/3"; got != want {
		t.Errorf("default style: got %q, want %q", got, want)
	}

	path := ResourceIdentifier{Namespace: ns, Path: "minecraft:dark_forest", Index: 3, Display: DisplayPath}
	if got, want := path.String(), "Dark Forest"; got != want {
		t.Errorf("path style: got %q, want %q", got, want)
	}

	local := ResourceIdentifier{Namespace: Namespace{Scope: "arda", LocalName: "grass_tint"}, Path: "x", Display: DisplayLocalName}
	if got, want := local.String(), "Grass Tint"; got != want {
		t.Errorf("local-name style: got %q, want %q", got, want)
	}
}

func TestResourceIdentifierCompare(t *testing.T) {
	nsA := Namespace{Scope: "a", LocalName: "m"}
	nsB := Namespace{Scope: "b", LocalName: "a"}

	byIndex := ResourceIdentifier{Namespace: nsB, Path: "z", Index: 1, Comparison: CompareIndex}
	other := ResourceIdentifier{Namespace: nsA, Path: "a", Index: 2}
	if byIndex.Compare(other) >= 0 {
		t.Error("index comparison should ignore namespace and path")
	}

	byPath := ResourceIdentifier{Namespace: nsB, Path: "aaa", Comparison: ComparePath}
	if byPath.Compare(ResourceIdentifier{Namespace: nsA, Path: "zzz"}) >= 0 {
		t.Error("path comparison should order by path only")
	}

	byLocal := ResourceIdentifier{Namespace: nsB, Path: "zzz", Comparison: CompareLocalName}
	if byLocal.Compare(ResourceIdentifier{Namespace: nsA, Path: "aaa"}) >= 0 {
		t.Error("local-name comparison should order by namespace local name")
	}

	def := ResourceIdentifier{Namespace: nsA, Path: "p"}
	if def.Compare(ResourceIdentifier{Namespace: nsB, Path: "a"}) >= 0 {
		t.Error("default comparison should order by namespace first")
	}
}

func TestResourceIdentifierEqualIgnoresDisplay(t *testing.T) {
	ns := Namespace{Scope: "a", LocalName: "b"}
	x := ResourceIdentifier{Namespace: ns, Path: "p", Index: 1, Display: DisplayDefault}
	y := ResourceIdentifier{Namespace: ns, Path: "p", Index: 1, Display: DisplayPath}

	if !x.Equal(y) {
		t.Error("display style must not affect equality")
	}
	if x.Equal(ResourceIdentifier{Namespace: ns, Path: "p", Index: 2}) {
		t.Error("index must affect equality")
	}
}
