package polytone

import (
	"fmt"
	"math"
	"strings"
)

// NoIndex marks a ResourceIdentifier that does not address an indexed slice.
const NoIndex = math.MinInt32

// DisplayStyle selects how an identifier renders as a string.
type DisplayStyle int

const (
	DisplayDefault DisplayStyle = iota
	DisplayLocalName
	DisplayPath
)

// ComparisonMethod selects the ordering used by Compare. Callers pick the
// method matching the listing they need: pack-wide listings compare the full
// (namespace, path), colormap columns compare by index, and so on.
type ComparisonMethod int

const (
	CompareDefault ComparisonMethod = iota
	CompareIndex
	CompareLocalName
	ComparePath
)

// ResourceIdentifier is a fully-qualified pointer to one addressable unit of
// color data: a biome inside a mapper, one function-indexed slice of a
// colormap, or a whole colormap.
type ResourceIdentifier struct {
	Namespace  Namespace
	Path       string
	Index      int
	Display    DisplayStyle
	Comparison ComparisonMethod
}

// NewResourceIdentifier builds an identifier without a slice index.
func NewResourceIdentifier(ns Namespace, path string, display DisplayStyle, cmp ComparisonMethod) ResourceIdentifier {
	return ResourceIdentifier{Namespace: ns, Path: path, Index: NoIndex, Display: display, Comparison: cmp}
}

// String renders the identifier according to its display style. The default
// style is the raw "namespace/path/index" form; the local-name and path
// styles produce a human heading with underscores split into title-cased
// words and any leading "scope:" prefix dropped.
func (r ResourceIdentifier) String() string {
	s := fmt.Sprintf("%s/%s/%d", r.Namespace, r.Path, r.Index)

	if r.Display == DisplayDefault {
		return s
	}
	if r.Display == DisplayLocalName {
		s = r.Namespace.LocalName
	}
	if r.Display == DisplayPath {
		s = r.Path
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}

	words := strings.FieldsFunc(s, func(c rune) bool { return c == '_' || c == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Equal reports structural equality on every field except the display style.
func (r ResourceIdentifier) Equal(o ResourceIdentifier) bool {
	return r.Namespace == o.Namespace && r.Path == o.Path && r.Index == o.Index && r.Comparison == o.Comparison
}

// Compare orders identifiers according to the receiver's comparison method.
func (r ResourceIdentifier) Compare(o ResourceIdentifier) int {
	switch r.Comparison {
	case CompareIndex:
		switch {
		case r.Index < o.Index:
			return -1
		case r.Index > o.Index:
			return 1
		}
		return 0
	case CompareLocalName:
		return strings.Compare(r.Namespace.LocalName, o.Namespace.LocalName)
	case ComparePath:
		return strings.Compare(r.Path, o.Path)
	}
	if c := r.Namespace.Compare(o.Namespace); c != 0 {
		return c
	}
	return strings.Compare(r.Path, o.Path)
}
