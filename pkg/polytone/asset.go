package polytone

// DeclarationKind tells how an asset was declared: embedded inside a parent
// asset's file, in its own file, or not at all (empty sentinel).
type DeclarationKind int

const (
	DeclUndefined DeclarationKind = iota
	DeclStandalone
	DeclInline
)

// String returns the kind name as used in logs.
func (k DeclarationKind) String() string {
	switch k {
	case DeclStandalone:
		return "standalone"
	case DeclInline:
		return "inline"
	}
	return "undefined"
}

// Declaration tags an asset with its declaration kind and, for inline
// declarations, the name of the declaring asset. DeclaredBy carries
// provenance only; resolution always goes through the pack's namespace
// mappings, never through the back-reference.
type Declaration struct {
	Kind       DeclarationKind
	DeclaredBy string
}

// Standalone is the declaration of an asset living in its own file.
func Standalone() Declaration {
	return Declaration{Kind: DeclStandalone}
}

// InlineIn is the declaration of an asset embedded in parent's file.
func InlineIn(parent string) Declaration {
	return Declaration{Kind: DeclInline, DeclaredBy: parent}
}
