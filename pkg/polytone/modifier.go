package polytone

// ModifierKind is the closed set of asset categories a modifier can target.
type ModifierKind int

const (
	ModifierUnknown ModifierKind = iota
	ModifierBiome
	ModifierBlock
	ModifierDimension
	ModifierItem
	ModifierFluid
	ModifierParticle
)

// String returns the pack directory name for the kind ("block_modifiers" etc).
func (k ModifierKind) String() string {
	switch k {
	case ModifierBiome:
		return "biome_modifiers"
	case ModifierBlock:
		return "block_modifiers"
	case ModifierDimension:
		return "dimension_modifiers"
	case ModifierItem:
		return "item_modifiers"
	case ModifierFluid:
		return "fluid_modifiers"
	case ModifierParticle:
		return "particle_modifiers"
	}
	return "unknown_modifiers"
}

// Modifier ties colormaps to a category of game content. A modifier never
// owns pixel data directly; all pixels live in its colormaps, which may be
// declared inline or referenced by identifier.
type Modifier struct {
	Name        string
	FilePath    string
	Kind        ModifierKind
	Declaration Declaration
	Colormaps   []*Colormap
}

// NewModifier builds a modifier. Modifiers are always standalone assets.
func NewModifier(name, filePath string, kind ModifierKind) *Modifier {
	return &Modifier{
		Name:        name,
		FilePath:    filePath,
		Kind:        kind,
		Declaration: Standalone(),
	}
}
