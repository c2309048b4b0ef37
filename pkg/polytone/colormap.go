package polytone

// AxisMapping is the addressing mode of one colormap axis.
type AxisMapping int

const (
	// AxisFunction indexes the axis by an arbitrary in-game function value.
	// Unset axes default to function mapping.
	AxisFunction AxisMapping = iota

	// AxisBiomeID indexes the axis by a biome index from a BiomeIdMapper.
	AxisBiomeID
)

// axisBiomeIDKeyword is the JSON axis value selecting biome ID mapping; any
// other value is a function expression.
const axisBiomeIDKeyword = "biome_id"

// ParseAxisMapping maps a raw JSON axis string to its mapping type.
func ParseAxisMapping(raw string) AxisMapping {
	if raw == axisBiomeIDKeyword {
		return AxisBiomeID
	}
	return AxisFunction
}

func (a AxisMapping) String() string {
	if a == AxisBiomeID {
		return axisBiomeIDKeyword
	}
	return "function"
}

// Colormap describes one 2D color texture whose axes are each bound to
// either a biome index or a function value.
type Colormap struct {
	Name        string
	FilePath    string
	TexturePath string
	Declaration Declaration

	XAxis AxisMapping
	YAxis AxisMapping

	// Mapper resolves biome names for biome-mapped axes. Nil until resolved;
	// a biome-mapped colormap without one falls back to EmptyMapper.
	Mapper *BiomeIdMapper

	// TextureWidth and TextureHeight are populated lazily on the first pixel
	// read from the backing image.
	TextureWidth  int
	TextureHeight int
}

// NewColormap builds a colormap with the given declaration. Axes default to
// function mapping until set from the JSON definition.
func NewColormap(name, filePath, texturePath string, decl Declaration) *Colormap {
	return &Colormap{
		Name:        name,
		FilePath:    filePath,
		TexturePath: texturePath,
		Declaration: decl,
	}
}

// EmptyColormap is the undefined sentinel. Callers must not mutate it.
var EmptyColormap = NewColormap("", "", "", Declaration{Kind: DeclUndefined})

// BiomeMapped reports whether either axis is bound to a biome ID.
func (c *Colormap) BiomeMapped() bool {
	return c.XAxis == AxisBiomeID || c.YAxis == AxisBiomeID
}
