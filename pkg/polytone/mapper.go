package polytone

// BiomeIdMapper translates human-readable biome names into the numeric
// indices used as texture coordinates. Indices need not be contiguous.
type BiomeIdMapper struct {
	Name        string
	FilePath    string
	Declaration Declaration

	// Mappings holds biome name -> texture index. When a raw mapping file
	// carries duplicate keys, the first occurrence wins.
	Mappings map[string]int

	// TextureSize is the declared square texture size, when present.
	TextureSize int

	// Placeholders counts "*:placeholder" sentinel entries, which reserve
	// indices but are excluded from Mappings.
	Placeholders int
}

// NewBiomeIdMapper builds an empty mapper with the given declaration.
func NewBiomeIdMapper(name, filePath string, decl Declaration) *BiomeIdMapper {
	return &BiomeIdMapper{
		Name:        name,
		FilePath:    filePath,
		Declaration: decl,
		Mappings:    make(map[string]int),
	}
}

// EmptyMapper is the shared sentinel used when a biome-mapped colormap never
// resolves a mapper. Callers must not mutate it.
var EmptyMapper = NewBiomeIdMapper("", "", Declaration{Kind: DeclUndefined})

// IsEmpty reports whether the mapper is the empty sentinel or carries no
// mappings at all.
func (m *BiomeIdMapper) IsEmpty() bool {
	return m == nil || len(m.Mappings) == 0
}

// Put records a name -> index mapping, keeping the first write on duplicates.
func (m *BiomeIdMapper) Put(name string, index int) {
	if _, ok := m.Mappings[name]; !ok {
		m.Mappings[name] = index
	}
}
