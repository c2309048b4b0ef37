package polytone

import "sort"

// ResourcePack aggregates every asset of one loaded pack, keyed by namespace.
// A pack is populated entirely during resolution and frozen afterwards; a
// fresh load replaces it wholesale.
type ResourcePack struct {
	modifiers map[Namespace]*Modifier
	colormaps map[Namespace]*Colormap
	mappers   map[Namespace]*BiomeIdMapper
}

// NewResourcePack returns an empty pack ready for population.
func NewResourcePack() *ResourcePack {
	return &ResourcePack{
		modifiers: make(map[Namespace]*Modifier),
		colormaps: make(map[Namespace]*Colormap),
		mappers:   make(map[Namespace]*BiomeIdMapper),
	}
}

// AddModifier registers a modifier under scope:name.
func (p *ResourcePack) AddModifier(scope string, m *Modifier) {
	p.modifiers[Namespace{Scope: scope, LocalName: m.Name}] = m
}

// AddColormap registers a colormap under scope:name.
func (p *ResourcePack) AddColormap(scope string, c *Colormap) {
	p.colormaps[Namespace{Scope: scope, LocalName: c.Name}] = c
}

// AddBiomeIdMapper registers a mapper under scope:name.
func (p *ResourcePack) AddBiomeIdMapper(scope string, m *BiomeIdMapper) {
	p.mappers[Namespace{Scope: scope, LocalName: m.Name}] = m
}

// RemoveModifier drops a modifier (pruning of half-present assets).
func (p *ResourcePack) RemoveModifier(ns Namespace) {
	delete(p.modifiers, ns)
}

// RemoveColormap drops a colormap.
func (p *ResourcePack) RemoveColormap(ns Namespace) {
	delete(p.colormaps, ns)
}

// Modifier looks up a modifier by namespace.
func (p *ResourcePack) Modifier(ns Namespace) (*Modifier, bool) {
	m, ok := p.modifiers[ns]
	return m, ok
}

// Colormap looks up a colormap by namespace.
func (p *ResourcePack) Colormap(ns Namespace) (*Colormap, bool) {
	c, ok := p.colormaps[ns]
	return c, ok
}

// BiomeIdMapper looks up a mapper by namespace.
func (p *ResourcePack) BiomeIdMapper(ns Namespace) (*BiomeIdMapper, bool) {
	m, ok := p.mappers[ns]
	return m, ok
}

// MapperInScope returns any mapper whose namespace scope matches, used as a
// fallback when a biome-mapped colormap carries no mapper of its own.
func (p *ResourcePack) MapperInScope(scope string) (*BiomeIdMapper, bool) {
	for _, ns := range p.MapperNamespaces() {
		if ns.Scope == scope {
			return p.mappers[ns], true
		}
	}
	return nil, false
}

// ModifierNamespaces returns the modifier keys in sorted order.
func (p *ResourcePack) ModifierNamespaces() []Namespace {
	return sortedKeys(p.modifiers)
}

// ColormapNamespaces returns the colormap keys in sorted order.
func (p *ResourcePack) ColormapNamespaces() []Namespace {
	return sortedKeys(p.colormaps)
}

// MapperNamespaces returns the mapper keys in sorted order.
func (p *ResourcePack) MapperNamespaces() []Namespace {
	return sortedKeys(p.mappers)
}

func sortedKeys[V any](m map[Namespace]V) []Namespace {
	keys := make([]Namespace, 0, len(m))
	for ns := range m {
		keys = append(keys, ns)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
	return keys
}
