// Package editor holds the editing session: the bridge between a resolved
// resource pack and the per-slice color edit state.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/aredhel/polytone-edit/internal/logger"
	"github.com/aredhel/polytone-edit/pkg/codec"
	"github.com/aredhel/polytone-edit/pkg/coloredit"
	"github.com/aredhel/polytone-edit/pkg/polytone"
)

var (
	ErrColormapNotFound = errors.New("colormap not found")
	ErrUnknownBiome     = errors.New("biome not present in mapper")
)

// ProgressFunc receives commit progress, one call per asset. The label names
// the asset being written and percent runs from 0 to 100.
type ProgressFunc func(label string, percent float64)

// slotKey addresses one loaded slice. Identifiers carry presentation fields
// that must not split map entries, so the key is only the structural part.
type slotKey struct {
	ns    polytone.Namespace
	index int
}

type slot struct {
	colormap *polytone.Colormap
	index    int
	column   *coloredit.Column
}

// Session tracks the columns loaded for editing against one resolved pack.
// Loading is lazy: a slice is read from disk the first time it is selected
// and kept as the edit baseline until committed or the session is replaced.
type Session struct {
	pack  *polytone.ResourcePack
	slots map[slotKey]*slot
}

// NewSession starts an empty session over the pack.
func NewSession(pack *polytone.ResourcePack) *Session {
	return &Session{
		pack:  pack,
		slots: make(map[slotKey]*slot),
	}
}

// Select loads the slice addressed by the identifier. The identifier's
// namespace names the colormap; the slice index is the identifier's own
// index, or else its path resolved as a biome name or numeric literal.
// Selecting an already-loaded slice returns the existing column with its
// pending edits intact.
func (s *Session) Select(id polytone.ResourceIdentifier) (*coloredit.Column, error) {
	cm, ok := s.pack.Colormap(id.Namespace)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColormapNotFound, id.Namespace)
	}

	index := id.Index
	if index == polytone.NoIndex {
		var err error
		index, err = s.resolveIndex(cm, id.Namespace.Scope, id.Path)
		if err != nil {
			return nil, err
		}
		id.Index = index
	}

	return s.load(cm, id)
}

// SelectBiome loads the slice a biome name addresses in the given colormap.
func (s *Session) SelectBiome(ns polytone.Namespace, biome string) (*coloredit.Column, error) {
	cm, ok := s.pack.Colormap(ns)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColormapNotFound, ns)
	}

	index, err := s.resolveIndex(cm, ns.Scope, biome)
	if err != nil {
		return nil, err
	}

	id := polytone.ResourceIdentifier{
		Namespace:  ns,
		Path:       biome,
		Index:      index,
		Display:    polytone.DisplayPath,
		Comparison: polytone.CompareIndex,
	}
	return s.load(cm, id)
}

// SelectColormap loads every column of a colormap at once, the whole-texture
// view used for function-mapped colormaps. Already-loaded columns keep their
// pending edits.
func (s *Session) SelectColormap(ns polytone.Namespace) ([]*coloredit.Column, error) {
	cm, ok := s.pack.Colormap(ns)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColormapNotFound, ns)
	}

	cols, err := codec.ExtractAllColumns(cm)
	if err != nil {
		return nil, err
	}

	out := make([]*coloredit.Column, 0, len(cols))
	for index, pixels := range cols {
		key := slotKey{ns: ns, index: index}
		if existing, ok := s.slots[key]; ok {
			out = append(out, existing.column)
			continue
		}

		id := polytone.ResourceIdentifier{
			Namespace:  ns,
			Path:       strconv.Itoa(index),
			Index:      index,
			Display:    polytone.DisplayLocalName,
			Comparison: polytone.CompareIndex,
		}
		col := coloredit.NewColumn(id, pixels)
		s.slots[key] = &slot{colormap: cm, index: index, column: col}
		out = append(out, col)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier.Compare(out[j].Identifier) < 0
	})
	return out, nil
}

func (s *Session) load(cm *polytone.Colormap, id polytone.ResourceIdentifier) (*coloredit.Column, error) {
	key := slotKey{ns: id.Namespace, index: id.Index}
	if existing, ok := s.slots[key]; ok {
		return existing.column, nil
	}

	pixels, err := codec.ExtractSlice(cm, id.Index)
	if err != nil {
		return nil, err
	}

	col := coloredit.NewColumn(id, pixels)
	s.slots[key] = &slot{colormap: cm, index: id.Index, column: col}
	return col, nil
}

// resolveIndex turns a biome name into a texture index. Numeric names are
// indices already. Otherwise the colormap's own mapper resolves the name,
// falling back to any mapper in the same namespace scope, and finally to the
// empty mapper, where every lookup fails.
func (s *Session) resolveIndex(cm *polytone.Colormap, scope, name string) (int, error) {
	if index, err := strconv.Atoi(name); err == nil {
		return index, nil
	}

	mapper := cm.Mapper
	if mapper.IsEmpty() {
		if fallback, ok := s.pack.MapperInScope(scope); ok {
			mapper = fallback
		} else {
			mapper = polytone.EmptyMapper
		}
	}

	index, ok := mapper.Mappings[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q (mapper %q)", ErrUnknownBiome, name, mapper.Name)
	}
	return index, nil
}

// Columns returns every loaded column, ordered by identifier.
func (s *Session) Columns() []*coloredit.Column {
	out := make([]*coloredit.Column, 0, len(s.slots))
	for _, sl := range s.slots {
		out = append(out, sl.column)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier.Compare(out[j].Identifier) < 0
	})
	return out
}

// Column returns the loaded column for an identifier, if any.
func (s *Session) Column(id polytone.ResourceIdentifier) (*coloredit.Column, bool) {
	sl, ok := s.slots[slotKey{ns: id.Namespace, index: id.Index}]
	if !ok {
		return nil, false
	}
	return sl.column, true
}

// HasUnsavedChanges reports whether any loaded column differs from its
// baseline.
func (s *Session) HasUnsavedChanges() bool {
	for _, sl := range s.slots {
		if sl.column.Modified() {
			return true
		}
	}
	return false
}

// ResetAll restores every loaded column to its baseline.
func (s *Session) ResetAll() {
	for _, sl := range s.slots {
		sl.column.Reset()
	}
}

// CommitAll writes every modified column back to its texture. Edits are
// grouped per colormap so each texture is re-encoded once, and a failing
// asset never blocks the others: its columns keep their pending state and
// the failure is counted. Committed columns promote their working pixels to
// the new baseline.
func (s *Session) CommitAll(progress ProgressFunc) (saved, failed int) {
	saved, failed, _ = s.CommitAllContext(context.Background(), progress)
	return saved, failed
}

// CommitAllContext is CommitAll with cancellation between assets. A
// cancelled context stops before the next texture write; textures already
// written stay written.
func (s *Session) CommitAllContext(ctx context.Context, progress ProgressFunc) (saved, failed int, err error) {
	type pending struct {
		colormap *polytone.Colormap
		edits    map[int][]uint32
		slots    []*slot
	}

	byColormap := make(map[*polytone.Colormap]*pending)
	var order []*pending

	for _, key := range s.sortedKeys() {
		sl := s.slots[key]
		if !sl.column.Modified() {
			continue
		}
		p, ok := byColormap[sl.colormap]
		if !ok {
			p = &pending{colormap: sl.colormap, edits: make(map[int][]uint32)}
			byColormap[sl.colormap] = p
			order = append(order, p)
		}
		p.edits[sl.index] = sl.column.Current()
		p.slots = append(p.slots, sl)
	}

	for i, p := range order {
		if err := ctx.Err(); err != nil {
			return saved, failed, err
		}

		if err := codec.ApplyChanges(p.colormap, p.edits); err != nil {
			logger.Warn("commit failed for asset",
				zap.String("colormap", p.colormap.Name),
				zap.Error(err))
			failed++
		} else {
			for _, sl := range p.slots {
				sl.column.Commit()
			}
			saved++
		}

		if progress != nil {
			progress(p.colormap.Name, 100*float64(i+1)/float64(len(order)))
		}
	}

	if saved > 0 || failed > 0 {
		logger.Info("commit finished", zap.Int("saved", saved), zap.Int("failed", failed))
	}
	return saved, failed, nil
}

func (s *Session) sortedKeys() []slotKey {
	keys := make([]slotKey, 0, len(s.slots))
	for k := range s.slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := keys[i].ns.Compare(keys[j].ns); c != 0 {
			return c < 0
		}
		return keys[i].index < keys[j].index
	})
	return keys
}
