// Package resolver scans a Polytone resource pack on disk and builds the
// fully-linked asset graph: biome ID mappers, colormaps and modifiers.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/aredhel/polytone-edit/internal/logger"
	"github.com/aredhel/polytone-edit/pkg/polytone"
)

const (
	polytoneDirName = "polytone"
	mappersDirName  = "biome_id_mappers"
	colormapsDir    = "colormaps"

	jsonExt = ".json"
	pngExt  = ".png"
)

// modifierDirs maps every modifier subdirectory to its kind. Missing
// subdirectories are optional.
var modifierDirs = []struct {
	dir  string
	kind polytone.ModifierKind
}{
	{"block_modifiers", polytone.ModifierBlock},
	{"dimension_modifiers", polytone.ModifierDimension},
	{"fluid_modifiers", polytone.ModifierFluid},
	{"particle_modifiers", polytone.ModifierParticle},
}

// MissingResourceError is the fatal failure: a structurally required file or
// directory is absent and the whole load aborts.
type MissingResourceError struct {
	Path string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("missing required resource: %s", e.Path)
}

// Resolve loads the resource pack rooted at root. Mappers and colormaps are
// resolved across all namespaces before any modifier, because modifiers and
// colormap axis bindings may reference them from other namespaces. The
// returned pack is frozen; load again to pick up external changes.
func Resolve(root string) (*polytone.ResourcePack, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, &MissingResourceError{Path: root}
	}

	roots, err := findNamespaceRoots(root)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, &MissingResourceError{Path: filepath.Join(root, "assets", "*", polytoneDirName)}
	}

	pack := polytone.NewResourcePack()

	// Phase one: biome ID mappers and standalone colormaps, all namespaces.
	// The mapper directory is structural: a namespace without one aborts the
	// load, unlike the optional modifier subdirectories.
	for _, nsRoot := range roots {
		logger.Info("resolving mappers and colormaps", zap.String("namespace", nsRoot.scope))

		mapperDir := filepath.Join(nsRoot.path, mappersDirName)
		if _, err := os.Stat(mapperDir); err != nil {
			return nil, &MissingResourceError{Path: mapperDir}
		}
		if err := loadMappers(pack, nsRoot.scope, mapperDir); err != nil {
			return nil, err
		}
		loadColormaps(pack, nsRoot.scope, filepath.Join(nsRoot.path, colormapsDir))
	}

	// Phase two: modifiers, which may reference phase-one assets.
	for _, nsRoot := range roots {
		logger.Info("resolving modifiers", zap.String("namespace", nsRoot.scope))
		for _, md := range modifierDirs {
			loadModifiers(pack, nsRoot.scope, filepath.Join(nsRoot.path, md.dir), md.kind)
		}
	}

	prune(pack)

	logger.Info("resource pack loaded",
		zap.String("root", root),
		zap.Int("mappers", len(pack.MapperNamespaces())),
		zap.Int("colormaps", len(pack.ColormapNamespaces())),
		zap.Int("modifiers", len(pack.ModifierNamespaces())))

	return pack, nil
}

type namespaceRoot struct {
	scope string
	path  string
}

// findNamespaceRoots locates every "polytone" directory exactly three path
// elements below root (assets/<namespace>/polytone). The parent directory
// name is the namespace scope.
func findNamespaceRoots(root string) ([]namespaceRoot, error) {
	var roots []namespaceRoot

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := len(strings.Split(filepath.ToSlash(rel), "/"))
		if depth > 3 {
			return filepath.SkipDir
		}
		if depth == 3 && d.Name() == polytoneDirName {
			roots = append(roots, namespaceRoot{
				scope: filepath.Base(filepath.Dir(path)),
				path:  path,
			})
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning pack: %w", err)
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].scope < roots[j].scope })
	return roots, nil
}

// listJSONFiles returns the JSON files directly inside dir, sorted. A
// missing directory is not an error; the caller treats it as optional.
func listJSONFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("optional directory absent", zap.String("dir", dir))
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), jsonExt) {
			continue
		}
		if strings.HasPrefix(e.Name(), "_") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), jsonExt)
}

// prune drops assets that never found both halves: a colormap whose texture
// file does not exist, and a modifier left without a single valid colormap.
func prune(pack *polytone.ResourcePack) {
	invalid := make(map[*polytone.Colormap]bool)

	for _, ns := range pack.ColormapNamespaces() {
		cm, _ := pack.Colormap(ns)
		if _, err := os.Stat(cm.TexturePath); err != nil {
			logger.Warn("pruning colormap without texture",
				zap.String("colormap", ns.String()),
				zap.String("texture", cm.TexturePath))
			invalid[cm] = true
			pack.RemoveColormap(ns)
		}
	}

	for _, ns := range pack.ModifierNamespaces() {
		mod, _ := pack.Modifier(ns)

		valid := mod.Colormaps[:0]
		for _, cm := range mod.Colormaps {
			if !invalid[cm] {
				valid = append(valid, cm)
			}
		}
		mod.Colormaps = valid

		if len(mod.Colormaps) == 0 {
			logger.Warn("pruning modifier without valid colormaps", zap.String("modifier", ns.String()))
			pack.RemoveModifier(ns)
		}
	}
}
