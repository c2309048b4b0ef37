package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aredhel/polytone-edit/internal/logger"
	"github.com/aredhel/polytone-edit/pkg/polytone"
)

const (
	textureSizeKey   = "texture_size"
	placeholderMark  = ":placeholder"
	colormapKeySuf   = "colormap"
	xAxisKey         = "x_axis"
	yAxisKey         = "y_axis"
	biomeIdMapperKey = "biome_id_mapper"
)

// loadMappers parses every biome ID mapper file in dir into the pack. An
// unreadable mapper file aborts the load; a malformed one is skipped.
func loadMappers(pack *polytone.ResourcePack, scope, dir string) error {
	for _, path := range listJSONFiles(dir) {
		data, err := os.ReadFile(path)
		if err != nil {
			return &MissingResourceError{Path: path}
		}

		mapper := polytone.NewBiomeIdMapper(stem(path), path, polytone.Standalone())
		if err := parseMapperObject(data, mapper); err != nil {
			logger.Warn("skipping malformed mapper", zap.String("path", path), zap.Error(err))
			continue
		}

		logger.Debug("loaded biome id mapper",
			zap.String("name", mapper.Name),
			zap.Int("mappings", len(mapper.Mappings)),
			zap.Int("placeholders", mapper.Placeholders))
		pack.AddBiomeIdMapper(scope, mapper)
	}
	return nil
}

// parseMapperObject walks the raw JSON token stream so that duplicate keys
// keep their first value; a plain map decode would keep the last.
// "texture_size" sets the declared size and "*:placeholder" keys are
// counted but excluded from the mappings.
func parseMapperObject(data []byte, mapper *polytone.BiomeIdMapper) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("mapper is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(float64)
		if !ok {
			return fmt.Errorf("mapper value for %q is not a number", key)
		}
		value := int(num)

		switch {
		case key == textureSizeKey:
			mapper.TextureSize = value
		case strings.Contains(key, placeholderMark):
			mapper.Placeholders++
		default:
			mapper.Put(key, value)
		}
	}

	_, err = dec.Token() // closing brace
	return err
}

// loadColormaps parses every standalone colormap file in dir. The texture
// is the sibling PNG with the same stem.
func loadColormaps(pack *polytone.ResourcePack, scope, dir string) {
	for _, path := range listJSONFiles(dir) {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable colormap", zap.String("path", path), zap.Error(err))
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			logger.Warn("skipping malformed colormap", zap.String("path", path), zap.Error(err))
			continue
		}

		name := stem(path)
		texture := filepath.Join(dir, name+pngExt)
		cm := polytone.NewColormap(name, path, texture, polytone.Standalone())

		readColormapDef(pack, scope, cm, fields)
		pack.AddColormap(scope, cm)
		logger.Debug("loaded colormap", zap.String("name", name))
	}
}

// readColormapDef fills a colormap's axis bindings and mapper from its JSON
// fields. The biome_id_mapper field is either a fully-qualified reference
// into the already-resolved mappers or an inline mapper object, which is
// registered in the pack and back-referenced to this colormap.
func readColormapDef(pack *polytone.ResourcePack, scope string, cm *polytone.Colormap, fields map[string]json.RawMessage) {
	var axis string
	if raw, ok := fields[xAxisKey]; ok && json.Unmarshal(raw, &axis) == nil {
		cm.XAxis = polytone.ParseAxisMapping(axis)
	}
	if raw, ok := fields[yAxisKey]; ok && json.Unmarshal(raw, &axis) == nil {
		cm.YAxis = polytone.ParseAxisMapping(axis)
	}

	raw, ok := fields[biomeIdMapperKey]
	if !ok {
		return
	}

	var ref string
	if json.Unmarshal(raw, &ref) == nil {
		ns, err := polytone.ParseNamespace(ref)
		if err != nil {
			logger.Warn("invalid mapper reference",
				zap.String("colormap", cm.Name), zap.String("ref", ref))
			return
		}
		if mapper, found := pack.BiomeIdMapper(ns); found {
			cm.Mapper = mapper
		} else {
			logger.Warn("unresolved mapper reference",
				zap.String("colormap", cm.Name), zap.String("ref", ref))
		}
		return
	}

	// Inline mapper object.
	mapper := polytone.NewBiomeIdMapper(cm.Name, cm.FilePath, polytone.InlineIn(cm.Name))
	if err := parseMapperObject(raw, mapper); err != nil {
		logger.Warn("malformed inline mapper",
			zap.String("colormap", cm.Name), zap.Error(err))
		return
	}
	pack.AddBiomeIdMapper(scope, mapper)
	cm.Mapper = mapper
}

// loadModifiers parses every modifier file in dir. Keys ending in
// "colormap" declare colormaps inline (object values) or reference
// standalone ones by identifier (string values); unresolved references are
// skipped silently.
func loadModifiers(pack *polytone.ResourcePack, scope, dir string, kind polytone.ModifierKind) {
	for _, path := range listJSONFiles(dir) {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable modifier", zap.String("path", path), zap.Error(err))
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			logger.Warn("skipping malformed modifier", zap.String("path", path), zap.Error(err))
			continue
		}

		mod := polytone.NewModifier(stem(path), path, kind)

		for key, raw := range fields {
			if !strings.HasSuffix(key, colormapKeySuf) {
				continue
			}

			var ref string
			if json.Unmarshal(raw, &ref) == nil {
				ns, err := polytone.ParseNamespace(ref)
				if err != nil {
					continue
				}
				if cm, found := pack.Colormap(ns); found {
					mod.Colormaps = append(mod.Colormaps, cm)
				}
				continue
			}

			var obj map[string]json.RawMessage
			if json.Unmarshal(raw, &obj) != nil {
				continue
			}

			name := inlineColormapName(key, path)
			texture := filepath.Join(filepath.Dir(path), name+pngExt)
			cm := polytone.NewColormap(name, path, texture, polytone.InlineIn(mod.Name))

			readColormapDef(pack, scope, cm, obj)
			mod.Colormaps = append(mod.Colormaps, cm)
			pack.AddColormap(scope, cm)
		}

		pack.AddModifier(scope, mod)
		logger.Debug("loaded modifier",
			zap.String("name", mod.Name),
			zap.Stringer("kind", kind),
			zap.Int("colormaps", len(mod.Colormaps)))
	}
}

// inlineColormapName derives an inline colormap's name from its declaring
// file and key: the file stem by default, with the key's qualifier appended
// when present ("temperature_colormap" -> "<stem>_temperature").
func inlineColormapName(key, path string) string {
	base := stem(path)

	qualifier := strings.TrimSuffix(key, colormapKeySuf)
	qualifier = strings.TrimSuffix(qualifier, "_")
	if qualifier == "" {
		return base
	}
	return base + "_" + qualifier
}
