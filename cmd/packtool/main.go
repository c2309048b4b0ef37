// packtool is a CLI utility for inspecting and editing Polytone resource
// pack colormaps.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aredhel/polytone-edit/internal/editor"
	"github.com/aredhel/polytone-edit/internal/logger"
	"github.com/aredhel/polytone-edit/internal/resolver"
	"github.com/aredhel/polytone-edit/pkg/coloredit"
	"github.com/aredhel/polytone-edit/pkg/polytone"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// The resolver logs through the global logger; keep the CLI quiet
	// unless something goes wrong.
	logger.InitWithFileConfig("error", logger.FileConfig{}, true)
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "extract", "x":
		cmdExtract(args)
	case "apply":
		cmdApply(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`packtool - Polytone resource pack colormap utility

Usage:
  packtool <command> [options]

Commands:
  info <pack>                            Show pack summary
  list <pack> [pattern]                  List assets (optional substring filter)
  extract <pack> <colormap> <biome>      Print one slice as hex pixels
  apply <pack> <colormap> <biome> [...]  Edit one slice and write it back

Apply options:
  -color RRGGBB       Fill the slice with a solid color
  -hue N              Hue shift in degrees (-180..180)
  -saturation N       Saturation shift (-1..1)
  -brightness N       Brightness shift (-1..1)

The colormap is addressed as "scope:name"; the biome is a mapper key like
"minecraft:plains" or a bare numeric index.

Examples:
  packtool info ./my_pack
  packtool list ./my_pack grass
  packtool extract ./my_pack arda:grass minecraft:plains
  packtool apply ./my_pack arda:grass minecraft:plains -hue 30`)
}

func loadPack(root string) *polytone.ResourcePack {
	pack, err := resolver.Resolve(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return pack
}

func parseColormapArg(raw string) polytone.Namespace {
	ns, err := polytone.ParseNamespace(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid colormap %q: %v\n", raw, err)
		os.Exit(1)
	}
	return ns
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: packtool info <pack>")
		os.Exit(1)
	}

	pack := loadPack(args[0])

	fmt.Printf("Pack:      %s\n", args[0])
	fmt.Printf("Mappers:   %d\n", len(pack.MapperNamespaces()))
	fmt.Printf("Colormaps: %d\n", len(pack.ColormapNamespaces()))
	fmt.Printf("Modifiers: %d\n", len(pack.ModifierNamespaces()))
	fmt.Println()

	for _, ns := range pack.MapperNamespaces() {
		mapper, _ := pack.BiomeIdMapper(ns)
		fmt.Printf("  mapper %-32s %d biomes", ns, len(mapper.Mappings))
		if mapper.Placeholders > 0 {
			fmt.Printf(", %d placeholders", mapper.Placeholders)
		}
		if mapper.TextureSize > 0 {
			fmt.Printf(", texture_size %d", mapper.TextureSize)
		}
		fmt.Println()
	}

	for _, ns := range pack.ColormapNamespaces() {
		cm, _ := pack.Colormap(ns)
		fmt.Printf("  colormap %-30s x=%s y=%s (%s)\n", ns, cm.XAxis, cm.YAxis, cm.Declaration.Kind)
	}

	for _, ns := range pack.ModifierNamespaces() {
		mod, _ := pack.Modifier(ns)
		fmt.Printf("  modifier %-30s %s, %d colormaps\n", ns, mod.Kind, len(mod.Colormaps))
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N assets (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: packtool list <pack> [pattern]")
		os.Exit(1)
	}

	pack := loadPack(fs.Arg(0))

	pattern := ""
	if fs.NArg() > 1 {
		pattern = strings.ToLower(fs.Arg(1))
	}

	count := 0
	print := func(kind string, ns polytone.Namespace) bool {
		name := ns.String()
		if pattern != "" && !strings.Contains(strings.ToLower(name), pattern) {
			return true
		}
		fmt.Printf("%-9s %s\n", kind, name)
		count++
		return *limit == 0 || count < *limit
	}

	for _, ns := range pack.MapperNamespaces() {
		if !print("mapper", ns) {
			return
		}
	}
	for _, ns := range pack.ColormapNamespaces() {
		if !print("colormap", ns) {
			return
		}
	}
	for _, ns := range pack.ModifierNamespaces() {
		if !print("modifier", ns) {
			return
		}
	}

	if pattern != "" {
		fmt.Fprintf(os.Stderr, "\n(%d assets matched)\n", count)
	}
}

func cmdExtract(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: packtool extract <pack> <colormap> <biome>")
		os.Exit(1)
	}

	pack := loadPack(args[0])
	ns := parseColormapArg(args[1])

	session := editor.NewSession(pack)
	col, err := session.SelectBiome(ns, args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s @ index %d (%d pixels)\n", ns, col.Identifier.Index, col.Len())
	for row, argb := range col.Current() {
		fmt.Printf("  %3d  #%08X\n", row, argb)
	}
}

func cmdApply(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	colorHex := fs.String("color", "", "Fill color as RRGGBB or AARRGGBB")
	hue := fs.Float64("hue", 0, "Hue shift in degrees")
	saturation := fs.Float64("saturation", 0, "Saturation shift")
	brightness := fs.Float64("brightness", 0, "Brightness shift")

	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: packtool apply <pack> <colormap> <biome> [options]")
		os.Exit(1)
	}
	fs.Parse(args[3:])

	pack := loadPack(args[0])
	ns := parseColormapArg(args[1])
	biome := args[2]

	session := editor.NewSession(pack)
	col, err := session.SelectBiome(ns, biome)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *colorHex != "":
		argb, err := parseColor(*colorHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for row := 0; row < col.Len(); row++ {
			col.SetPixel(row, argb)
		}

	case *hue != 0 || *saturation != 0 || *brightness != 0:
		col.AdjustHSB(coloredit.HSB{
			Hue:        *hue,
			Saturation: *saturation,
			Brightness: *brightness,
		})

	default:
		fmt.Fprintln(os.Stderr, "Nothing to apply: pass -color or an HSB shift")
		os.Exit(1)
	}

	saved, failed := session.CommitAll(nil)
	if failed > 0 {
		fmt.Fprintln(os.Stderr, "Error: write failed, texture unchanged")
		os.Exit(1)
	}
	fmt.Printf("Wrote %d texture(s): %s index %d\n", saved, ns, col.Identifier.Index)
}

// parseColor reads RRGGBB or AARRGGBB hex. Without an alpha component the
// color is opaque.
func parseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	if len(s) <= 6 {
		return 0xFF000000 | uint32(v), nil
	}
	return uint32(v), nil
}
