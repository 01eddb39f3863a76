package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/patina/internal/matdesc"
	"github.com/samcharles93/patina/pkg/material"
)

func inspectCmd() *cli.Command {
	var (
		filePath  string
		layerOnly int
		showRaw   bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect a material description file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to a .json or .yaml material description",
				Destination: &filePath,
				Required:    true,
			},
			&cli.IntFlag{Name: "layer", Usage: "show only the given layer", Value: -1, Destination: &layerOnly},
			&cli.BoolFlag{Name: "raw", Usage: "hex dump the encoded attribute records", Destination: &showRaw},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			doc, err := loadDocument(filePath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			m, err := doc.Material()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			fmt.Printf("Material Inspect: %s\n", filePath)
			section("Summary")
			row("types", m.Types().String())
			row("layers", fmt.Sprintf("%d", m.LayerCount()))
			row("attributes", fmt.Sprintf("%d", m.TotalAttributeCount()))
			row("attribute_flags", m.AttributeDataFlags().String())
			row("layer_flags", m.LayerDataFlags().String())

			for layer := 0; layer < m.LayerCount(); layer++ {
				if layerOnly >= 0 && layerOnly != layer {
					continue
				}
				printLayer(m, layer, showRaw)
			}
			return nil
		},
	}
}

func printLayer(m *material.Material, layer int, showRaw bool) {
	title := fmt.Sprintf("Layer %d", layer)
	if name := m.LayerName(layer); name != "" {
		title += " (" + name + ")"
	}
	section(title)

	if layer > 0 {
		row("factor", fmt.Sprintf("%g", m.LayerFactor(layer)))
		if m.HasLayerFactorTexture(layer) {
			row("factor_texture", fmt.Sprintf("%d", m.LayerFactorTexture(layer)))
			row("factor_swizzle", m.LayerFactorTextureSwizzle(layer).String())
			row("factor_matrix", formatMatrix(m.LayerFactorTextureMatrix(layer)))
			row("factor_coordinates", fmt.Sprintf("%d", m.LayerFactorTextureCoordinates(layer)))
			row("factor_array_layer", fmt.Sprintf("%d", m.LayerFactorTextureLayer(layer)))
		}
	}

	for i := 0; i < m.AttributeCount(layer); i++ {
		a := m.AttributeAt(layer, i)
		fmt.Printf("%-32s %-16s %v\n", a.Name(), a.Type(), a.Value())
		if showRaw {
			printRecord(a.Raw())
		}
	}
}

func printRecord(raw [material.RecordSize]byte) {
	for off := 0; off < len(raw); off += 16 {
		parts := make([]string, 16)
		for i := range parts {
			parts[i] = fmt.Sprintf("%02x", raw[off+i])
		}
		fmt.Printf("    %02d: %s\n", off, strings.Join(parts, " "))
	}
}

func formatMatrix(m material.Matrix3x3) string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func section(title string) {
	line := strings.Repeat("-", len(title)+8)
	fmt.Printf("\n%s\n--- %s ---\n%s\n", line, title, line)
}

func row(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-24s %s\n", label+":", value)
}

// loadDocument parses a description file, picking the codec by extension.
func loadDocument(path string) (*matdesc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return matdesc.DecodeYAML(data)
	default:
		return matdesc.DecodeJSON(data)
	}
}
