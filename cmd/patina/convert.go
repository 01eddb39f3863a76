package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/patina/internal/matdesc"
)

func convertCmd() *cli.Command {
	var (
		inPath  string
		outPath string
	)

	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a material description between JSON and YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "in",
				Aliases:     []string{"i"},
				Usage:       "input description file",
				Destination: &inPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file, format picked by extension",
				Destination: &outPath,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			doc, err := loadDocument(inPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			// Round through the store so the output comes out validated, with
			// attributes sorted the way lookup expects them.
			m, err := doc.Material()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			normalized, err := matdesc.FromMaterial(m)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			var data []byte
			switch strings.ToLower(filepath.Ext(outPath)) {
			case ".yaml", ".yml":
				data, err = matdesc.EncodeYAML(normalized)
			default:
				data, err = matdesc.EncodeJSON(normalized)
			}
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %q: %v", outPath, err), 1)
			}
			fmt.Printf("wrote %s (%d bytes)\n", outPath, len(data))
			return nil
		},
	}
}
