package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/print-grid-mcp/internal/imaging"
	"github.com/ironsheep/print-grid-mcp/internal/sheet"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
}

// addSizeFlags registers the per-sheet size fields. They are kept as text so
// the grid parser reports malformed numbers the same way the MCP tools do.
func addSizeFlags(cmd *cobra.Command, req *sheet.Request) {
	cmd.Flags().StringVar(&req.TileWidth, "tile-width", "", "tile width in inches (default: native size at 600 DPI)")
	cmd.Flags().StringVar(&req.TileHeight, "tile-height", "", "tile height in inches (default: native size at 600 DPI)")
	cmd.Flags().StringVar(&req.SheetWidth, "sheet-width", "", "sheet width in inches (default: sheet_width from config, 4)")
	cmd.Flags().StringVar(&req.SheetHeight, "sheet-height", "", "sheet height in inches (default: sheet_height from config, 6)")
}

func newComposeCommand(a *app) *cobra.Command {
	var req sheet.Request
	var out string

	cmd := &cobra.Command{
		Use:   "compose <image>",
		Short: "Render a print sheet and write it as JPEG",
		Example: `  print-grid compose photo.png --tile-width 2 --tile-height 3
  print-grid compose badge.webp --tile-width 1 --tile-height 1 --sheet-width 8.5 --sheet-height 11 --out sheet.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imaging.NewImageCache().Load(args[0])
			if err != nil {
				return err
			}

			res, err := sheet.NewRenderer(a.cfg, a.log).Render(img, req)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, res.Output.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write sheet: %w", err)
			}

			p := res.Placement
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d x %d tiles of %dx%d px on a %dx%d px sheet\n",
				out, p.TilesX, p.TilesY, p.Tile.Width, p.Tile.Height, p.Sheet.Width, p.Sheet.Height)
			return nil
		},
	}
	addSizeFlags(cmd, &req)
	cmd.Flags().StringVarP(&out, "out", "o", imaging.OutputFilename, "output file")
	return cmd
}

func newPlanCommand(a *app) *cobra.Command {
	var req sheet.Request
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan <image>",
		Short: "Show how many tiles fit without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imaging.NewImageCache().Load(args[0])
			if err != nil {
				return err
			}

			res, err := sheet.NewRenderer(a.cfg, a.log).Plan(img, req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			p := res.Placement
			fmt.Fprintf(w, "tile:    %g x %g in = %d x %d px\n", res.TileInches.Width, res.TileInches.Height, p.Tile.Width, p.Tile.Height)
			fmt.Fprintf(w, "sheet:   %g x %g in = %d x %d px at %d dpi\n", res.SheetInches.Width, res.SheetInches.Height, p.Sheet.Width, p.Sheet.Height, res.DPI)
			fmt.Fprintf(w, "grid:    %d x %d (%d tiles)\n", p.TilesX, p.TilesY, p.Count())
			fmt.Fprintf(w, "margins: left %d, right %d, top %d, bottom %d px\n", p.MarginX, p.MarginRight(), p.MarginY, p.MarginBottom())
			return nil
		},
	}
	addSizeFlags(cmd, &req)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config resolution so version works with a broken config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "print-grid %s\n", Version)
			fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
		},
	}
}
