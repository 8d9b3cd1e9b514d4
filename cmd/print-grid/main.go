package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/ironsheep/print-grid-mcp/internal/config"
	"github.com/ironsheep/print-grid-mcp/internal/grid"
	"github.com/ironsheep/print-grid-mcp/internal/logging"
	"github.com/ironsheep/print-grid-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// app carries the resolved configuration and logger shared by every command.
type app struct {
	cfg     config.Config
	cfgPath string
	log     zerolog.Logger
	errOut  io.Writer
}

func main() {
	root := newRootCommand(os.Stderr)
	if err := root.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError logs a command failure. The resolved logger may not exist yet
// when config resolution itself failed, so it builds its own.
func reportError(w io.Writer, err error) {
	log := logging.New(w, "error")
	log.Error().Err(err).Msg("print-grid")
}

func newRootCommand(errOut io.Writer) *cobra.Command {
	a := &app{
		cfg:    config.DefaultConfig(),
		errOut: errOut,
		log:    zerolog.Nop(),
	}

	root := &cobra.Command{
		Use:   "print-grid",
		Short: "Tile an image across a print sheet at a fixed DPI",
		Long: `print-grid resamples an image to a physical tile size and repeats it in a
centered grid on a print sheet, then writes the sheet as JPEG.

Run without a subcommand it serves the MCP protocol on stdin/stdout.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.resolve,
		RunE:              a.runServe,
	}
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.print-grid/config.toml)")
	pf.IntVar(&a.cfg.DPI, "dpi", a.cfg.DPI, "resolution for tiles and sheets")
	pf.StringVar(&a.cfg.Filter, "filter", a.cfg.Filter, fmt.Sprintf("resampling filter %v", grid.Filters()))
	pf.IntVar(&a.cfg.JPEGQuality, "quality", a.cfg.JPEGQuality, "JPEG quality (1-100)")
	pf.StringVar(&a.cfg.Background, "background", a.cfg.Background, "sheet background color as hex")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(a),
		newComposeCommand(a),
		newPlanCommand(a),
		newVersionCommand(),
	)
	return root
}

// resolve layers the config file and PRINT_GRID_* environment under any flags
// the user set, then builds the logger.
func (a *app) resolve(cmd *cobra.Command, _ []string) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if err := config.Resolve(&a.cfg, cfgFile, changed); err != nil {
		return err
	}

	a.log = logging.New(a.errOut, a.cfg.LogLevel)
	a.log.Debug().Interface("config", a.cfg).Str("config_file", cfgFile).Msg("configuration")
	return nil
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	a.log.Debug().Str("version", Version).Str("built", BuildTime).Str("commit", GitCommit).Msg("starting MCP server")
	srv := server.New(a.cfg, a.log)
	return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
