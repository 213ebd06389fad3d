package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-uwg/internal/config"
	"github.com/ladybug-tools/dragonfly-uwg/internal/server"
)

// app carries process state shared by the commands.
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

// errInvalid makes the process exit non-zero after a report was printed.
var errInvalid = errors.New("project has validation errors")

func main() {
	a := &app{cfg: config.Default(), log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:           "dfuwg",
		Short:         "Urban district typology aggregation for Urban Weather Generator inputs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.summarizeCmd())
	rootCmd.AddCommand(a.matrixCmd())
	rootCmd.AddCommand(a.exportCmd())
	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.batchCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			a.log.WithError(err).Error("dfuwg failed")
		}
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// projectPath falls back to DFUWG_PROJECT_FILE, then the working directory.
func (a *app) projectPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if a.cfg.ProjectFile != "" {
		return a.cfg.ProjectFile
	}
	return "."
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a district project without writing UWG input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runValidate(a.projectPath(args))
		},
	}
}

func (a *app) summarizeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize [project-path]",
		Short: "Print the resolved typologies and district aggregates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runSummarize(a.projectPath(args), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func (a *app) matrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix [project-path]",
		Short: "Print the 16x3 UWG building-type matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runMatrix(a.projectPath(args))
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [project-path]",
		Short: "Write the UWG input record as JSON (.zst output is compressed)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runExport(a.projectPath(args), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; stdout when empty")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local server exposing the resolved district as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !c.Flags().Changed("port") {
				port = a.cfg.Port
			}
			srv := server.New(a.projectPath(args), port, a.log)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		outDir      string
		compress    bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch project-path...",
		Short: "Process several projects in parallel and optionally export each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !c.Flags().Changed("concurrency") {
				concurrency = a.cfg.BatchConcurrency
			}
			return a.runBatch(c.Context(), args, concurrency, outDir, compress)
		},
	}

	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "directory for one UWG input file per project")
	cmd.Flags().BoolVar(&compress, "compress", false, "compress exported files with zstd")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 4, "projects processed at once")
	return cmd
}
