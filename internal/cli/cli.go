// Package cli is the srs-wizard command tree. With no sub-command it starts the terminal wizard;
// the sub-commands cover headless generation, validation, the sample catalog and the HTTP API.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dpshade/srs-wizard/internal/config"
	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/service"
)

// Version information - set via ldflags at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	titleColor   = color.New(color.FgMagenta, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// Options wires the command tree to its dependencies
type Options struct {
	// LoadConfig resolves the configuration; config.Load when nil
	LoadConfig func() (*config.Config, error)
	// Launcher replaces the desktop launcher used for printing and opening
	Launcher service.Launcher
}

// CLI provides headless command-line interface functionality
type CLI struct {
	opts    Options
	cfg     *config.Config
	service *service.Service
	verbose bool
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	return &CLI{opts: opts}
}

// setup loads the configuration and builds the service. outputDir overrides the configured
// output directory when set.
func (c *CLI) setup(outputDir string) error {
	if c.cfg == nil {
		cfg, err := c.opts.LoadConfig()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidInput, "Invalid configuration")
		}
		c.cfg = cfg
	}
	if outputDir != "" {
		c.cfg.OutputDir = outputDir
	}

	c.service = service.NewService(c.cfg)
	if c.opts.Launcher != nil {
		c.service.WithLauncher(c.opts.Launcher)
	}
	return nil
}

// RootCommand builds the command tree
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "srs-wizard",
		Short: "Author a Software Requirements Specification and export it as PDF",
		Long: `srs-wizard walks through the six steps of a Software Requirements Specification
(project information, functional and non-functional requirements, architecture,
constraints, review) and renders the result as a paginated PDF.

Commands:
  (none)      Start the interactive terminal wizard
  generate    Render a record file to PDF
  validate    Check a record file against every wizard step
  template    Print an empty record file to fill in
  examples    List, search and render the sample documents
  serve       Start the HTTP API
  version     Show version info

Configuration:
  ~/.srs-wizard/config.yaml, a .env file and SRS_WIZARD_* environment variables`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runWizard,
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Show error details")
	root.Flags().StringP("input", "i", "", "Record file to edit; ctrl+s saves back to it")

	root.AddCommand(
		c.generateCommand(),
		c.validateCommand(),
		c.templateCommand(),
		c.examplesCommand(),
		c.serveCommand(),
		c.versionCommand(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	c := NewCLI(Options{})
	if err := c.RootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, c.formatError(err))
		os.Exit(1)
	}
}

// formatError renders application errors through the CLI error handler and anything else,
// such as flag parsing errors, as a plain error line
func (c *CLI) formatError(err error) string {
	if !errors.IsAppError(err) {
		return color.RedString("ERROR: %v", err)
	}
	handler := errors.NewCLIErrorHandler(c.verbose)
	return handler.FormatError(err)
}

func printSuccess(w io.Writer, format string, args ...interface{}) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...interface{}) {
	warningColor.Fprintf(w, "! "+format+"\n", args...)
}
