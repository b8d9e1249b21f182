package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dpshade/srs-wizard/internal/api"
	"github.com/dpshade/srs-wizard/internal/catalog"
	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/service"
	"github.com/dpshade/srs-wizard/internal/storage"
	"github.com/dpshade/srs-wizard/internal/ui"
	"github.com/dpshade/srs-wizard/internal/validation"
	"github.com/dpshade/srs-wizard/internal/wizard"
)

// runWizard starts the terminal wizard, seeded from --input when the file exists
func (c *CLI) runWizard(cmd *cobra.Command, args []string) error {
	if err := c.setup(""); err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	opts := ui.Options{RecordPath: input}
	if input != "" {
		if _, err := os.Stat(input); err == nil {
			record, err := c.service.LoadRecord(input)
			if err != nil {
				return err
			}
			opts.Record = &record
		}
	}

	model, err := ui.NewModel(c.service, opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "Could not start the wizard")
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (c *CLI) generateCommand() *cobra.Command {
	var (
		input     string
		outputDir string
		toPrinter bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a record file to PDF",
		Long: `Render a YAML or JSON record file to a PDF named after the project.

Every wizard step is validated first; --force renders incomplete records anyway.

Examples:
  srs-wizard generate --input portal.yaml
  srs-wizard generate --input portal.json --output ./out --print`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(outputDir); err != nil {
				return err
			}

			record, err := c.service.LoadRecord(input)
			if err != nil {
				return err
			}
			if !force {
				if err := c.service.ValidateAll(record); err != nil {
					return err
				}
			}

			mode := service.ModeDownload
			if toPrinter {
				mode = service.ModePrint
			}
			result, err := c.service.Generate(cmd.Context(), record, mode)
			return c.reportResult(cmd, result, err)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Record file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from configuration)")
	cmd.Flags().BoolVarP(&toPrinter, "print", "p", false, "Send the PDF to the printer after saving")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip step validation")
	cmd.MarkFlagRequired("input")
	return cmd
}

// reportResult prints a generation outcome. A saved file whose print step failed is reported
// before the error is returned.
func (c *CLI) reportResult(cmd *cobra.Command, result *service.Result, err error) error {
	out := cmd.OutOrStdout()
	if result != nil {
		printSuccess(out, "Generated %s (%d pages, %d bytes)", result.Path, result.Pages, result.Size)
		if err == nil && result.Mode == service.ModePrint.String() {
			printSuccess(out, "Sent %s to the printer", result.FileName)
		}
	}
	return err
}

func (c *CLI) validateCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a record file against every wizard step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(""); err != nil {
				return err
			}
			record, err := c.service.LoadRecord(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			titleColor.Fprintf(out, "%s\n", input)
			for _, step := range wizard.Steps() {
				result := validation.CheckStep(step.Index, record)
				if result.Valid {
					printSuccess(out, "%d. %s", step.Index+1, step.Title)
					continue
				}
				printWarning(out, "%d. %s", step.Index+1, step.Title)
				for _, e := range result.Errors {
					mutedColor.Fprintf(out, "    %s: %s\n", e.Field, e.Message)
				}
			}
			return c.service.ValidateAll(record)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Record file (.yaml, .yml or .json)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func (c *CLI) templateCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print an empty record file to fill in",
		Long: `Print an empty record in YAML or JSON. Every list starts with one blank entry.

Examples:
  srs-wizard template > portal.yaml
  srs-wizard template --format json > portal.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := storage.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInvalidInput, "Invalid format")
			}
			data, err := storage.EncodeRecord(models.NewRecord(), f)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "Could not encode the template")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	return cmd
}

func (c *CLI) examplesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "examples [QUERY]",
		Short: "List or fuzzy-search the sample documents",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := catalog.Search(strings.Join(args, " "))
			return formatExamples(cmd, results, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table or json")

	cmd.AddCommand(c.renderExampleCommand())
	return cmd
}

// formatExamples formats the catalog listing for output
func formatExamples(cmd *cobra.Command, results []models.Example, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return json.NewEncoder(out).Encode(results)
	case "table":
		fmt.Fprintf(out, "%-4s %-34s %-22s %-10s %s\n", "#", "Title", "Category", "Complexity", "Pages")
		fmt.Fprintln(out, strings.Repeat("-", 80))
		for _, e := range results {
			fmt.Fprintf(out, "%-4d %-34s %-22s %-10s %d\n", catalogNumber(e), e.Name, e.Category, e.Complexity, e.Pages)
		}
	default:
		if len(results) == 0 {
			fmt.Fprintln(out, "No examples match.")
			return nil
		}
		for _, e := range results {
			titleColor.Fprintf(out, "%d. %s\n", catalogNumber(e), e.Name)
			fmt.Fprintf(out, "   %s\n", e.Summary)
			mutedColor.Fprintf(out, "   %s\n", e.Description())
			fmt.Fprintln(out)
		}
	}
	return nil
}

// catalogNumber is the 1-based number accepted by "examples render"
func catalogNumber(e models.Example) int {
	for i, candidate := range catalog.All() {
		if candidate.Name == e.Name {
			return i + 1
		}
	}
	return 0
}

func (c *CLI) renderExampleCommand() *cobra.Command {
	var (
		outputDir string
		toPrinter bool
	)

	cmd := &cobra.Command{
		Use:   "render INDEX|TITLE",
		Short: "Render a sample document to PDF",
		Long: `Render one of the sample documents, chosen by its number in the listing or by title.

Examples:
  srs-wizard examples render 2
  srs-wizard examples render "Mobile Banking App" --print`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			example, err := catalog.Find(args[0])
			if err != nil {
				return err
			}
			if err := c.setup(outputDir); err != nil {
				return err
			}

			mode := service.ModeDownload
			if toPrinter {
				mode = service.ModePrint
			}
			result, err := c.service.GenerateSample(cmd.Context(), example, mode)
			return c.reportResult(cmd, result, err)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from configuration)")
	cmd.Flags().BoolVarP(&toPrinter, "print", "p", false, "Send the PDF to the printer after saving")
	return cmd
}

func (c *CLI) serveCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. Each client works through its own wizard session.

Documentation is served at /api/docs and the OpenAPI specification at /api/openapi.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(""); err != nil {
				return err
			}
			if port == 0 {
				port = c.cfg.Server.Port
			}

			server := api.NewAPIServer(c.service, port)
			server.SetVersion(Version)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return errors.Wrap(err, errors.ErrCodeInternalError, "API server stopped")
				}
				return nil
			case <-ctx.Done():
				shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Stop(shutdown)
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from configuration)")
	return cmd
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "srs-wizard %s\n", Version)
			fmt.Fprintf(out, "  commit:  %s\n", Commit)
			fmt.Fprintf(out, "  built:   %s\n", BuildDate)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
