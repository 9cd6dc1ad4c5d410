package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/ppodgraph/config"
)

// rootOptions holds the command-line flags. Non-empty values override
// the loaded configuration.
type rootOptions struct {
	configPath string
	output     string
	format     string
	profile    string
	sourceKind string
	workbook   string
	logLevel   string
	logFormat  string
	dryRun     bool
}

func (o *rootOptions) apply(cfg *config.Config) {
	if o.output != "" {
		cfg.Output.Path = o.output
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.profile != "" {
		cfg.Output.Profile = o.profile
	}
	if o.workbook != "" {
		cfg.Source.WorkbookPath = o.workbook
		if o.sourceKind == "" {
			cfg.Source.Kind = config.SourceWorkbook
		}
	}
	if o.sourceKind != "" {
		cfg.Source.Kind = o.sourceKind
	}
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert the PPOD spreadsheet into an RDF graph",
		Long: `ppodgraph reads the People, Organizations, Projects and Datasets
worksheets of the PPOD spreadsheet, together with its supporting sheets,
resolves county, habitat and vocabulary codes through lookup tables, and
writes the result as a Turtle, N-Triples or JSON-LD graph.

Unknown lookup codes are reported at the end of the run and do not stop it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runConvert(ctx, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&opts.sourceKind, "source", "", "Sheet source (gsheets, workbook)")
	flags.StringVar(&opts.workbook, "workbook", "", "Read worksheets from a local .xlsx file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Ontology profile (minimal, bfo, cco)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Map everything but write and publish nothing")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sheets",
		Short: "List the worksheets of the configured source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSheets(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})

	return cmd
}

// setup builds the logger and the validated configuration.
func setup(opts *rootOptions, stderr io.Writer) (*config.Config, error) {
	logger, err := newLogger(opts.logLevel, opts.logFormat, stderr)
	if err != nil {
		return nil, withCode(exitConfig, err)
	}
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(opts.configPath)
	if err != nil {
		return nil, classify(err)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, classify(err)
	}
	return cfg, nil
}

func listSheets(ctx context.Context, opts *rootOptions, stdout, stderr io.Writer) error {
	cfg, err := setup(opts, stderr)
	if err != nil {
		return err
	}
	reader, closeReader, err := openSource(ctx, cfg)
	if err != nil {
		return classify(err)
	}
	defer closeReader()

	names, err := reader.SheetNames(ctx)
	if err != nil {
		return classify(err)
	}
	configured := make(map[string]string, len(cfg.Sheets))
	for logical, ws := range cfg.Sheets {
		if ws != "" {
			configured[ws] = logical
		}
	}
	for _, name := range names {
		if logical, ok := configured[name]; ok {
			fmt.Fprintf(stdout, "%s\t(%s)\n", name, logical)
			continue
		}
		fmt.Fprintln(stdout, name)
	}
	return nil
}
