package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/c360studio/ppodgraph/config"
	"github.com/c360studio/ppodgraph/export"
	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/metrics"
	"github.com/c360studio/ppodgraph/pipeline"
	"github.com/c360studio/ppodgraph/publish"
)

func runConvert(ctx context.Context, opts *rootOptions, stdout, stderr io.Writer) error {
	cfg, err := setup(opts, stderr)
	if err != nil {
		return err
	}
	logger := slog.Default()

	ids, err := identityBuilder(cfg)
	if err != nil {
		return classify(err)
	}
	popts, err := pipelineOptions(cfg, opts.dryRun)
	if err != nil {
		return classify(err)
	}

	recorder := metrics.NewRecorder(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, logger)
	driverOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithRecorder(recorder),
	}
	if cfg.PublishEnabled() && !opts.dryRun {
		pub, err := publish.NewS3Publisher(cfg.Publish, logger)
		if err != nil {
			return withCode(exitConfig, err)
		}
		driverOpts = append(driverOpts, pipeline.WithPublisher(pub))
	}

	reader, closeReader, err := openSource(ctx, cfg)
	if err != nil {
		return classify(err)
	}
	defer closeReader()

	logger.Info("Starting conversion",
		slog.String("source", cfg.Source.Kind),
		slog.String("output", popts.Output),
		slog.String("format", string(popts.Format)),
		slog.String("profile", string(popts.Profile)),
		slog.Bool("dry_run", popts.DryRun))

	report, runErr := pipeline.NewDriver(popts, reader, ids, driverOpts...).Run(ctx)
	if report != nil {
		fmt.Fprint(stdout, report.Summary())
	}
	if err := recorder.Push(ctx); err != nil {
		logger.Warn("Metrics push failed", slog.String("error", err.Error()))
	}
	return classify(runErr)
}

func identityBuilder(cfg *config.Config) (*identity.Builder, error) {
	types, err := cfg.CaseInsensitiveTypes()
	if err != nil {
		return nil, err
	}
	ids, err := identity.NewBuilder(identity.Options{
		Base:            cfg.Identifiers.Base,
		Scheme:          identity.Scheme(cfg.Identifiers.Scheme),
		CaseInsensitive: types,
	})
	if err != nil {
		return nil, &config.Error{Field: "identifiers", Err: err}
	}
	return ids, nil
}

func pipelineOptions(cfg *config.Config, dryRun bool) (pipeline.Options, error) {
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return pipeline.Options{}, &config.Error{Field: "output.format", Err: err}
	}
	profile, err := export.ParseProfile(cfg.Output.Profile)
	if err != nil {
		return pipeline.Options{}, &config.Error{Field: "output.profile", Err: err}
	}
	return pipeline.Options{
		Sheets: cfg.Sheets,
		References: pipeline.References{
			CountyFile:  cfg.Lookups.CountyFile,
			HabitatFile: cfg.Lookups.HabitatFile,
			CountyBase:  cfg.Lookups.CountyBase,
			Extra:       cfg.Lookups.Extra,
		},
		Output:           cfg.Output.Path,
		Format:           format,
		Profile:          profile,
		Labels:           cfg.LabelsEnabled(),
		VocabularyLabels: cfg.VocabularyLabelsEnabled(),
		DryRun:           dryRun,
	}, nil
}
