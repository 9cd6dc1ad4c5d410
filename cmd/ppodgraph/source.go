package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/c360studio/ppodgraph/config"
	"github.com/c360studio/ppodgraph/source"
)

// openSource opens the configured sheet source. The returned func
// releases it.
func openSource(ctx context.Context, cfg *config.Config) (source.Reader, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceWorkbook:
		wb, err := source.OpenWorkbook(cfg.Source.WorkbookPath)
		if err != nil {
			return nil, nil, err
		}
		return wb, func() { _ = wb.Close() }, nil
	case config.SourceGoogleSheets:
		client, err := googleClient(ctx, cfg.Source)
		if err != nil {
			return nil, nil, err
		}
		gs, err := source.NewGoogleSheets(ctx, cfg.Source.SpreadsheetID, option.WithHTTPClient(client))
		if err != nil {
			return nil, nil, err
		}
		return gs, func() {}, nil
	default:
		return nil, nil, &config.Error{Field: "source.kind", Err: fmt.Errorf("unknown source kind %q", cfg.Source.Kind)}
	}
}

// googleClient authorizes a read-only Sheets client from a service
// account key file.
func googleClient(ctx context.Context, cfg config.SourceConfig) (*http.Client, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, &config.Error{Field: "source.credentials_file", Err: err}
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, &config.Error{Field: "source.credentials_file", Err: fmt.Errorf("parse credentials: %w", err)}
	}
	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = cfg.Timeout
	return client, nil
}
