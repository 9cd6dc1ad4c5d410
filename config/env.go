package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/c360studio/ppodgraph/publish"
)

// EnvFiles are loaded, when present, before the environment is read.
var EnvFiles = []string{".env", ".env.local"}

// Environment holds the PPOD_* variables that override file settings.
type Environment struct {
	Source          string `env:"PPOD_SOURCE"`
	SpreadsheetID   string `env:"PPOD_SPREADSHEET_ID"`
	CredentialsFile string `env:"PPOD_CREDENTIALS_FILE"`
	Workbook        string `env:"PPOD_WORKBOOK"`
	Output          string `env:"PPOD_OUTPUT"`
	Format          string `env:"PPOD_FORMAT"`
	Profile         string `env:"PPOD_PROFILE"`
	CountyFile      string `env:"PPOD_COUNTY_FILE"`
	HabitatFile     string `env:"PPOD_HABITAT_FILE"`
	PushgatewayURL  string `env:"PPOD_PUSHGATEWAY_URL"`
	S3Endpoint      string `env:"PPOD_S3_ENDPOINT"`
	S3Bucket        string `env:"PPOD_S3_BUCKET"`
	S3Prefix        string `env:"PPOD_S3_PREFIX"`
	S3Region        string `env:"PPOD_S3_REGION"`
	S3AccessKey     string `env:"PPOD_S3_ACCESS_KEY"`
	S3SecretKey     string `env:"PPOD_S3_SECRET_KEY"`
	S3UseSSL        bool   `env:"PPOD_S3_USE_SSL" envDefault:"false"`
}

// LoadEnv loads the env files that exist into the process environment.
// Variables already set are not overwritten.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// ParseEnvironment reads the PPOD_* variables.
func ParseEnvironment() (*Environment, error) {
	e := &Environment{}
	if err := env.Parse(e); err != nil {
		return nil, &Error{Field: "environment", Err: err}
	}
	return e, nil
}

// Overlay converts the environment into a config to merge.
func (e *Environment) Overlay() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:            e.Source,
			SpreadsheetID:   e.SpreadsheetID,
			CredentialsFile: e.CredentialsFile,
			WorkbookPath:    e.Workbook,
		},
		Lookups: LookupsConfig{
			CountyFile:  e.CountyFile,
			HabitatFile: e.HabitatFile,
		},
		Output: OutputConfig{
			Path:    e.Output,
			Format:  e.Format,
			Profile: e.Profile,
		},
		Metrics: MetricsConfig{
			PushgatewayURL: e.PushgatewayURL,
		},
		Publish: publish.Config{
			Endpoint:  e.S3Endpoint,
			Bucket:    e.S3Bucket,
			Prefix:    e.S3Prefix,
			Region:    e.S3Region,
			AccessKey: e.S3AccessKey,
			SecretKey: e.S3SecretKey,
			UseSSL:    e.S3UseSSL,
		},
	}
}
