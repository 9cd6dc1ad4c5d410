package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/ppodgraph/publish"
)

func publishSettings() publish.Config {
	return publish.Config{
		Endpoint:  "minio:9000",
		Bucket:    "ppod",
		AccessKey: "access",
		SecretKey: "secret",
		UseSSL:    true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// unsetEnv clears a variable for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func testLoader(t *testing.T) (*Loader, string, string) {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	l := NewLoader(nil)
	l.homeDir = home
	l.workDir = work
	l.envFiles = []string{filepath.Join(work, ".env")}
	return l, home, work
}

func TestLoaderPrecedence(t *testing.T) {
	l, home, work := testLoader(t)

	writeConfig(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
source:
  spreadsheet_id: from-user
  credentials_file: user-creds.json
output:
  path: user.ttl
  profile: bfo
`)
	writeConfig(t, filepath.Join(work, ProjectConfigFile), `
output:
  path: project.ttl
`)
	explicit := filepath.Join(work, "run.yaml")
	writeConfig(t, explicit, `
source:
  spreadsheet_id: from-explicit
`)
	unsetEnv(t, "PPOD_SPREADSHEET_ID")
	t.Setenv("PPOD_OUTPUT", "env.ttl")

	cfg, err := l.Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source.SpreadsheetID != "from-explicit" {
		t.Errorf("expected explicit spreadsheet id, got %s", cfg.Source.SpreadsheetID)
	}
	if cfg.Source.CredentialsFile != "user-creds.json" {
		t.Errorf("expected user credentials, got %s", cfg.Source.CredentialsFile)
	}
	if cfg.Output.Profile != "bfo" {
		t.Errorf("expected user profile bfo, got %s", cfg.Output.Profile)
	}
	if cfg.Output.Path != "env.ttl" {
		t.Errorf("expected environment output path, got %s", cfg.Output.Path)
	}
}

func TestLoaderProjectConfigInParent(t *testing.T) {
	l, _, work := testLoader(t)
	writeConfig(t, filepath.Join(work, ProjectConfigFile), "output:\n  format: ntriples\n")
	nested := filepath.Join(work, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	l.workDir = nested
	unsetEnv(t, "PPOD_FORMAT")

	cfg, err := l.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != "ntriples" {
		t.Errorf("expected project format ntriples, got %s", cfg.Output.Format)
	}
}

func TestLoaderEnvFile(t *testing.T) {
	l, _, work := testLoader(t)
	writeConfig(t, filepath.Join(work, ".env"), "PPOD_WORKBOOK=dump.xlsx\nPPOD_SOURCE=workbook\n")
	unsetEnv(t, "PPOD_WORKBOOK")
	unsetEnv(t, "PPOD_SOURCE")

	cfg, err := l.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source.Kind != SourceWorkbook || cfg.Source.WorkbookPath != "dump.xlsx" {
		t.Errorf("expected workbook source from .env, got %+v", cfg.Source)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoaderPublishFromEnvironment(t *testing.T) {
	l, _, _ := testLoader(t)
	t.Setenv("PPOD_S3_ENDPOINT", "minio:9000")
	t.Setenv("PPOD_S3_BUCKET", "graphs")
	t.Setenv("PPOD_S3_USE_SSL", "true")

	cfg, err := l.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Publish.Endpoint != "minio:9000" || cfg.Publish.Bucket != "graphs" || !cfg.Publish.UseSSL {
		t.Errorf("unexpected publish settings %+v", cfg.Publish)
	}
}

func TestLoaderInvalidEnvironment(t *testing.T) {
	l, _, _ := testLoader(t)
	t.Setenv("PPOD_S3_USE_SSL", "maybe")

	_, err := l.Load("")
	if !IsError(err) {
		t.Errorf("expected config.Error, got %v", err)
	}
}

func TestLoaderMissingExplicitFile(t *testing.T) {
	l, _, work := testLoader(t)

	_, err := l.Load(filepath.Join(work, "missing.yaml"))
	if !IsError(err) {
		t.Errorf("expected config.Error, got %v", err)
	}
}

func TestLoaderBrokenUserConfigIsIgnored(t *testing.T) {
	l, home, _ := testLoader(t)
	writeConfig(t, filepath.Join(home, UserConfigDir, UserConfigFile), "output: [")

	cfg, err := l.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Path == "" {
		t.Error("expected defaults after a broken user config")
	}
}
