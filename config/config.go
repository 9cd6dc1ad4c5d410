// Package config provides configuration loading and management for ppodgraph.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/ppodgraph/export"
	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/mapping"
	"github.com/c360studio/ppodgraph/pipeline"
	"github.com/c360studio/ppodgraph/publish"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// Source kinds.
const (
	SourceGoogleSheets = "gsheets"
	SourceWorkbook     = "workbook"
)

// DefaultOutput is the output path used when none is configured.
const DefaultOutput = "PPOD.ttl"

// Config represents the complete ppodgraph configuration
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Sheets      map[string]string `yaml:"sheets"`
	Lookups     LookupsConfig     `yaml:"lookups"`
	Identifiers IdentifiersConfig `yaml:"identifiers"`
	Output      OutputConfig      `yaml:"output"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Publish     publish.Config    `yaml:"publish"`
}

// SourceConfig selects where worksheets are read from
type SourceConfig struct {
	// Kind is gsheets or workbook.
	Kind            string        `yaml:"kind"`
	SpreadsheetID   string        `yaml:"spreadsheet_id"`
	CredentialsFile string        `yaml:"credentials_file"`
	WorkbookPath    string        `yaml:"workbook_path"`
	Timeout         time.Duration `yaml:"timeout"`
}

// LookupsConfig locates the reference tables
type LookupsConfig struct {
	CountyFile  string `yaml:"county_file"`
	HabitatFile string `yaml:"habitat_file"`
	// CountyBase prefixes bare county identifiers.
	CountyBase string `yaml:"county_base"`
	// Extra is a doublestar glob of further code tables.
	Extra string `yaml:"extra"`
}

// IdentifiersConfig controls how instance identifiers are minted
type IdentifiersConfig struct {
	Base            string   `yaml:"base"`
	Scheme          string   `yaml:"scheme"`
	CaseInsensitive []string `yaml:"case_insensitive"`
}

// OutputConfig controls the written graph
type OutputConfig struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format"`
	Profile string `yaml:"profile"`
	// Labels and VocabularyLabels default to true; pointers let a file
	// turn them off.
	Labels           *bool `yaml:"labels"`
	VocabularyLabels *bool `yaml:"vocabulary_labels"`
}

// MetricsConfig configures the Pushgateway
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	Job            string `yaml:"job"`
}

// DefaultSheets returns the worksheet names of the PPOD spreadsheet.
func DefaultSheets() map[string]string {
	return map[string]string{
		mapping.SheetPersons:           "People",
		mapping.SheetOrganizations:     "Organizations",
		mapping.SheetProjects:          "Projects",
		mapping.SheetDatasets:          "Datasets",
		mapping.SheetPrograms:          "Programs",
		mapping.SheetGuidelines:        "Guidelines_Mandates",
		mapping.SheetTools:             "Tools",
		mapping.SheetPeopleOrg:         "PeopleOrg",
		mapping.SheetPeopleProj:        "PeopleProj",
		mapping.SheetPeopleProgram:     "PeopleProgram",
		mapping.SheetOrgGM:             "OrgGM",
		mapping.SheetOrgProjGM:         "OrgProjGM",
		pipeline.SheetVocabularies:     "Vocabularies",
		pipeline.SheetIssuesIntegrated: "Issues (Integrated)",
		pipeline.SheetIssuesComponent:  "Issues (Component)",
	}
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:    SourceGoogleSheets,
			Timeout: 2 * time.Minute,
		},
		Sheets: DefaultSheets(),
		Lookups: LookupsConfig{
			CountyBase: ppod.WikidataEntity,
		},
		Identifiers: IdentifiersConfig{
			Base:   ppod.TermsNamespace,
			Scheme: string(identity.SchemeEncoded),
		},
		Output: OutputConfig{
			Path:             DefaultOutput,
			Format:           string(export.FormatTurtle),
			Profile:          string(export.ProfileMinimal),
			Labels:           boolPtr(true),
			VocabularyLabels: boolPtr(true),
		},
		Metrics: MetricsConfig{
			Job: "ppodgraph",
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// LabelsEnabled reports whether entity labels are emitted.
func (c *Config) LabelsEnabled() bool {
	return c.Output.Labels == nil || *c.Output.Labels
}

// VocabularyLabelsEnabled reports whether vocabulary labels are emitted.
func (c *Config) VocabularyLabelsEnabled() bool {
	return c.Output.VocabularyLabels == nil || *c.Output.VocabularyLabels
}

// PublishEnabled reports whether any publish setting is present.
func (c *Config) PublishEnabled() bool {
	p := c.Publish
	return p.Endpoint != "" || p.Bucket != "" || p.AccessKey != "" || p.SecretKey != ""
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceGoogleSheets:
		if c.Source.SpreadsheetID == "" {
			return &Error{Field: "source.spreadsheet_id", Err: ErrRequired}
		}
		if c.Source.CredentialsFile == "" {
			return &Error{Field: "source.credentials_file", Err: ErrRequired}
		}
	case SourceWorkbook:
		if c.Source.WorkbookPath == "" {
			return &Error{Field: "source.workbook_path", Err: ErrRequired}
		}
	default:
		return &Error{Field: "source.kind", Err: fmt.Errorf("unknown source kind %q (valid: gsheets, workbook)", c.Source.Kind)}
	}
	if c.Source.Timeout < 0 {
		return &Error{Field: "source.timeout", Err: errors.New("must not be negative")}
	}

	if err := c.validateSheets(); err != nil {
		return err
	}

	if !identity.Scheme(c.Identifiers.Scheme).IsValid() {
		return &Error{Field: "identifiers.scheme", Err: fmt.Errorf("unknown scheme %q (valid: encoded, crc24)", c.Identifiers.Scheme)}
	}
	if _, err := c.CaseInsensitiveTypes(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Output.Path) == "" {
		return &Error{Field: "output.path", Err: ErrRequired}
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return &Error{Field: "output.format", Err: err}
	}
	if _, err := export.ParseProfile(c.Output.Profile); err != nil {
		return &Error{Field: "output.profile", Err: err}
	}

	if c.PublishEnabled() {
		if err := c.Publish.Validate(); err != nil {
			return &Error{Field: "publish", Err: err}
		}
	}
	return nil
}

func (c *Config) validateSheets() error {
	known := DefaultSheets()
	for name := range c.Sheets {
		if _, ok := known[name]; !ok {
			return &Error{Field: "sheets." + name, Err: errors.New("unknown sheet")}
		}
	}
	for _, name := range pipeline.CoreSheets {
		if strings.TrimSpace(c.Sheets[name]) == "" {
			return &Error{Field: "sheets." + name, Err: errors.New("core sheet cannot be disabled")}
		}
	}
	return nil
}

// CaseInsensitiveTypes parses identifiers.case_insensitive.
func (c *Config) CaseInsensitiveTypes() ([]ppod.EntityType, error) {
	types := make([]ppod.EntityType, 0, len(c.Identifiers.CaseInsensitive))
	for _, s := range c.Identifiers.CaseInsensitive {
		t, err := ppod.ParseEntityType(s)
		if err != nil {
			return nil, &Error{Field: "identifiers.case_insensitive", Err: err}
		}
		types = append(types, t)
	}
	return types, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	overlay, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	config.Merge(overlay)
	return config, nil
}

// parseFile reads a YAML file without applying defaults.
func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, &Error{Field: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Sheet names present in other replace this config's, so an empty name
// disables a sheet.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Source
	setString(&c.Source.Kind, other.Source.Kind)
	setString(&c.Source.SpreadsheetID, other.Source.SpreadsheetID)
	setString(&c.Source.CredentialsFile, other.Source.CredentialsFile)
	setString(&c.Source.WorkbookPath, other.Source.WorkbookPath)
	if other.Source.Timeout != 0 {
		c.Source.Timeout = other.Source.Timeout
	}

	// Sheets
	if len(other.Sheets) > 0 && c.Sheets == nil {
		c.Sheets = make(map[string]string, len(other.Sheets))
	}
	for name, ws := range other.Sheets {
		c.Sheets[name] = strings.TrimSpace(ws)
	}

	// Lookups
	setString(&c.Lookups.CountyFile, other.Lookups.CountyFile)
	setString(&c.Lookups.HabitatFile, other.Lookups.HabitatFile)
	setString(&c.Lookups.CountyBase, other.Lookups.CountyBase)
	setString(&c.Lookups.Extra, other.Lookups.Extra)

	// Identifiers
	setString(&c.Identifiers.Base, other.Identifiers.Base)
	setString(&c.Identifiers.Scheme, other.Identifiers.Scheme)
	if len(other.Identifiers.CaseInsensitive) > 0 {
		c.Identifiers.CaseInsensitive = slices.Clone(other.Identifiers.CaseInsensitive)
	}

	// Output
	setString(&c.Output.Path, other.Output.Path)
	setString(&c.Output.Format, other.Output.Format)
	setString(&c.Output.Profile, other.Output.Profile)
	if other.Output.Labels != nil {
		c.Output.Labels = boolPtr(*other.Output.Labels)
	}
	if other.Output.VocabularyLabels != nil {
		c.Output.VocabularyLabels = boolPtr(*other.Output.VocabularyLabels)
	}

	// Metrics
	setString(&c.Metrics.PushgatewayURL, other.Metrics.PushgatewayURL)
	setString(&c.Metrics.Job, other.Metrics.Job)

	// Publish
	setString(&c.Publish.Endpoint, other.Publish.Endpoint)
	setString(&c.Publish.Bucket, other.Publish.Bucket)
	setString(&c.Publish.Prefix, other.Publish.Prefix)
	setString(&c.Publish.Region, other.Publish.Region)
	setString(&c.Publish.AccessKey, other.Publish.AccessKey)
	setString(&c.Publish.SecretKey, other.Publish.SecretKey)
	if other.Publish.UseSSL {
		c.Publish.UseSSL = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
