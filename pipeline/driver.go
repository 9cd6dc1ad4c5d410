package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/ppodgraph/export"
	"github.com/c360studio/ppodgraph/graph"
	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/mapping"
	"github.com/c360studio/ppodgraph/source"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// Logical names of the worksheets that feed lookup tables rather than
// entities.
const (
	SheetVocabularies     = "vocabularies"
	SheetIssuesIntegrated = "issues_integrated"
	SheetIssuesComponent  = "issues_component"
)

// CoreSheets must be mapped in every run.
var CoreSheets = []string{
	mapping.SheetPersons,
	mapping.SheetOrganizations,
	mapping.SheetProjects,
	mapping.SheetDatasets,
}

// Row outcomes reported to the Recorder.
const (
	OutcomeMapped  = "mapped"
	OutcomeSkipped = "skipped"
	OutcomeBlank   = "blank"
)

// Recorder receives run measurements.
type Recorder interface {
	ObserveRow(sheet, outcome string)
	ObserveStatements(n int)
	ObserveProblem(vocabulary string)
	ObserveRun(d time.Duration, success bool)
}

// Publisher uploads the written output file.
type Publisher interface {
	Publish(ctx context.Context, runID, path string) error
}

// References locates the CSV lookup tables.
type References struct {
	CountyFile  string
	HabitatFile string
	// CountyBase prefixes bare county identifiers.
	CountyBase string
	// Extra is a glob of further (code, IRI) tables named after their file.
	Extra string
}

// Options configures a run.
type Options struct {
	// Sheets maps logical sheet names to worksheet names. An empty or
	// missing name disables a sheet; core sheets cannot be disabled.
	Sheets map[string]string

	References References

	// Tables defaults to mapping.DefaultTables.
	Tables *mapping.Tables

	Output  string
	Format  export.Format
	Profile export.Profile

	// Labels adds an rdfs:label and key statement per mapped entity.
	Labels bool
	// VocabularyLabels adds labels for lookup terms, use cases and
	// predicates.
	VocabularyLabels bool

	// DryRun maps everything but writes nothing.
	DryRun bool
}

// Option configures optional driver collaborators.
type Option func(*Driver)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithPublisher sets the publisher run after a successful write.
func WithPublisher(p Publisher) Option {
	return func(d *Driver) { d.publisher = p }
}

// Driver runs the conversion. A Driver runs once.
type Driver struct {
	opts      Options
	reader    source.Reader
	ids       *identity.Builder
	logger    *slog.Logger
	recorder  Recorder
	publisher Publisher

	state  State
	report *Report
	graph  *graph.Graph
	index  *graph.Index
	keys   map[ppod.EntityType]string
}

// NewDriver creates a driver reading from reader.
func NewDriver(opts Options, reader source.Reader, ids *identity.Builder, options ...Option) *Driver {
	d := &Driver{
		opts:     opts,
		reader:   reader,
		ids:      ids,
		logger:   slog.Default(),
		recorder: nopRecorder{},
		state:    StateInit,
		graph:    graph.New(),
		index:    graph.NewIndex(),
		keys:     make(map[ppod.EntityType]string),
	}
	for _, o := range options {
		o(d)
	}
	if d.opts.Tables == nil {
		d.opts.Tables = mapping.DefaultTables()
	}
	if d.opts.Format == "" {
		d.opts.Format = export.FormatTurtle
	}
	if d.opts.Profile == "" {
		d.opts.Profile = export.ProfileMinimal
	}
	return d
}

// State returns the driver's current state.
func (d *Driver) State() State {
	return d.state
}

// Graph returns the assembled graph.
func (d *Driver) Graph() *graph.Graph {
	return d.graph
}

// Run executes the conversion. On failure the returned report describes
// the work done before the failure and the error is a *Error.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	d.report = &Report{RunID: uuid.NewString(), Output: d.opts.Output}
	d.logger = d.logger.With("run_id", d.report.RunID)

	err := d.run(ctx)
	d.report.Duration = time.Since(start)
	d.report.Statements = d.graph.Len()
	d.report.Entities = d.index.Len()
	d.report.Undefined = len(d.index.Undefined())
	if err != nil {
		var pe *Error
		if !errors.As(err, &pe) {
			pe = &Error{State: d.state, Err: err}
			err = pe
		}
		d.logger.Error("Run failed", "state", pe.State, "error", err)
		if pe.State != StatePublishing {
			// Nothing was written.
			d.report.Output = ""
		}
		d.state = StateFailed
		d.report.State = d.state
		d.recorder.ObserveRun(d.report.Duration, false)
		return d.report, err
	}
	d.report.State = d.state
	d.recorder.ObserveRun(d.report.Duration, true)
	d.logger.Info("Run complete",
		"statements", d.report.Statements,
		"entities", d.report.Entities,
		"problems", len(d.report.Problems),
		"duration", d.report.Duration)
	return d.report, nil
}

func (d *Driver) run(ctx context.Context) error {
	if err := d.checkSheets(); err != nil {
		return &Error{State: d.state, Err: err}
	}
	if err := d.opts.Tables.Validate(); err != nil {
		return &Error{State: d.state, Err: err}
	}
	for _, spec := range d.opts.Tables.Entities {
		d.keys[spec.EntityType] = spec.KeyPredicate
	}

	if err := d.transition(StateLoadingReferences); err != nil {
		return err
	}
	set, err := d.loadReferences(ctx)
	if err != nil {
		return &Error{State: d.state, Err: err}
	}
	d.ensureVocabularies(set)

	mapper := mapping.NewMapper(d.ids, set, d.logger)
	for _, job := range d.jobs(mapper) {
		if err := ctx.Err(); err != nil {
			return &Error{State: d.state, Err: err}
		}
		if err := d.runJob(ctx, job); err != nil {
			return err
		}
	}

	d.addLabels(set)
	d.graph.AddAll(export.AlignmentTriples(d.opts.Profile))
	d.recorder.ObserveStatements(d.graph.Len())

	if d.opts.DryRun {
		d.report.Output = ""
		return d.transition(StateDone)
	}

	if err := d.transition(StateWriting); err != nil {
		return err
	}
	serializer, err := export.NewSerializer(d.opts.Format, nil)
	if err != nil {
		return &Error{State: d.state, Err: err}
	}
	if err := export.WriteFile(d.opts.Output, d.graph, serializer); err != nil {
		return &Error{State: d.state, Err: err}
	}
	d.logger.Info("Graph written", "path", d.opts.Output, "format", d.opts.Format, "statements", d.graph.Len())

	if d.publisher != nil {
		if err := d.transition(StatePublishing); err != nil {
			return err
		}
		if err := d.publisher.Publish(ctx, d.report.RunID, d.opts.Output); err != nil {
			return &Error{State: d.state, Err: err}
		}
		d.report.Published = true
	}
	return d.transition(StateDone)
}

func (d *Driver) transition(target State) error {
	if !d.state.CanTransitionTo(target) {
		return &Error{State: d.state, Err: fmt.Errorf("invalid transition from %s to %s", d.state, target)}
	}
	d.logger.Debug("State transition", "from", d.state, "to", target)
	d.state = target
	return nil
}

func (d *Driver) checkSheets() error {
	for _, name := range CoreSheets {
		if d.opts.Sheets[name] == "" {
			return &mapping.ConfigError{Sheet: name, Err: ErrNoWorksheet}
		}
	}
	if !d.opts.DryRun && d.opts.Output == "" {
		return ErrNoOutput
	}
	return nil
}

// job is one worksheet to map.
type job struct {
	sheet string
	check func(*source.Sheet) (mapping.HeaderCheck, error)
	row   func(source.Row) (*mapping.Result, error)
}

// jobs returns the worksheets to map in processing order: entity sheets,
// then role sheets, then relation sheets.
func (d *Driver) jobs(m *mapping.Mapper) []job {
	t := d.opts.Tables
	var out []job
	for i := range t.Entities {
		spec := &t.Entities[i]
		out = append(out, job{
			sheet: spec.Sheet,
			check: spec.CheckHeader,
			row:   func(r source.Row) (*mapping.Result, error) { return m.MapRow(spec, r) },
		})
	}
	for i := range t.Roles {
		spec := &t.Roles[i]
		out = append(out, job{
			sheet: spec.Sheet,
			check: spec.CheckHeader,
			row:   func(r source.Row) (*mapping.Result, error) { return m.MapRoleRow(spec, r) },
		})
	}
	for i := range t.Relations {
		spec := &t.Relations[i]
		out = append(out, job{
			sheet: spec.Sheet,
			check: spec.CheckHeader,
			row:   func(r source.Row) (*mapping.Result, error) { return m.MapRelationRow(spec, r) },
		})
	}
	return out
}

func (d *Driver) runJob(ctx context.Context, j job) error {
	worksheet := d.opts.Sheets[j.sheet]
	if worksheet == "" {
		d.logger.Debug("Sheet disabled", "sheet", j.sheet)
		return nil
	}
	if err := d.transition(StateReadingSheet); err != nil {
		return err
	}
	sheet, err := d.reader.ReadSheet(ctx, worksheet)
	if err != nil {
		return &Error{State: d.state, Sheet: j.sheet, Err: err}
	}
	check, err := j.check(sheet)
	if err != nil {
		return &Error{State: d.state, Sheet: j.sheet, Err: err}
	}
	if len(check.Absent) > 0 {
		d.logger.Info("Mapped columns missing from worksheet", "sheet", j.sheet, "columns", check.Absent)
	}
	if len(check.Unmapped) > 0 {
		d.logger.Debug("Unmapped columns ignored", "sheet", j.sheet, "columns", check.Unmapped)
	}

	if err := d.transition(StateMappingSheet); err != nil {
		return err
	}
	sr := SheetReport{Name: j.sheet, Worksheet: worksheet, Rows: len(sheet.Rows), Absent: check.Absent}
	before := d.graph.Len()
	for _, row := range sheet.Rows {
		if row.IsBlank() {
			sr.Skipped++
			d.recorder.ObserveRow(j.sheet, OutcomeBlank)
			continue
		}
		res, err := j.row(row)
		if errors.Is(err, identity.ErrEmptyKey) {
			sr.Skipped++
			d.recorder.ObserveRow(j.sheet, OutcomeSkipped)
			d.logger.Debug("Row skipped", "sheet", j.sheet, "row", row.Number, "reason", err)
			continue
		}
		if err != nil {
			return &Error{State: d.state, Sheet: j.sheet, Row: row.Number, Err: err}
		}
		if err := d.accept(res); err != nil {
			return &Error{State: d.state, Sheet: j.sheet, Row: row.Number, Err: err}
		}
		sr.Mapped++
		d.recorder.ObserveRow(j.sheet, OutcomeMapped)
	}
	sr.Statements = d.graph.Len() - before
	d.report.Sheets = append(d.report.Sheets, sr)
	d.logger.Info("Sheet mapped", "sheet", j.sheet, "rows", sr.Rows, "mapped", sr.Mapped,
		"skipped", sr.Skipped, "statements", sr.Statements)
	return nil
}

// accept records a row result in the index and the graph.
func (d *Driver) accept(res *mapping.Result) error {
	if res.Defines {
		if err := d.index.Define(res.Subject, res.Ref(), res.Label); err != nil {
			return err
		}
	}
	for _, ref := range res.References {
		if err := d.index.Reference(ref.IRI, ref.Ref); err != nil {
			return err
		}
	}
	d.graph.AddAll(res.Triples)
	for _, p := range res.Problems {
		d.recorder.ObserveProblem(p.Vocabulary)
		d.report.Problems = append(d.report.Problems, p)
	}
	return nil
}

type nopRecorder struct{}

func (nopRecorder) ObserveRow(string, string)      {}
func (nopRecorder) ObserveStatements(int)          {}
func (nopRecorder) ObserveProblem(string)          {}
func (nopRecorder) ObserveRun(time.Duration, bool) {}
