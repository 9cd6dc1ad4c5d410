package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/ppodgraph/mapping"
)

// SheetReport summarizes one mapped worksheet.
type SheetReport struct {
	// Name is the logical sheet name.
	Name       string
	Worksheet  string
	Rows       int
	Mapped     int
	Skipped    int
	Statements int
	// Absent lists mapped columns missing from the worksheet.
	Absent []string
}

// Report summarizes a run.
type Report struct {
	RunID  string
	State  State
	Sheets []SheetReport
	// Problems are the collected unknown lookup codes. They never abort
	// a run.
	Problems   []*mapping.UnknownCodeError
	Statements int
	Entities   int
	// Undefined counts entities referenced but never defined by a row.
	Undefined int
	Output    string
	Published bool
	Duration  time.Duration
}

// Summary renders the report for the terminal.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s: %s in %s\n", r.RunID, r.State, r.Duration.Round(time.Millisecond))
	for _, s := range r.Sheets {
		fmt.Fprintf(&sb, "  %-16s %-22q %5d rows %5d mapped %5d skipped %6d statements\n",
			s.Name, s.Worksheet, s.Rows, s.Mapped, s.Skipped, s.Statements)
	}
	fmt.Fprintf(&sb, "Statements: %d\n", r.Statements)
	fmt.Fprintf(&sb, "Entities: %d (%d referenced only)\n", r.Entities, r.Undefined)
	if r.Output != "" {
		fmt.Fprintf(&sb, "Output: %s", r.Output)
		if r.Published {
			sb.WriteString(" (published)")
		}
		sb.WriteString("\n")
	}
	if len(r.Problems) == 0 {
		sb.WriteString("Lookup problems: none\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Lookup problems: %d\n", len(r.Problems))
	for _, p := range r.Problems {
		fmt.Fprintf(&sb, "  - %s\n", p.Error())
	}
	return sb.String()
}
