// Package pipeline runs one conversion: load reference tables, read and
// map each worksheet in a fixed order, then write the graph.
package pipeline

// State is the driver's position in a run.
type State string

const (
	// StateInit is the state before a run starts.
	StateInit State = "init"
	// StateLoadingReferences covers the CSV lookup tables and the
	// vocabulary worksheets.
	StateLoadingReferences State = "loading_references"
	// StateReadingSheet is entered once per mapped worksheet.
	StateReadingSheet State = "reading_sheet"
	// StateMappingSheet follows each StateReadingSheet.
	StateMappingSheet State = "mapping_sheet"
	// StateWriting serializes the graph to the output file.
	StateWriting State = "writing"
	// StatePublishing uploads the written file.
	StatePublishing State = "publishing"
	// StateDone indicates a successful run.
	StateDone State = "done"
	// StateFailed indicates the run was aborted. No output was written,
	// unless the failure happened while publishing.
	StateFailed State = "failed"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is known.
func (s State) IsValid() bool {
	switch s {
	case StateInit, StateLoadingReferences, StateReadingSheet, StateMappingSheet,
		StateWriting, StatePublishing, StateDone, StateFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for done and failed.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransitionTo returns true if the state can transition to the target state.
func (s State) CanTransitionTo(target State) bool {
	if target == StateFailed {
		return !s.IsTerminal()
	}
	switch s {
	case StateInit:
		return target == StateLoadingReferences
	case StateLoadingReferences:
		return target == StateReadingSheet
	case StateReadingSheet:
		return target == StateMappingSheet
	case StateMappingSheet:
		// mapping_sheet → reading_sheet (next worksheet)
		// mapping_sheet → done (dry run)
		return target == StateReadingSheet || target == StateWriting || target == StateDone
	case StateWriting:
		return target == StatePublishing || target == StateDone
	case StatePublishing:
		return target == StateDone
	default:
		return false
	}
}
