package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from State
		to   State
		want bool
	}{
		{StateInit, StateLoadingReferences, true},
		{StateInit, StateReadingSheet, false},
		{StateLoadingReferences, StateReadingSheet, true},
		{StateLoadingReferences, StateWriting, false},
		{StateReadingSheet, StateMappingSheet, true},
		{StateReadingSheet, StateReadingSheet, false},
		{StateMappingSheet, StateReadingSheet, true},
		{StateMappingSheet, StateWriting, true},
		{StateMappingSheet, StateDone, true},
		{StateWriting, StatePublishing, true},
		{StateWriting, StateDone, true},
		{StateWriting, StateReadingSheet, false},
		{StatePublishing, StateDone, true},
		{StateDone, StateFailed, false},
		{StateFailed, StateInit, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestFailedReachableFromEveryNonTerminalState(t *testing.T) {
	for _, s := range []State{StateInit, StateLoadingReferences, StateReadingSheet, StateMappingSheet, StateWriting, StatePublishing} {
		assert.True(t, s.CanTransitionTo(StateFailed), s)
		assert.True(t, s.IsValid())
		assert.False(t, s.IsTerminal())
	}
	assert.True(t, StateDone.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, State("paused").IsValid())
}
