package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to ScheduleStatus
		allowed  bool
	}{
		{ScheduleAvailable, ScheduleBooked, true},
		{ScheduleAvailable, ScheduleCancelled, true},
		{ScheduleBooked, ScheduleCompleted, true},
		{ScheduleBooked, ScheduleCancelled, true},
		{ScheduleAvailable, ScheduleCompleted, false},
		{ScheduleBooked, ScheduleAvailable, false},
		{ScheduleCompleted, ScheduleCancelled, false},
		{ScheduleCancelled, ScheduleAvailable, false},
		{ScheduleCancelled, ScheduleBooked, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestScheduleStatus_Terminal(t *testing.T) {
	assert.True(t, ScheduleCompleted.IsTerminal())
	assert.True(t, ScheduleCancelled.IsTerminal())
	assert.False(t, ScheduleAvailable.IsTerminal())
	assert.False(t, ScheduleBooked.IsTerminal())
}

func TestScheduleSourceStatuses(t *testing.T) {
	assert.Equal(t, []ScheduleStatus{ScheduleAvailable}, ScheduleSourceStatuses(ScheduleBooked))
	assert.Equal(t, []ScheduleStatus{ScheduleBooked}, ScheduleSourceStatuses(ScheduleCompleted))
	assert.Equal(t, []ScheduleStatus{ScheduleAvailable, ScheduleBooked}, ScheduleSourceStatuses(ScheduleCancelled))
	assert.Empty(t, ScheduleSourceStatuses(ScheduleAvailable))
}

func TestParseScheduleStatus(t *testing.T) {
	status, err := ParseScheduleStatus("booked")
	assert.NoError(t, err)
	assert.Equal(t, ScheduleBooked, status)

	_, err = ParseScheduleStatus("done")
	assert.ErrorIs(t, err, ErrInvalidScheduleStatus)
}
