package caselog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		current int
		want    int
	}{
		{"first MRI target", types.CaseKindMRI, 0, 50},
		{"mid MRI band", types.CaseKindMRI, 120, 150},
		{"at threshold moves on", types.CaseKindMRI, 50, 100},
		{"beyond final threshold stays at final", types.CaseKindMRI, 600, 500},
		{"first surgery target", types.CaseKindSurgery, 3, 10},
		{"appointment band", types.CaseKindAppointment, 80, 100},
		{"case band", types.CaseKindCase, 300, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMilestone(tt.current, tt.kind))
		})
	}
}

func TestMilestoneProgress(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		current int
		want    int
	}{
		{"zero progress", types.CaseKindMRI, 0, 0},
		{"halfway to first threshold", types.CaseKindMRI, 25, 50},
		{"between thresholds", types.CaseKindMRI, 125, 50},
		{"past final threshold caps at 100", types.CaseKindMRI, 600, 100},
		{"surgery quarter band", types.CaseKindSurgery, 5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MilestoneProgress(tt.current, tt.kind))
		})
	}
}

func TestStatsFor(t *testing.T) {
	stats := StatsFor(types.CaseKindSurgery, 5)

	assert.Equal(t, types.CaseKindSurgery, stats.Kind)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 10, stats.NextMilestone)
	assert.Equal(t, 50, stats.ProgressPct)
}

func TestIsValidKind(t *testing.T) {
	assert.True(t, IsValidKind(types.CaseKindMRI))
	assert.True(t, IsValidKind(types.CaseKindCase))
	assert.False(t, IsValidKind("necropsy"))
}

func TestIsValidParticipation(t *testing.T) {
	assert.True(t, IsValidParticipation(""))
	assert.True(t, IsValidParticipation("S"))
	assert.True(t, IsValidParticipation("K"))
	assert.False(t, IsValidParticipation("X"))
}
