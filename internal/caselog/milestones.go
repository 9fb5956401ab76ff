package caselog

import (
	"math"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// milestoneThresholds are the residency progress targets per case kind
var milestoneThresholds = map[string][]int{
	types.CaseKindMRI:         {50, 100, 150, 200, 250, 300, 350, 400, 450, 500},
	types.CaseKindAppointment: {25, 50, 75, 100, 150, 200, 250, 300, 400, 500},
	types.CaseKindSurgery:     {10, 25, 50, 75, 100, 150, 200},
	types.CaseKindCase:        {100, 250, 500, 750, 1000, 1500, 2000},
}

// participationLevels are the recognized surgery participation codes
var participationLevels = map[string]string{
	"S": "Surgeon",
	"O": "Observer",
	"C": "Circulator",
	"D": "Dissector",
	"K": "Knife",
}

// commonProcedures is the quick-pick list for surgery entries
var commonProcedures = []string{
	"Hemilaminectomy",
	"Ventral Slot",
	"Craniotomy",
	"Foramen Magnum Decompression",
	"Atlantoaxial Stabilization",
	"Lumbosacral Dorsal Laminectomy",
	"Lateral Corpectomy",
	"VP Shunt",
	"Peripheral Nerve Biopsy",
	"Muscle Biopsy",
}

// IsValidKind reports whether the case kind is tracked
func IsValidKind(kind string) bool {
	_, ok := milestoneThresholds[kind]
	return ok
}

// IsValidParticipation reports whether the participation code is recognized.
// Empty is allowed for non-surgical entries.
func IsValidParticipation(code string) bool {
	if code == "" {
		return true
	}
	_, ok := participationLevels[code]
	return ok
}

// NextMilestone returns the next threshold above the current count. Once the
// final threshold has been passed it stays the target.
func NextMilestone(current int, kind string) int {
	thresholds := milestoneThresholds[kind]
	if len(thresholds) == 0 {
		return 0
	}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	return thresholds[len(thresholds)-1]
}

// MilestoneProgress returns the percentage of the way from the previous
// threshold to the next one, capped at 100
func MilestoneProgress(current int, kind string) int {
	thresholds := milestoneThresholds[kind]
	if len(thresholds) == 0 {
		return 0
	}

	next := NextMilestone(current, kind)
	prev := 0
	for _, t := range thresholds {
		if t < next {
			prev = t
		}
	}

	span := next - prev
	if span <= 0 {
		return 100
	}

	pct := int(math.Round(float64(current-prev) * 100 / float64(span)))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// StatsFor builds the progress summary for one kind
func StatsFor(kind string, total int) types.CaseLogStats {
	return types.CaseLogStats{
		Kind:          kind,
		Total:         total,
		NextMilestone: NextMilestone(total, kind),
		ProgressPct:   MilestoneProgress(total, kind),
	}
}
