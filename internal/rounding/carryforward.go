package rounding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Fields copied from yesterday's record into today's draft. Concerns is
// deliberately absent: concerns are day-specific and cleared by default.
var carryForwardFields = []string{
	types.FieldSignalment,
	types.FieldLocation,
	types.FieldICUCriteria,
	types.FieldCode,
	types.FieldProblems,
	types.FieldDiagnosticFindings,
	types.FieldTherapeutics,
	types.FieldIVC,
	types.FieldFluids,
	types.FieldCRI,
	types.FieldOvernightDx,
	types.FieldComments,
}

var dayCountPattern = regexp.MustCompile(`(?i)Day (\d+)`)

// CarryForwardOptions control how a previous record is carried into today
type CarryForwardOptions struct {
	// CarryConcerns keeps yesterday's concerns instead of clearing them.
	CarryConcerns bool
	// SkipDayCountIncrement leaves the Day N counters untouched.
	SkipDayCountIncrement bool
	// PreserveFields are always copied verbatim, after all other rules.
	PreserveFields []string
}

// CarryForward transforms yesterday's persisted rounding record into today's
// seed draft. A record already updated today is returned unchanged with
// CarriedForward=false so re-entrant calls within one day cannot double-
// increment the day counters.
func CarryForward(previous *types.RoundingRecord, opts *CarryForwardOptions) types.CarryForwardResult {
	if opts == nil {
		opts = &CarryForwardOptions{}
	}

	if previous == nil {
		return types.CarryForwardResult{
			Data:           types.RoundingRecord{},
			CarriedForward: false,
			FieldsCarried:  []string{},
			Message:        "No previous rounding data found",
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	if datePart(previous.LastUpdated) == today {
		return types.CarryForwardResult{
			Data:           *previous,
			CarriedForward: false,
			FieldsCarried:  []string{},
			Message:        "Already updated today - using current data",
		}
	}

	draft := types.RoundingRecord{}
	carried := []string{}

	for _, field := range carryForwardFields {
		value := previous.Value(field)
		if strings.TrimSpace(value) == "" {
			continue
		}

		if field == types.FieldProblems && !opts.SkipDayCountIncrement {
			value = IncrementDayCounts(value)
		}

		draft.SetValue(field, value)
		carried = append(carried, field)
	}

	if opts.CarryConcerns && previous.Concerns != "" {
		draft.Concerns = previous.Concerns
		carried = append(carried, types.FieldConcerns)
	} else {
		draft.Concerns = ""
	}

	switch {
	case previous.DayCount > 0 && !opts.SkipDayCountIncrement:
		draft.DayCount = previous.DayCount + 1
		carried = append(carried, "dayCount")
	case previous.DayCount > 0:
		draft.DayCount = previous.DayCount
		carried = append(carried, "dayCount")
	default:
		// First day of tracking
		draft.DayCount = 1
	}

	draft.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	for _, field := range opts.PreserveFields {
		if value := previous.Value(field); value != "" {
			draft.SetValue(field, value)
			if !containsField(carried, field) {
				carried = append(carried, field)
			}
		}
	}

	return types.CarryForwardResult{
		Data:           draft,
		CarriedForward: true,
		FieldsCarried:  carried,
		Message: fmt.Sprintf("Carried forward %d fields from previous day (Day %d)",
			len(carried), draft.DayCount),
	}
}

// NeedsCarryForward reports whether a record is stale relative to today
func NeedsCarryForward(record *types.RoundingRecord) bool {
	if record == nil {
		return false
	}
	return datePart(record.LastUpdated) != time.Now().UTC().Format("2006-01-02")
}

// IncrementDayCounts replaces every "Day N" occurrence in free text with its
// successor: "Day 2 seizures" becomes "Day 3 seizures". The substitution is
// textual and global; a problems entry with several independent counters
// ("Day 2 abx, Day 5 post-op") increments all of them in one pass.
func IncrementDayCounts(text string) string {
	if text == "" {
		return text
	}

	return dayCountPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := dayCountPattern.FindStringSubmatch(match)
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			return match
		}
		return fmt.Sprintf("Day %d", n+1)
	})
}

// datePart extracts the calendar-day prefix of an ISO timestamp
func datePart(isoTimestamp string) string {
	if idx := strings.IndexByte(isoTimestamp, 'T'); idx >= 0 {
		return isoTimestamp[:idx]
	}
	return isoTimestamp
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
