package mri

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Anesthesia protocol constants. Brain studies premedicate with Butorphanol,
// spine studies with Methadone; Valium and contrast are used for both.
const (
	opioidDoseMgPerKg       = 0.2
	opioidConcentrationMgMl = 10
	valiumDoseMgPerKg       = 0.25
	valiumConcentrationMgMl = 5
	contrastMlPerLb         = 0.1
	kgPerLb                 = 2.20462
	npoLeadTime             = 8 * time.Hour
)

// DrugDose is one calculated drug order
type DrugDose struct {
	Name     string  `json:"name,omitempty"`
	DoseMg   float64 `json:"doseMg"`
	VolumeMl float64 `json:"volumeMl"`
}

// Doses holds the full calculated anesthesia plan for one study
type Doses struct {
	WeightKg float64  `json:"weightKg"`
	Opioid   DrugDose `json:"opioid"`
	Valium   DrugDose `json:"valium"`
	Contrast struct {
		VolumeMl float64 `json:"volumeMl"`
	} `json:"contrast"`
}

// KgToLbs converts kilograms to pounds
func KgToLbs(kg float64) float64 {
	return kg * kgPerLb
}

// LbsToKg converts pounds to kilograms
func LbsToKg(lbs float64) float64 {
	return lbs / kgPerLb
}

// CalculateDoses computes the anesthesia plan for a patient of the given
// weight. Any scan type mentioning the brain selects Butorphanol; pure spine
// studies get Methadone.
func CalculateDoses(weightKg float64, scanType string) Doses {
	lbs := KgToLbs(weightKg)

	opioidName := "Methadone"
	if strings.Contains(strings.ToLower(scanType), "brain") {
		opioidName = "Butorphanol"
	}

	opioidMg := weightKg * opioidDoseMgPerKg
	valiumMg := weightKg * valiumDoseMgPerKg

	doses := Doses{
		WeightKg: round(weightKg, 1),
		Opioid: DrugDose{
			Name:     opioidName,
			DoseMg:   round(opioidMg, 2),
			VolumeMl: round(opioidMg/opioidConcentrationMgMl, 3),
		},
		Valium: DrugDose{
			DoseMg:   round(valiumMg, 2),
			VolumeMl: round(valiumMg/valiumConcentrationMgMl, 3),
		},
	}
	doses.Contrast.VolumeMl = round(lbs*contrastMlPerLb, 3)

	return doses
}

var weightRE = regexp.MustCompile(`[^\d.]`)

// CalculateDosesFromWeight parses a free-form weight string such as "15.1kg"
// or "15.1" and computes the anesthesia plan. Unparseable or non-positive
// weights are rejected.
func CalculateDosesFromWeight(weight string, scanType string) (Doses, error) {
	raw := weightRE.ReplaceAllString(weight, "")
	kg, err := strconv.ParseFloat(raw, 64)
	if err != nil || kg <= 0 {
		return Doses{}, types.NewValidationError(types.ErrCodeInvalidInput,
			"weight must be a positive number", map[string]interface{}{"weight": weight})
	}

	return CalculateDoses(kg, scanType), nil
}

// NPOStart returns the fasting start time for a scheduled study
func NPOStart(scheduled time.Time) time.Time {
	return scheduled.Add(-npoLeadTime)
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
