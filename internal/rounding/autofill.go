package rounding

import (
	"regexp"
	"strings"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Canonical sex abbreviations used in signalment shorthand
var sexAbbreviations = map[string]string{
	"FEMALE SPAYED":  "FS",
	"SPAYED FEMALE":  "FS",
	"MALE NEUTERED":  "MN",
	"NEUTERED MALE":  "MN",
	"MALE CASTRATED": "MC",
	"FEMALE":         "F",
	"MALE":           "M",
	"FS":             "FS",
	"MN":             "MN",
	"MC":             "MC",
	"F":              "F",
	"M":              "M",
	"SF":             "FS",
	"NM":             "MN",
}

// Common breed abbreviations (veterinary shorthand)
var breedAbbreviations = map[string]string{
	"labrador retriever":             "Lab",
	"labrador":                       "Lab",
	"golden retriever":               "Golden",
	"german shepherd dog":            "GSD",
	"german shepherd":                "GSD",
	"yorkshire terrier":              "Yorkie",
	"french bulldog":                 "Frenchie",
	"australian shepherd":            "Aussie",
	"siberian husky":                 "Husky",
	"doberman pinscher":              "Doberman",
	"doberman":                       "Doberman",
	"miniature schnauzer":            "Mini Schnauzer",
	"cocker spaniel":                 "Cocker",
	"cavalier king charles spaniel":  "CKCS",
	"boston terrier":                 "Boston",
	"english springer spaniel":       "Springer",
	"brittany spaniel":               "Brittany",
	"mixed breed":                    "Mix",
	"domestic shorthair":             "DSH",
	"domestic longhair":              "DLH",
	"domestic medium hair":           "DMH",
}

var ageUnitPattern = regexp.MustCompile(`(?i)\s*(years?|months?|weeks?|days?)`)
var ageSuffixPattern = regexp.MustCompile(`(?i)[ymdw]$`)

// GenerateSignalment builds the compact age/sex/breed shorthand from a
// demographic record, e.g. "6y FS Lab" or "12y MN GSD".
func GenerateSignalment(d types.Demographics) string {
	var parts []string

	if age := strings.TrimSpace(d.Age); age != "" {
		age = ageUnitPattern.ReplaceAllStringFunc(age, func(unit string) string {
			switch strings.ToLower(strings.TrimSpace(unit))[0] {
			case 'y':
				return "y"
			case 'm':
				return "m"
			case 'w':
				return "w"
			default:
				return "d"
			}
		})
		if !ageSuffixPattern.MatchString(age) {
			age += "y"
		}
		parts = append(parts, age)
	}

	if sex := strings.ToUpper(strings.TrimSpace(d.Sex)); sex != "" {
		if abbr, ok := sexAbbreviations[sex]; ok {
			parts = append(parts, abbr)
		} else {
			parts = append(parts, sex)
		}
	}

	if breed := strings.TrimSpace(d.Breed); breed != "" {
		parts = append(parts, abbreviateBreed(breed))
	}

	return strings.Join(parts, " ")
}

// abbreviateBreed shortens common breed names; unknown long names are
// truncated to keep the signalment column compact
func abbreviateBreed(breed string) string {
	normalized := strings.ToLower(breed)

	if abbr, ok := breedAbbreviations[normalized]; ok {
		return abbr
	}

	for full, abbr := range breedAbbreviations {
		if strings.Contains(normalized, full) {
			return abbr
		}
	}

	if len(breed) > 15 {
		return breed[:15]
	}
	return breed
}

// AutoFill derives rounding field values inferable from a patient's
// demographics and current stay. It never overwrites a field already present
// in the patient's rounding data: auto-fill only fills genuinely empty
// targets. The returned field lists let the caller mark keys as auto-derived
// so the sheet can render them distinctly and drop the marker on manual edit.
func AutoFill(patient *types.Patient) types.AutoFillResult {
	result := types.AutoFillResult{
		AutoFilledFields: []string{},
		CarriedFields:    []string{},
	}

	prior := patient.RoundingData
	hasPrior := func(key string) bool {
		return prior != nil && strings.TrimSpace(prior.Value(key)) != ""
	}

	if !hasPrior(types.FieldSignalment) {
		if signalment := GenerateSignalment(patient.Demographics); signalment != "" {
			result.Values.Signalment = signalment
			result.AutoFilledFields = append(result.AutoFilledFields, types.FieldSignalment)
		}
	}

	stay := patient.CurrentStay

	if !hasPrior(types.FieldLocation) {
		if stay != nil && stay.Location != "" {
			result.Values.Location = stay.Location
			result.AutoFilledFields = append(result.AutoFilledFields, types.FieldLocation)
		}
	} else if prior.Location != "" {
		result.Values.Location = prior.Location
		result.CarriedFields = append(result.CarriedFields, types.FieldLocation)
	}

	if !hasPrior(types.FieldCode) {
		if stay != nil && stay.CodeStatus != "" {
			result.Values.Code = stay.CodeStatus
			result.AutoFilledFields = append(result.AutoFilledFields, types.FieldCode)
		}
	} else if prior.Code != "" {
		result.Values.Code = prior.Code
		result.CarriedFields = append(result.CarriedFields, types.FieldCode)
	}

	if !hasPrior(types.FieldICUCriteria) {
		if stay != nil && stay.ICUCriteria != "" {
			result.Values.ICUCriteria = stay.ICUCriteria
			result.AutoFilledFields = append(result.AutoFilledFields, types.FieldICUCriteria)
		}
	} else if prior.ICUCriteria != "" {
		result.Values.ICUCriteria = prior.ICUCriteria
		result.CarriedFields = append(result.CarriedFields, types.FieldICUCriteria)
	}

	return result
}
