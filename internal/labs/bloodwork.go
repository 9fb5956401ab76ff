package labs

import (
	"regexp"
	"strconv"
	"strings"
)

// Analyte is one blood panel measurement with its canine reference range.
// Aliases cover the labels different analyzers print for the same value.
type Analyte struct {
	Key     string
	Min     float64
	Max     float64
	Aliases []string
}

// analytes is the canine reference panel, in report order
var analytes = []Analyte{
	{Key: "WBC", Min: 6, Max: 17, Aliases: []string{"WBC"}},
	{Key: "RBC", Min: 5.5, Max: 8.5, Aliases: []string{"RBC"}},
	{Key: "HGB", Min: 12, Max: 18, Aliases: []string{"HGB", "Hgb", "Hb"}},
	{Key: "HCT", Min: 37, Max: 55, Aliases: []string{"HCT", "PCV"}},
	{Key: "PLT", Min: 200, Max: 500, Aliases: []string{"PLT", "Platelets"}},
	{Key: "NEUT", Min: 3, Max: 12, Aliases: []string{"NEUT", "Neut", "Neutrophils"}},
	{Key: "LYMPH", Min: 1, Max: 5, Aliases: []string{"LYMPH", "Lymph", "Lymphocytes"}},
	{Key: "MONO", Min: 0.2, Max: 1.5, Aliases: []string{"MONO", "Mono", "Monocytes"}},
	{Key: "EOS", Min: 0, Max: 1, Aliases: []string{"EOS", "Eos", "Eosinophils"}},
	{Key: "BUN", Min: 7, Max: 27, Aliases: []string{"BUN", "Urea"}},
	{Key: "CREAT", Min: 0.5, Max: 1.8, Aliases: []string{"CREAT", "Creat", "Creatinine"}},
	{Key: "GLU", Min: 70, Max: 143, Aliases: []string{"GLU", "Glucose"}},
	{Key: "ALT", Min: 10, Max: 125, Aliases: []string{"ALT"}},
	{Key: "AST", Min: 0, Max: 50, Aliases: []string{"AST"}},
	{Key: "ALP", Min: 23, Max: 212, Aliases: []string{"ALP", "Alk Phos", "ALPase"}},
	{Key: "TBIL", Min: 0, Max: 0.9, Aliases: []string{"TBIL", "T. Bil", "Total Bilirubin"}},
	{Key: "ALB", Min: 2.3, Max: 4, Aliases: []string{"ALB", "Albumin"}},
	{Key: "TP", Min: 5.2, Max: 8.2, Aliases: []string{"TP", "Total Protein", "T. Prot"}},
	{Key: "CA", Min: 9, Max: 11.3, Aliases: []string{"CA", "Calcium"}},
	{Key: "PHOS", Min: 2.5, Max: 6.8, Aliases: []string{"PHOS", "Phosphorus", "PO4"}},
	{Key: "NA", Min: 144, Max: 160, Aliases: []string{"NA", "Sodium"}},
	{Key: "K", Min: 3.5, Max: 5.8, Aliases: []string{"K", "Potassium"}},
	{Key: "CL", Min: 109, Max: 122, Aliases: []string{"CL", "Chloride"}},
}

var (
	aliasIndex = buildAliasIndex()
	valueRE    = buildValueRE()
)

func buildAliasIndex() map[string]string {
	index := make(map[string]string)
	for _, a := range analytes {
		for _, alias := range a.Aliases {
			index[strings.ToLower(alias)] = a.Key
		}
	}
	return index
}

// buildValueRE matches "<alias> <separator?> <number>", where the number may
// carry a qualifier like "<0.1" that analyzers print at detection limits
func buildValueRE() *regexp.Regexp {
	var aliases []string
	for _, a := range analytes {
		for _, alias := range a.Aliases {
			aliases = append(aliases, regexp.QuoteMeta(alias))
		}
	}
	pattern := `(?i)\b(` + strings.Join(aliases, "|") + `)\s*[:=\-–]?\s*([<>]?-?\d+(?:\.\d+)?)`
	return regexp.MustCompile(pattern)
}

// ScanResult holds the abnormal findings from a pasted blood panel
type ScanResult struct {
	AbnormalValues []string `json:"abnormalValues"`
}

// ScanBloodwork extracts analyte values from free-form analyzer text and
// flags any outside the canine reference range. When an analyte appears more
// than once, the last instance wins (panels often repeat earlier results).
func ScanBloodwork(text string) ScanResult {
	latest := make(map[string]float64)

	for _, m := range valueRE.FindAllStringSubmatch(text, -1) {
		key, ok := aliasIndex[strings.ToLower(m[1])]
		if !ok {
			continue
		}

		raw := strings.Trim(m[2], "<>")
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		latest[key] = num
	}

	abnormal := []string{}
	for _, a := range analytes {
		val, ok := latest[a.Key]
		if !ok {
			continue
		}
		if val < a.Min || val > a.Max {
			abnormal = append(abnormal, a.Key+" "+strconv.FormatFloat(val, 'f', -1, 64))
		}
	}

	return ScanResult{AbnormalValues: abnormal}
}
