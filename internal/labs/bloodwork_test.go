package labs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanBloodwork(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "all values in range",
			text: "WBC: 10.2  HCT: 45  PLT: 320  GLU: 98",
			want: []string{},
		},
		{
			name: "flags high and low values",
			text: "WBC: 22.1\nHCT: 30\nPLT: 320",
			want: []string{"WBC 22.1", "HCT 30"},
		},
		{
			name: "aliases map to canonical key",
			text: "PCV 28  Platelets 150  Creatinine 2.4",
			want: []string{"HCT 28", "PLT 150", "CREAT 2.4"},
		},
		{
			name: "separator variants",
			text: "BUN=35 ALT - 200 K:6.2",
			want: []string{"BUN 35", "ALT 200", "K 6.2"},
		},
		{
			name: "qualifier prefixes are stripped",
			text: "TBIL <0.1 GLU >350",
			want: []string{"GLU 350"},
		},
		{
			name: "last instance wins",
			text: "HCT 30 rechecked later HCT 42",
			want: []string{},
		},
		{
			name: "last instance wins when still abnormal",
			text: "HCT 45 recheck HCT 25",
			want: []string{"HCT 25"},
		},
		{
			name: "case insensitive labels",
			text: "hgb 8.5 glucose 60",
			want: []string{"HGB 8.5", "GLU 60"},
		},
		{
			name: "unknown labels ignored",
			text: "FOO 999 BAR 1",
			want: []string{},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScanBloodwork(tt.text)
			assert.ElementsMatch(t, tt.want, result.AbnormalValues)
		})
	}
}

func TestScanBloodwork_FullPanelOrder(t *testing.T) {
	text := "K 7.0 WBC 30 NA 120"

	result := ScanBloodwork(text)

	// Findings come out in panel order regardless of input order
	assert.Equal(t, []string{"WBC 30", "NA 120", "K 7"}, result.AbnormalValues)
}
