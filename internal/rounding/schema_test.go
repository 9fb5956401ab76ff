package rounding

import (
	"testing"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldConfigFor(t *testing.T) {
	cfg, ok := FieldConfigFor(types.FieldLocation)
	require.True(t, ok)
	assert.Equal(t, KindSelect, cfg.Kind)
	assert.Equal(t, []string{"IP", "ICU"}, cfg.Options)

	cfg, ok = FieldConfigFor(types.FieldProblems)
	require.True(t, ok)
	assert.Equal(t, KindTextarea, cfg.Kind)
	assert.Empty(t, cfg.Options)

	_, ok = FieldConfigFor("bogus")
	assert.False(t, ok)
}

func TestIsSelectField(t *testing.T) {
	assert.True(t, IsSelectField(types.FieldCode))
	assert.True(t, IsSelectField(types.FieldCRI))
	assert.False(t, IsSelectField(types.FieldSignalment))
	assert.False(t, IsSelectField(types.FieldConcerns))
}

func TestFieldOrderMatchesSchema(t *testing.T) {
	require.Len(t, FieldOrder, len(Fields))
	for i, key := range FieldOrder {
		assert.Equal(t, key, Fields[i].Key)
	}
}

func TestMatchSelectValue(t *testing.T) {
	tests := []struct {
		name    string
		pasted  string
		options []string
		want    string
	}{
		{"exact case-insensitive", "icu", []string{"IP", "ICU"}, "ICU"},
		{"prefix", "ic", []string{"ICU", "IP"}, "ICU"},
		{"prefix picks first option", "i", []string{"ICU", "IP"}, "ICU"},
		{"substring", "but", []string{"Yes", "No", "No but..."}, "No but..."},
		{"no match returns input", "xyz", []string{"ICU", "IP"}, "xyz"},
		{"whitespace trimmed", "  green ", []string{"Green", "Yellow"}, "Green"},
		{"blank returns empty", "   ", []string{"Yes", "No"}, ""},
		{"exact beats prefix", "no", []string{"No but...", "No"}, "No"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSelectValue(tt.pasted, tt.options))
		})
	}
}
