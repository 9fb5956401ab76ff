package quickinsert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidField(t *testing.T) {
	assert.True(t, IsValidField(FieldTherapeutics))
	assert.True(t, IsValidField(FieldDiagnostics))
	assert.True(t, IsValidField(FieldConcerns))
	assert.False(t, IsValidField("problems"))
	assert.False(t, IsValidField(""))
}

func TestDefaultLibraryIntegrity(t *testing.T) {
	assert.NotEmpty(t, defaultLibrary)

	seen := make(map[string]bool)
	perField := make(map[string]int)

	for _, item := range defaultLibrary {
		assert.False(t, seen[item.ID], "duplicate quick-insert id: %s", item.ID)
		seen[item.ID] = true

		assert.True(t, IsValidField(item.Field), "item %s has unknown field %s", item.ID, item.Field)
		assert.NotEmpty(t, item.Label, "item %s has no label", item.ID)
		assert.NotEmpty(t, item.Text, "item %s has no text", item.ID)
		perField[item.Field]++
	}

	// Every field has seeded options
	assert.Greater(t, perField[FieldTherapeutics], 0)
	assert.Greater(t, perField[FieldDiagnostics], 0)
	assert.Greater(t, perField[FieldConcerns], 0)
}
