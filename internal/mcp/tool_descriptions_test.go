package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolDescriptions(t *testing.T) {
	for _, name := range []string{"plan_rename", "rename_dataset", "verify_dataset", "list_classes"} {
		t.Run(name, func(t *testing.T) {
			desc := GetEnhancedDescription(name)
			assert.Contains(t, desc, "WHEN TO USE THIS TOOL:")
			assert.Contains(t, desc, "EXAMPLES:")
			assert.NotEmpty(t, GetNextToolSuggestions(name))
		})
	}

	assert.Empty(t, GetEnhancedDescription("unknown"))
	assert.Nil(t, GetNextToolSuggestions("unknown"))
}

func TestErrorWithSuggestions(t *testing.T) {
	err := InvalidParameterError("sort", "lexical or natural")
	assert.Contains(t, err.Error(), "invalid sort: expected lexical or natural")
	assert.Contains(t, err.Error(), "Did you mean to use one of these tools instead?")

	plain := NewErrorWithSuggestions("boom")
	assert.Equal(t, "boom", plain.Error())
}
