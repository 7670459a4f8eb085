package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-studio/internal/domain/entity"
)

func TestForms(t *testing.T) {
	require.Len(t, Forms, 4)

	seen := map[entity.Action]bool{}
	for _, f := range Forms {
		assert.NotEmpty(t, f.ID)
		assert.NotEmpty(t, f.Button)
		seen[f.Action] = true
	}
	assert.Len(t, seen, 4)

	f, ok := Lookup("resource-analyzer")
	require.True(t, ok)
	assert.Equal(t, InputPDF, f.Kind)
	assert.Equal(t, entity.ActionResourceAnalysis, f.Action)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestTemplates_RenderIndex(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, IndexTemplate, Page{
		Title: "AI-Powered Educational Content Studio",
		Forms: Forms,
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "AI-Powered Educational Content Studio")
	for _, f := range Forms {
		assert.Contains(t, html, `id="`+f.ID+`"`)
		assert.Contains(t, html, f.Button)
	}
	assert.Contains(t, html, `type="file"`)
}
