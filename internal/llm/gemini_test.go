package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":        "object",
		"description": "a kana card",
		"properties": map[string]any{
			"hint":    map[string]any{"type": "string"},
			"strokes": map[string]any{"type": "integer"},
			"script":  map[string]any{"type": "string", "enum": []any{"hiragana", "katakana", 3}},
			"related": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"broken":  "not a schema",
		},
		"required": []any{"hint", "strokes"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "a kana card", s.Description)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeInteger, s.Properties["strokes"].Type)
	assert.Equal(t, []string{"hiragana", "katakana"}, s.Properties["script"].Enum)
	assert.Equal(t, genai.TypeArray, s.Properties["related"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["related"].Items.Type)
	assert.Equal(t, []string{"hint", "strokes"}, s.Required)
}

func TestGeminiSchemaUnknownType(t *testing.T) {
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{"type": "null"}).Type)
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{}).Type)
}

func TestGeminiConfig(t *testing.T) {
	gc := geminiConfig(Request{System: "be brief", MaxTokens: 64, Temperature: 0.5, Schema: kanaMnemonicSchema()})

	assert.EqualValues(t, 64, gc.MaxOutputTokens)
	require.NotNil(t, gc.Temperature)
	assert.InDelta(t, 0.5, *gc.Temperature, 1e-6)
	assert.Equal(t, "be brief", gc.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", gc.ResponseMIMEType)
	assert.NotNil(t, gc.ResponseSchema)

	plain := geminiConfig(Request{})
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.SystemInstruction)
}
