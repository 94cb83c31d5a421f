package mnemonic

import "github.com/abhisek/kanaz/internal/llm"

// Schema is the JSON schema for a generated kana mnemonic.
var Schema = &llm.Schema{
	Name:        "kana-mnemonic",
	Description: "A short memory hint and story tying a kana glyph's shape to its reading",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One sentence linking the glyph's shape to its sound (under 20 words)",
				"minLength":   1,
			},
			"story": map[string]any{
				"type":        "string",
				"description": "A vivid two or three sentence story that uses the hint",
				"minLength":   1,
			},
		},
		"required":             []any{"hint", "story"},
		"additionalProperties": false,
	},
}
