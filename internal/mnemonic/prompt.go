package mnemonic

import (
	"fmt"
	"strings"

	"github.com/abhisek/kanaz/internal/kana"
)

const systemPrompt = `You help English speakers memorize Japanese kana. Given one kana, write a mnemonic that ties the written shape to its romaji reading. Keep it concrete and visual. Never invent a different reading.`

func buildUserMessage(e kana.Entry, examples []kana.Example) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Kana: %s\n", e.Glyph)
	fmt.Fprintf(&b, "Reading: %s\n", e.Reading)
	if e.Script != "" {
		fmt.Fprintf(&b, "Script: %s\n", e.Script)
	}
	switch {
	case e.Base != "":
		fmt.Fprintf(&b, "Derived from %s with a %s mark\n", e.Base, e.Mark)
	case e.Group != "":
		fmt.Fprintf(&b, "Contracted sound from the %s group\n", e.Group)
	}
	if e.Gloss != "" {
		fmt.Fprintf(&b, "Meaning: %s\n", e.Gloss)
	}

	if len(examples) > 0 {
		b.WriteString("\nWords that start with it:\n")
		for _, ex := range examples {
			fmt.Fprintf(&b, "- %s (%s): %s\n", ex.Word, ex.Reading, ex.Gloss)
		}
	}

	b.WriteString("\nRespond with JSON: {\"hint\": ..., \"story\": ...}")
	return b.String()
}
