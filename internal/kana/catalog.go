package kana

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"github.com/samber/lo"
	"go.yaml.in/yaml/v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog is an immutable in-memory view of the kana tables.
type Catalog struct {
	plain      []Entry
	voiced     []Entry
	contracted []Entry
	vocabulary []Entry

	examples map[string][]Example
	byGlyph  map[string]Entry
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})

// Default returns the catalog built from the bundled tables.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("kana: bundled catalog is invalid: %v", err))
	}
	return c
}

// Load parses the catalog tables from the root of fsys: plain.yaml,
// voiced.yaml, contracted.yaml, vocabulary.yaml and examples.yaml.
func Load(fsys fs.FS) (*Catalog, error) {
	tables := []struct {
		file     string
		category Category
	}{
		{"plain.yaml", CategoryPlain},
		{"voiced.yaml", CategoryVoiced},
		{"contracted.yaml", CategoryContracted},
		{"vocabulary.yaml", CategoryVocabulary},
	}

	var all []Entry
	for _, t := range tables {
		raw, err := fs.ReadFile(fsys, t.file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", t.file, err)
		}
		var entries []Entry
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", t.file, err)
		}
		for i := range entries {
			if entries[i].Glyph == "" || entries[i].Reading == "" {
				return nil, fmt.Errorf("%s: entry %d: glyph and reading are required", t.file, i)
			}
			entries[i].Category = t.category
		}
		all = append(all, entries...)
	}

	c := NewCatalog(all...)

	raw, err := fs.ReadFile(fsys, "examples.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading examples: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c.examples); err != nil {
		return nil, fmt.Errorf("parsing examples: %w", err)
	}

	return c, nil
}

// NewCatalog builds a catalog from entries, partitioned by their Category.
func NewCatalog(entries ...Entry) *Catalog {
	c := &Catalog{
		examples: make(map[string][]Example),
		byGlyph:  make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		switch e.Category {
		case CategoryPlain:
			c.plain = append(c.plain, e)
		case CategoryVoiced:
			c.voiced = append(c.voiced, e)
		case CategoryContracted:
			c.contracted = append(c.contracted, e)
		case CategoryVocabulary:
			c.vocabulary = append(c.vocabulary, e)
		default:
			continue
		}
		if _, ok := c.byGlyph[e.Glyph]; !ok {
			c.byGlyph[e.Glyph] = e
		}
	}
	return c
}

// Entries returns the source list for a quiz category. The returned slice
// is a copy. Unknown categories yield nil.
func (c *Catalog) Entries(id CategoryID) []Entry {
	var out []Entry
	switch id {
	case Hiragana:
		out = byScript(c.plain, ScriptHiragana)
	case Katakana:
		out = byScript(c.plain, ScriptKatakana)
	case Combined:
		out = lo.Flatten([][]Entry{
			byScript(c.plain, ScriptHiragana),
			byScript(c.plain, ScriptKatakana),
		})
	case Voiced:
		out = slices.Clone(c.voiced)
	case Contracted:
		out = slices.Clone(c.contracted)
	case Vocabulary:
		out = slices.Clone(c.vocabulary)
	}
	return out
}

// Lookup finds an entry by glyph. The first entry wins when glyphs repeat
// across categories (e.g. the single-kana word え).
func (c *Catalog) Lookup(glyph string) (Entry, bool) {
	e, ok := c.byGlyph[glyph]
	return e, ok
}

// Examples returns example words for a kana glyph.
func (c *Catalog) Examples(glyph string) []Example {
	return slices.Clone(c.examples[glyph])
}

func byScript(entries []Entry, s Script) []Entry {
	return lo.Filter(entries, func(e Entry, _ int) bool {
		return e.Script == s
	})
}
