package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"lakshya-career-assistant/internal/domain/model"
)

//go:embed locales
var LocalesFS embed.FS

// Bundle holds the presentation strings for every supported language.
// Lookup never fails: unknown languages fall back to English and unknown
// keys echo the key itself, so a missing translation degrades visibly
// instead of breaking a flow.
type Bundle struct {
	tables map[model.Language]map[string]string
}

// NewBundle loads every supported locale from fsys (normally LocalesFS).
func NewBundle(fsys fs.FS) (*Bundle, error) {
	langs := []model.Language{
		model.LangEnglish, model.LangHindi, model.LangHinglish,
		model.LangSpanish, model.LangFrench,
	}
	b := &Bundle{tables: make(map[model.Language]map[string]string, len(langs))}
	for _, lang := range langs {
		file := path.Join("locales", fmt.Sprintf("%s.yaml", lang))
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		b.tables[lang] = table
	}
	return b, nil
}

// T translates key for lang, formatting args into the template when given.
func (b *Bundle) T(lang model.Language, key string, args ...interface{}) string {
	table, ok := b.tables[lang]
	if !ok {
		table = b.tables[model.LangEnglish]
	}
	format, ok := table[key]
	if !ok {
		if format, ok = b.tables[model.LangEnglish][key]; !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}
