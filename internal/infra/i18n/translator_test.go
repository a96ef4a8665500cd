package i18n

import (
	"strings"
	"testing"

	"lakshya-career-assistant/internal/domain/model"
)

func TestBundleLoadsAllLocales(t *testing.T) {
	b, err := NewBundle(LocalesFS)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	for _, lang := range []model.Language{
		model.LangEnglish, model.LangHindi, model.LangHinglish,
		model.LangSpanish, model.LangFrench,
	} {
		if got := b.T(lang, "welcome"); got == "" || got == "welcome" {
			t.Errorf("missing welcome string for %s", lang)
		}
		if got := b.T(lang, "language_changed"); got == "" || got == "language_changed" {
			t.Errorf("missing language_changed string for %s", lang)
		}
	}
}

func TestBundleFallbacks(t *testing.T) {
	b, err := NewBundle(LocalesFS)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	// Unknown language falls back to English.
	if got := b.T(model.Language("de"), "welcome"); got != b.T(model.LangEnglish, "welcome") {
		t.Errorf("unknown language should fall back to English, got %q", got)
	}
	// Unknown key echoes the key.
	if got := b.T(model.LangEnglish, "no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key should echo, got %q", got)
	}
}

func TestBundleFormatting(t *testing.T) {
	b, err := NewBundle(LocalesFS)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	got := b.T(model.LangEnglish, "upload_received", "resume.pdf")
	if !strings.Contains(got, "resume.pdf") {
		t.Errorf("formatted string should contain the filename, got %q", got)
	}
}
