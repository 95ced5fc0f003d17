package i18n

import (
	"testing"

	"shuttle_booking_backend/internal/models"
)

func TestEveryLanguageHasEveryKey(t *testing.T) {
	for key := range messages[models.DefaultLanguage] {
		for _, lang := range models.SupportedLanguages {
			if _, ok := messages[lang][key]; !ok {
				t.Errorf("language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestTFormatsAndFallsBack(t *testing.T) {
	if got := T(models.LangEn, BindSuccess, "Alice"); got != "✅ Binding successful! Welcome Alice!" {
		t.Errorf("unexpected text: %q", got)
	}
	if got := T(models.Language("fr"), Welcome); got != messages[models.LangZh][Welcome] {
		t.Errorf("expected Chinese fallback, got %q", got)
	}
	if got := T(models.LangEn, Key("no_such_key")); got != "no_such_key" {
		t.Errorf("expected key echo, got %q", got)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		in     string
		want   models.Language
		wantOK bool
	}{
		{"zh", models.LangZh, true},
		{"zh-TW", models.LangZh, true},
		{"en", models.LangEn, true},
		{"en-US", models.LangEn, true},
		{"vi", models.LangVi, true},
		{"vi-VN", models.LangVi, true},
		{"fr", models.DefaultLanguage, false},
		{"not a tag", models.DefaultLanguage, false},
	}
	for _, tt := range tests {
		got, ok := Match(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Match(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
