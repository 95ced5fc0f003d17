package i18n

import (
	"golang.org/x/text/language"

	"shuttle_booking_backend/internal/models"
)

var supportedBases = map[language.Base]models.Language{
	language.MustParseBase("zh"): models.LangZh,
	language.MustParseBase("en"): models.LangEn,
	language.MustParseBase("vi"): models.LangVi,
}

// Match maps a BCP 47 tag or bare code (zh, zh-TW, en-US, vi) onto a supported
// language by its base language. The boolean is false when the code is malformed
// or names an unsupported language.
func Match(code string) (models.Language, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return models.DefaultLanguage, false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return models.DefaultLanguage, false
	}
	lang, ok := supportedBases[base]
	if !ok {
		return models.DefaultLanguage, false
	}
	return lang, true
}
