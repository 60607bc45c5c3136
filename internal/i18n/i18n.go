// Package i18n holds the Uzbek and English user interface labels.
package i18n

import (
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Supported interface languages
const (
	Uzbek   = "uz"
	English = "en"
)

// DeveloperURL is linked from the about page
const DeveloperURL = "https://t.me/shohabbosdev"

var bundle = newBundle()

func newBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(language.Uzbek)
	if err := b.AddMessages(language.Uzbek, uzbekMessages...); err != nil {
		panic(err)
	}
	if err := b.AddMessages(language.English, englishMessages...); err != nil {
		panic(err)
	}
	return b
}

// Localizer translates message IDs into one language
type Localizer struct {
	lang      string
	localizer *goi18n.Localizer
}

// New returns a localizer for lang. Unknown languages fall back to Uzbek.
func New(lang string) *Localizer {
	if lang != English {
		lang = Uzbek
	}
	return &Localizer{
		lang:      lang,
		localizer: goi18n.NewLocalizer(bundle, lang),
	}
}

// Language returns the language code the localizer translates into
func (l *Localizer) Language() string {
	return l.lang
}

// T translates id
func (l *Localizer) T(id string) string {
	return l.Tf(id, nil)
}

// Tf translates id and fills in template data. The ID itself is returned
// when no translation exists.
func (l *Localizer) Tf(id string, data map[string]interface{}) string {
	msg, err := l.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
