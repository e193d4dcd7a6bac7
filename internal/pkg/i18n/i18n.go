package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var locales = []string{"locales/active.vi.json", "locales/active.en.json"}

type Translator struct {
	bundle      *goi18n.Bundle
	defaultLang string
}

func New(defaultLang string) (*Translator, error) {
	bundle := goi18n.NewBundle(language.Vietnamese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, path := range locales {
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return &Translator{bundle: bundle, defaultLang: defaultLang}, nil
}

// Localize renders messageID for the Accept-Language header value, returning
// fallback when the message is unknown.
func (t *Translator) Localize(acceptLanguage, messageID string, data map[string]interface{}, fallback string) string {
	loc := goi18n.NewLocalizer(t.bundle, acceptLanguage, t.defaultLang)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return fallback
	}
	return msg
}
