package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/locales"
)

// SetupI18n loads every embedded locale and selects the active one.
func (app *WishApp) SetupI18n() {
	bundle, langs, err := locales.NewBundle()
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	app.SupportedLanguages = langs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator. A language pinned in the settings
// file wins over the stored preference.
func (app *WishApp) UpdateLocalizer() {
	lang := app.Settings.Language
	if lang == "" {
		lang = app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates a key, falling back to the key itself.
func (app *WishApp) GetMsg(key string) string {
	msg, err := app.GetMsgWith(key, nil)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// GetMsgWith translates a key that takes template data.
func (app *WishApp) GetMsgWith(key string, data map[string]interface{}) (string, error) {
	if app.Localizer == nil {
		return "", errors.New(config.ErrLocNotInit)
	}
	return app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
}

// FormatBirthday renders a date with the active locale's long layout.
func (app *WishApp) FormatBirthday(t time.Time) string {
	layout := app.GetMsg(config.TKeyFormatDateLong)
	if layout == config.TKeyFormatDateLong {
		layout = config.DateFormatInput
	}
	return t.Format(layout)
}

// eventSummary localizes the exported calendar event title.
func (app *WishApp) eventSummary(name string) string {
	msg, err := app.GetMsgWith(config.TKeyEvtSummary, map[string]interface{}{"Name": name})
	if err != nil || msg == "" {
		return fmt.Sprintf(config.FallbackSummary, name)
	}
	return msg
}
