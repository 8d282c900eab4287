// Package locales embeds the translation files shared by the desktop and
// terminal frontends.
package locales

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"golang.org/x/text/language"
)

//go:embed *.json
var files embed.FS

const (
	filePrefix = "active."
	fileSuffix = ".json"
)

// NewBundle returns a bundle holding every embedded locale and the language
// codes it found.
func NewBundle() (*i18n.Bundle, []string, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	langs, err := Load(bundle, files)
	if err != nil {
		return nil, nil, err
	}
	return bundle, langs, nil
}

// Load registers each active.<lang>.json file at the root of fsys and
// returns the language codes it found. Unreadable files are logged and
// skipped.
func Load(bundle *i18n.Bundle, fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	log := slog.With(config.LogKeyComponent, config.CompI18n)
	var langs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if code == "" {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(fsys, name); err != nil {
			log.Error(config.ErrLocaleLoad, config.LogKeyFile, name, config.LogKeyError, err)
			continue
		}
		log.Debug(config.MsgLocaleLoaded, config.LogKeyLang, code)
		langs = append(langs, code)
	}
	return langs, nil
}

// Msg translates key, falling back to the key itself.
func Msg(loc *i18n.Localizer, key string) string {
	if loc == nil {
		return key
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key})
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
