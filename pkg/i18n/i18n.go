package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type ctxKey struct{}

// Notification is a localized toast delivered in the response meta.
type Notification struct {
	Level       string `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Notification levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Translator resolves message ids against the embedded locale bundle.
type Translator struct {
	bundle        *goi18n.Bundle
	defaultLocale string
}

// New loads every embedded locale file. defaultLocale is used when a context carries none.
func New(defaultLocale string) (*Translator, error) {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
	}
	return &Translator{bundle: bundle, defaultLocale: defaultLocale}, nil
}

// Locales lists the loaded language tags.
func (t *Translator) Locales() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// WithLocale returns a context carrying an Accept-Language style locale string.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext returns the locale stored by WithLocale, or "".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// T translates messageID for the context locale. Unknown ids are returned verbatim.
func (t *Translator) T(ctx context.Context, messageID string, data ...map[string]interface{}) string {
	if t == nil {
		return messageID
	}
	langs := []string{t.defaultLocale}
	if locale := strings.TrimSpace(LocaleFromContext(ctx)); locale != "" {
		langs = append([]string{locale}, langs...)
	}
	l := goi18n.NewLocalizer(t.bundle, langs...)

	cfg := &goi18n.LocalizeConfig{MessageID: messageID}
	if len(data) > 0 && data[0] != nil {
		cfg.TemplateData = data[0]
	}
	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}

// Notify builds a notification from "<key>.title" and "<key>.description" message ids.
func (t *Translator) Notify(ctx context.Context, level, key string, data map[string]interface{}) *Notification {
	n := &Notification{
		Level: level,
		Title: t.T(ctx, key+".title", data),
	}
	if desc := t.T(ctx, key+".description", data); desc != key+".description" {
		n.Description = desc
	}
	return n
}
