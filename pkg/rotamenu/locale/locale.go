// Package locale provides the fixed strings the menu engine renders itself,
// translated with go-i18n. Page text comes from the menu definition and is
// only translated when the definition asks for a message ID.
package locale

import (
	"embed"
	"fmt"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFiles embed.FS

// Message IDs for the engine's own strings.
const (
	MsgNoFilesFound     = "NoFilesFound"
	MsgNoStorage        = "NoStorage"
	MsgValueUnavailable = "ValueUnavailable"
)

var defaults = map[string]string{
	MsgNoFilesFound:     "No files found",
	MsgNoStorage:        "No storage",
	MsgValueUnavailable: constants.ValuePlaceholder,
}

// Messages are the resolved engine strings for one language.
type Messages struct {
	NoFilesFound     string
	NoStorage        string
	ValueUnavailable string
}

// Default returns the English strings without touching the bundle.
func Default() Messages {
	return Messages{
		NoFilesFound:     defaults[MsgNoFilesFound],
		NoStorage:        defaults[MsgNoStorage],
		ValueUnavailable: defaults[MsgValueUnavailable],
	}
}

// Localizer resolves message IDs for a preferred language list.
type Localizer struct {
	loc *i18n.Localizer
}

// NewBundle loads every embedded message file.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messageFiles.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("locale: read messages: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(messageFiles, "messages/"+e.Name()); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", e.Name(), err)
		}
	}
	return bundle, nil
}

// New builds a Localizer for the given language tags ("de", "fr-CA", ...).
// Unknown or empty tags fall back to English.
func New(langs ...string) (*Localizer, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}
	return &Localizer{loc: i18n.NewLocalizer(bundle, langs...)}, nil
}

// Localize returns the translation of id, or fallback if there is none.
func (l *Localizer) Localize(id, fallback string) string {
	if l == nil || l.loc == nil {
		return fallback
	}
	s, err := l.loc.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: fallback},
	})
	if err != nil || s == "" {
		return fallback
	}
	return s
}

// Messages resolves the engine strings.
func (l *Localizer) Messages() Messages {
	return Messages{
		NoFilesFound:     l.Localize(MsgNoFilesFound, defaults[MsgNoFilesFound]),
		NoStorage:        l.Localize(MsgNoStorage, defaults[MsgNoStorage]),
		ValueUnavailable: l.Localize(MsgValueUnavailable, defaults[MsgValueUnavailable]),
	}
}

// Tag parses a language string, returning English for anything invalid.
func Tag(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}
