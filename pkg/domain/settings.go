package domain

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/aretw0/autoquote/pkg/annotate"
	"github.com/mitchellh/mapstructure"
)

// Settings is an immutable snapshot of the extension settings stored by the host.
// Field tags match the keys of the host key-value blob.
type Settings struct {
	Enabled         bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	AsteriskEnabled bool `json:"asteriskEnabled" yaml:"asteriskEnabled" mapstructure:"asteriskEnabled"`

	// Name-highlight styling
	HighlightNamesEnabled bool   `json:"highlightNamesEnabled" yaml:"highlightNamesEnabled" mapstructure:"highlightNamesEnabled"`
	HighlightNamesColor   string `json:"highlightNamesColor" yaml:"highlightNamesColor" mapstructure:"highlightNamesColor"`

	// Full-color styling
	MessageColorsEnabled bool   `json:"messageColorsEnabled" yaml:"messageColorsEnabled" mapstructure:"messageColorsEnabled"`
	MessageTextColor     string `json:"messageTextColor" yaml:"messageTextColor" mapstructure:"messageTextColor"`
	MessageNamesColor    string `json:"messageNamesColor" yaml:"messageNamesColor" mapstructure:"messageNamesColor"`
	MessageQuotesColor   string `json:"messageQuotesColor" yaml:"messageQuotesColor" mapstructure:"messageQuotesColor"`
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() Settings {
	return Settings{
		Enabled:             true,
		HighlightNamesColor: annotate.DefaultNameColor,
		MessageTextColor:    annotate.DefaultTextColor,
		MessageNamesColor:   annotate.DefaultNameColor,
		MessageQuotesColor:  annotate.DefaultQuoteColor,
	}
}

// Decode builds Settings from a host blob. Missing keys keep their defaults and
// values are weakly typed, so "true", "yes", "on" or 1 decode as booleans.
// Colors that fail Validate are an error.
func Decode(blob map[string]any) (Settings, error) {
	s, err := decode(blob)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// DecodeStored is Decode for a blob already held by the host. Colors that fail
// Validate fall back to their defaults instead of failing the whole snapshot;
// the keys that were reset are returned sorted.
func DecodeStored(blob map[string]any) (Settings, []string, error) {
	s, err := decode(blob)
	if err != nil {
		return Settings{}, nil, err
	}
	s, reset := s.Repair()
	return s, reset, nil
}

func decode(blob map[string]any) (Settings, error) {
	s := DefaultSettings()
	if len(blob) == 0 {
		return s, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       boolWordHook,
		WeaklyTypedInput: true,
		Result:           &s,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := dec.Decode(blob); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return s, nil
}

// boolWordHook accepts the YAML 1.1 words for booleans that yaml.v3 leaves as strings.
func boolWordHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String())) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return data, nil
}

// Encode returns the blob representation of s.
func (s Settings) Encode() map[string]any {
	blob := make(map[string]any)
	// Struct to map decoding cannot fail for flat scalar fields.
	_ = mapstructure.Decode(s, &blob)
	return blob
}

// Merge returns a copy of blob with the fields of s written over it.
// Keys the extension does not know about are preserved.
func (s Settings) Merge(blob map[string]any) map[string]any {
	merged := make(map[string]any, len(blob)+8)
	for k, v := range blob {
		merged[k] = v
	}
	for k, v := range s.Encode() {
		merged[k] = v
	}
	return merged
}

// colorFields maps each color key to its field.
func (s *Settings) colorFields() map[string]*string {
	return map[string]*string{
		KeyHighlightNamesColor: &s.HighlightNamesColor,
		KeyMessageTextColor:    &s.MessageTextColor,
		KeyMessageNamesColor:   &s.MessageNamesColor,
		KeyMessageQuotesColor:  &s.MessageQuotesColor,
	}
}

func validColor(c string) bool {
	return !strings.ContainsAny(c, ";\"'<>&\n")
}

// Validate rejects colors that cannot be placed inside a style attribute.
func (s Settings) Validate() error {
	for key, c := range s.colorFields() {
		if !validColor(*c) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSettings, key, *c)
		}
	}
	return nil
}

// Repair returns s with every color that fails Validate replaced by its default,
// and the sorted keys that were replaced.
func (s Settings) Repair() (Settings, []string) {
	defaults := DefaultSettings()
	want := defaults.colorFields()

	var reset []string
	for key, c := range s.colorFields() {
		if !validColor(*c) {
			*c = *want[key]
			reset = append(reset, key)
		}
	}
	sort.Strings(reset)
	return s, reset
}

// AnnotationConfig returns the annotator setup selected by s.
// The full-color styling takes precedence over name highlighting;
// ok is false when neither is enabled.
func (s Settings) AnnotationConfig() (cfg annotate.Config, ok bool) {
	switch {
	case s.MessageColorsEnabled:
		return annotate.Config{
			Variant:    annotate.VariantFull,
			NameColor:  s.MessageNamesColor,
			TextColor:  s.MessageTextColor,
			QuoteColor: s.MessageQuotesColor,
		}, true
	case s.HighlightNamesEnabled:
		return annotate.Config{
			Variant:   annotate.VariantNames,
			NameColor: s.HighlightNamesColor,
		}, true
	}
	return annotate.Config{}, false
}
