// Package settings holds the user preferences shown on the settings screen
// and persists them through a pluggable Store.
package settings

import (
	"fmt"
	"log"
)

// Kind is the value type of an option
type Kind int

const (
	KindBool Kind = iota
	KindSelect
)

// Option keys
const (
	KeyThemeMode        = "themeMode"
	KeyFontSize         = "fontSize"
	KeyFontFamily       = "fontFamily"
	KeyShowWelcome      = "showWelcome"
	KeyImageDisplay     = "imageDisplay"
	KeyEnableAnimations = "enableAnimations"
	KeyShowLineNumbers  = "showLineNumbers"
)

// Option is a single user-adjustable preference.
// Value is a bool for KindBool and one of Options for KindSelect.
type Option struct {
	Key     string
	Label   string
	Kind    Kind
	Options []string
	Value   any
	Info    string
}

// BoolValue returns the value of a boolean option
func (o Option) BoolValue() bool {
	b, _ := o.Value.(bool)
	return b
}

// StringValue returns the value of a select option
func (o Option) StringValue() string {
	s, _ := o.Value.(string)
	return s
}

// accepts reports whether v is a legal value for the option
func (o Option) accepts(v any) bool {
	switch o.Kind {
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindSelect:
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, opt := range o.Options {
			if opt == s {
				return true
			}
		}
	}
	return false
}

// Defaults returns the fixed option set in display order
func Defaults() []Option {
	return []Option{
		{
			Key:     KeyThemeMode,
			Label:   "Theme Mode",
			Kind:    KindSelect,
			Options: []string{"terminal", "light", "dark"},
			Value:   "terminal",
			Info:    "Change the visual theme of the terminal",
		},
		{
			Key:     KeyFontSize,
			Label:   "Font Size",
			Kind:    KindSelect,
			Options: []string{"small", "medium", "large", "xl"},
			Value:   "medium",
			Info:    "Adjust the font size for better readability",
		},
		{
			Key:     KeyFontFamily,
			Label:   "Font Family",
			Kind:    KindSelect,
			Options: []string{"JetBrains Mono", "Fira Code", "IBM Plex Mono", "Courier New", "Ubuntu", "Tektur"},
			Value:   "JetBrains Mono",
			Info:    "Choose your preferred monospace font",
		},
		{
			Key:   KeyShowWelcome,
			Label: "Show Welcome Screen",
			Kind:  KindBool,
			Value: true,
			Info:  "Toggle the welcome screen on startup",
		},
		{
			Key:     KeyImageDisplay,
			Label:   "Media Display",
			Kind:    KindSelect,
			Options: []string{"none", "ascii", "full"},
			Value:   "ascii",
			Info:    "Control how images are displayed",
		},
		{
			Key:   KeyEnableAnimations,
			Label: "Enable Animations",
			Kind:  KindBool,
			Value: true,
			Info:  "Enable or disable visual animations",
		},
		{
			Key:   KeyShowLineNumbers,
			Label: "Show Line Numbers",
			Kind:  KindBool,
			Value: false,
			Info:  "Show line numbers in code blocks",
		},
	}
}

// Settings is the live option set backed by a Store. Every mutation is
// written through immediately.
type Settings struct {
	options []Option
	store   Store
}

// Load builds the option set from defaults and merges whatever the store
// returns. A failing store is logged and the defaults are kept.
func Load(store Store) *Settings {
	s := &Settings{options: Defaults(), store: store}
	if store == nil {
		return s
	}
	persisted, err := store.Load()
	if err != nil {
		log.Printf("settings: load failed, using defaults: %v", err)
		return s
	}
	s.options = Merge(s.options, persisted)
	return s
}

// Merge applies persisted values onto defaults key by key. Unknown keys are
// ignored and values of the wrong type or outside the allowed options fall
// back to the default.
func Merge(defaults []Option, persisted map[string]any) []Option {
	out := make([]Option, len(defaults))
	copy(out, defaults)
	for i := range out {
		v, ok := persisted[out[i].Key]
		if !ok {
			continue
		}
		if !out[i].accepts(v) {
			log.Printf("settings: ignoring invalid value %v for %s", v, out[i].Key)
			continue
		}
		out[i].Value = v
	}
	return out
}

// Options returns a copy of the current option list
func (s *Settings) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

// Len returns the number of options
func (s *Settings) Len() int {
	return len(s.options)
}

// At returns the option at index i
func (s *Settings) At(i int) (Option, bool) {
	if i < 0 || i >= len(s.options) {
		return Option{}, false
	}
	return s.options[i], true
}

// Get returns the option with the given key
func (s *Settings) Get(key string) (Option, bool) {
	for _, o := range s.options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Bool returns a boolean option value, false if absent
func (s *Settings) Bool(key string) bool {
	o, _ := s.Get(key)
	return o.BoolValue()
}

// String returns a select option value, empty if absent
func (s *Settings) String(key string) string {
	o, _ := s.Get(key)
	return o.StringValue()
}

// Activate flips a boolean option or advances a select option to its next
// value (wrapping), then persists the full record.
func (s *Settings) Activate(i int) error {
	if i < 0 || i >= len(s.options) {
		return fmt.Errorf("setting index %d out of range", i)
	}
	o := &s.options[i]
	switch o.Kind {
	case KindBool:
		o.Value = !o.BoolValue()
	case KindSelect:
		o.Value = nextOption(o.Options, o.StringValue())
	}
	s.save()
	return nil
}

// Set assigns a value by key and persists it
func (s *Settings) Set(key string, v any) error {
	for i := range s.options {
		if s.options[i].Key != key {
			continue
		}
		if !s.options[i].accepts(v) {
			return fmt.Errorf("invalid value %v for setting %s", v, key)
		}
		s.options[i].Value = v
		s.save()
		return nil
	}
	return fmt.Errorf("unknown setting %q", key)
}

// Record returns the persisted form: key to value
func (s *Settings) Record() map[string]any {
	rec := make(map[string]any, len(s.options))
	for _, o := range s.options {
		rec[o.Key] = o.Value
	}
	return rec
}

func (s *Settings) save() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.Record()); err != nil {
		log.Printf("settings: save failed: %v", err)
	}
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// fontPoints maps the fontSize option to pixel sizes
var fontPoints = map[string]int{
	"small":  10,
	"medium": 12,
	"large":  16,
	"xl":     20,
}

// FontPixels returns the pixel size for the fontSize preference. Terminals
// pick their own font, so this only applies to rendered output such as SVG.
func (s *Settings) FontPixels() int {
	if px, ok := fontPoints[s.String(KeyFontSize)]; ok {
		return px
	}
	return fontPoints["medium"]
}
