package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	s := Load(NewMemoryStore(nil))

	if s.Len() != 7 {
		t.Fatalf("expected 7 options, got %d", s.Len())
	}
	if got := s.String(KeyThemeMode); got != "terminal" {
		t.Errorf("themeMode = %q, want terminal", got)
	}
	if !s.Bool(KeyShowWelcome) {
		t.Error("showWelcome should default to true")
	}
	if s.Bool(KeyShowLineNumbers) {
		t.Error("showLineNumbers should default to false")
	}
}

func TestLoad_MergesByKey(t *testing.T) {
	store := NewMemoryStore(map[string]any{
		KeyThemeMode:   "dark",
		KeyShowWelcome: false,
		"obsoleteKey":  "whatever",
	})
	s := Load(store)

	if got := s.String(KeyThemeMode); got != "dark" {
		t.Errorf("themeMode = %q, want dark", got)
	}
	if s.Bool(KeyShowWelcome) {
		t.Error("showWelcome should be false from store")
	}
	if got := s.String(KeyFontSize); got != "medium" {
		t.Errorf("fontSize = %q, want default medium", got)
	}
	if _, ok := s.Get("obsoleteKey"); ok {
		t.Error("unknown key should not be added")
	}
}

func TestMerge_RejectsInvalidValues(t *testing.T) {
	merged := Merge(Defaults(), map[string]any{
		KeyThemeMode:   "neon",
		KeyShowWelcome: "yes",
		KeyFontSize:    float64(3),
	})
	byKey := map[string]Option{}
	for _, o := range merged {
		byKey[o.Key] = o
	}
	if byKey[KeyThemeMode].StringValue() != "terminal" {
		t.Errorf("invalid select should fall back, got %v", byKey[KeyThemeMode].Value)
	}
	if !byKey[KeyShowWelcome].BoolValue() {
		t.Errorf("wrong-typed bool should fall back, got %v", byKey[KeyShowWelcome].Value)
	}
	if byKey[KeyFontSize].StringValue() != "medium" {
		t.Errorf("wrong-typed select should fall back, got %v", byKey[KeyFontSize].Value)
	}
}

func TestLoad_StoreErrorKeepsDefaults(t *testing.T) {
	store := NewMemoryStore(nil)
	store.LoadErr = errors.New("disk on fire")
	s := Load(store)
	if got := s.String(KeyImageDisplay); got != "ascii" {
		t.Errorf("imageDisplay = %q, want ascii", got)
	}
}

func TestActivate_TogglesAndCycles(t *testing.T) {
	store := NewMemoryStore(nil)
	s := Load(store)

	// themeMode is index 0: terminal -> light -> dark -> terminal
	want := []string{"light", "dark", "terminal"}
	for _, w := range want {
		if err := s.Activate(0); err != nil {
			t.Fatal(err)
		}
		if got := s.String(KeyThemeMode); got != w {
			t.Fatalf("themeMode = %q, want %q", got, w)
		}
	}

	// showWelcome is index 3
	if err := s.Activate(3); err != nil {
		t.Fatal(err)
	}
	if s.Bool(KeyShowWelcome) {
		t.Error("showWelcome should be toggled off")
	}

	if store.Saves() != 4 {
		t.Errorf("expected 4 saves, got %d", store.Saves())
	}
	rec, _ := store.Load()
	if rec[KeyShowWelcome] != false || rec[KeyThemeMode] != "terminal" {
		t.Errorf("persisted record mismatch: %v", rec)
	}

	if err := s.Activate(99); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestActivate_SaveFailureKeepsValue(t *testing.T) {
	store := NewMemoryStore(nil)
	store.SaveErr = errors.New("read-only")
	s := Load(store)

	if err := s.Activate(6); err != nil {
		t.Fatal(err)
	}
	if !s.Bool(KeyShowLineNumbers) {
		t.Error("in-memory value should change even when save fails")
	}
}

func TestFontPixels(t *testing.T) {
	tests := map[string]int{"small": 10, "medium": 12, "large": 16, "xl": 20}
	for size, want := range tests {
		s := Load(NewMemoryStore(map[string]any{KeyFontSize: size}))
		if got := s.FontPixels(); got != want {
			t.Errorf("FontPixels(%q) = %d, want %d", size, got, want)
		}
	}
	if got := Load(NewMemoryStore(nil)).FontPixels(); got != 12 {
		t.Errorf("default FontPixels = %d, want 12", got)
	}
}

func TestSet(t *testing.T) {
	s := Load(NewMemoryStore(nil))
	if err := s.Set(KeyFontFamily, "Fira Code"); err != nil {
		t.Fatal(err)
	}
	if s.String(KeyFontFamily) != "Fira Code" {
		t.Error("Set did not apply")
	}
	if err := s.Set(KeyFontFamily, "Comic Sans"); err == nil {
		t.Error("expected error for value outside options")
	}
	if err := s.Set("nope", true); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := NewFileStore(path)

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("missing file should load empty: %v", err)
	}
	if len(rec) != 0 {
		t.Errorf("expected empty record, got %v", rec)
	}

	s := Load(store)
	if err := s.Set(KeyThemeMode, "light"); err != nil {
		t.Fatal(err)
	}

	reloaded := Load(NewFileStore(path))
	if got := reloaded.String(KeyThemeMode); got != "light" {
		t.Errorf("themeMode after reload = %q, want light", got)
	}
}

func TestFileStore_LegacyArrayFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	legacy := `[{"key":"themeMode","currentValue":"dark"},{"key":"showLineNumbers","currentValue":true}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(NewFileStore(path))
	if got := s.String(KeyThemeMode); got != "dark" {
		t.Errorf("themeMode = %q, want dark", got)
	}
	if !s.Bool(KeyShowLineNumbers) {
		t.Error("showLineNumbers should be true")
	}
}

func TestFileStore_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(); err == nil {
		t.Error("expected decode error")
	}
	s := Load(NewFileStore(path))
	if got := s.String(KeyThemeMode); got != "terminal" {
		t.Errorf("themeMode = %q, want default", got)
	}
}
