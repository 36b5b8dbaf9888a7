package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/logger"
)

func testLog() *logger.Logger {
	return logger.New(logger.LevelOff, nil)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"), testLog())
	if !cfg.Flags.SpeechEnabled || cfg.Flags.RepeatDelay != 16 {
		t.Fatalf("defaults not applied: %+v", cfg.Flags)
	}
	if _, ok := cfg.Bindings["Read Status"]; !ok {
		t.Fatal("default bindings missing")
	}
}

func TestLoadCorruptFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path, testLog())
	if cfg.Flags.RepeatDelay != 16 {
		t.Fatalf("corrupt file did not fall back: %+v", cfg.Flags)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	cfg := Default()
	cfg.Flags.CuesEnabled = false
	cfg.SetBindings(map[string]input.Binding{
		"Read Status": {Primary: input.PadY, Modifier: input.PadLT, Context: input.ContextGlobal},
	})

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := Load(path, testLog())
	if got.Flags.CuesEnabled {
		t.Fatal("flag did not survive round trip")
	}
	table := got.ToBindings(testLog())
	b, ok := table["Read Status"]
	if !ok {
		t.Fatal("binding missing after round trip")
	}
	if b.Primary != input.PadY || b.Modifier != input.PadLT {
		t.Fatalf("binding = %+v", b)
	}
}

func TestToBindingsSkipsUnknownControls(t *testing.T) {
	cfg := Config{Bindings: map[string]BindingEntry{
		"Good": {Primary: "R", Context: input.ContextGlobal},
		"Bad":  {Primary: "Hyperdrive", Context: input.ContextGlobal},
	}}
	table := cfg.ToBindings(testLog())
	if _, ok := table["Good"]; !ok {
		t.Fatal("valid entry dropped")
	}
	if _, ok := table["Bad"]; ok {
		t.Fatal("unknown control survived")
	}
}

func TestLoadPartialFileKeepsDefaultToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path, testLog())
	if !cfg.Flags.SpeechEnabled || !cfg.Flags.CuesEnabled {
		t.Fatalf("omitted toggles zeroed instead of defaulting: %+v", cfg.Flags)
	}
	if _, ok := cfg.Bindings["Read Status"]; !ok {
		t.Fatal("omitted bindings table did not default")
	}

	// Explicit false still wins over the default.
	if err := os.WriteFile(path, []byte(`{"flags":{"speech_enabled":false}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg := Load(path, testLog()); cfg.Flags.SpeechEnabled {
		t.Fatal("explicit false was overridden by the default")
	}
}

func TestLoadBindingsReplaceNotMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"bindings":{"Read Status":{"primary":"R","context":"global"}}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path, testLog())
	if len(cfg.Bindings) != 1 {
		t.Fatalf("file table was merged with defaults: %+v", cfg.Bindings)
	}
	// An action unbound in the file must stay unbound.
	if _, ok := cfg.Bindings["Silence"]; ok {
		t.Fatal("default binding resurrected over the file")
	}
}

func TestLoadRepairsZeroTimings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"flags":{"speech_enabled":true}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path, testLog())
	if cfg.Flags.RepeatDelay != 16 || cfg.Flags.RepeatInterval != 4 {
		t.Fatalf("zero timings not repaired: %+v", cfg.Flags)
	}
}
