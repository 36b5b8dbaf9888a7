// Package settings persists the narrator's configuration: a flat
// flags structure plus the action-to-binding table. The file is read
// once at startup and rewritten wholesale on every change — no
// incremental format, no versioning. Load what exists, apply, else
// default.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/logger"
)

// Flags are the feature toggles and tunables.
type Flags struct {
	SpeechEnabled  bool `json:"speech_enabled"`
	CuesEnabled    bool `json:"cues_enabled"`
	RepeatDelay    int  `json:"repeat_delay"`
	RepeatInterval int  `json:"repeat_interval"`
}

// BindingEntry is one persisted binding, stored by control name so the
// file stays hand-editable.
type BindingEntry struct {
	Primary  string `json:"primary"`
	Modifier string `json:"modifier,omitempty"`
	Context  string `json:"context"`
}

// Config is the whole persisted state.
type Config struct {
	Flags    Flags                   `json:"flags"`
	Bindings map[string]BindingEntry `json:"bindings"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Flags: Flags{
			SpeechEnabled:  true,
			CuesEnabled:    true,
			RepeatDelay:    16,
			RepeatInterval: 4,
		},
		Bindings: map[string]BindingEntry{
			"Read Status": {Primary: "R", Context: input.ContextGlobal},
			"Repeat Last": {Primary: "T", Context: input.ContextGlobal},
			"Silence":     {Primary: "S", Modifier: "Ctrl", Context: input.ContextGlobal},
		},
	}
}

// Load reads the configuration file. A missing file returns the
// defaults; a corrupt one returns the defaults and logs what was
// wrong. Load never fails the caller.
func Load(path string, log *logger.Logger) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("settings: reading %s: %v (using defaults)", path, err)
		}
		return Default()
	}

	// Decode over the defaults so omitted flags keep their default
	// values instead of zeroing. The bindings table is nilled first:
	// when the file carries one it replaces the defaults wholesale, so
	// an unbound action stays unbound across restarts.
	cfg := Default()
	cfg.Bindings = nil
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Warn("settings: parsing %s: %v (using defaults)", path, err)
		return Default()
	}
	if cfg.Bindings == nil {
		cfg.Bindings = Default().Bindings
	}
	if cfg.Flags.RepeatDelay <= 0 {
		cfg.Flags.RepeatDelay = 16
	}
	if cfg.Flags.RepeatInterval <= 0 {
		cfg.Flags.RepeatInterval = 4
	}
	return cfg
}

// Save rewrites the whole file atomically: marshal, write a sibling
// temp file, rename over the target.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating settings dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}

// ToBindings converts the persisted table into live bindings,
// skipping entries whose control names no longer parse.
func (c Config) ToBindings(log *logger.Logger) map[string]input.Binding {
	out := make(map[string]input.Binding, len(c.Bindings))
	for action, e := range c.Bindings {
		primary, ok := input.ParseControl(e.Primary)
		if !ok {
			log.Warn("settings: unknown control %q for %q, skipping", e.Primary, action)
			continue
		}
		b := input.Binding{Primary: primary, Context: e.Context}
		if e.Modifier != "" {
			if mod, ok := input.ParseControl(e.Modifier); ok {
				b.Modifier = mod
			} else {
				log.Warn("settings: unknown modifier %q for %q, dropping it", e.Modifier, action)
			}
		}
		if b.Context == "" {
			b.Context = input.ContextGlobal
		}
		out[action] = b
	}
	return out
}

// SetBindings replaces the persisted table from live bindings.
func (c *Config) SetBindings(table map[string]input.Binding) {
	c.Bindings = make(map[string]BindingEntry, len(table))
	for action, b := range table {
		e := BindingEntry{Primary: b.Primary.String(), Context: b.Context}
		if b.Modifier != input.ControlNone {
			e.Modifier = b.Modifier.String()
		}
		c.Bindings[action] = e
	}
}
