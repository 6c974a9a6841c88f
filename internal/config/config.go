// Package config holds runtime settings persisted in a plugin root's
// craftjs.json file.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Settings are the runtime knobs a plugin root may carry.
type Settings struct {
	// ShowAllFrames disables frame hiding in formatted traces (the
	// diagnostic override).
	ShowAllFrames bool

	// LogLevel is the minimum level for runtime log output.
	LogLevel string
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		ShowAllFrames: false,
		LogLevel:      "info",
	}
}

// Load reads settings from the given file. A missing file yields the
// defaults without error; a present but unreadable file is an error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if v := gjson.GetBytes(data, "showAllFrames"); v.Exists() {
		s.ShowAllFrames = v.Bool()
	}
	if v := gjson.GetBytes(data, "logLevel"); v.Exists() && v.String() != "" {
		s.LogLevel = v.String()
	}
	return s, nil
}

// Save writes the settings to the given file, creating it when absent.
func Save(path string, s Settings) error {
	doc := "{}"
	if data, err := os.ReadFile(path); err == nil {
		doc = string(data)
	}

	doc, err := sjson.Set(doc, "showAllFrames", s.ShowAllFrames)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	doc, err = sjson.Set(doc, "logLevel", s.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
