package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "craftjs.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s != Default() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoadPartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craftjs.json")
	if err := os.WriteFile(path, []byte(`{"showAllFrames": true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !s.ShowAllFrames {
		t.Error("ShowAllFrames = false, want true")
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", s.LogLevel)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craftjs.json")

	want := Settings{ShowAllFrames: true, LogLevel: "debug"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestSavePreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craftjs.json")
	if err := os.WriteFile(path, []byte(`{"custom": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"custom"`) {
		t.Errorf("Save() dropped unknown fields: %s", data)
	}
}
