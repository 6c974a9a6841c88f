package trace

import "testing"

func TestFilterHidden(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		name   string
		frame  Frame
		hidden bool
	}{
		{"vm internals", Frame{Host: true, Source: "github.com/yuin/gopher-lua"}, true},
		{"builtin marker", Frame{Host: true, Source: "[G]"}, true},
		{"loader machinery", Frame{Host: true, Source: "github.com/Ap3teus/craftjs-javascript/internal/require"}, true},
		{"reflection proxy", Frame{Host: true, Source: "reflect.methodValueCall"}, true},
		{"host application", Frame{Host: true, Source: "github.com/example/host"}, false},
		{"bootstrap script", Frame{Source: "craftjs.lua"}, true},
		{"bootstrap script by absolute path", Frame{Source: "/plugins/demo/dist/craftjs.lua"}, true},
		{"entrypoint by absolute path", Frame{Source: "/plugins/demo/dist/entrypoint.lua"}, true},
		{"user script", Frame{Source: "dist/index.lua"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Hidden(tt.frame); got != tt.hidden {
				t.Errorf("Hidden(%+v) = %v, want %v", tt.frame, got, tt.hidden)
			}
		})
	}
}

func TestFilterShowAllFrames(t *testing.T) {
	f := NewFilter(WithShowAllFrames(true))

	hiddenByDefault := []Frame{
		{Host: true, Source: "[G]"},
		{Host: true, Source: "github.com/yuin/gopher-lua"},
		{Source: "craftjs.lua"},
	}
	for _, frame := range hiddenByDefault {
		if f.Hidden(frame) {
			t.Errorf("Hidden(%+v) = true with the diagnostic override active", frame)
		}
	}
	if !f.ShowAll() {
		t.Error("ShowAll() = false")
	}
}

func TestFilterCustomSets(t *testing.T) {
	f := NewFilter(
		WithHiddenHostSources("github.com/example/internal"),
		WithHiddenScripts("boot.lua"),
	)

	if !f.Hidden(Frame{Host: true, Source: "github.com/example/internal"}) {
		t.Error("custom hidden host source not applied")
	}
	if !f.Hidden(Frame{Source: "boot.lua"}) {
		t.Error("custom hidden script not applied")
	}
	// Replacing the sets drops the defaults.
	if f.Hidden(Frame{Source: "craftjs.lua"}) {
		t.Error("default hidden script should be replaced")
	}
}
