package trace

import (
	"path"
	"path/filepath"
	"strings"
)

// Filter decides which frames are hidden from formatted traces. Hidden
// frames are runtime plumbing (VM internals, loader machinery, bootstrap
// scripts) that only obscure the user's own call path. The diagnostic
// override disables hiding entirely for debugging.
type Filter struct {
	hiddenHostSources map[string]bool
	proxyPrefix       string
	hiddenScripts     map[string]bool
	showAll           bool
}

// Default hidden sets.
var (
	// defaultHiddenHostSources are native sources whose frames are noise:
	// the VM itself, its built-in function marker, and the loader.
	defaultHiddenHostSources = []string{
		builtinSource,
		"github.com/yuin/gopher-lua",
		"github.com/Ap3teus/craftjs-javascript/internal/require",
	}

	// defaultHiddenScripts are internal bootstrap scripts.
	defaultHiddenScripts = []string{
		"craftjs.lua",
		"entrypoint.lua",
	}
)

// defaultProxyPrefix matches reflection proxy sources generated when host
// values cross into the VM.
const defaultProxyPrefix = "reflect."

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithShowAllFrames disables frame hiding (the diagnostic override).
func WithShowAllFrames(show bool) FilterOption {
	return func(f *Filter) {
		f.showAll = show
	}
}

// WithHiddenHostSources replaces the hidden host source set.
func WithHiddenHostSources(sources ...string) FilterOption {
	return func(f *Filter) {
		f.hiddenHostSources = toSet(sources)
	}
}

// WithHiddenScripts replaces the hidden script file set.
func WithHiddenScripts(files ...string) FilterOption {
	return func(f *Filter) {
		f.hiddenScripts = toSet(files)
	}
}

// NewFilter creates a Filter with the default hidden sets.
func NewFilter(opts ...FilterOption) *Filter {
	f := &Filter{
		hiddenHostSources: toSet(defaultHiddenHostSources),
		proxyPrefix:       defaultProxyPrefix,
		hiddenScripts:     toSet(defaultHiddenScripts),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// Hidden reports whether the frame should be omitted from output.
func (f *Filter) Hidden(frame Frame) bool {
	if f.showAll {
		return false
	}
	if frame.Host {
		if f.hiddenHostSources[frame.Source] {
			return true
		}
		return f.proxyPrefix != "" && strings.HasPrefix(frame.Source, f.proxyPrefix)
	}
	// Loaded chunks are named by absolute path; the hidden set holds bare
	// file names, so match on the base name as well.
	if f.hiddenScripts[frame.Source] {
		return true
	}
	return f.hiddenScripts[path.Base(filepath.ToSlash(frame.Source))]
}

// ShowAll reports whether the diagnostic override is active.
func (f *Filter) ShowAll() bool { return f.showAll }
