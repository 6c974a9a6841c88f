// Package plugin describes the per-plugin filesystem layout the runtime
// consumes.
//
// A plugin root contains the compiled script output under dist/ (produced
// by the external build pipeline, together with source maps) and bundled
// dependency packages under node_modules/. The runtime only reads this
// layout; producing it is the build pipeline's job.
//
// Directory plugin:
//
//	myplugin/
//	├── craftjs.json     # Runtime settings (optional)
//	├── dist/            # Compiled scripts + source maps
//	│   ├── index.lua    # Default entry point
//	│   └── index.lua.map
//	└── node_modules/    # Bundled dependency packages
//	    └── somelib/
//	        ├── package.json
//	        └── index.lua
package plugin

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout defaults.
const (
	// DistDirName is the compiled script output directory.
	DistDirName = "dist"

	// DependencyDirName is the bundled dependency directory searched for
	// package specifiers.
	DependencyDirName = "node_modules"

	// DefaultEntryName is the conventional package entry file.
	DefaultEntryName = "index.lua"
)

// Plugin is one logical unit of scripts and resources. Remapped source
// paths are re-rooted relative to the plugin root.
type Plugin struct {
	name string
	root string
}

// Load validates the layout at root and returns the plugin. The plugin
// name defaults to the root directory's base name.
func Load(root string) (*Plugin, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	distInfo, err := os.Stat(filepath.Join(root, DistDirName))
	if err != nil || !distInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoDist, root)
	}

	return &Plugin{name: filepath.Base(root), root: root}, nil
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return p.name }

// Root returns the plugin root directory.
func (p *Plugin) Root() string { return p.root }

// DistDir returns the compiled script output directory. It is the default
// base directory for the first, stack-empty require.
func (p *Plugin) DistDir() string {
	return filepath.Join(p.root, DistDirName)
}

// DependencyDir returns the directory searched for package specifiers.
func (p *Plugin) DependencyDir() string {
	return filepath.Join(p.root, DependencyDirName)
}

// EntryPath returns the plugin's own entry file: the manifest-declared
// entry when the plugin root carries a manifest, else dist/index.lua.
func (p *Plugin) EntryPath() string {
	if main, ok := manifestMain(p.root); ok {
		return filepath.Join(p.root, main)
	}
	return filepath.Join(p.DistDir(), DefaultEntryName)
}

// SettingsPath returns the path of the plugin's runtime settings file.
func (p *Plugin) SettingsPath() string {
	return filepath.Join(p.root, "craftjs.json")
}
