package plugin

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// ManifestName is the package metadata file read from a package directory.
const ManifestName = "package.json"

// manifestMain reads the optional main field from a directory's manifest.
// Returns false when the manifest is absent, unreadable, or fieldless.
func manifestMain(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return "", false
	}
	main := gjson.GetBytes(data, "main")
	if !main.Exists() || main.String() == "" {
		return "", false
	}
	return main.String(), true
}

// Entrypoint resolves a package directory to its entry file.
//
// A manifest-declared main wins and is NOT re-verified to exist; a missing
// declared main surfaces later, at load time. Without a declared main the
// conventional index.lua is returned only if it exists. Returns false when
// the package has no resolvable entry.
func Entrypoint(packageDir string) (string, bool) {
	if main, ok := manifestMain(packageDir); ok {
		return filepath.Join(packageDir, main), true
	}

	fallback := filepath.Join(packageDir, DefaultEntryName)
	if _, err := os.Stat(fallback); err == nil {
		return fallback, true
	}
	return "", false
}
