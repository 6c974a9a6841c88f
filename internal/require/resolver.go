package require

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Ap3teus/craftjs-javascript/internal/plugin"
)

// ScriptExt is the canonical compiled script extension.
const ScriptExt = ".lua"

// resolve turns a specifier into a concrete loadable path.
//
// Decision order, first match wins:
//  1. The reserved core-module name resolves to its fixed path,
//     ignoring the requesting directory.
//  2. A specifier starting with "." is a relative file: the canonical
//     extension is appended, the path is resolved against dir, and that
//     exact file must exist.
//  3. Anything else is a package specifier, looked up under the plugin
//     root's dependency directory (not dir) through the package
//     entrypoint resolver.
//
// Namespace resolution is not attempted here; Require consults the host
// namespace graph before falling through to file-based resolution.
func (c *Context) resolve(dir, specifier string) (string, bool) {
	if specifier == CoreModuleName {
		return c.corePath, true
	}

	if strings.HasPrefix(specifier, ".") {
		path := filepath.Join(dir, specifier+ScriptExt)
		if _, err := os.Stat(path); err != nil {
			return "", false
		}
		return path, true
	}

	packageDir := filepath.Join(c.plugin.DependencyDir(), specifier)
	info, err := os.Stat(packageDir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return plugin.Entrypoint(packageDir)
}
