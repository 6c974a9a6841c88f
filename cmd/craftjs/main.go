// Command craftjs boots a script runtime for a single plugin root and
// requires its entrypoint. It is thin host glue around the loader.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/Ap3teus/craftjs-javascript/internal/config"
	"github.com/Ap3teus/craftjs-javascript/internal/logging"
	"github.com/Ap3teus/craftjs-javascript/internal/plugin"
	"github.com/Ap3teus/craftjs-javascript/internal/require"
	"github.com/Ap3teus/craftjs-javascript/internal/trace"
)

func main() {
	root := flag.String("plugin", ".", "plugin root directory")
	flag.Parse()

	if err := run(*root); err != nil {
		fmt.Fprintln(os.Stderr, "craftjs:", err)
		os.Exit(1)
	}
}

func run(root string) error {
	p, err := plugin.Load(root)
	if err != nil {
		return err
	}

	settings, err := config.Load(p.SettingsPath())
	if err != nil {
		return err
	}

	log := logging.NewSlogLogger(settings.LogLevel)

	L := lua.NewState()
	defer L.Close()

	formatter := trace.NewFormatter(p.Name(),
		trace.WithFilter(trace.NewFilter(trace.WithShowAllFrames(settings.ShowAllFrames))),
		trace.WithSourceMapper(trace.NewFileSourceMapper(p.DistDir())),
		trace.WithLogger(log),
	)

	ctx := require.NewContext(L, p,
		require.WithLogger(log),
		require.WithFormatter(formatter),
	)
	ctx.Install()

	entry := p.EntryPath()
	specifier := "./" + strings.TrimSuffix(filepath.Base(entry), require.ScriptExt)

	log.Info("loading plugin", "plugin", p.Name(), "entry", entry, "runtime", ctx.ID())

	if _, err := ctx.Require(specifier, filepath.Dir(entry)); err != nil {
		return err
	}
	return nil
}
