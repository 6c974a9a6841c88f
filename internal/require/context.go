// Package require implements the file-based module system scripts use:
// specifier resolution, module caching, require-stack discipline, and
// module body evaluation on the embedded Lua VM.
//
// All mutable loader state (cache, stack, overrides) is owned by a
// Context, constructed once per runtime instance. A Context is bound to a
// single Lua state and, like the state itself, must only be driven from
// one goroutine; hosts embedding multiple script contexts own one Context
// per state.
package require

import (
	"path/filepath"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/Ap3teus/craftjs-javascript/internal/logging"
	"github.com/Ap3teus/craftjs-javascript/internal/namespace"
	"github.com/Ap3teus/craftjs-javascript/internal/plugin"
	"github.com/Ap3teus/craftjs-javascript/internal/trace"
)

// CoreModuleName is the reserved specifier for the runtime's own core
// module. It resolves to a fixed path regardless of requesting directory.
const CoreModuleName = "craftjs"

// cacheKey is the composite module cache key. Two requires of the same
// specifier from different directories are distinct entries even when they
// resolve to the same file, because resolution is directory-sensitive.
type cacheKey struct {
	dir       string
	specifier string
}

// Context owns the module cache and require stack for one runtime
// instance. Both are created empty and live for the instance's lifetime.
type Context struct {
	id     string
	L      *lua.LState
	plugin *plugin.Plugin

	graph     *namespace.Graph
	corePath  string
	overrides map[string]string

	cache map[cacheKey]lua.LValue
	stack []string

	log       logging.Logger
	formatter *trace.Formatter
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger for load failures and diagnostics.
func WithLogger(log logging.Logger) ContextOption {
	return func(c *Context) {
		c.log = log
	}
}

// WithNamespaceGraph sets the host namespace graph consulted before
// file-based resolution.
func WithNamespaceGraph(g *namespace.Graph) ContextOption {
	return func(c *Context) {
		c.graph = g
	}
}

// WithCoreModulePath sets the fixed path of the runtime core module.
func WithCoreModulePath(path string) ContextOption {
	return func(c *Context) {
		c.corePath = path
	}
}

// WithOverride adds an override table entry.
func WithOverride(specifier, replacement string) ContextOption {
	return func(c *Context) {
		c.overrides[specifier] = replacement
	}
}

// WithFormatter sets the error formatter used for execution failures.
func WithFormatter(f *trace.Formatter) ContextOption {
	return func(c *Context) {
		c.formatter = f
	}
}

// NewContext creates a loader context for one plugin on one Lua state.
func NewContext(L *lua.LState, p *plugin.Plugin, opts ...ContextOption) *Context {
	c := &Context{
		id:        uuid.NewString(),
		L:         L,
		plugin:    p,
		graph:     namespace.NewGraph(),
		corePath:  filepath.Join(p.DistDir(), "craftjs.lua"),
		overrides: make(map[string]string, len(defaultOverrides)),
		cache:     make(map[cacheKey]lua.LValue),
	}
	for name, replacement := range defaultOverrides {
		c.overrides[name] = replacement
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.NewNoOpLogger()
	}
	if c.formatter == nil {
		c.formatter = trace.NewFormatter(p.Name(),
			trace.WithSourceMapper(trace.NewFileSourceMapper(p.DistDir())),
			trace.WithLogger(c.log),
		)
	}
	return c
}

// ID returns the runtime instance identifier used in log fields.
func (c *Context) ID() string { return c.id }

// Plugin returns the plugin this context loads for.
func (c *Context) Plugin() *plugin.Plugin { return c.plugin }

// Install registers the Lua-visible require global on the context's state.
func (c *Context) Install() {
	c.L.SetGlobal("require", c.L.NewFunction(c.luaRequire))
}

// luaRequire adapts Require to the Lua calling convention. The optional
// second argument names the requesting directory explicitly, overriding
// the stack-derived one. Resolution failures are raised as Lua errors so
// scripts observe them at the call site; execution failures never surface
// here.
func (c *Context) luaRequire(L *lua.LState) int {
	specifier := L.CheckString(1)
	requestingDir := L.OptString(2, "")
	exports, err := c.Require(specifier, requestingDir)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(exports)
	return 1
}

// Require resolves, loads, and caches a module, returning its exports.
// requestingDir overrides the stack-derived requesting directory when
// non-empty (used for out-of-band and bootstrap requires).
//
// A body that fails during evaluation does not fail the require: the
// failure is logged through the error formatter and the partial exports
// are cached and returned. Only resolution failures are returned as
// errors (ModuleNotFoundError).
func (c *Context) Require(specifier, requestingDir string) (lua.LValue, error) {
	specifier = c.applyOverride(specifier)

	dir := requestingDir
	if dir == "" {
		dir = c.currentDir()
	}

	key := cacheKey{dir: dir, specifier: specifier}
	if exports, ok := c.cache[key]; ok {
		return exports, nil
	}

	// A dotted name that fully resolves as a host namespace is always a
	// namespace import, never a package or relative specifier. Namespace
	// handles are opaque modules and are never executed.
	if ns, ok := c.graph.Resolve(specifier); ok {
		exports := ns.LuaValue(c.L)
		c.cache[key] = exports
		return exports, nil
	}

	path, ok := c.resolve(dir, specifier)
	if !ok {
		return lua.LNil, &ModuleNotFoundError{Specifier: specifier, Dir: dir}
	}

	c.log.Debug("loading module", "runtime", c.id, "specifier", specifier, "path", path)

	c.stack = append(c.stack, path)
	exports := c.load(path)
	// The cache write and stack pop happen regardless of body failure so
	// a broken module cannot corrupt sibling or ancestor requires.
	c.cache[key] = exports
	c.stack = c.stack[:len(c.stack)-1]

	return exports, nil
}

// currentDir returns the implicit requesting directory: the parent of the
// require stack's top entry, or the plugin's dist directory when the stack
// is empty (the bootstrap require).
func (c *Context) currentDir() string {
	if len(c.stack) == 0 {
		return c.plugin.DistDir()
	}
	return filepath.Dir(c.stack[len(c.stack)-1])
}

// StackDepth returns the number of in-flight module loads.
func (c *Context) StackDepth() int {
	return len(c.stack)
}
