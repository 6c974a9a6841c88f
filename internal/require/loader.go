package require

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/Ap3teus/craftjs-javascript/internal/trace"
)

// moduleWrapper is the single synthetic line prepended to every module
// body. It binds the module-scoped names the body may reference without
// polluting globals; the loader passes the actual values as chunk varargs.
const moduleWrapper = "local module, exports, __filename, __dirname = ...\n"

// wrapperLineOffset is subtracted from reported failure lines so
// diagnostics point at the body as written.
const wrapperLineOffset = 1

// load reads, wraps, and executes the module body at path, returning the
// module's final exports. Failures never cross this boundary: they are
// formatted and logged, and the module is considered loaded with whatever
// partial exports it produced.
func (c *Context) load(path string) lua.LValue {
	module := c.L.NewTable()
	exports := c.L.NewTable()
	module.RawSetString("exports", exports)

	src, err := os.ReadFile(path)
	if err != nil {
		c.report(&trace.ExecutionError{
			Name:    "FileError",
			Message: err.Error(),
			File:    path,
		})
		return exports
	}

	fn, err := c.L.Load(strings.NewReader(moduleWrapper+string(src)), path)
	if err != nil {
		c.report(trace.FromLuaError(err, wrapperLineOffset, nil))
		return finalExports(module, exports)
	}

	c.L.Push(fn)
	c.L.Push(module)
	c.L.Push(exports)
	c.L.Push(lua.LString(path))
	c.L.Push(lua.LString(filepath.Dir(path)))

	if err := c.callWithRecovery(4); err != nil {
		c.report(trace.FromLuaError(err, wrapperLineOffset, trace.CaptureHostFrames(1)))
	}

	return finalExports(module, exports)
}

// callWithRecovery runs the pushed chunk with panic recovery, so a host
// function panicking mid-body degrades to a reported failure.
func (c *Context) callWithRecovery(nargs int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return c.L.PCall(nargs, 0, nil)
}

// finalExports reads the exports container back off the module record,
// honoring bodies that reassign module.exports wholesale.
func finalExports(module *lua.LTable, fallback lua.LValue) lua.LValue {
	if v := module.RawGetString("exports"); v != lua.LNil {
		return v
	}
	return fallback
}

// report logs an execution failure: the formatted multi-line trace
// followed by the one-line summary naming the failing file and line.
func (c *Context) report(exec *trace.ExecutionError) {
	formatted := strings.TrimRight(c.formatter.Format(exec), "\n")
	c.log.Error(formatted, "runtime", c.id)
	c.log.Error(exec.Summary(), "runtime", c.id)
}
