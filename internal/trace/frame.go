// Package trace reconstructs readable stack traces across the two-layer
// call stack: native Go host frames interleaved with Lua script frames
// executed from compiled plugin output.
//
// The formatter composes a frame filter (hiding runtime-internal noise)
// with a source location remapper (translating compiled Lua locations back
// to the original higher-level sources through source maps).
package trace

import (
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// Frame is one entry of a captured mixed-language stack. A single
// discriminated type with an origin tag keeps the filtering and remapping
// logic origin-agnostic beyond that one flag.
type Frame struct {
	// Host marks a native Go frame; false means a script frame.
	Host bool

	// Source is the declaring unit: the Go package path for host frames,
	// the compiled script file for script frames.
	Source string

	// Method is the function or method name, when known.
	Method string

	// File is the file the frame points at (host frames only; script
	// frames carry their file in Source).
	File string

	// Line is the reported line number.
	Line int
}

// builtinSource marks gopher-lua built-in function frames in tracebacks.
const builtinSource = "[G]"

// scriptFramePattern matches one traceback entry: "\tsource:line: in what".
var scriptFramePattern = regexp.MustCompile(`^\t(.+):(\d+): in (.+)$`)

// builtinFramePattern matches built-in entries: "\t[G]: in function 'x'".
var builtinFramePattern = regexp.MustCompile(`^\t\[G\]: (?:in )?(.*)$`)

// functionNamePattern extracts a quoted function name from "function 'x'".
var functionNamePattern = regexp.MustCompile(`^function '(.+)'$`)

// ParseLuaTraceback parses a gopher-lua stack traceback string into frames,
// preserving order. Built-in ([G]) entries are tagged as host frames since
// they execute native code.
func ParseLuaTraceback(traceback string) []Frame {
	var frames []Frame
	for _, line := range strings.Split(traceback, "\n") {
		if m := scriptFramePattern.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			frames = append(frames, Frame{
				Source: m[1],
				Method: methodName(m[3]),
				Line:   n,
			})
			continue
		}
		if m := builtinFramePattern.FindStringSubmatch(line); m != nil {
			frames = append(frames, Frame{
				Host:   true,
				Source: builtinSource,
				Method: methodName(m[1]),
			})
		}
	}
	return frames
}

// methodName normalizes a traceback's "in <what>" clause to a bare name.
func methodName(what string) string {
	if m := functionNamePattern.FindStringSubmatch(what); m != nil {
		return m[1]
	}
	return what
}

// CaptureHostFrames captures the current Go call stack as host frames,
// skipping the given number of callers (0 means the caller of
// CaptureHostFrames itself).
func CaptureHostFrames(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	var frames []Frame
	iter := runtime.CallersFrames(pcs[:n])
	for {
		f, more := iter.Next()
		frames = append(frames, Frame{
			Host:   true,
			Source: packagePath(f.Function),
			Method: shortFuncName(f.Function),
			File:   f.File,
			Line:   f.Line,
		})
		if !more {
			break
		}
	}
	return frames
}

// packagePath extracts the package path from a fully qualified function
// name like "github.com/x/y/pkg.(*T).Method".
func packagePath(fn string) string {
	slash := strings.LastIndex(fn, "/")
	dot := strings.Index(fn[slash+1:], ".")
	if dot < 0 {
		return fn
	}
	return fn[:slash+1+dot]
}

// shortFuncName returns the function name without its package path.
func shortFuncName(fn string) string {
	slash := strings.LastIndex(fn, "/")
	dot := strings.Index(fn[slash+1:], ".")
	if dot < 0 {
		return fn
	}
	return fn[slash+1+dot+1:]
}
