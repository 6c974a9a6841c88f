package trace

import (
	"fmt"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ExecutionError describes a script body failure captured at the module
// loader boundary. It never propagates to the requiring script; it exists
// to be formatted and logged.
type ExecutionError struct {
	// Name is the error kind, e.g. "RuntimeError" or "SyntaxError".
	Name string

	// Message is the failure message, possibly empty.
	Message string

	// Frames is the captured mixed-language stack, innermost first.
	Frames []Frame

	// File and Line locate the failure in the compiled script, already
	// adjusted for any synthetic wrapper lines. Line is 0 when unknown.
	File string
	Line int
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// splitLocation splits a gopher-lua message prefix "file:line: rest".
// The scan anchors on ":<digits>: " so file names containing colons do
// not confuse it.
func splitLocation(msg string) (file string, line int, rest string, ok bool) {
	// Walk the ": " boundaries left to right until one ends in ":<digits>".
	idx := strings.Index(msg, ": ")
	for idx > 0 {
		head := msg[:idx]
		colon := strings.LastIndex(head, ":")
		if colon > 0 {
			if n, err := strconv.Atoi(head[colon+1:]); err == nil {
				return head[:colon], n, msg[idx+2:], true
			}
		}
		next := strings.Index(msg[idx+1:], ": ")
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return "", 0, msg, false
}

// wrappedChunkExt marks chunk names produced by the module loader, which
// names every chunk after its script file. Every such chunk carries the
// synthetic wrapper line.
const wrappedChunkExt = ".lua"

func wrappedChunk(source string) bool {
	return strings.HasSuffix(source, wrappedChunkExt)
}

// FromLuaError builds an ExecutionError from a gopher-lua failure.
// wrapperOffset is subtracted from reported script lines to account for
// the synthetic wrapper line prepended to module bodies. Every loaded
// script chunk is wrapped, so the offset applies to all script frames,
// including callers of the failing module. hostFrames, when given, are
// appended after the parsed script frames so the trace shows the native
// call path that entered the VM.
func FromLuaError(err error, wrapperOffset int, hostFrames []Frame) *ExecutionError {
	exec := &ExecutionError{Name: "RuntimeError", Message: err.Error()}

	apiErr, ok := err.(*lua.ApiError)
	if !ok {
		exec.Frames = hostFrames
		return exec
	}

	switch apiErr.Type {
	case lua.ApiErrorSyntax:
		exec.Name = "SyntaxError"
	case lua.ApiErrorFile:
		exec.Name = "FileError"
	case lua.ApiErrorPanic:
		exec.Name = "PanicError"
	}

	exec.Message = apiErr.Object.String()
	if file, line, rest, ok := splitLocation(exec.Message); ok {
		exec.File = file
		exec.Line = line
		exec.Message = rest
		if wrappedChunk(file) {
			exec.Line = line - wrapperOffset
		}
	}

	exec.Frames = ParseLuaTraceback(apiErr.StackTrace)
	for i := range exec.Frames {
		if !exec.Frames[i].Host && wrappedChunk(exec.Frames[i].Source) {
			exec.Frames[i].Line -= wrapperOffset
		}
	}
	exec.Frames = append(exec.Frames, hostFrames...)
	return exec
}

// Summary returns the one-line failure summary naming the failing file
// and line.
func (e *ExecutionError) Summary() string {
	if e.File == "" {
		return fmt.Sprintf("script failed: %s", e.Error())
	}
	return fmt.Sprintf("script failed at %s:%d: %s", e.File, e.Line, e.Error())
}
