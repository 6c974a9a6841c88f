package trace

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		msg      string
		wantFile string
		wantLine int
		wantRest string
		wantOK   bool
	}{
		{"mod.lua:3: boom", "mod.lua", 3, "boom", true},
		{"/a/b/dist/index.lua:12: attempt to call a nil value", "/a/b/dist/index.lua", 12, "attempt to call a nil value", true},
		{"boom", "", 0, "boom", false},
		{"label: details", "", 0, "label: details", false},
	}

	for _, tt := range tests {
		file, line, rest, ok := splitLocation(tt.msg)
		if ok != tt.wantOK {
			t.Errorf("splitLocation(%q) ok = %v, want %v", tt.msg, ok, tt.wantOK)
			continue
		}
		if file != tt.wantFile || line != tt.wantLine || rest != tt.wantRest {
			t.Errorf("splitLocation(%q) = (%q, %d, %q)", tt.msg, file, line, rest)
		}
	}
}

func TestExecutionErrorError(t *testing.T) {
	e := &ExecutionError{Name: "RuntimeError", Message: "boom"}
	if e.Error() != "RuntimeError: boom" {
		t.Errorf("Error() = %q", e.Error())
	}

	e = &ExecutionError{Name: "RuntimeError"}
	if e.Error() != "RuntimeError" {
		t.Errorf("Error() = %q, message should be omitted", e.Error())
	}
}

func TestFromLuaError(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	src := "local module, exports = ...\nerror('boom')\n"
	fn, err := L.Load(strings.NewReader(src), "mod.lua")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	L.Push(fn)
	callErr := L.PCall(0, 0, nil)
	if callErr == nil {
		t.Fatal("PCall() should fail")
	}

	exec := FromLuaError(callErr, 1, CaptureHostFrames(0))
	if exec.Name != "RuntimeError" {
		t.Errorf("Name = %q, want RuntimeError", exec.Name)
	}
	if exec.Message != "boom" {
		t.Errorf("Message = %q, want boom", exec.Message)
	}
	if exec.File != "mod.lua" {
		t.Errorf("File = %q, want mod.lua", exec.File)
	}
	// error() sits on wrapped line 2; the wrapper offset adjusts it to 1.
	if exec.Line != 1 {
		t.Errorf("Line = %d, want 1", exec.Line)
	}

	var script, host bool
	for _, f := range exec.Frames {
		if f.Host {
			host = true
			continue
		}
		script = true
		if f.Source == "mod.lua" && f.Line != 1 {
			t.Errorf("script frame line = %d, want wrapper-adjusted 1", f.Line)
		}
	}
	if !script || !host {
		t.Errorf("frames should mix script and host origins: %+v", exec.Frames)
	}
}

func TestFromLuaErrorAdjustsCallerFrames(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	// Two wrapped chunks: b.lua defines a function that fails, a.lua calls
	// it from its body. The caller's frame must be wrapper-adjusted too,
	// not only the frame of the chunk that raised.
	fnB, err := L.Load(strings.NewReader("local module = ...\nfunction kaput() error('down') end\n"), "b.lua")
	if err != nil {
		t.Fatalf("Load(b) error = %v", err)
	}
	L.Push(fnB)
	if err := L.PCall(0, 0, nil); err != nil {
		t.Fatalf("PCall(b) error = %v", err)
	}

	fnA, err := L.Load(strings.NewReader("local module = ...\nkaput()\n"), "a.lua")
	if err != nil {
		t.Fatalf("Load(a) error = %v", err)
	}
	L.Push(fnA)
	callErr := L.PCall(0, 0, nil)
	if callErr == nil {
		t.Fatal("PCall(a) should fail")
	}

	exec := FromLuaError(callErr, 1, nil)
	var sawCaller bool
	for _, f := range exec.Frames {
		if f.Host || f.Source != "a.lua" {
			continue
		}
		sawCaller = true
		// kaput() sits on body line 1, wrapped line 2.
		if f.Line != 1 {
			t.Errorf("caller frame line = %d, want wrapper-adjusted 1", f.Line)
		}
	}
	if !sawCaller {
		t.Fatalf("no caller frame in %+v", exec.Frames)
	}
}

func TestFromLuaErrorSyntax(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	_, err := L.Load(strings.NewReader("local (\n"), "broken.lua")
	if err == nil {
		t.Fatal("Load() should fail on a syntax error")
	}

	exec := FromLuaError(err, 1, nil)
	if exec.Name != "SyntaxError" {
		t.Errorf("Name = %q, want SyntaxError", exec.Name)
	}
	if exec.Message == "" {
		t.Error("Message should carry the parser diagnostic")
	}
}

func TestFromLuaErrorPlain(t *testing.T) {
	exec := FromLuaError(errBare("weird failure"), 1, []Frame{{Host: true, Source: "main"}})
	if exec.Name != "RuntimeError" || exec.Message != "weird failure" {
		t.Errorf("exec = %+v", exec)
	}
	if len(exec.Frames) != 1 || !exec.Frames[0].Host {
		t.Errorf("Frames = %+v, want the supplied host frames", exec.Frames)
	}
}

func TestSummary(t *testing.T) {
	e := &ExecutionError{Name: "RuntimeError", Message: "boom", File: "dist/index.lua", Line: 4}
	got := e.Summary()
	if !strings.Contains(got, "dist/index.lua:4") {
		t.Errorf("Summary() = %q, want failing file and line", got)
	}

	e = &ExecutionError{Name: "RuntimeError", Message: "boom"}
	if !strings.Contains(e.Summary(), "RuntimeError: boom") {
		t.Errorf("Summary() = %q", e.Summary())
	}
}
