package trace

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Ap3teus/craftjs-javascript/internal/logging"
)

// Formatter composes the frame filter and the source location remapper
// into a human-readable multi-line trace.
type Formatter struct {
	filter    *Filter
	mapper    SourceMapper
	log       logging.Logger
	plugin    string
	outputDir string

	// warnOnce guards the one-time degraded-diagnostics warning emitted
	// when no source-mapping capability is available.
	warnOnce sync.Once
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithFilter sets the frame filter.
func WithFilter(f *Filter) FormatterOption {
	return func(fm *Formatter) {
		fm.filter = f
	}
}

// WithSourceMapper sets the source-mapping capability. A nil mapper means
// locations fall back to the raw compiled source and line.
func WithSourceMapper(m SourceMapper) FormatterOption {
	return func(fm *Formatter) {
		fm.mapper = m
	}
}

// WithLogger sets the logger used for the degraded-diagnostics warning.
func WithLogger(log logging.Logger) FormatterOption {
	return func(fm *Formatter) {
		fm.log = log
	}
}

// WithOutputDir sets the plugin-root-relative compiled output directory
// remapped paths are re-rooted against. Default "dist".
func WithOutputDir(dir string) FormatterOption {
	return func(fm *Formatter) {
		fm.outputDir = dir
	}
}

// NewFormatter creates a Formatter for one owning plugin.
func NewFormatter(plugin string, opts ...FormatterOption) *Formatter {
	fm := &Formatter{
		filter:    NewFilter(),
		log:       logging.NewNoOpLogger(),
		plugin:    plugin,
		outputDir: "dist",
	}
	for _, opt := range opts {
		opt(fm)
	}
	return fm
}

// Format renders the error as a multi-line trace. The header carries the
// error kind and message; the message is omitted entirely when absent.
// Each surviving frame becomes one indented "at" line.
func (fm *Formatter) Format(err error) string {
	var sb strings.Builder

	exec, ok := err.(*ExecutionError)
	if !ok {
		sb.WriteString(err.Error())
		sb.WriteByte('\n')
		return sb.String()
	}

	if exec.Message == "" {
		sb.WriteString(exec.Name)
	} else {
		sb.WriteString(exec.Name + ": " + exec.Message)
	}
	sb.WriteByte('\n')

	for _, frame := range exec.Frames {
		if fm.filter.Hidden(frame) {
			continue
		}
		sb.WriteString(fm.formatFrame(frame))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// formatFrame renders one surviving frame.
func (fm *Formatter) formatFrame(frame Frame) string {
	file := frame.Source
	line := frame.Line

	if !frame.Host {
		file, line = fm.remap(frame)
	}

	short := path.Base(filepath.ToSlash(file))
	if frame.Host && frame.File != "" {
		short = path.Base(filepath.ToSlash(frame.File))
	}
	return fmt.Sprintf("    at %s %s(%s:%d) [%s]", file, frame.Method, short, line, fm.plugin)
}

// remap translates a script frame's compiled location to the original
// source, re-rooted relative to the owning plugin's root. Without a
// source-mapping capability the raw location is used and a warning is
// logged once.
func (fm *Formatter) remap(frame Frame) (string, int) {
	if fm.mapper == nil {
		fm.warnOnce.Do(func() {
			fm.log.Warn("source maps unavailable, stack traces show compiled locations",
				"plugin", fm.plugin)
		})
		return frame.Source, frame.Line
	}

	mapped, ok := fm.mapper.MapLine(fm.plugin, frame.Source, frame.Line)
	if !ok {
		return frame.Source, frame.Line
	}
	return fm.reroot(mapped.File), mapped.Line
}

// reroot resolves a map-reported path against the plugin's compiled output
// directory and normalizes away .. segments. A single leftover leading
// "../" is stripped when normalization could not eliminate it.
func (fm *Formatter) reroot(file string) string {
	p := path.Clean(path.Join(fm.outputDir, filepath.ToSlash(file)))
	p = strings.TrimPrefix(p, "../")
	return p
}
