package require

// defaultOverrides maps a requested specifier to its replacement. The
// substitution is unconditional and happens before cache lookup, so cache
// keys are always computed on the replaced name. The stock entries point
// legacy core-module names at their bundled browser ports.
var defaultOverrides = map[string]string{
	"path": "path-browserify",
	"tty":  "tty-browserify",
}

// applyOverride returns the replacement for a specifier, or the specifier
// itself when no override entry exists.
func (c *Context) applyOverride(specifier string) string {
	if replacement, ok := c.overrides[specifier]; ok {
		return replacement
	}
	return specifier
}
