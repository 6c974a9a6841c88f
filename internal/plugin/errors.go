package plugin

import "errors"

// Plugin layout errors.
var (
	// ErrNoDist is returned when a plugin root has no compiled output directory.
	ErrNoDist = errors.New("plugin has no dist directory")

	// ErrNotDirectory is returned when a plugin root is not a directory.
	ErrNotDirectory = errors.New("plugin root is not a directory")
)
