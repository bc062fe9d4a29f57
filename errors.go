package dotfactory

import "errors"

// Sentinel errors returned by the generator. Callers match them with
// errors.Is.
var (
	// ErrUnsupportedConfig reports a configuration value outside the
	// closed set the generator understands.
	ErrUnsupportedConfig = errors.New("unsupported configuration")

	// ErrNoContent reports a bitmap without foreground pixels that has no
	// minimum size to fall back to. In font mode the character is
	// skipped; in image mode it is returned to the caller.
	ErrNoContent = errors.New("no foreground pixels found in bitmap")

	// ErrNoCharacters reports that no requested character survived
	// filtering against the code page, or that none produced a bitmap.
	ErrNoCharacters = errors.New("no characters to generate")
)
