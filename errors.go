// FILE: cfgtemplate/errors.go
package cfgtemplate

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is returned by Set on a value that does not support runtime updates.
	ErrReadOnly = errors.New("cfgtemplate: read-only config value")
	// ErrParse indicates a string could not be parsed as the required native type.
	ErrParse = errors.New("cfgtemplate: parse error")
	// ErrOverflow is returned by GetStrict when the value does not fit the requested type.
	ErrOverflow = errors.New("cfgtemplate: value overflows requested type")

	// ErrInvalidKey indicates a parameter key is empty or contains invalid characters.
	ErrInvalidKey = errors.New("cfgtemplate: invalid key")
	// ErrDuplicateKey indicates two parameters declare the same key.
	ErrDuplicateKey = errors.New("cfgtemplate: duplicate key")
	// ErrDuplicateParam indicates a parameter is defined more than once.
	ErrDuplicateParam = errors.New("cfgtemplate: parameter defined more than once")
	// ErrUnwired indicates a parameter member has no definition.
	ErrUnwired = errors.New("cfgtemplate: parameter not wired")
	// ErrUnknownKey indicates a key that matches no parameter.
	ErrUnknownKey = errors.New("cfgtemplate: unknown key")

	ErrCLIParse          = errors.New("cfgtemplate: failed to parse command-line arguments")
	ErrValueSize         = errors.New("cfgtemplate: value size exceeds limit")
	ErrUnsupportedFormat = errors.New("cfgtemplate: unsupported export format")
)

// MaxValueSize bounds the length of a single override value taken from the environment.
const MaxValueSize = 1024 * 1024

// ParseError describes a failed conversion of text into a native value.
// It matches ErrParse with errors.Is and unwraps to the underlying strconv error.
type ParseError struct {
	Key   string
	Input string
	Type  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot parse %q as %s for %s", e.Input, e.Type, e.Key)
	}
	return fmt.Sprintf("cannot parse %q as %s for %s: %v", e.Input, e.Type, e.Key, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

func readOnlyError(key string) error {
	return fmt.Errorf("%w: set is not supported: %s", ErrReadOnly, key)
}
