// File: cfgtemplate/type.go
package cfgtemplate

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Scalar is the set of types a value can be read as.
type Scalar interface {
	~string | ~bool | constraints.Integer
}

// Get returns the value of p converted to T.
//
// String-kinded T receives Value.String, bool-kinded T receives Value.Bool and
// integer-kinded T receives Value.Int64 converted to T with Go's integer conversion
// rules: narrowing silently truncates (300 read as uint8 is 44). Use GetStrict to
// reject values that do not fit.
func Get[T Scalar, P comparable](r *Registry[P], p P) (T, error) {
	return As[T](r.Value(p))
}

// MustGet is like Get but panics on error.
func MustGet[T Scalar, P comparable](r *Registry[P], p P) T {
	out, err := Get[T](r, p)
	if err != nil {
		panic(fmt.Sprintf("cfgtemplate: get %v: %v", p, err))
	}
	return out
}

// GetStrict is like Get but fails with ErrOverflow when the integer value cannot
// be represented by T.
func GetStrict[T Scalar, P comparable](r *Registry[P], p P) (T, error) {
	return AsStrict[T](r.Value(p))
}

// As converts a single value to T following the rules of Get.
func As[T Scalar](v *Value) (T, error) {
	return convert[T](v, false)
}

// AsStrict converts a single value to T following the rules of GetStrict.
func AsStrict[T Scalar](v *Value) (T, error) {
	return convert[T](v, true)
}

func convert[T Scalar](v *Value, strict bool) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(v.String())
	case reflect.Bool:
		rv.SetBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, unsigned, err := v.integer()
		if err != nil {
			return out, err
		}
		// An unsigned payload with the top bit set is above MaxInt64.
		if strict && ((unsigned && n < 0) || rv.OverflowInt(n)) {
			return out, overflowError(v, rv.Type())
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, unsigned, err := v.integer()
		if err != nil {
			return out, err
		}
		if strict && ((!unsigned && n < 0) || rv.OverflowUint(uint64(n))) {
			return out, overflowError(v, rv.Type())
		}
		rv.SetUint(uint64(n))
	}

	return out, nil
}

func overflowError(v *Value, t reflect.Type) error {
	return fmt.Errorf("%w: %s value %s does not fit in %s", ErrOverflow, v.Key(), v.String(), t)
}
