// FILE: cfgtemplate/decode.go
package cfgtemplate

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the current values into the target struct or map, matching struct
// fields by the registry's tag name (default "toml") against parameter keys.
// The target must be a non-nil pointer.
//
// Integer fields narrower than the parameter's type are truncated the same way Get
// truncates. String parameters holding durations ("10s") or comma lists decode into
// time.Duration and slice fields.
func (r *Registry[P]) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	data := make(map[string]any, len(r.params))
	for _, p := range r.params {
		v := r.values[p]
		data[v.Key()] = v.native()
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          r.tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to scan config into %T: %w", target, err)
	}
	return nil
}
