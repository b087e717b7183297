// File: cfgtemplate/convenience.go
package cfgtemplate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the document format used by Export.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name, case-insensitively. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Item is a point-in-time view of a single parameter.
type Item struct {
	Key       string    `json:"key" yaml:"key"`
	Kind      string    `json:"kind" yaml:"kind"`
	Mode      string    `json:"mode" yaml:"mode"`
	Value     string    `json:"value" yaml:"value"`
	Default   string    `json:"default" yaml:"default"`
	Source    Source    `json:"source" yaml:"source"`
	Help      string    `json:"help" yaml:"help"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

// Snapshot returns a view of every parameter in definition order.
func (r *Registry[P]) Snapshot() []Item {
	items := make([]Item, 0, len(r.params))
	for _, p := range r.params {
		v := r.values[p]
		kind := v.Kind().String()
		if v.Kind() == KindInt {
			kind = v.IntKind().String()
		}
		items = append(items, Item{
			Key:       v.Key(),
			Kind:      kind,
			Mode:      v.Mode().String(),
			Value:     v.String(),
			Default:   v.Default(),
			Source:    v.Source(),
			Help:      v.Help(),
			UpdatedAt: v.UpdatedAt(),
		})
	}
	return items
}

// ExportOverrides returns the text of every parameter whose current value differs
// from its default. The result can be handed to WithOverrides to rebuild an
// equivalent registry.
func (r *Registry[P]) ExportOverrides() map[string]string {
	out := make(map[string]string)
	for _, p := range r.params {
		v := r.values[p]
		if cur := v.String(); cur != v.Default() {
			out[v.Key()] = cur
		}
	}
	return out
}

// ExportEnv returns the non-default values as environment variables named by the
// default transform for prefix. Building with WithEnvPrefix(prefix) and this
// environment reproduces the current values.
func (r *Registry[P]) ExportEnv(prefix string) map[string]string {
	transform := defaultEnvTransform(prefix)
	exports := make(map[string]string)
	for key, value := range r.ExportOverrides() {
		exports[transform(key)] = value
	}
	return exports
}

// DiscoverEnv returns key -> variable name for every parameter whose environment
// variable is currently set.
func (r *Registry[P]) DiscoverEnv(prefix string) map[string]string {
	transform := defaultEnvTransform(prefix)
	discovered := make(map[string]string)
	for _, p := range r.params {
		key := r.values[p].Key()
		envVar := transform(key)
		if _, exists := os.LookupEnv(envVar); exists {
			discovered[key] = envVar
		}
	}
	return discovered
}

// Export writes the current values as a flat key = value document.
func (r *Registry[P]) Export(w io.Writer, format Format) error {
	data := make(map[string]any, len(r.params))
	for _, p := range r.params {
		v := r.values[p]
		data[v.Key()] = v.native()
	}

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config data to TOML: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config data to JSON: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Debug returns a formatted string showing all parameters, their values and sources
func (r *Registry[P]) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")

	for _, item := range r.Snapshot() {
		b.WriteString(fmt.Sprintf("  %s (%s, %s):\n", item.Key, item.Kind, item.Mode))
		b.WriteString(fmt.Sprintf("    Current: %s\n", item.Value))
		b.WriteString(fmt.Sprintf("    Default: %s\n", item.Default))
		b.WriteString(fmt.Sprintf("    Source:  %s\n", item.Source))
		if item.Help != "" {
			b.WriteString(fmt.Sprintf("    Help:    %s\n", item.Help))
		}
	}

	return b.String()
}
