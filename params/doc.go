// Package params wires the database and cluster parameter registries.
//
// Each registry is built by one flat function that lists every parameter with its
// key, default and help text.
package params
