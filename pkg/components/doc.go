// Package components defines the data components that archetypes are built
// from. Each component is a thin wrapper over a datatype and serializes by
// delegating to the datatype's codec.
package components
