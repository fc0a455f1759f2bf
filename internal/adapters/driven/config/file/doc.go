// Package file provides the TOML-backed configuration store.
// Settings live in ~/.wordwatch/config.toml and are addressed with
// dot-notation keys.
package file
