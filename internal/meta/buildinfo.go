// Package meta exposes build metadata for the CLI banner.
package meta

import "runtime/debug"

// Version returns the module version recorded by the Go toolchain, or
// "(devel)" when built from a working tree without version stamping.
func Version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
