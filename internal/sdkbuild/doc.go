// Package sdkbuild drives a native SDK build: it locates or fetches the
// connectedhomeip checkout, writes the project app config, runs gn and
// ninja, and reports the include paths and libraries a cgo build links
// against. It also filters SDK headers through name allowlists to emit Go
// constant files.
package sdkbuild
