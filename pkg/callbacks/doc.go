// Package callbacks holds the host implementations the runtime calls back
// into and the trampolines that forward to them.
//
// A Registry collects at most one implementation per callback kind. Install
// publishes it through a single process-wide handle, once, before the event
// loop starts. The trampolines (ExternalAttributeRead, GetSetupPasscode, ...)
// keep the argument order and return conventions of the native callbacks and
// fall back to a fixed default status when the matching slot is empty.
package callbacks
