// Package chip wraps the SDK's general error code (CHIP_ERROR) and the
// byte-span views passed across the commissioning data boundary.
//
// A Code of zero means success. Every nonzero Code converts to an Error,
// whose rendering is never empty, so call sites can surface native failures
// as ordinary Go errors:
//
//	if err := chip.Convert(code); err != nil {
//	    return err
//	}
//
// Errors travel back toward the native side with ToRaw.
package chip
