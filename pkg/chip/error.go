package chip

import (
	"errors"
	"fmt"
)

// Code is a raw SDK error code. Zero is success.
type Code uint32

// NoError is the success code.
const NoError Code = 0

// Error is a nonzero SDK error code.
type Error Code

// Core SDK error codes used by this module.
const (
	ErrSendingBlocked    Error = 0x01
	ErrConnectionAborted Error = 0x02
	ErrIncorrectState    Error = 0x03
	ErrMessageTooLong    Error = 0x04
	ErrNoMemory          Error = 0x0B
	ErrBufferTooSmall    Error = 0x19
	ErrNotImplemented    Error = 0x2D
	ErrInvalidArgument   Error = 0x2F
	ErrTimeout           Error = 0x32
	ErrKeyNotFound       Error = 0xA0
	ErrInternal          Error = 0xAC
)

// imGlobalStatusBase is the range reserved for Interaction Model global
// status codes carried inside a general error.
const imGlobalStatusBase = 0x500

var messages = map[Error]string{
	ErrSendingBlocked:    "Sending blocked",
	ErrConnectionAborted: "Connection aborted",
	ErrIncorrectState:    "Incorrect state",
	ErrMessageTooLong:    "Message too long",
	ErrNoMemory:          "No memory",
	ErrBufferTooSmall:    "Buffer too small",
	ErrNotImplemented:    "Not Implemented",
	ErrInvalidArgument:   "Invalid argument",
	ErrTimeout:           "Timeout",
	ErrKeyNotFound:       "Key not found",
	ErrInternal:          "Internal error",
}

// IMGlobalStatus returns the general error carrying an Interaction Model
// status code.
func IMGlobalStatus(status uint8) Error {
	return Error(imGlobalStatusBase | uint32(status))
}

// Code returns the raw code.
func (e Error) Code() Code {
	return Code(e)
}

// IsIMGlobalStatus reports whether e carries an Interaction Model status.
func (e Error) IsIMGlobalStatus() bool {
	return uint32(e)&^0xFF == imGlobalStatusBase
}

// Error renders e the way the SDK's ErrorStr does.
func (e Error) Error() string {
	if e.IsIMGlobalStatus() {
		return fmt.Sprintf("IM Error 0x%08X: General error: 0x%02x", uint32(e), uint32(e)&0xFF)
	}
	if msg, ok := messages[e]; ok {
		return fmt.Sprintf("CHIP Error 0x%08X: %s", uint32(e), msg)
	}
	return fmt.Sprintf("CHIP Error 0x%08X", uint32(e))
}

// Wrap returns the Error for code. It reports false when code is success.
func Wrap(code Code) (Error, bool) {
	if code == NoError {
		return 0, false
	}
	return Error(code), true
}

// Convert returns nil for success and an Error otherwise.
func Convert(code Code) error {
	if e, ok := Wrap(code); ok {
		return e
	}
	return nil
}

// CheckAndReturn returns value when code is success, or the zero value and
// the wrapped Error otherwise.
func CheckAndReturn[T any](code Code, value T) (T, error) {
	if err := Convert(code); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// ToRaw converts err into the code handed back to native callers.
// Errors that carry no Error in their chain become ErrInternal.
func ToRaw(err error) Code {
	if err == nil {
		return NoError
	}
	var e Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ErrInternal.Code()
}

// MustSucceed panics with the rendered error when code is not success.
func MustSucceed(code Code) {
	if e, ok := Wrap(code); ok {
		panic("chip: " + e.Error())
	}
}
