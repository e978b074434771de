package ember

import (
	"errors"
	"fmt"
)

// Status is an ember/ZCL cluster status code. It shares its values with the
// Interaction Model status codes.
type Status uint8

const (
	StatusSuccess                Status = 0x00
	StatusFailure                Status = 0x01
	StatusInvalidSubscription    Status = 0x7d
	StatusUnsupportedAccess      Status = 0x7e
	StatusUnsupportedEndpoint    Status = 0x7f
	StatusInvalidAction          Status = 0x80
	StatusUnsupportedCommand     Status = 0x81
	StatusInvalidCommand         Status = 0x85
	StatusUnsupportedAttribute   Status = 0x86
	StatusConstraintError        Status = 0x87
	StatusUnsupportedWrite       Status = 0x88
	StatusResourceExhausted      Status = 0x89
	StatusDuplicateExists        Status = 0x8a
	StatusNotFound               Status = 0x8b
	StatusUnreportableAttribute  Status = 0x8c
	StatusInvalidDataType        Status = 0x8d
	StatusUnsupportedRead        Status = 0x8f
	StatusDataVersionMismatch    Status = 0x92
	StatusTimeout                Status = 0x94
	StatusBusy                   Status = 0x9c
	StatusUnsupportedCluster     Status = 0xc3
	StatusNeedsTimedInteraction  Status = 0xc6
	StatusInvalidInState         Status = 0xcb
	StatusDynamicConstraintError Status = 0xcf
	StatusAlreadyExists          Status = 0xd0
)

var statusNames = map[Status]string{
	StatusSuccess:                "Success",
	StatusFailure:                "Failure",
	StatusInvalidSubscription:    "InvalidSubscription",
	StatusUnsupportedAccess:      "UnsupportedAccess",
	StatusUnsupportedEndpoint:    "UnsupportedEndpoint",
	StatusInvalidAction:          "InvalidAction",
	StatusUnsupportedCommand:     "UnsupportedCommand",
	StatusInvalidCommand:         "InvalidCommand",
	StatusUnsupportedAttribute:   "UnsupportedAttribute",
	StatusConstraintError:        "ConstraintError",
	StatusUnsupportedWrite:       "UnsupportedWrite",
	StatusResourceExhausted:      "ResourceExhausted",
	StatusDuplicateExists:        "DuplicateExists",
	StatusNotFound:               "NotFound",
	StatusUnreportableAttribute:  "UnreportableAttribute",
	StatusInvalidDataType:        "InvalidDataType",
	StatusUnsupportedRead:        "UnsupportedRead",
	StatusDataVersionMismatch:    "DataVersionMismatch",
	StatusTimeout:                "Timeout",
	StatusBusy:                   "Busy",
	StatusUnsupportedCluster:     "UnsupportedCluster",
	StatusNeedsTimedInteraction:  "NeedsTimedInteraction",
	StatusInvalidInState:         "InvalidInState",
	StatusDynamicConstraintError: "DynamicConstraintError",
	StatusAlreadyExists:          "AlreadyExists",
}

// String returns the name of the status code.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02x)", uint8(s))
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// Error implements error. Only meaningful for non-success values; use Err
// to convert a status into an optional error.
func (s Status) Error() string {
	return fmt.Sprintf("ember: status 0x%02x (%s)", uint8(s), s.String())
}

// Err returns nil for StatusSuccess and s otherwise.
func (s Status) Err() error {
	if s == StatusSuccess {
		return nil
	}
	return s
}

// StatusOf maps err to a status. A Status anywhere in the chain is returned
// as is; any other non-nil error becomes StatusFailure.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusFailure
}
