package usecase

import crerr "github.com/cockroachdb/errors"

// Error kinds exposed to callers. NotFound, InvalidState and IncompleteData
// abort an operation with zero writes; data corruption inside a single
// prediction row never surfaces as an error, it is scored 0 and logged.
var (
	ErrInvalidInput   = crerr.New("invalid input")
	ErrNotFound       = crerr.New("resource not found")
	ErrInvalidState   = crerr.New("invalid state for operation")
	ErrIncompleteData = crerr.New("incomplete data")
	ErrUnauthorized   = crerr.New("unauthorized")
)
