package expr

import "errors"

// Construction errors. Parse wraps them with the offending flag and
// argument; match with errors.Is.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrUnknownType     = errors.New("unknown type")
	ErrUnknownUser     = errors.New("unknown user")
	ErrUnknownGroup    = errors.New("unknown group")
	ErrBadPattern      = errors.New("bad pattern")
	ErrInvalidDepth    = errors.New("invalid depth")
)
