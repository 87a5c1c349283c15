package suins

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindMissingInput Kind = "missing_input"
	KindResolution   Kind = "resolution"
	KindSubmission   Kind = "submission"
)

var (
	ErrMissingObjectID = errors.New("domain objectId is required")
	ErrMissingOwner    = errors.New("owner address is required")
	ErrMissingDomain   = errors.New("no domain selected")
	ErrMissingCID      = errors.New("cid is required")
	ErrInvalidCID      = errors.New("invalid IPFS CID format")
	ErrCIDReadOnly     = errors.New("cid is fixed for this session")
	ErrDomainNotOwned  = errors.New("domain is not owned by this address")
)

// Error tags a failure with the stage it happened in.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
