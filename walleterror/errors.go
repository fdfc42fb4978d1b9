// Package walleterror defines the normalized failure taxonomy shared by all
// wallet core operations. Every failure surfaces to the caller as a single
// *Error carrying its kind and a human-readable detail; the core never retries
// and never downgrades a failure into an empty success value.
package walleterror

import (
	"errors"
	"fmt"
)

// Kind classifies a wallet core failure.
type Kind string

const (
	// KindNoKey indicates the operation required a stored signing key and
	// none was present.
	KindNoKey Kind = "no_key"

	// KindStorage indicates the secure store rejected a read, write or
	// delete.
	KindStorage Kind = "storage"

	// KindDecode indicates malformed stored or canonical-encoded bytes.
	KindDecode Kind = "decode"

	// KindPayment indicates a payment backend failure or timeout.
	KindPayment Kind = "payment"

	// KindProofGeneration indicates the external proof engine failed.
	KindProofGeneration Kind = "proof_generation"

	// KindContract indicates the external contract engine failed.
	KindContract Kind = "contract"

	// KindPrecondition indicates a caller contract violation such as an
	// unrecognized wallet selector.
	KindPrecondition Kind = "precondition"
)

// Error wraps wallet core failures with normalized categorization.
type Error struct {
	Kind       Kind
	Detail     string
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap supports error unwrapping.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a new categorized error.
func New(kind Kind, detail string, underlying error) *Error {
	return &Error{
		Kind:       kind,
		Detail:     detail,
		Underlying: underlying,
	}
}

// Newf creates a new categorized error with a formatted detail string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the kind from an error, or an empty Kind when the error
// does not originate from the wallet core.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
