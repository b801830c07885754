package auth

import (
	"errors"
	"fmt"
)

// Kind classifies a guard failure.
type Kind string

const (
	KindMissingHeader           Kind = "missing_header"
	KindMalformedHeader         Kind = "malformed_header"
	KindUnsupportedScheme       Kind = "unsupported_scheme"
	KindInvalidHeader           Kind = "invalid_header"
	KindTokenExpired            Kind = "token_expired"
	KindInvalidClaims           Kind = "invalid_claims"
	KindMissingPermissionsClaim Kind = "missing_permissions_claim"
	KindPermissionDenied        Kind = "permission_denied"
)

// Machine-readable codes returned to API consumers.
const (
	CodeHeaderMissing = "authorization_header_missing"
	CodeInvalidHeader = "invalid_header"
	CodeTokenExpired  = "token_expired"
	CodeInvalidClaims = "invalid_claims"
	CodeUnauthorized  = "unauthorized"
)

// Error is a classified authorization failure. Every Error is terminal for the
// request and is reported to the client as 401 with Code and Description.
type Error struct {
	Kind        Kind
	Code        string
	Description string
	Err         error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind and description.
// The sentinels below can therefore be matched with errors.Is even after a
// cause has been attached with Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Description == "" || e.Description == t.Description)
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Kind:        e.Kind,
		Code:        e.Code,
		Description: e.Description,
		Err:         err,
	}
}

var (
	// Extraction failures
	ErrMissingHeader     = &Error{Kind: KindMissingHeader, Code: CodeHeaderMissing, Description: "Authorization header is expected."}
	ErrMalformedHeader   = &Error{Kind: KindMalformedHeader, Code: CodeInvalidHeader, Description: "Authorization header must be bearer token."}
	ErrUnsupportedScheme = &Error{Kind: KindUnsupportedScheme, Code: CodeInvalidHeader, Description: "Authorization header must start with \"Bearer\"."}

	// Verification failures
	ErrUnparsableToken = &Error{Kind: KindInvalidHeader, Code: CodeInvalidHeader, Description: "Unable to parse authentication token."}
	ErrKeyNotFound     = &Error{Kind: KindInvalidHeader, Code: CodeInvalidHeader, Description: "Unable to find the appropriate key."}
	ErrTokenExpired    = &Error{Kind: KindTokenExpired, Code: CodeTokenExpired, Description: "Token expired."}
	ErrInvalidClaims   = &Error{Kind: KindInvalidClaims, Code: CodeInvalidClaims, Description: "Incorrect claims. Please, check the audience and issuer."}

	// Enforcement failures
	ErrMissingPermissionsClaim = &Error{Kind: KindMissingPermissionsClaim, Code: CodeInvalidClaims, Description: "Permissions not included in JWT."}
	ErrPermissionDenied        = &Error{Kind: KindPermissionDenied, Code: CodeUnauthorized, Description: "Permission not found."}
)

// AsError converts err to a classified *Error. Errors that are not already
// classified fall back to the unparsable token case so raw verifier errors
// never reach the client.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr
	}
	return ErrUnparsableToken.Wrap(err)
}

// KindOf returns the kind of a classified error, or KindInvalidHeader for
// anything else.
func KindOf(err error) Kind {
	return AsError(err).Kind
}
