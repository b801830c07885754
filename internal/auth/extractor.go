package auth

import (
	"net/http"
	"strings"
)

// AuthorizationHeader is the request header carrying the bearer credential.
const AuthorizationHeader = "Authorization"

const bearerScheme = "Bearer"

// ExtractToken returns the bearer token of the request's Authorization header.
func ExtractToken(r *http.Request) (string, error) {
	return ParseAuthorizationHeader(r.Header.Get(AuthorizationHeader))
}

// ParseAuthorizationHeader parses the raw value of an Authorization header.
// An empty value is treated as an absent header. The value must be exactly
// "Bearer <token>" with a single space; the token is returned verbatim.
func ParseAuthorizationHeader(value string) (string, error) {
	if value == "" {
		return "", ErrMissingHeader
	}

	parts := strings.Split(value, " ")
	if len(parts) != 2 {
		return "", ErrMalformedHeader
	}

	if parts[0] != bearerScheme {
		return "", ErrUnsupportedScheme
	}

	return parts[1], nil
}
