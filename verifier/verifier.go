// Package verifier validates signed access tokens against the trusted key set
// and the configured audience and issuer.
package verifier

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upb/casting-agency/internal/auth"
)

// DefaultAlgorithms is the allow-list used when Config.Algorithms is empty.
var DefaultAlgorithms = []string{"RS256"}

// KeyResolver resolves a key ID to a public key. Implementations must not
// block; *jwks.Provider serves lookups from an in-memory snapshot.
type KeyResolver interface {
	LookupKey(kid string) (any, bool)
}

// Config holds configuration for Verifier
type Config struct {
	Issuer     string // e.g. https://tenant.auth0.com/
	Audience   string
	Algorithms []string
	Leeway     time.Duration
	Clock      func() time.Time // Optional, defaults to time.Now
}

// Verifier validates RS256 access tokens
type Verifier struct {
	algorithms []string
	keys       KeyResolver
	parser     *jwt.Parser
}

// New creates a verifier. Issuer and audience are required.
func New(cfg Config, keys KeyResolver) (*Verifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("verifier: issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("verifier: audience is required")
	}
	if keys == nil {
		return nil, errors.New("verifier: key resolver is required")
	}
	if len(cfg.Algorithms) == 0 {
		cfg.Algorithms = DefaultAlgorithms
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(cfg.Algorithms),
		jwt.WithAudience(cfg.Audience),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Clock != nil {
		opts = append(opts, jwt.WithTimeFunc(cfg.Clock))
	}

	return &Verifier{
		algorithms: slices.Clone(cfg.Algorithms),
		keys:       keys,
		parser:     jwt.NewParser(opts...),
	}, nil
}

// Verify checks the token and returns its claims. Errors are always *auth.Error.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*auth.Claims, error) {
	// Header first: the algorithm and key must be acceptable before any
	// signature work is done.
	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, &auth.Claims{})
	if err != nil {
		return nil, auth.ErrUnparsableToken.Wrap(err)
	}

	alg, _ := unverified.Header["alg"].(string)
	if !slices.Contains(v.algorithms, alg) {
		return nil, auth.ErrUnparsableToken.Wrap(fmt.Errorf("algorithm %q not allowed", alg))
	}

	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, auth.ErrKeyNotFound.Wrap(errors.New("kid header not found"))
	}
	key, ok := v.keys.LookupKey(kid)
	if !ok {
		return nil, auth.ErrKeyNotFound.Wrap(fmt.Errorf("no key for kid %q", kid))
	}

	claims := &auth.Claims{}
	_, err = v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return claims, nil
}

// classify maps a parser error to the guard taxonomy. Audience and issuer
// problems win over expiry when both are present.
func classify(err error) *auth.Error {
	switch {
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return auth.ErrInvalidClaims.Wrap(err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return auth.ErrTokenExpired.Wrap(err)
	default:
		return auth.ErrUnparsableToken.Wrap(err)
	}
}

// RejectAll is used when no identity provider is configured: every token is
// refused as if no key could be found for it.
type RejectAll struct{}

// Verify implements the same contract as Verifier.Verify
func (RejectAll) Verify(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return nil, auth.ErrKeyNotFound.Wrap(errors.New("no trusted key set configured"))
}
