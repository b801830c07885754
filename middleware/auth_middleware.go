package middleware

import (
	"context"
	"net/http"

	"github.com/upb/casting-agency/internal/auth"
	"github.com/upb/casting-agency/internal/observability"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// TokenVerifier defines the interface for verifying access tokens
type TokenVerifier interface {
	// Verify checks signature and claims and returns the verified claim set
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// ClaimsHandlerFunc is a protected operation. It receives the verified claims
// of the request that reached it.
type ClaimsHandlerFunc func(w http.ResponseWriter, r *http.Request, claims *auth.Claims)

// AuthMiddleware guards operations with a single required permission
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// Authorized wraps op so that it only runs for requests bearing a valid token
// that holds permission. op is invoked exactly once per authorized request.
func (m *AuthMiddleware) Authorized(permission string, op ClaimsHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authorize(r, permission)
		if err != nil {
			m.reject(w, r, permission, err)
			return
		}
		op(w, r, claims)
	}
}

// RequiresAuth is the chi middleware form of Authorized. Claims are placed in
// the request context, see GetClaimsFromContext.
func (m *AuthMiddleware) RequiresAuth(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.Authorized(permission, func(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// authorize runs extraction, verification and enforcement in order and stops
// at the first failure.
func (m *AuthMiddleware) authorize(r *http.Request, permission string) (*auth.Claims, error) {
	token, err := auth.ExtractToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := m.verifier.Verify(r.Context(), token)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		return nil, auth.ErrUnparsableToken
	}

	if err := auth.CheckPermission(claims, permission); err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(r.Context(), m.logger)
	logger.Debug("authorization granted",
		zap.String("permission", permission),
		zap.String("sub", claims.Subject))
	observability.RecordGuardDecision(permission, "granted")

	return claims, nil
}

// reject writes the 401 response for err
func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, permission string, err error) {
	authErr := auth.AsError(err)

	logger := observability.LoggerFromContext(r.Context(), m.logger)
	logger.Warn("authorization failed",
		zap.String("permission", permission),
		zap.String("code", authErr.Code),
		zap.String("kind", string(authErr.Kind)),
		zap.Error(err))
	observability.RecordGuardDecision(permission, string(authErr.Kind))

	if werr := utils.WriteUnauthorized(w, authErr.Code, authErr.Description); werr != nil {
		logger.Error("failed to write unauthorized response", zap.Error(werr))
	}
}
