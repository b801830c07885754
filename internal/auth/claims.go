package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified claim set of an access token. A Claims value is only
// produced by a successful verification and is scoped to the request that
// produced it.
type Claims struct {
	jwt.RegisteredClaims

	// Permissions is nil when the token carries no "permissions" claim and
	// non-nil (possibly empty) when it does.
	Permissions     []string `json:"permissions"`
	Scope           string   `json:"scope,omitempty"`
	AuthorizedParty string   `json:"azp,omitempty"`
}

// HasPermissionsClaim reports whether the token carried a permissions claim.
func (c *Claims) HasPermissionsClaim() bool {
	return c.Permissions != nil
}

// HasPermission reports whether permission is held, by exact match.
func (c *Claims) HasPermission(permission string) bool {
	return slices.Contains(c.Permissions, permission)
}
