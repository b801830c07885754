// Package authtest provides a throwaway token issuer for tests: an RSA signing
// key, its JWKS document and helpers to mint RS256 access tokens.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/upb/casting-agency/jwks"
)

const (
	DefaultDomain   = "casting.test.auth0.com"
	DefaultAudience = "casting"
)

// Issuer mints tokens the way the identity provider does.
type Issuer struct {
	Domain   string
	Audience string
	KeyID    string

	key *rsa.PrivateKey
}

// NewIssuer generates a fresh 2048-bit RSA key
func NewIssuer(t testing.TB) *Issuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return &Issuer{
		Domain:   DefaultDomain,
		Audience: DefaultAudience,
		KeyID:    "test-key-1",
		key:      key,
	}
}

// URL returns the iss value, "https://<domain>/".
func (i *Issuer) URL() string {
	return "https://" + i.Domain + "/"
}

func (i *Issuer) PublicKey() *rsa.PublicKey {
	return &i.key.PublicKey
}

// KeySet returns a snapshot trusting only this issuer's key.
func (i *Issuer) KeySet() *jwks.KeySet {
	return jwks.NewKeySet(map[string]any{i.KeyID: i.PublicKey()})
}

// JWKS returns the issuer's public key as a JWKS document.
func (i *Issuer) JWKS(t testing.TB) []byte {
	t.Helper()
	key, err := jwk.FromRaw(i.PublicKey())
	if err != nil {
		t.Fatalf("jwk from raw: %v", err)
	}
	for name, value := range map[string]any{
		jwk.KeyIDKey:     i.KeyID,
		jwk.AlgorithmKey: jwa.RS256,
		jwk.KeyUsageKey:  jwk.ForSignature,
	} {
		if err := key.Set(name, value); err != nil {
			t.Fatalf("jwk set %s: %v", name, err)
		}
	}

	set := jwk.NewSet()
	if err := set.AddKey(key); err != nil {
		t.Fatalf("jwk add key: %v", err)
	}
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal jwks: %v", err)
	}
	return data
}

// Claims returns a valid claim set expiring in one hour. A nil permissions
// slice omits the claim entirely.
func (i *Issuer) Claims(permissions []string) jwt.MapClaims {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": i.URL(),
		"aud": []string{i.Audience},
		"sub": "auth0|tester",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	if permissions != nil {
		claims["permissions"] = permissions
	}
	return claims
}

// Token signs a valid token holding permissions.
func (i *Issuer) Token(t testing.TB, permissions ...string) string {
	t.Helper()
	if permissions == nil {
		permissions = []string{}
	}
	return i.Sign(t, i.Claims(permissions))
}

// Sign signs claims with RS256 under the issuer's kid.
func (i *Issuer) Sign(t testing.TB, claims jwt.Claims) string {
	t.Helper()
	return i.SignWith(t, jwt.SigningMethodRS256, i.key, i.KeyID, claims)
}

// SignWith signs claims with an arbitrary method, key and kid. An empty kid
// leaves the header without one.
func (i *Issuer) SignWith(t testing.TB, method jwt.SigningMethod, key any, kid string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
