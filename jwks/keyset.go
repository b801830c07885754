package jwks

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

var (
	// ErrNoSigningKeys is returned when a JWKS document contains no usable signing key
	ErrNoSigningKeys = errors.New("no signing keys in JWKS")
)

// KeySet is an immutable snapshot of the issuer's public signing keys, keyed
// by key ID. A snapshot is never modified after construction; refresh
// publishes a new one.
type KeySet struct {
	Version   uuid.UUID
	FetchedAt time.Time
	keys      map[string]any
}

// NewKeySet builds a snapshot from already decoded public keys.
func NewKeySet(keys map[string]any) *KeySet {
	copied := make(map[string]any, len(keys))
	for kid, key := range keys {
		copied[kid] = key
	}
	return &KeySet{
		Version:   uuid.New(),
		FetchedAt: time.Now(),
		keys:      copied,
	}
}

// ParseKeySet decodes a JWKS document. Keys without a kid and keys whose
// "use" is not "sig" are skipped.
func ParseKeySet(data []byte) (*KeySet, error) {
	set, err := jwk.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWKS: %w", err)
	}

	keys := make(map[string]any, set.Len())
	for i := 0; i < set.Len(); i++ {
		key, ok := set.Key(i)
		if !ok {
			continue
		}
		if use := key.KeyUsage(); use != "" && use != string(jwk.ForSignature) {
			continue
		}
		kid := key.KeyID()
		if kid == "" {
			continue
		}

		pub, err := key.PublicKey()
		if err != nil {
			return nil, fmt.Errorf("failed to derive public key %s: %w", kid, err)
		}
		var raw any
		if err := pub.Raw(&raw); err != nil {
			return nil, fmt.Errorf("failed to export key %s: %w", kid, err)
		}
		keys[kid] = raw
	}

	if len(keys) == 0 {
		return nil, ErrNoSigningKeys
	}

	return NewKeySet(keys), nil
}

// Lookup returns the public key registered under kid.
func (s *KeySet) Lookup(kid string) (any, bool) {
	if s == nil {
		return nil, false
	}
	key, ok := s.keys[kid]
	return key, ok
}

// Len returns the number of keys in the snapshot
func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// KeyIDs returns the sorted key IDs of the snapshot
func (s *KeySet) KeyIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.keys))
	for kid := range s.keys {
		ids = append(ids, kid)
	}
	sort.Strings(ids)
	return ids
}
