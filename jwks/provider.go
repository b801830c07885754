package jwks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/upb/casting-agency/internal/observability"
	"go.uber.org/zap"
)

var (
	// ErrJWKSFetchFailed is returned when JWKS fetching fails
	ErrJWKSFetchFailed = errors.New("failed to fetch JWKS")

	// ErrNotLoaded is returned when no key set has been loaded yet
	ErrNotLoaded = errors.New("key set not loaded")
)

// maxDocumentSize bounds the JWKS response body.
const maxDocumentSize = 1 << 20

// Config holds configuration for Provider
type Config struct {
	URL         string
	HTTPTimeout time.Duration
	Cache       Cache // Optional shared cache for the raw document
	CacheTTL    time.Duration
}

// Provider owns the Trusted Key Set. The current snapshot is published
// through an atomic pointer: readers never lock and refresh replaces the
// whole set at once.
type Provider struct {
	url        string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	logger     *zap.Logger

	current atomic.Pointer[KeySet]
}

// NewProvider creates a provider for the JWKS document at cfg.URL. Nothing is
// fetched until Load is called.
func NewProvider(cfg Config, logger *zap.Logger) *Provider {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 1 * time.Hour
	}
	return &Provider{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger,
	}
}

// NewStaticProvider returns a provider serving a fixed key set.
func NewStaticProvider(set *KeySet) *Provider {
	p := &Provider{logger: zap.NewNop()}
	p.current.Store(set)
	return p
}

// Load installs a key set, preferring a valid document from the shared cache.
// On failure the previous snapshot stays in place.
func (p *Provider) Load(ctx context.Context) error {
	return p.load(ctx, true)
}

// Refresh installs a key set fetched from the issuer, skipping the cache read.
// The cache is rewritten so other processes see the rotation on their next Load.
func (p *Provider) Refresh(ctx context.Context) error {
	return p.load(ctx, false)
}

func (p *Provider) load(ctx context.Context, useCache bool) error {
	if p.url == "" {
		return fmt.Errorf("%w: no JWKS URL configured", ErrJWKSFetchFailed)
	}

	if useCache {
		if set := p.cached(ctx); set != nil {
			p.install(set, "cache")
			return nil
		}
	}

	data, err := p.fetch(ctx)
	if err != nil {
		observability.RecordKeySetRefresh("error", p.Current().Len())
		return err
	}

	set, err := ParseKeySet(data)
	if err != nil {
		observability.RecordKeySetRefresh("invalid", p.Current().Len())
		return err
	}

	// Only documents that parsed are shared.
	if p.cache != nil {
		if err := p.cache.Set(ctx, p.url, data, p.cacheTTL); err != nil {
			p.logger.Warn("JWKS cache write failed", zap.Error(err))
		}
	}

	p.install(set, "issuer")
	return nil
}

func (p *Provider) install(set *KeySet, source string) {
	p.current.Store(set)
	observability.RecordKeySetRefresh("success", set.Len())

	p.logger.Info("trusted key set loaded",
		zap.String("source", source),
		zap.String("version", set.Version.String()),
		zap.Strings("kids", set.KeyIDs()))
}

// Run refreshes the key set from the issuer every interval until ctx is done.
// Scheduled refreshes skip the cache read, so rotation is seen within one
// interval regardless of the cache TTL.
func (p *Provider) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				p.logger.Warn("key set refresh failed, keeping previous snapshot",
					zap.Error(err))
			}
		}
	}
}

// Current returns the current snapshot, or nil before the first Load.
func (p *Provider) Current() *KeySet {
	return p.current.Load()
}

// LookupKey resolves kid against the current snapshot.
func (p *Provider) LookupKey(kid string) (any, bool) {
	return p.Current().Lookup(kid)
}

// Ready returns ErrNotLoaded until a key set is available.
func (p *Provider) Ready() error {
	if p.Current() == nil {
		return ErrNotLoaded
	}
	return nil
}

// cached returns the key set held in the shared cache, or nil when there is
// none usable. An entry that does not parse is evicted.
func (p *Provider) cached(ctx context.Context) *KeySet {
	if p.cache == nil {
		return nil
	}

	data, err := p.cache.Get(ctx, p.url)
	switch {
	case errors.Is(err, ErrCacheMiss):
		return nil
	case err != nil:
		p.logger.Warn("JWKS cache read failed", zap.Error(err))
		return nil
	}

	set, err := ParseKeySet(data)
	if err != nil {
		p.logger.Warn("discarding invalid cached JWKS", zap.String("url", p.url), zap.Error(err))
		if err := p.cache.Delete(ctx, p.url); err != nil {
			p.logger.Warn("JWKS cache delete failed", zap.Error(err))
		}
		return nil
	}
	return set
}

// fetch downloads the JWKS document from the issuer
func (p *Provider) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJWKSFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrJWKSFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJWKSFetchFailed, err)
	}
	return data, nil
}
