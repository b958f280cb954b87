package trustchain

import (
	"context"

	"github.com/patrickmn/go-cache"

	"github.com/tgeoghegan/fedtrust/entity"
)

// Resolver wraps a Builder with a cache of built chains keyed by (leaf, trust anchor). A cached
// chain is only served while every statement in it is unexpired; past that the entry is treated
// as absent and the chain is rebuilt. Entries are replaced wholesale, never mutated in place.
type Resolver struct {
	builder *Builder
	chains  *cache.Cache
}

// NewResolver constructs a Resolver over the provided Builder.
func NewResolver(builder *Builder) *Resolver {
	return &Resolver{
		builder: builder,
		// Per-entry TTLs are set from each chain's minimum expiry, so no default expiration.
		chains: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// Resolve returns a trust chain from leafID to trustAnchorID, building one if no fresh chain is
// cached.
func (r *Resolver) Resolve(
	ctx context.Context, leafID, trustAnchorID entity.Identifier,
) (*TrustChain, error) {
	key := leafID.String() + "|" + trustAnchorID.String()

	if cached, ok := r.chains.Get(key); ok {
		chain := cached.(*TrustChain)
		// go-cache expires against the wall clock; re-check against the builder's clock so an
		// injected clock can't be outrun by a stale entry.
		if r.builder.clock.Now().Before(chain.MinExpiry()) {
			return chain, nil
		}
		r.chains.Delete(key)
	}

	chain, err := r.builder.Build(ctx, leafID, trustAnchorID)
	if err != nil {
		return nil, err
	}

	r.chains.Set(key, chain, chain.MinExpiry().Sub(r.builder.clock.Now()))

	return chain, nil
}
