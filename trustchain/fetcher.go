package trustchain

import (
	"context"
	"sync"

	"github.com/tgeoghegan/fedtrust/entity"
)

// HTTPFetcher is a StatementFetcher that resolves statements over the OpenID Federation HTTP
// endpoints: entity configurations from the well-known path, subordinate statements from the
// issuing authority's fetch endpoint.
type HTTPFetcher struct {
	client entity.HTTPClient
	clock  entity.Clock

	// endpoints caches FederationEndpoints per authority so that walking a chain does not
	// re-fetch an authority's entity configuration for every subordinate statement. Entries are
	// only served while the underlying entity configuration is unexpired.
	mutex     sync.Mutex
	endpoints map[string]*entity.FederationEndpoints
}

// NewHTTPFetcher constructs an HTTPFetcher whose statement validation uses the provided clock.
func NewHTTPFetcher(clock entity.Clock) *HTTPFetcher {
	if clock == nil {
		clock = entity.SystemClock
	}

	return &HTTPFetcher{
		client:    entity.NewOIDFClientWithClock(clock),
		clock:     clock,
		endpoints: make(map[string]*entity.FederationEndpoints),
	}
}

func (f *HTTPFetcher) EntityConfiguration(
	ctx context.Context, subject entity.Identifier,
) (string, error) {
	endpoints, err := f.federationEndpoints(ctx, subject)
	if err != nil {
		return "", err
	}

	return endpoints.RawEntityConfiguration, nil
}

func (f *HTTPFetcher) SubordinateStatement(
	ctx context.Context, superior, subordinate entity.Identifier,
) (string, error) {
	endpoints, err := f.federationEndpoints(ctx, superior)
	if err != nil {
		return "", err
	}

	_, raw, err := endpoints.SubordinateStatement(ctx, subordinate)
	if err != nil {
		return "", err
	}

	return raw, nil
}

func (f *HTTPFetcher) federationEndpoints(
	ctx context.Context, identifier entity.Identifier,
) (*entity.FederationEndpoints, error) {
	f.mutex.Lock()
	cached, ok := f.endpoints[identifier.String()]
	f.mutex.Unlock()
	if ok && f.clock.Now().Unix() <= cached.Entity.Expiration {
		return cached, nil
	}

	endpoints, err := f.client.NewFederationEndpoints(ctx, identifier)
	if err != nil {
		return nil, err
	}

	f.mutex.Lock()
	f.endpoints[identifier.String()] = endpoints
	f.mutex.Unlock()

	return endpoints, nil
}
