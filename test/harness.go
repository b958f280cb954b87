package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/tgeoghegan/fedtrust/entity"
	"github.com/tgeoghegan/fedtrust/policy"
)

// makeEntity spins up a federation entity serving its endpoints on the given localhost port.
// keyIndex selects pregenerated federation keys, so it must differ between entities.
func makeEntity(
	t *testing.T, port string, keyIndex int, subordinatePolicy policy.Policy, trustAnchors []string,
) *entity.Entity {
	t.Helper()

	fedEntity, err := entity.NewAndServe(
		fmt.Sprintf("http://localhost:%s", port),
		entity.EntityOptions{
			TrustAnchors:         trustAnchors,
			FederationEntityKeys: entity.TestJSONWebKeySet(keyIndex),
			SubordinatePolicy:    subordinatePolicy,
		},
	)
	if err != nil {
		t.Fatalf("failed to construct entity on port %s: %s", port, err.Error())
	}
	t.Cleanup(fedEntity.CleanUp)

	return fedEntity
}

// subordinate establishes superior as a federation superior of sub, going through the
// subordination endpoint over HTTP as separate processes would.
func subordinate(t *testing.T, client *entity.HTTPClient, superior, sub *entity.Entity) {
	t.Helper()

	ctx := context.Background()
	endpoints, err := client.NewFederationEndpoints(ctx, superior.Identifier)
	if err != nil {
		t.Fatalf("failed to construct federation endpoints for %s: %s",
			superior.Identifier.String(), err.Error())
	}

	if err := endpoints.AddSubordinates(ctx, []entity.Identifier{sub.Identifier}); err != nil {
		t.Fatalf("failed to subordinate %s to %s: %s",
			sub.Identifier.String(), superior.Identifier.String(), err.Error())
	}
	sub.AddSuperior(superior.Identifier)
}
