package entity

import (
	"context"
	"slices"
	"testing"

	"github.com/tgeoghegan/fedtrust/policy"
)

func TestIdentifier(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{
			name:  "valid",
			input: "https://example.com",
			valid: true,
		},
		{
			name:  "port",
			input: "https://example.com:9999",
			valid: true,
		},
		{
			name:  "path",
			input: "https://example.com/some/path",
			valid: true,
		},
		// {
		// 	name:  "not-https",
		// 	input: "http://example.com",
		// 	valid: false,
		// },
		{
			name:  "query",
			input: "https://example.com?query=param",
			valid: false,
		},
		{
			name:  "fragment",
			input: "https://example.com/path#fragment",
			valid: false,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewIdentifier(testCase.input)
			if testCase.valid {
				if err != nil {
					t.Errorf("valid name rejected: %s", err.Error())
				}
			} else {
				if err == nil {
					t.Errorf("invalid name accepted")
				}
			}
		})
	}
}

func TestEntityConfiguration(t *testing.T) {
	entity, err := New("https://example.com", EntityOptions{
		TrustAnchors:         []string{"https://example.com/trust-anchor"},
		FederationEntityKeys: TestJSONWebKeySet(0),
		Metadata: map[EntityTypeIdentifier]interface{}{
			OpenIDRelyingParty: map[string]interface{}{"client_name": "some relying party"},
		},
	})
	if err != nil {
		t.Fatalf("failed to construct entity: %s", err.Error())
	}

	entityConfigurationJWS, err := entity.SignedEntityConfiguration()
	if err != nil {
		t.Fatalf("failed to construct EntityConfiguration: %s", err.Error())
	}

	entityConfiguration, err := ValidateEntityStatement(entityConfigurationJWS, nil, &entity.Identifier, nil)
	if err != nil {
		t.Fatalf("failed to validate JWS: %s", err.Error())
	}

	if entityConfiguration.Issuer != entity.Identifier ||
		entityConfiguration.Subject != entity.Identifier {
		t.Errorf("EC iss/sub wrong: %+v / %+v",
			entityConfiguration.Issuer, entityConfiguration.Subject)
	}

	var federationEntityMetadata FederationEntityMetadata
	if err := entityConfiguration.FindMetadata(FederationEntity, &federationEntityMetadata); err != nil {
		t.Fatalf("EC does not contain federation entity metadata: %s", err.Error())
	}

	if federationEntityMetadata.FetchEndpoint != "https://example.com/federation-fetch" {
		t.Errorf("wrong fetch endpoint: %s", federationEntityMetadata.FetchEndpoint)
	}
	if federationEntityMetadata.ListEndpoint != "https://example.com/federation-list" {
		t.Errorf("wrong list endpoint: %s", federationEntityMetadata.ListEndpoint)
	}

	if _, ok := entityConfiguration.Metadata[OpenIDRelyingParty]; !ok {
		t.Errorf("extra metadata should be advertised in the EC")
	}

	if !slices.Contains(entityConfiguration.EntityTypes(), FederationEntity) {
		t.Errorf("EC should advertise federation_entity type: %+v", entityConfiguration.EntityTypes())
	}
}

func TestSubordination(t *testing.T) {
	scope := "openid"
	subordinatePolicy := policy.Policy{
		"scope": policy.ClaimPolicy{Value: &scope},
	}

	// TODO(timg): this is brittle as these ports may already be bound
	superior, err := NewAndServe("http://localhost:8011", EntityOptions{
		FederationEntityKeys: TestJSONWebKeySet(0),
		SubordinatePolicy:    subordinatePolicy,
	})
	if err != nil {
		t.Fatalf("failed to construct superior: %s", err.Error())
	}
	defer superior.CleanUp()

	subordinate, err := NewAndServe("http://localhost:8012", EntityOptions{
		TrustAnchors:         []string{"http://localhost:8011"},
		FederationEntityKeys: TestJSONWebKeySet(1),
	})
	if err != nil {
		t.Fatalf("failed to construct subordinate: %s", err.Error())
	}
	defer subordinate.CleanUp()

	if err := superior.AddSubordinate(subordinate.Identifier); err != nil {
		t.Fatalf("failed to subordinate: %s", err.Error())
	}
	subordinate.AddSuperior(superior.Identifier)

	ctx := context.Background()
	oidfClient := NewOIDFClient()

	superiorEndpoints, err := oidfClient.NewFederationEndpoints(ctx, superior.Identifier)
	if err != nil {
		t.Fatalf("failed to construct federation endpoints for superior: %s", err.Error())
	}

	subordinateStatement, _, err := superiorEndpoints.SubordinateStatement(ctx, subordinate.Identifier)
	if err != nil {
		t.Fatalf("failed to get subordinate statement: %s", err.Error())
	}

	if subordinateStatement.Issuer != superior.Identifier ||
		subordinateStatement.Subject != subordinate.Identifier {
		t.Errorf("subordinate statement iss/sub wrong: %+v / %+v",
			subordinateStatement.Issuer, subordinateStatement.Subject)
	}

	if subordinateStatement.AuthorityHints != nil {
		t.Errorf("subordinate statement contains authority hints")
	}

	if got := subordinateStatement.MetadataPolicy["scope"].Value; got == nil || *got != "openid" {
		t.Errorf("subordinate statement should carry the superior's policy: %+v",
			subordinateStatement.MetadataPolicy)
	}

	// The subordinate's EC should now advertise the superior as an authority hint
	subordinateEndpoints, err := oidfClient.NewFederationEndpoints(ctx, subordinate.Identifier)
	if err != nil {
		t.Fatalf("failed to construct federation endpoints for subordinate: %s", err.Error())
	}
	if len(subordinateEndpoints.Entity.AuthorityHints) != 1 ||
		!slices.Contains(subordinateEndpoints.Entity.AuthorityHints, superior.Identifier) {
		t.Errorf("subordinate EC has unexpected authority hints: %+v",
			subordinateEndpoints.Entity.AuthorityHints)
	}
}

func TestFederationList(t *testing.T) {
	trustAnchor, err := NewAndServe("http://localhost:8013", EntityOptions{
		FederationEntityKeys: TestJSONWebKeySet(2),
	})
	if err != nil {
		t.Fatalf("failed to construct trust anchor: %s", err.Error())
	}
	defer trustAnchor.CleanUp()

	relyingParty, err := NewAndServe("http://localhost:8014", EntityOptions{
		TrustAnchors:         []string{"http://localhost:8013"},
		FederationEntityKeys: TestJSONWebKeySet(3),
		Metadata: map[EntityTypeIdentifier]interface{}{
			OpenIDRelyingParty: map[string]interface{}{"client_name": "some relying party"},
		},
	})
	if err != nil {
		t.Fatalf("failed to construct relying party: %s", err.Error())
	}
	defer relyingParty.CleanUp()

	provider, err := NewAndServe("http://localhost:8015", EntityOptions{
		TrustAnchors:         []string{"http://localhost:8013"},
		FederationEntityKeys: TestJSONWebKeySet(4),
		Metadata: map[EntityTypeIdentifier]interface{}{
			OpenIDProvider: map[string]interface{}{"issuer": "http://localhost:8015"},
		},
	})
	if err != nil {
		t.Fatalf("failed to construct provider: %s", err.Error())
	}
	defer provider.CleanUp()

	// Create subordinations
	if err := trustAnchor.AddSubordinate(relyingParty.Identifier); err != nil {
		t.Fatalf("failed to subordinate relying party: %s", err.Error())
	}
	relyingParty.AddSuperior(trustAnchor.Identifier)

	if err := trustAnchor.AddSubordinate(provider.Identifier); err != nil {
		t.Fatalf("failed to subordinate provider: %s", err.Error())
	}
	provider.AddSuperior(trustAnchor.Identifier)

	ctx := context.Background()
	oidfClient := NewOIDFClient()
	endpoints, err := oidfClient.NewFederationEndpoints(ctx, trustAnchor.Identifier)
	if err != nil {
		t.Fatalf("failed to construct endpoints: %s", err.Error())
	}

	for _, testCase := range []struct {
		name                 string
		entityTypes          []EntityTypeIdentifier
		expectedSubordinates []*Entity
	}{
		{
			name:                 "all subs",
			expectedSubordinates: []*Entity{relyingParty, provider},
		},
		{
			name:                 "relying party subs",
			entityTypes:          []EntityTypeIdentifier{OpenIDRelyingParty},
			expectedSubordinates: []*Entity{relyingParty},
		},
		{
			name:                 "provider subs",
			entityTypes:          []EntityTypeIdentifier{OpenIDProvider},
			expectedSubordinates: []*Entity{provider},
		},
		{
			name:                 "provider or relying party subs",
			entityTypes:          []EntityTypeIdentifier{OpenIDProvider, OpenIDRelyingParty},
			expectedSubordinates: []*Entity{relyingParty, provider},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			subordinates, err := endpoints.ListSubordinates(ctx, testCase.entityTypes)
			if err != nil {
				t.Fatalf("failed to list subordinates: %s", err.Error())
			}

			if len(testCase.expectedSubordinates) != len(subordinates) {
				t.Errorf("unexpected subordinate listing: %+v", subordinates)
			}
			for _, sub := range testCase.expectedSubordinates {
				if !slices.Contains(subordinates, sub.Identifier) {
					t.Errorf("unexpected subordinate listing: %+v", subordinates)
				}
			}
		})
	}
}
