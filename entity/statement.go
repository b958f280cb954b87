package entity

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/go-jose/go-jose/v4"

	"github.com/tgeoghegan/fedtrust/policy"
)

const (
	EntityStatementHeaderType = "entity-statement+jwt"

	// https://openid.net/specs/openid-federation-1_0-41.html#name-obtaining-federation-entity
	EntityConfigurationPath    = "/.well-known/openid-federation"
	EntityStatementContentType = "application/entity-statement+jwt"

	// Federation entity endpoints
	// https://openid.net/specs/openid-federation-1_0-41.html#section-5.1.1
	FederationFetchEndpoint = "/federation-fetch"
	FederationListEndpoint  = "/federation-list"

	// Non-standard subordination request endpoint
	FederationSubordinationEndpoint = "/federation-subordination"

	// Query parameters for federation endpoints
	QueryParamSub        = "sub"
	QueryParamEntityType = "entity_type"
)

const (
	// Entity Type Identifiers
	// https://openid.net/specs/openid-federation-1_0-41.html#section-5.1
	FederationEntity   EntityTypeIdentifier = "federation_entity"
	OpenIDRelyingParty EntityTypeIdentifier = "openid_relying_party"
	OpenIDProvider     EntityTypeIdentifier = "openid_provider"
)

// Statement verification failure kinds. Verification wraps these with %w so callers can classify
// failures with errors.Is without parsing messages.
var (
	// ErrMalformedStatement means a document could not be decoded into an entity statement.
	ErrMalformedStatement = stderrors.New("malformed entity statement")
	// ErrSignatureInvalid means a statement's signature could not be verified against the
	// presumed signer's keys.
	ErrSignatureInvalid = stderrors.New("entity statement signature invalid")
	// ErrExpired means the current time is outside a statement's validity window.
	ErrExpired = stderrors.New("entity statement expired")
	// ErrSubjectMismatch means a statement's subject is not the entity the caller asked about.
	ErrSubjectMismatch = stderrors.New("entity statement subject mismatch")
)

type EntityTypeIdentifier string

// EntityStatement is an OIDF Entity Statement
// https://openid.net/specs/openid-federation-1_0-41.html#section-3
type EntityStatement struct {
	Issuer               Identifier                           `json:"iss"`
	Subject              Identifier                           `json:"sub"`
	IssuedAt             int64                                `json:"iat"`
	Expiration           int64                                `json:"exp"`
	FederationEntityKeys jose.JSONWebKeySet                   `json:"jwks"`
	AuthorityHints       []Identifier                         `json:"authority_hints,omitempty"`
	Metadata             map[EntityTypeIdentifier]interface{} `json:"metadata,omitempty"`
	// MetadataPolicy is the policy this statement's issuer applies to the subject's client
	// representation. Only meaningful in subordinate statements.
	MetadataPolicy policy.Policy `json:"metadata_policy,omitempty"`
	// TODO(timg): constraints, crit, trust marks
}

// ValidateEntityStatement validates that the provided signature is a well formed JSON web
// signature whose payload is a well formed OpenID Federation entity statement. The JWS signature
// is validated using one of the keys in the provided JWKS, or with a key inside the payload (in
// which case the payload must be an entity configuration, with identical iss and sub).
//
// If expectedSubject is non-nil, the statement's subject must match it; this is what prevents an
// authority substituting a statement about some other entity. The statement's validity window is
// checked against clock, or against SystemClock if clock is nil.
func ValidateEntityStatement(
	signature string,
	keys *jose.JSONWebKeySet,
	expectedSubject *Identifier,
	clock Clock,
) (*EntityStatement, error) {
	// The JWS header indicates what algorithm it's signed with, but jose requires us to provide a
	// list of acceptable signing algorithms.
	// TODO(timg): For now, we'll allow a variety of RSA PKCS1.5 and ECDSA algorithms but this
	// should be configurable somehow.
	jws, err := jose.ParseSigned(signature, []jose.SignatureAlgorithm{
		jose.RS256, jose.RS384, jose.RS512, jose.ES256, jose.ES384, jose.ES512,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: not a compact JWS: %w", ErrMalformedStatement, err)
	}

	if len(jws.Signatures) > 1 {
		return nil, fmt.Errorf("%w: unexpected multi-signature JWS", ErrMalformedStatement)
	}

	headerType, ok := jws.Signatures[0].Header.ExtraHeaders[jose.HeaderType]
	if !ok || headerType != EntityStatementHeaderType {
		return nil, fmt.Errorf("%w: wrong or no type in JWS header", ErrMalformedStatement)
	}

	if jws.Signatures[0].Header.KeyID == "" {
		return nil, fmt.Errorf("%w: JWS header must contain kid", ErrMalformedStatement)
	}

	if keys == nil {
		// This is an Entity *Configuration*, so to verify the signature, we have to find the
		// signature kid in the payload's JWKS, so we have to parse it untrusted.
		var untrustedEntityConfiguration EntityStatement
		if err := json.Unmarshal(jws.UnsafePayloadWithoutVerification(), &untrustedEntityConfiguration); err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal JWS payload: %w", ErrMalformedStatement, err)
		}

		// We should probably not examine anything in the payload until the signature is validated
		// but it's convenient to do this now.
		if untrustedEntityConfiguration.Issuer != untrustedEntityConfiguration.Subject {
			return nil, fmt.Errorf(
				"%w: iss and sub MUST be identical in entity configuration", ErrMalformedStatement)
		}

		keys = &untrustedEntityConfiguration.FederationEntityKeys
	}

	verificationKeys := keys.Key(jws.Signatures[0].Header.KeyID)

	if len(verificationKeys) != 1 {
		return nil, fmt.Errorf(
			"%w: found no or multiple keys in JWKS matching header kid", ErrSignatureInvalid)
	}

	entityStatementBytes, err := jws.Verify(verificationKeys[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	}

	var trustedEntityStatement EntityStatement
	if err := json.Unmarshal(entityStatementBytes, &trustedEntityStatement); err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal JWS payload: %w", ErrMalformedStatement, err)
	}

	if trustedEntityStatement.Expiration <= trustedEntityStatement.IssuedAt {
		return nil, fmt.Errorf("%w: exp must be after iat", ErrMalformedStatement)
	}

	if clock == nil {
		clock = SystemClock
	}
	now := clock.Now().Unix()
	if now < trustedEntityStatement.IssuedAt || now > trustedEntityStatement.Expiration {
		return nil, fmt.Errorf("%w: validity window [%d, %d], now %d",
			ErrExpired, trustedEntityStatement.IssuedAt, trustedEntityStatement.Expiration, now)
	}

	if expectedSubject != nil && !trustedEntityStatement.Subject.Equals(expectedSubject) {
		return nil, fmt.Errorf("%w: statement is about '%s', expected '%s'",
			ErrSubjectMismatch, trustedEntityStatement.Subject.String(), expectedSubject.String())
	}

	return &trustedEntityStatement, nil
}

// FindMetadata finds metadata for the specified entity type in the EntityStatement and decodes it
// into the provided metadata unmarshaler.
func (ec *EntityStatement) FindMetadata(entityType EntityTypeIdentifier, metadata interface{}) error {
	metadataMap, ok := ec.Metadata[entityType]
	if !ok {
		return fmt.Errorf("could not find metadata for entity %s", entityType)
	}

	// Go will deserialize each metadata into a map[string]interface{}. This is stupid and there may
	// be a nicer way to do this with generics, but we encode that back to JSON, then decode it into
	// the provided struct so we can use RTTI to give the caller a richer representation.
	jsonMetadata, err := json.Marshal(metadataMap)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	return json.Unmarshal(jsonMetadata, metadata)
}

// EntityTypes returns the OpenID Federation entity types advertised by this entity statement.
func (ec *EntityStatement) EntityTypes() []EntityTypeIdentifier {
	return maps.Keys(ec.Metadata)
}

// FederationEntityMetadata is the metadata for an OpenID Federation entity
// https://openid.net/specs/openid-federation-1_0-41.html#section-5.1.1
type FederationEntityMetadata struct {
	FetchEndpoint         string `json:"federation_fetch_endpoint"`
	ListEndpoint          string `json:"federation_list_endpoint"`
	SubordinationEndpoint string `json:"federation_subordination_endpoint"`
	// TODO(timg): various other endpoints
}
