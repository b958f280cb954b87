package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
)

// fixedClock reports a fixed instant, so validity window checks don't depend on the wall clock.
type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func mustIdentifier(t *testing.T, raw string) Identifier {
	t.Helper()
	identifier, err := NewIdentifier(raw)
	if err != nil {
		t.Fatalf("failed to parse identifier '%s': %s", raw, err.Error())
	}

	return identifier
}

// testEntityConfiguration constructs an entity configuration statement valid at issuedAt.
func testEntityConfiguration(t *testing.T, subject Identifier, keys *jose.JSONWebKeySet, issuedAt time.Time) EntityStatement {
	t.Helper()

	return EntityStatement{
		Issuer:               subject,
		Subject:              subject,
		IssuedAt:             issuedAt.Unix(),
		Expiration:           issuedAt.Add(time.Hour).Unix(),
		FederationEntityKeys: publicJWKS(keys),
	}
}

func TestValidateEntityConfiguration(t *testing.T) {
	now := time.Now()
	subject := mustIdentifier(t, "https://example.com")
	keys := TestJSONWebKeySet(0)

	signed, err := SignStatement(testEntityConfiguration(t, subject, keys, now), keys)
	if err != nil {
		t.Fatalf("failed to sign statement: %s", err.Error())
	}

	// An EC is validated against its own embedded JWKS, so no keys are passed in.
	validated, err := ValidateEntityStatement(signed, nil, &subject, fixedClock(now))
	if err != nil {
		t.Fatalf("failed to validate EC: %s", err.Error())
	}

	if validated.Issuer != subject || validated.Subject != subject {
		t.Errorf("wrong iss/sub: %+v / %+v", validated.Issuer, validated.Subject)
	}
}

func TestValidateSubordinateStatement(t *testing.T) {
	now := time.Now()
	superior := mustIdentifier(t, "https://superior.example.com")
	subordinate := mustIdentifier(t, "https://subordinate.example.com")
	superiorKeys := TestJSONWebKeySet(0)
	subordinateKeys := TestJSONWebKeySet(1)

	statement := EntityStatement{
		Issuer:               superior,
		Subject:              subordinate,
		IssuedAt:             now.Unix(),
		Expiration:           now.Add(time.Hour).Unix(),
		FederationEntityKeys: publicJWKS(subordinateKeys),
	}

	signed, err := SignStatement(statement, superiorKeys)
	if err != nil {
		t.Fatalf("failed to sign statement: %s", err.Error())
	}

	superiorPublicKeys := publicJWKS(superiorKeys)
	validated, err := ValidateEntityStatement(signed, &superiorPublicKeys, &subordinate, fixedClock(now))
	if err != nil {
		t.Fatalf("failed to validate subordinate statement: %s", err.Error())
	}
	if validated.Issuer != superior || validated.Subject != subordinate {
		t.Errorf("wrong iss/sub: %+v / %+v", validated.Issuer, validated.Subject)
	}

	// Validating against some other entity's keys must fail: the kid in the JWS header won't
	// match any key in the JWKS.
	wrongKeys := publicJWKS(TestJSONWebKeySet(2))
	if _, err := ValidateEntityStatement(signed, &wrongKeys, &subordinate, fixedClock(now)); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("statement should not validate against wrong keys, got %v", err)
	}

	// A statement about somebody else must be rejected even if the signature is good.
	other := mustIdentifier(t, "https://other.example.com")
	if _, err := ValidateEntityStatement(signed, &superiorPublicKeys, &other, fixedClock(now)); !errors.Is(err, ErrSubjectMismatch) {
		t.Errorf("statement about wrong subject should be rejected, got %v", err)
	}
}

func TestValidateValidityWindow(t *testing.T) {
	now := time.Now()
	subject := mustIdentifier(t, "https://example.com")
	keys := TestJSONWebKeySet(0)

	signed, err := SignStatement(testEntityConfiguration(t, subject, keys, now), keys)
	if err != nil {
		t.Fatalf("failed to sign statement: %s", err.Error())
	}

	for _, testCase := range []struct {
		name string
		at   time.Time
	}{
		{name: "expired", at: now.Add(2 * time.Hour)},
		{name: "not yet valid", at: now.Add(-time.Hour)},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := ValidateEntityStatement(signed, nil, &subject, fixedClock(testCase.at)); !errors.Is(err, ErrExpired) {
				t.Errorf("statement outside validity window should be rejected, got %v", err)
			}
		})
	}

	// exp <= iat is malformed regardless of the clock
	inverted := testEntityConfiguration(t, subject, keys, now)
	inverted.Expiration = inverted.IssuedAt
	signedInverted, err := SignStatement(inverted, keys)
	if err != nil {
		t.Fatalf("failed to sign statement: %s", err.Error())
	}
	if _, err := ValidateEntityStatement(signedInverted, nil, &subject, fixedClock(now)); !errors.Is(err, ErrMalformedStatement) {
		t.Errorf("exp <= iat should be malformed, got %v", err)
	}
}

func TestValidateMalformedStatements(t *testing.T) {
	now := time.Now()
	subject := mustIdentifier(t, "https://example.com")
	keys := TestJSONWebKeySet(0)

	t.Run("not a JWS", func(t *testing.T) {
		if _, err := ValidateEntityStatement("definitely not a JWS", nil, &subject, fixedClock(now)); !errors.Is(err, ErrMalformedStatement) {
			t.Errorf("garbage should be malformed, got %v", err)
		}
	})

	t.Run("EC with differing iss and sub", func(t *testing.T) {
		statement := testEntityConfiguration(t, subject, keys, now)
		statement.Issuer = mustIdentifier(t, "https://other.example.com")
		signed, err := SignStatement(statement, keys)
		if err != nil {
			t.Fatalf("failed to sign statement: %s", err.Error())
		}

		if _, err := ValidateEntityStatement(signed, nil, &subject, fixedClock(now)); !errors.Is(err, ErrMalformedStatement) {
			t.Errorf("EC with iss != sub should be malformed, got %v", err)
		}
	})

	t.Run("wrong typ header", func(t *testing.T) {
		// SignStatement always sets the OIDF typ, so sign by hand with a plain JWT typ.
		signer, err := jose.NewSigner(
			jose.SigningKey{
				Algorithm: jose.SignatureAlgorithm(keys.Keys[0].Algorithm),
				Key:       keys.Keys[0].Key,
			},
			&jose.SignerOptions{
				ExtraHeaders: map[jose.HeaderKey]any{
					jose.HeaderType: "JWT",
					"kid":           keys.Keys[0].KeyID,
				},
			},
		)
		if err != nil {
			t.Fatalf("failed to construct signer: %s", err.Error())
		}

		jws, err := signer.Sign([]byte(`{}`))
		if err != nil {
			t.Fatalf("failed to sign: %s", err.Error())
		}
		compact, err := jws.CompactSerialize()
		if err != nil {
			t.Fatalf("failed to serialize: %s", err.Error())
		}

		if _, err := ValidateEntityStatement(compact, nil, &subject, fixedClock(now)); !errors.Is(err, ErrMalformedStatement) {
			t.Errorf("wrong typ should be malformed, got %v", err)
		}
	})

	t.Run("missing kid", func(t *testing.T) {
		signer, err := jose.NewSigner(
			jose.SigningKey{
				Algorithm: jose.SignatureAlgorithm(keys.Keys[0].Algorithm),
				Key:       keys.Keys[0].Key,
			},
			&jose.SignerOptions{
				ExtraHeaders: map[jose.HeaderKey]any{
					jose.HeaderType: EntityStatementHeaderType,
				},
			},
		)
		if err != nil {
			t.Fatalf("failed to construct signer: %s", err.Error())
		}

		jws, err := signer.Sign([]byte(`{}`))
		if err != nil {
			t.Fatalf("failed to sign: %s", err.Error())
		}
		compact, err := jws.CompactSerialize()
		if err != nil {
			t.Fatalf("failed to serialize: %s", err.Error())
		}

		if _, err := ValidateEntityStatement(compact, nil, &subject, fixedClock(now)); !errors.Is(err, ErrMalformedStatement) {
			t.Errorf("missing kid should be malformed, got %v", err)
		}
	})
}
