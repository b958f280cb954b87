package entity

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"github.com/tgeoghegan/fedtrust/errors"
)

// GenerateFederationKeys generates a JWKS suitable for signing entity statements. Hard code one
// P-256 key and one 2048 bit RSA key.
func GenerateFederationKeys() (*jose.JSONWebKeySet, error) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Errorf("failed to generate key: %w", err)
	}

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, errors.Errorf("failed to generate key: %w", err)
	}

	jwks, err := privateJWKS([]any{ecKey, rsaKey})
	if err != nil {
		return nil, fmt.Errorf("failed to construct JWKS for federation entity: %w", err)
	}

	return &jwks, nil
}

// SignStatement signs an entity statement with the first key in the provided JWKS, producing the
// compact JWS serialization required by OpenID Federation.
func SignStatement(entityStatement EntityStatement, keys *jose.JSONWebKeySet) (string, error) {
	payload, err := json.Marshal(entityStatement)
	if err != nil {
		return "", errors.Errorf("failed to marshal entity statement to JSON: %w", err)
	}

	if len(keys.Keys) == 0 {
		return "", errors.Errorf("JWKS contains no keys")
	}

	if keys.Keys[0].KeyID == "" {
		return "", errors.Errorf("federation entity key KID should be set")
	}

	if keys.Keys[0].Algorithm == "" {
		return "", errors.Errorf("federation entity key alg should be set")
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{
			// TODO: probably should validate that the Algorithm field is valid somehow
			Algorithm: jose.SignatureAlgorithm(keys.Keys[0].Algorithm),
			Key:       keys.Keys[0].Key,
		},
		&jose.SignerOptions{
			ExtraHeaders: map[jose.HeaderKey]any{
				// "typ" required by OIDF
				jose.HeaderType: EntityStatementHeaderType,
				// "kid" required by OIDF
				"kid": keys.Keys[0].KeyID,
			},
		},
	)
	if err != nil {
		return "", errors.Errorf("failed to construct JOSE signer: %w", err)
	}

	signed, err := signer.Sign(payload)
	if err != nil {
		return "", errors.Errorf("failed to sign entity statement: %w", err)
	}

	// All JWSes MUST use compact serialization
	// https://openid.net/specs/openid-federation-1_0-41.html#name-requirements-notation-and-c
	compact, err := signed.CompactSerialize()
	if err != nil {
		return "", errors.Errorf("failed to compact serialize JWS: %w", err)
	}

	return compact, nil
}

// privateJWKS returns a JSONWebKeySet containing the public and private portions of provided keys
func privateJWKS(keys []any) (jose.JSONWebKeySet, error) {
	privateJWKS := jose.JSONWebKeySet{}
	for _, key := range keys {
		jsonWebKey := jose.JSONWebKey{Key: key}

		thumbprint, err := jsonWebKey.Thumbprint(crypto.SHA256)
		if err != nil {
			return jose.JSONWebKeySet{}, errors.Errorf("failed to compute thumbprint: %w", err)
		}
		kid := base64.URLEncoding.EncodeToString(thumbprint)
		jsonWebKey.KeyID = kid

		// Gross, but I'm not sure how else to get at the `alg` value for a JSONWebKey in go-jose
		var alg jose.SignatureAlgorithm
		switch k := key.(type) {
		case *rsa.PrivateKey:
			alg = jose.RS256
		case *ecdsa.PrivateKey:
			if k.Curve == elliptic.P256() {
				alg = jose.ES256
			} else if k.Curve == elliptic.P384() {
				alg = jose.ES384
			} else if k.Curve == elliptic.P521() {
				alg = jose.ES512
			}
		}
		jsonWebKey.Algorithm = string(alg)

		privateJWKS.Keys = append(privateJWKS.Keys, jsonWebKey)
	}

	return privateJWKS, nil
}

// publicJWKS returns a JSONWebKeySet containing only the public portion of jwks.
func publicJWKS(jwks *jose.JSONWebKeySet) jose.JSONWebKeySet {
	publicJWKS := jose.JSONWebKeySet{}
	for _, jsonWebKey := range jwks.Keys {
		publicJWKS.Keys = append(publicJWKS.Keys, jsonWebKey.Public())
	}

	return publicJWKS
}
