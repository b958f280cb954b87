// Package trustchain builds and validates OpenID Federation trust chains: sequences of signed
// entity statements connecting a leaf entity to a trust anchor, each statement issued by the
// next authority up.
// https://openid.net/specs/openid-federation-1_0-41.html#section-4
package trustchain

import (
	"time"

	"github.com/tgeoghegan/fedtrust/entity"
	"github.com/tgeoghegan/fedtrust/errors"
	"github.com/tgeoghegan/fedtrust/policy"
)

// TrustChain is a validated trust chain. The first statement is the leaf's entity configuration
// and the last is the trust anchor's statement about its immediate subordinate. A TrustChain is
// only ever constructed fully populated, via New, and must not be mutated afterwards.
type TrustChain struct {
	// Chain is the compact JWS serialization of each statement, leaf to anchor.
	Chain []string
	// ParsedChain is the verified statements, one to one with Chain.
	ParsedChain []entity.EntityStatement
	// CombinedPolicy is the fold of the metadata policies asserted along the chain.
	CombinedPolicy policy.Policy
	// TrustAnchorID identifies the trust anchor the chain terminates at.
	TrustAnchorID entity.Identifier
	// LeafID identifies the leaf entity the chain starts from.
	LeafID entity.Identifier
}

// New assembles a TrustChain after checking its structural invariants. It exists so that no
// partially assembled chain is ever observable: a non-nil TrustChain always satisfies the
// adjacency, endpoint and length invariants.
func New(
	chain []string,
	parsedChain []entity.EntityStatement,
	combinedPolicy policy.Policy,
	trustAnchorID entity.Identifier,
	leafID entity.Identifier,
) (*TrustChain, error) {
	if len(chain) != len(parsedChain) {
		return nil, errors.Errorf("chain and parsed chain lengths differ: %d != %d",
			len(chain), len(parsedChain))
	}

	if len(parsedChain) < 2 {
		return nil, errors.Errorf("chain must contain at least a leaf and an anchor statement")
	}

	if !parsedChain[0].Subject.Equals(&leafID) {
		return nil, errors.Errorf("chain does not start at leaf '%s'", leafID.String())
	}

	last := parsedChain[len(parsedChain)-1]
	if !last.Issuer.Equals(&trustAnchorID) {
		return nil, errors.Errorf("chain does not terminate at trust anchor '%s'",
			trustAnchorID.String())
	}

	// Each statement must be issued by the next authority up.
	for i := 0; i < len(parsedChain)-1; i++ {
		if !parsedChain[i].Issuer.Equals(&parsedChain[i+1].Subject) {
			return nil, errors.Errorf(
				"statement %d issuer '%s' is not statement %d subject '%s'",
				i, parsedChain[i].Issuer.String(), i+1, parsedChain[i+1].Subject.String())
		}
	}

	return &TrustChain{
		Chain:          chain,
		ParsedChain:    parsedChain,
		CombinedPolicy: combinedPolicy,
		TrustAnchorID:  trustAnchorID,
		LeafID:         leafID,
	}, nil
}

// MinExpiry returns the earliest expiration across the chain's statements. The chain as a whole
// must not be trusted past this instant, so it bounds any caching of the chain.
func (tc *TrustChain) MinExpiry() time.Time {
	minExpiration := tc.ParsedChain[0].Expiration
	for _, statement := range tc.ParsedChain[1:] {
		if statement.Expiration < minExpiration {
			minExpiration = statement.Expiration
		}
	}

	return time.Unix(minExpiration, 0)
}
