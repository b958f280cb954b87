// Package policy implements OpenID Federation metadata policy combination. An authority attaches
// a policy to each subordinate statement it emits; combining the policies along a trust chain
// yields the constraints that apply to the leaf's client representation.
// https://openid.net/specs/openid-federation-1_0-41.html#section-6.1
package policy

import (
	stderrors "errors"
	"fmt"
	"slices"
	"sort"

	arrayops "github.com/adam-hanna/arrayOperations"
)

// ErrPolicyConflict is returned when policies along a chain cannot be combined, either because
// operators contradict each other across levels or because a single level is self-contradictory.
var ErrPolicyConflict = stderrors.New("policy conflict")

// ClaimPolicy is the set of policy operators an authority may apply to a single claim of a
// subordinate's client representation.
type ClaimPolicy struct {
	// Value fixes the claim to exactly this value.
	Value *string `json:"value,omitempty"`
	// Add requires the listed values to be present in the claim.
	Add []string `json:"add,omitempty"`
	// Default supplies a value for the claim when the leaf does not set one.
	Default *string `json:"default,omitempty"`
	// SubsetOf requires the claim's values to be a subset of the listed values.
	SubsetOf []string `json:"subset_of,omitempty"`
	// SupersetOf requires the claim's values to be a superset of the listed values.
	SupersetOf []string `json:"superset_of,omitempty"`
	// OneOf requires the claim's value to be one of the listed values.
	OneOf []string `json:"one_of,omitempty"`
	// Essential marks the claim as required.
	Essential *bool `json:"essential,omitempty"`
}

// Policy maps claim names to the operators an authority applies to them.
type Policy map[string]ClaimPolicy

// Combine merges the policies gathered along a trust chain into a single policy. The input is in
// chain order, the policy asserted by the authority closest to the leaf first and the trust
// anchor's policy last, matching the statement order of a trust chain. Policies are folded
// starting from the anchor end: an authority may only narrow what its own superior already
// granted, never widen it, so a more leaf-ward policy that contradicts a more anchor-ward one is
// a conflict.
//
// Combine never mutates its inputs and is deterministic over them.
func Combine(policies []Policy) (Policy, error) {
	combined := Policy{}

	for i := len(policies) - 1; i >= 0; i-- {
		for _, claim := range sortedClaims(policies[i]) {
			level := policies[i][claim]
			if err := checkLevel(claim, level); err != nil {
				return nil, err
			}

			merged, err := mergeClaim(claim, combined[claim], level)
			if err != nil {
				return nil, err
			}
			combined[claim] = merged
		}
	}

	for _, claim := range sortedClaims(combined) {
		if err := checkCombined(claim, combined[claim]); err != nil {
			return nil, err
		}
	}

	return combined, nil
}

// checkLevel rejects operator combinations that are contradictory within a single policy level.
// Unspecified combinations fail closed.
func checkLevel(claim string, cp ClaimPolicy) error {
	if cp.Value != nil && len(cp.Add) > 0 {
		return fmt.Errorf("%w: claim %q sets both value and add in one policy", ErrPolicyConflict, claim)
	}

	if cp.Value != nil && len(cp.OneOf) > 0 && !slices.Contains(cp.OneOf, *cp.Value) {
		return fmt.Errorf("%w: claim %q value %q not in its own one_of", ErrPolicyConflict, claim, *cp.Value)
	}

	return nil
}

// mergeClaim narrows the operators accumulated so far (from more anchor-ward levels) with one
// more leaf-ward level.
func mergeClaim(claim string, have, next ClaimPolicy) (ClaimPolicy, error) {
	merged := have

	if next.Value != nil {
		if have.Value != nil && *have.Value != *next.Value {
			return ClaimPolicy{}, fmt.Errorf(
				"%w: claim %q value %q contradicts superior value %q",
				ErrPolicyConflict, claim, *next.Value, *have.Value)
		}
		merged.Value = next.Value
	}

	if len(next.Add) > 0 {
		union := arrayops.Union(have.Add, next.Add)
		sort.Strings(union)
		merged.Add = union
	}

	// The most leaf-ward default wins; levels are folded anchor-first so a later level is always
	// closer to the leaf.
	if next.Default != nil {
		merged.Default = next.Default
	}

	var err error
	if merged.SubsetOf, err = intersectConstraint(claim, "subset_of", have.SubsetOf, next.SubsetOf); err != nil {
		return ClaimPolicy{}, err
	}
	if merged.SupersetOf, err = intersectConstraint(claim, "superset_of", have.SupersetOf, next.SupersetOf); err != nil {
		return ClaimPolicy{}, err
	}
	if merged.OneOf, err = intersectConstraint(claim, "one_of", have.OneOf, next.OneOf); err != nil {
		return ClaimPolicy{}, err
	}

	if next.Essential != nil {
		essential := (merged.Essential != nil && *merged.Essential) || *next.Essential
		merged.Essential = &essential
	}

	return merged, nil
}

// intersectConstraint narrows a constraint set. An absent set means the level places no
// constraint; two present sets intersect, and an empty intersection is unsatisfiable.
func intersectConstraint(claim, operator string, have, next []string) ([]string, error) {
	if len(have) == 0 {
		return normalized(next), nil
	}
	if len(next) == 0 {
		return have, nil
	}

	intersection := arrayops.Intersect(have, next)
	if len(intersection) == 0 {
		return nil, fmt.Errorf(
			"%w: claim %q has empty %s intersection", ErrPolicyConflict, claim, operator)
	}
	sort.Strings(intersection)

	return intersection, nil
}

// checkCombined rejects combined operator sets that no client representation could satisfy.
func checkCombined(claim string, cp ClaimPolicy) error {
	if cp.Value != nil && len(cp.Add) > 0 {
		return fmt.Errorf("%w: claim %q combines value and add", ErrPolicyConflict, claim)
	}

	if cp.Value != nil && len(cp.OneOf) > 0 && !slices.Contains(cp.OneOf, *cp.Value) {
		return fmt.Errorf("%w: claim %q value %q not in combined one_of", ErrPolicyConflict, claim, *cp.Value)
	}

	if len(cp.SubsetOf) > 0 {
		for _, required := range cp.SupersetOf {
			if !slices.Contains(cp.SubsetOf, required) {
				return fmt.Errorf(
					"%w: claim %q requires %q via superset_of but subset_of forbids it",
					ErrPolicyConflict, claim, required)
			}
		}
		for _, added := range cp.Add {
			if !slices.Contains(cp.SubsetOf, added) {
				return fmt.Errorf(
					"%w: claim %q adds %q but subset_of forbids it", ErrPolicyConflict, claim, added)
			}
		}
	}

	return nil
}

func sortedClaims(p Policy) []string {
	claims := make([]string, 0, len(p))
	for claim := range p {
		claims = append(claims, claim)
	}
	sort.Strings(claims)

	return claims
}

func normalized(set []string) []string {
	if len(set) == 0 {
		return nil
	}
	out := arrayops.Distinct(set)
	sort.Strings(out)

	return out
}
