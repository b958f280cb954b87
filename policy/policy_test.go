package policy

import (
	"errors"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCombineNarrowsConstraints(t *testing.T) {
	// Chain order: the policy closest to the leaf first, the trust anchor's last.
	policies := []Policy{
		{
			"scope":         ClaimPolicy{SubsetOf: []string{"openid", "profile", "email"}},
			"grant_types":   ClaimPolicy{Add: []string{"refresh_token"}},
			"client_name":   ClaimPolicy{Default: strPtr("leaf-adjacent name")},
			"response_type": ClaimPolicy{OneOf: []string{"code", "code id_token"}},
		},
		{
			"scope":         ClaimPolicy{SubsetOf: []string{"openid", "profile", "offline_access"}},
			"grant_types":   ClaimPolicy{Add: []string{"authorization_code"}},
			"client_name":   ClaimPolicy{Default: strPtr("anchor-adjacent name")},
			"response_type": ClaimPolicy{OneOf: []string{"code"}, Essential: boolPtr(true)},
		},
	}

	combined, err := Combine(policies)
	if err != nil {
		t.Fatalf("failed to combine policies: %s", err.Error())
	}

	if got := combined["scope"].SubsetOf; !reflect.DeepEqual(got, []string{"openid", "profile"}) {
		t.Errorf("wrong subset_of intersection: %+v", got)
	}

	if got := combined["grant_types"].Add; !reflect.DeepEqual(got, []string{"authorization_code", "refresh_token"}) {
		t.Errorf("add sets should union: %+v", got)
	}

	// The most leaf-ward default wins.
	if got := combined["client_name"].Default; got == nil || *got != "leaf-adjacent name" {
		t.Errorf("wrong default: %+v", got)
	}

	if got := combined["response_type"].OneOf; !reflect.DeepEqual(got, []string{"code"}) {
		t.Errorf("wrong one_of intersection: %+v", got)
	}
	if got := combined["response_type"].Essential; got == nil || !*got {
		t.Errorf("essential should be true when any level marks it")
	}
}

func TestCombineValueConflict(t *testing.T) {
	// A leaf-ward policy may not contradict a value fixed by a more anchor-ward one.
	policies := []Policy{
		{"token_endpoint_auth_method": ClaimPolicy{Value: strPtr("private_key_jwt")}},
		{"token_endpoint_auth_method": ClaimPolicy{Value: strPtr("client_secret_basic")}},
	}

	if _, err := Combine(policies); !errors.Is(err, ErrPolicyConflict) {
		t.Fatalf("conflicting values should be rejected, got %v", err)
	}

	// Identical values at two levels are not a conflict.
	policies[1]["token_endpoint_auth_method"] = ClaimPolicy{Value: strPtr("private_key_jwt")}
	combined, err := Combine(policies)
	if err != nil {
		t.Fatalf("identical values rejected: %s", err.Error())
	}
	if *combined["token_endpoint_auth_method"].Value != "private_key_jwt" {
		t.Errorf("wrong combined value")
	}
}

func TestCombineEmptyIntersection(t *testing.T) {
	for _, testCase := range []struct {
		name     string
		policies []Policy
	}{
		{
			name: "subset_of",
			policies: []Policy{
				{"scope": ClaimPolicy{SubsetOf: []string{"openid"}}},
				{"scope": ClaimPolicy{SubsetOf: []string{"email"}}},
			},
		},
		{
			name: "one_of",
			policies: []Policy{
				{"response_type": ClaimPolicy{OneOf: []string{"code"}}},
				{"response_type": ClaimPolicy{OneOf: []string{"id_token"}}},
			},
		},
		{
			name: "superset_of",
			policies: []Policy{
				{"grant_types": ClaimPolicy{SupersetOf: []string{"authorization_code"}}},
				{"grant_types": ClaimPolicy{SupersetOf: []string{"implicit"}}},
			},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := Combine(testCase.policies); !errors.Is(err, ErrPolicyConflict) {
				t.Errorf("empty intersection should be rejected, got %v", err)
			}
		})
	}
}

func TestCombineSingleLevelConflicts(t *testing.T) {
	for _, testCase := range []struct {
		name   string
		policy Policy
	}{
		{
			// Underspecified in the federation spec, so we fail closed.
			name:   "value and add",
			policy: Policy{"scope": ClaimPolicy{Value: strPtr("openid"), Add: []string{"email"}}},
		},
		{
			name:   "value outside one_of",
			policy: Policy{"response_type": ClaimPolicy{Value: strPtr("token"), OneOf: []string{"code"}}},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := Combine([]Policy{testCase.policy}); !errors.Is(err, ErrPolicyConflict) {
				t.Errorf("self-contradictory level should be rejected, got %v", err)
			}
		})
	}
}

func TestCombineCrossLevelStructuralConflicts(t *testing.T) {
	// value fixed anchor-ward, add introduced leaf-ward
	policies := []Policy{
		{"scope": ClaimPolicy{Add: []string{"email"}}},
		{"scope": ClaimPolicy{Value: strPtr("openid")}},
	}
	if _, err := Combine(policies); !errors.Is(err, ErrPolicyConflict) {
		t.Errorf("combined value and add should be rejected, got %v", err)
	}

	// superset_of demands a value subset_of forbids
	policies = []Policy{
		{"grant_types": ClaimPolicy{SupersetOf: []string{"implicit"}}},
		{"grant_types": ClaimPolicy{SubsetOf: []string{"authorization_code"}}},
	}
	if _, err := Combine(policies); !errors.Is(err, ErrPolicyConflict) {
		t.Errorf("superset_of outside subset_of should be rejected, got %v", err)
	}
}

func TestCombineDirectionSensitivity(t *testing.T) {
	// The same policies in chain order and in reversed order must combine differently: the
	// default operator is won by the most leaf-ward level, so flipping the order flips the
	// winner.
	chainOrder := []Policy{
		{"client_name": ClaimPolicy{Default: strPtr("leaf-adjacent name")}},
		{"client_name": ClaimPolicy{Default: strPtr("mid name")}},
		{"client_name": ClaimPolicy{Default: strPtr("anchor-adjacent name")}},
	}
	reversed := []Policy{chainOrder[2], chainOrder[1], chainOrder[0]}

	combined, err := Combine(chainOrder)
	if err != nil {
		t.Fatalf("failed to combine: %s", err.Error())
	}
	combinedReversed, err := Combine(reversed)
	if err != nil {
		t.Fatalf("failed to combine: %s", err.Error())
	}

	if *combined["client_name"].Default != "leaf-adjacent name" {
		t.Errorf("wrong default in chain order: %s", *combined["client_name"].Default)
	}
	if *combinedReversed["client_name"].Default != "anchor-adjacent name" {
		t.Errorf("wrong default in reversed order: %s", *combinedReversed["client_name"].Default)
	}
	if reflect.DeepEqual(combined, combinedReversed) {
		t.Errorf("combining in reverse order should not produce the same policy")
	}
}

func TestCombineDeterministic(t *testing.T) {
	policies := []Policy{
		{
			"scope":       ClaimPolicy{SubsetOf: []string{"c", "a", "b"}},
			"grant_types": ClaimPolicy{Add: []string{"z", "y"}},
		},
		{
			"scope":       ClaimPolicy{SubsetOf: []string{"b", "c", "d"}},
			"grant_types": ClaimPolicy{Add: []string{"x"}},
		},
	}

	first, err := Combine(policies)
	if err != nil {
		t.Fatalf("failed to combine: %s", err.Error())
	}

	for i := 0; i < 20; i++ {
		again, err := Combine(policies)
		if err != nil {
			t.Fatalf("failed to combine: %s", err.Error())
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("combination not deterministic: %+v != %+v", first, again)
		}
	}
}

func TestCombineEmptyInput(t *testing.T) {
	combined, err := Combine(nil)
	if err != nil {
		t.Fatalf("combining no policies should succeed: %s", err.Error())
	}
	if len(combined) != 0 {
		t.Errorf("combining no policies should yield an empty policy: %+v", combined)
	}

	// nil levels (statements that carry no policy) are fine too
	combined, err = Combine([]Policy{nil, {"scope": ClaimPolicy{SubsetOf: []string{"openid"}}}, nil})
	if err != nil {
		t.Fatalf("nil levels should be skipped: %s", err.Error())
	}
	if got := combined["scope"].SubsetOf; !reflect.DeepEqual(got, []string{"openid"}) {
		t.Errorf("wrong subset_of: %+v", got)
	}
}
