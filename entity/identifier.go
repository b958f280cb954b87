package entity

import (
	"encoding/json"
	"net/url"

	"github.com/tgeoghegan/fedtrust/errors"
)

// Identifier identifies an entity in an OpenID Federation.
// https://openid.net/specs/openid-federation-1_0-41.html#section-1.2-3.4
type Identifier struct {
	URL url.URL
}

// NewIdentifier returns an Identifier if the provided string is a valid OpenID Federation entity
// identifier.
func NewIdentifier(identifier string) (Identifier, error) {
	entityURL, err := url.Parse(identifier)
	if err != nil {
		return Identifier{}, errors.Errorf(
			"identifier '%s' is not a valid OIDF entity identifier: %w",
			identifier, err)
	}

	// TODO(timg): https is required by OpenID Federation, but requiring https identifiers is a
	// hassle in testing here I want to use a bunch of entities like http://localhost:8000
	if entityURL.Scheme != "https" && entityURL.Scheme != "http" {
		return Identifier{}, errors.Errorf(
			"identifier '%s' is not a valid OIDF entity identifier: scheme must be https",
			identifier)
	}

	if entityURL.Fragment != "" {
		return Identifier{}, errors.Errorf(
			"identifier '%s' is not a valid OIDF entity identifier: has fragment", identifier)
	}

	if len(entityURL.Query()) > 0 {
		return Identifier{}, errors.Errorf(
			"identifier '%s' is not a valid OIDF entity identifier: has query", identifier)
	}

	return Identifier{URL: *entityURL}, nil
}

func (i *Identifier) Equals(other *Identifier) bool {
	if i == other {
		return true
	}

	if (i == nil) != (other == nil) {
		return false
	}

	return i.URL.String() == other.URL.String()
}

func (i *Identifier) String() string {
	return i.URL.String()
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Identifier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	identifier, err := NewIdentifier(s)
	if err != nil {
		return err
	}

	*i = identifier

	return nil
}
