package entity

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"

	"github.com/tgeoghegan/fedtrust/errors"
)

// defaultMaxRetries bounds how often a single fetch is retried before the failure surfaces to the
// caller. Transport-level retries belong here, not in the trust chain builder.
const defaultMaxRetries = 3

// HTTPClient is a client used for HTTP requests to OIDF entities. It allows re-use of a single
// client across many instances of FederationEndpoints.
type HTTPClient struct {
	client     http.Client
	maxRetries uint64
	clock      Clock
}

func NewOIDFClient() HTTPClient {
	return HTTPClient{
		client: http.Client{Transport: &http.Transport{
			// TODO(timg): make TLS stuff configurable. For current test purposes, turning off TLS
			// trust verification suffices.
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}},
		maxRetries: defaultMaxRetries,
		clock:      SystemClock,
	}
}

// NewOIDFClientWithClock is NewOIDFClient with an injected clock for statement validation.
func NewOIDFClientWithClock(clock Clock) HTTPClient {
	client := NewOIDFClient()
	client.clock = clock

	return client
}

// NewFederationEndpoints fetches the named entity's entity configuration from the well-known path
// relative to the provided OIDF identifier per
// https://openid.net/specs/openid-federation-1_0-41.html#section-9
func (c *HTTPClient) NewFederationEndpoints(ctx context.Context, identifier Identifier) (*FederationEndpoints, error) {
	entityConfigurationURL := identifier.URL.JoinPath(EntityConfigurationPath)
	ecBytes, err := c.get(ctx, *entityConfigurationURL, EntityStatementContentType, nil)
	if err != nil {
		return nil, err
	}

	entityConfiguration, err := ValidateEntityStatement(string(ecBytes), nil, &identifier, c.clock)
	if err != nil {
		return nil, errors.Errorf("failed to validate EC: %w", err)
	}

	var federationEntityMetadata FederationEntityMetadata
	if err := entityConfiguration.FindMetadata(FederationEntity, &federationEntityMetadata); err != nil {
		return nil, errors.Errorf("EC does not contain federation entity metadata")
	}

	var fetch *url.URL
	if federationEntityMetadata.FetchEndpoint != "" {
		fetch, err = url.Parse(federationEntityMetadata.FetchEndpoint)
		if err != nil {
			return nil, errors.Errorf(
				"bad fetch endpoint '%s' in federation entity metadata: %w",
				federationEntityMetadata.FetchEndpoint, err,
			)
		}
	}
	var list *url.URL
	if federationEntityMetadata.ListEndpoint != "" {
		list, err = url.Parse(federationEntityMetadata.ListEndpoint)
		if err != nil {
			return nil, errors.Errorf(
				"bad list endpoint '%s' in federation entity metadata: %w",
				federationEntityMetadata.ListEndpoint, err,
			)
		}
	}
	var subordination *url.URL
	if federationEntityMetadata.SubordinationEndpoint != "" {
		subordination, err = url.Parse(federationEntityMetadata.SubordinationEndpoint)
		if err != nil {
			return nil, errors.Errorf(
				"bad subordination endpoint '%s' in federation entity metadata: %w",
				federationEntityMetadata.SubordinationEndpoint, err,
			)
		}
	}

	return &FederationEndpoints{
		client:                 *c,
		Entity:                 *entityConfiguration,
		RawEntityConfiguration: string(ecBytes),
		fetchEndpoint:          fetch,
		listEndpoint:           list,
		subordinationEndpoint:  subordination,
	}, nil
}

// get does an HTTP GET of the specified resource and validates that the response has the expected
// Content-Type header and returns the response body. The request is retried with exponential
// backoff, up to the client's retry bound or until ctx is done, whichever comes first.
func (c *HTTPClient) get(
	ctx context.Context,
	resource url.URL,
	contentType string,
	queryParams map[string][]string,
) ([]byte, error) {
	query := resource.Query()
	for k, v := range queryParams {
		for _, v2 := range v {
			query.Add(k, v2)
		}
	}
	resource.RawQuery = query.Encode()

	var body []byte
	operation := func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, resource.String(), nil)
		if err != nil {
			return backoff.Permanent(errors.Errorf("failed to construct request: %w", err))
		}

		resp, err := c.client.Do(request)
		if err != nil {
			return errors.Errorf("failed to fetch resource: %w", err)
		}
		defer resp.Body.Close()

		// TODO(timg): probably not all GETs will yield HTTP 200 OK
		if resp.StatusCode != http.StatusOK {
			respBody, readErr := io.ReadAll(resp.Body)
			var statusErr error
			if readErr != nil {
				statusErr = errors.Errorf("response has unexpected HTTP status: %d", resp.StatusCode)
			} else {
				statusErr = errors.Errorf("response has unexpected HTTP status: %d\nbody: %s",
					resp.StatusCode, string(respBody))
			}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// The entity understood us and said no. Retrying won't change its mind.
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}

		if resp.Header.Get("Content-Type") != contentType {
			return backoff.Permanent(errors.Errorf(
				"response has wrong content type: %s", resp.Header.Get("Content-Type")))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return errors.Errorf("failed to read response body: %w", err)
		}

		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx,
	)); err != nil {
		return nil, err
	}

	return body, nil
}

// FederationEndpoints provides a client for a specific entity's federation endpoints defined in
// https://openid.net/specs/openid-federation-1_0-41.html#name-federation-endpoints
type FederationEndpoints struct {
	client HTTPClient
	// Entity is the validated entity configuration of the entity.
	Entity EntityStatement
	// RawEntityConfiguration is the compact JWS the entity configuration arrived as.
	RawEntityConfiguration string
	fetchEndpoint          *url.URL
	listEndpoint           *url.URL
	subordinationEndpoint  *url.URL
	// TODO(timg): other federation endpoints
}

// SubordinateStatement fetches a subordinate statement for the provided entity, returning both
// the validated statement and the compact JWS it arrived as.
// https://openid.net/specs/openid-federation-1_0-41.html#name-fetch-subordinate-statement
func (fe *FederationEndpoints) SubordinateStatement(
	ctx context.Context, subordinate Identifier,
) (*EntityStatement, string, error) {
	if fe.fetchEndpoint == nil {
		return nil, "", errors.Errorf("no fetch endpoint in entity metadata")
	}
	esBytes, err := fe.client.get(ctx, *fe.fetchEndpoint, EntityStatementContentType, map[string][]string{
		QueryParamSub: {subordinate.String()},
	})
	if err != nil {
		return nil, "", err
	}

	entityStatement, err := ValidateEntityStatement(
		string(esBytes), &fe.Entity.FederationEntityKeys, &subordinate, fe.client.clock)
	if err != nil {
		return nil, "", errors.Errorf("failed to validate entity statement: %w", err)
	}

	return entityStatement, string(esBytes), nil
}

// ListSubordinates lists the subordinates of the entity.
// https://openid.net/specs/openid-federation-1_0-41.html#name-subordinate-listings
func (fe *FederationEndpoints) ListSubordinates(
	ctx context.Context, entityTypes []EntityTypeIdentifier,
) ([]Identifier, error) {
	if fe.listEndpoint == nil {
		return nil, errors.Errorf("no list endpoint in entity metadata")
	}
	queryParams := make(map[string][]string)
	if len(entityTypes) != 0 {
		entityTypeStrings := []string{}
		for _, entityType := range entityTypes {
			entityTypeStrings = append(entityTypeStrings, string(entityType))
		}
		queryParams[QueryParamEntityType] = entityTypeStrings
	}

	identifiersBytes, err := fe.client.get(ctx, *fe.listEndpoint, "application/json", queryParams)
	if err != nil {
		return nil, err
	}

	var identifiers []Identifier
	if err := json.Unmarshal(identifiersBytes, &identifiers); err != nil {
		return nil, errors.Errorf("could not unmarshal identifiers: %w", err)
	}

	return identifiers, nil
}

// AddSubordinates adds the provided identifiers as subordinates for the entity.
// OIDF deliberately does not specify how this works, but I needed to invent something to enable
// federation construction across processes.
func (fe *FederationEndpoints) AddSubordinates(ctx context.Context, subordinates []Identifier) error {
	if fe.subordinationEndpoint == nil {
		return errors.Errorf("no subordination endpoint in entity metadata")
	}
	urlWithSubParam := addSubQueryParam(*fe.subordinationEndpoint, subordinates)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, urlWithSubParam.String(), nil)
	if err != nil {
		return errors.Errorf("failed to construct request: %w", err)
	}

	resp, err := fe.client.client.Do(request)
	if err != nil {
		return errors.Errorf("failed to POST request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	return nil
}

func addSubQueryParam(originalURL url.URL, entities []Identifier) url.URL {
	identifiers := []string{}
	for _, entity := range entities {
		identifiers = append(identifiers, entity.String())
	}

	urlWithQueryParams := originalURL
	urlWithQueryParams.RawQuery = url.Values(map[string][]string{
		QueryParamSub: identifiers,
	}).Encode()

	return urlWithQueryParams
}
