package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v4"

	"github.com/tgeoghegan/fedtrust/errors"
	"github.com/tgeoghegan/fedtrust/policy"
)

// statementLifetime is how long signed statements emitted by an Entity are valid for.
const statementLifetime = 3600 // 1 hour

// EntityOptions are options for constructing an Entity.
type EntityOptions struct {
	// TrustAnchors is the identifiers of the trust anchors trusted by this entity.
	TrustAnchors []string
	// FederationEntityKeys used for signing entity statements. The JWKs must contain private
	// keys. Generated if nil.
	FederationEntityKeys *jose.JSONWebKeySet
	// SubordinatePolicy is the metadata policy this entity applies to every subordinate
	// statement it emits. May be nil.
	SubordinatePolicy policy.Policy
	// Metadata is extra metadata advertised in this entity's entity configuration, keyed by
	// entity type.
	Metadata map[EntityTypeIdentifier]interface{}
}

// Entity represents an OpenID Federation Entity.
type Entity struct {
	// Identifier for the OpenID Federation Entity.
	Identifier Identifier
	// identifiers for the trust anchors trusted by this entity.
	trustAnchors []Identifier
	// federationEntityKeys is this entity's keys
	// https://openid.net/specs/openid-federation-1_0-41.html#section-1.2-3.44
	federationEntityKeys jose.JSONWebKeySet
	// subordinatePolicy is stamped onto every subordinate statement this entity signs.
	subordinatePolicy policy.Policy
	// extraMetadata is additional entity configuration metadata, keyed by entity type.
	extraMetadata map[EntityTypeIdentifier]interface{}
	// subordinates is this entity's federation subordinates
	subordinates map[Identifier]EntityStatement
	// superiors is the federation entities known to have emitted entity statements about this
	// entity
	superiors map[Identifier]struct{}

	// mutex protects concurrent access to fields
	mutex sync.Mutex

	// client is used for OpenID Federation API requests
	client HTTPClient
	// listener may be a bound port on which requests for OpenID Federation API (i.e. entity
	// configurations or other federation endpoints) are listened to
	listener net.Listener
	// done is a channel sent on when the HTTP server is torn down
	done chan struct{}
}

// New constructs a new Entity, generating keys as needed.
func New(identifier string, options EntityOptions) (*Entity, error) {
	parsedIdentifier, err := NewIdentifier(identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to parse identifier '%s': %w", identifier, err)
	}

	var trustAnchors []Identifier
	for _, trustAnchor := range options.TrustAnchors {
		parsedTrustAnchor, err := NewIdentifier(trustAnchor)
		if err != nil {
			return nil, fmt.Errorf("invalid trust anchor identifier %s: %w", trustAnchor, err)
		}

		trustAnchors = append(trustAnchors, parsedTrustAnchor)
	}

	var federationEntityKeys jose.JSONWebKeySet
	if options.FederationEntityKeys == nil {
		generated, err := GenerateFederationKeys()
		if err != nil {
			return nil, err
		}
		federationEntityKeys = *generated
	} else {
		federationEntityKeys = *options.FederationEntityKeys
	}

	return &Entity{
		Identifier:           parsedIdentifier,
		trustAnchors:         trustAnchors,
		federationEntityKeys: federationEntityKeys,
		subordinatePolicy:    options.SubordinatePolicy,
		extraMetadata:        options.Metadata,
		client:               NewOIDFClient(),
		subordinates:         make(map[Identifier]EntityStatement),
		superiors:            make(map[Identifier]struct{}),
	}, nil
}

// NewAndServe calls New, and then calls ServeFederationEndpoints.
func NewAndServe(identifier string, options EntityOptions) (*Entity, error) {
	entity, err := New(identifier, options)
	if err != nil {
		return nil, err
	}

	if err := entity.ServeFederationEndpoints(); err != nil {
		return nil, err
	}

	return entity, err
}

// TrustAnchors returns the identifiers of the trust anchors this entity trusts.
func (e *Entity) TrustAnchors() []Identifier {
	return slices.Clone(e.trustAnchors)
}

// signEntityStatement signs an entity statement using this entity's federation entity keys.
func (e *Entity) signEntityStatement(entityStatement EntityStatement) (string, error) {
	return SignStatement(entityStatement, &e.federationEntityKeys)
}

// entityConfiguration constructs an entity configuration for this entity
func (e *Entity) entityConfiguration() EntityStatement {
	metadata := map[EntityTypeIdentifier]any{
		FederationEntity: FederationEntityMetadata{
			FetchEndpoint:         e.Identifier.URL.JoinPath(FederationFetchEndpoint).String(),
			ListEndpoint:          e.Identifier.URL.JoinPath(FederationListEndpoint).String(),
			SubordinationEndpoint: e.Identifier.URL.JoinPath(FederationSubordinationEndpoint).String(),
			// TODO(timg): informational metadata
			// https://openid.net/specs/openid-federation-1_0-41.html#section-5.2.2
		},
	}
	for entityType, extra := range e.extraMetadata {
		metadata[entityType] = extra
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	superiors := []Identifier{}
	for k := range e.superiors {
		superiors = append(superiors, k)
	}

	now := time.Now().Unix()

	return EntityStatement{
		Issuer:               e.Identifier,
		Subject:              e.Identifier,
		IssuedAt:             now,
		Expiration:           now + statementLifetime,
		FederationEntityKeys: publicJWKS(&e.federationEntityKeys),
		Metadata:             metadata,
		AuthorityHints:       superiors,
	}
}

// SignedEntityConfiguration constructs and signs an Entity Configuration for this Entity
func (e *Entity) SignedEntityConfiguration() (string, error) {
	return e.signEntityStatement(e.entityConfiguration())
}

// AddSubordinate makes this entity add the provided subordinate to its list of federation
// subordinates. If successful, an entity statement for the subordinate will be available from
// this entity's federation fetch and subordinate list endpoints, carrying this entity's
// subordinate policy. Callers are responsible for updating the Entity Configuration of the
// subordinate to include this entity's identifier (e.g. by using AddSuperior()).
//
// This interface does not conform to any part of the OpenID Federation specification (which says
// nothing about establishing subordination) and is only expected to work within this project.
func (e *Entity) AddSubordinate(subordinate Identifier) error {
	endpoints, err := e.client.NewFederationEndpoints(context.Background(), subordinate)
	if err != nil {
		return err
	}

	// This is where we might evaluate some policy on the subordinate and decide whether or not we
	// want to emit an ES for them. In this test/prototype setup, we unconditionally trust any
	// subordinate presented to us.

	// Construct the equivalent entity statement
	now := time.Now().Unix()
	subordinateStatement := endpoints.Entity
	subordinateStatement.Issuer = e.Identifier
	subordinateStatement.IssuedAt = now
	subordinateStatement.Expiration = now + statementLifetime
	subordinateStatement.MetadataPolicy = e.subordinatePolicy
	// authority_hints is forbidden in an entity statement
	subordinateStatement.AuthorityHints = nil

	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.subordinates[subordinate] = subordinateStatement

	return nil
}

// AddSuperior adds the provided identifier to this entity's federation superiors, such that it
// will subsequently be included in the entity configuration. Callers are responsible for getting
// the designated superior to emit an appropriate entity statement for this entity.
func (e *Entity) AddSuperior(superior Identifier) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.superiors[superior] = struct{}{}
}

// GetSubordinate gets a subordinate statement for the named entity, if this entity has emitted one.
func (e *Entity) GetSubordinate(subordinate Identifier) (*EntityStatement, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	subordinateStatement, ok := e.subordinates[subordinate]
	if !ok {
		return nil, errors.Errorf("subordinate '%s' not found", subordinate.String())
	}

	return &subordinateStatement, nil
}

func (e *Entity) ServeFederationEndpoints() error {
	// Listen at whatever port is in the identifier, which may not be right
	var err error
	e.listener, err = net.Listen("tcp", net.JoinHostPort("", e.Identifier.URL.Port()))
	if err != nil {
		return errors.Errorf("could not start HTTP server for OIDF EC: %w", err)
	}

	e.done = make(chan struct{})

	go func() {
		mux := http.NewServeMux()

		mux.HandleFunc(EntityConfigurationPath, func(w http.ResponseWriter, r *http.Request) {
			if err, status := e.entityConfigurationHandler(w, r); err != nil {
				http.Error(w, err.Error(), status)
			}
		})
		mux.HandleFunc(FederationFetchEndpoint, func(w http.ResponseWriter, r *http.Request) {
			if err, status := e.federationFetchHandler(w, r); err != nil {
				http.Error(w, err.Error(), status)
			}
		})
		mux.HandleFunc(FederationListEndpoint, func(w http.ResponseWriter, r *http.Request) {
			if err, status := e.federationListHandler(w, r); err != nil {
				http.Error(w, err.Error(), status)
			}
		})
		mux.HandleFunc(FederationSubordinationEndpoint, func(w http.ResponseWriter, r *http.Request) {
			if err, status := e.federationSubordinationHandler(r); err != nil {
				http.Error(w, err.Error(), status)
			}
		})

		httpServer := &http.Server{Handler: mux}

		// Once httpServer is shut down we don't want any lingering connections, so disable KeepAlives.
		httpServer.SetKeepAlivesEnabled(false)

		if err := httpServer.Serve(e.listener); err != nil &&
			!strings.Contains(err.Error(), "use of closed network connection") {
			log.Println(err)
		}

		e.done <- struct{}{}
	}()

	return nil
}

func (e *Entity) CleanUp() {
	if e.listener == nil {
		return
	}

	e.listener.Close()

	<-e.done
}

func (e *Entity) entityConfigurationHandler(w http.ResponseWriter, r *http.Request) (error, int) {
	if r.Method != http.MethodGet {
		return errors.Errorf("only GET is allowed"), http.StatusMethodNotAllowed
	}

	entityConfiguration, err := e.SignedEntityConfiguration()
	if err != nil {
		return err, http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", EntityStatementContentType)
	if _, err := w.Write([]byte(entityConfiguration)); err != nil {
		return err, http.StatusInternalServerError
	}

	return nil, http.StatusOK
}

func (e *Entity) federationFetchHandler(w http.ResponseWriter, r *http.Request) (error, int) {
	if r.Method != http.MethodGet {
		return errors.Errorf("only GET is allowed"), http.StatusMethodNotAllowed
	}

	subordinate := r.URL.Query().Get(QueryParamSub)
	if subordinate == "" {
		// TODO(timg): error responses conforming to https://openid.net/specs/openid-federation-1_0-41.html#section-8.9
		return errors.Errorf("sub query parameter is required"), http.StatusBadRequest
	}

	subordinateIdentifier, err := NewIdentifier(subordinate)
	if err != nil {
		return errors.Errorf("invalid subordinate '%s': %w", subordinate, err), http.StatusBadRequest
	}

	subordinateStatement, err := e.GetSubordinate(subordinateIdentifier)
	if err != nil {
		return err, http.StatusNotFound
	}
	signedSub, err := e.signEntityStatement(*subordinateStatement)
	if err != nil {
		return errors.Errorf("failed to sign subordinate statement: %w", err), http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", EntityStatementContentType)
	if _, err := w.Write([]byte(signedSub)); err != nil {
		return err, http.StatusInternalServerError
	}

	return nil, http.StatusOK
}

func (e *Entity) federationListHandler(w http.ResponseWriter, r *http.Request) (error, int) {
	if r.Method != http.MethodGet {
		return errors.Errorf("only GET is allowed"), http.StatusMethodNotAllowed
	}

	subordinateIdentifiers := []Identifier{}
	e.mutex.Lock()
	for _, subordinate := range e.subordinates {
		if entityTypes, ok := r.URL.Query()[QueryParamEntityType]; ok {
			for _, entityType := range entityTypes {
				if slices.Contains(subordinate.EntityTypes(), EntityTypeIdentifier(entityType)) {
					subordinateIdentifiers = append(subordinateIdentifiers, subordinate.Subject)
				}
			}
		} else {
			// no entity type parameter provided, so add all identifiers
			subordinateIdentifiers = append(subordinateIdentifiers, subordinate.Subject)
		}
	}
	e.mutex.Unlock()

	jsonIdentifiers, err := json.Marshal(subordinateIdentifiers)
	if err != nil {
		return err, http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(jsonIdentifiers); err != nil {
		return err, http.StatusInternalServerError
	}

	return nil, http.StatusOK
}

// federationSubordinationHandler implements an HTTP endpoint for OpenID Federation subordination.
// OIDF deliberately does not define mechanisms for establishing subordination, but we need a way
// to do this so that we can do it across processes.
func (e *Entity) federationSubordinationHandler(r *http.Request) (error, int) {
	if r.Method != http.MethodPost {
		return errors.Errorf("only POST is allowed"), http.StatusMethodNotAllowed
	}

	subordinates, ok := r.URL.Query()[QueryParamSub]
	if !ok {
		return errors.Errorf("sub query parameter is required"), http.StatusBadRequest
	}

	for _, subordinate := range subordinates {
		subordinateIdentifier, err := NewIdentifier(subordinate)
		if err != nil {
			return fmt.Errorf("invalid subordinate '%s': %w", subordinate, err), http.StatusBadRequest
		}

		// Refuse to subordinate yourself
		if subordinateIdentifier == e.Identifier {
			return errors.Errorf("cannot subordinate self"), http.StatusBadRequest
		}

		// Refuse to subordinate own superiors
		e.mutex.Lock()
		if _, ok := e.superiors[subordinateIdentifier]; ok {
			e.mutex.Unlock()
			return errors.Errorf("cannot subordinate own superior '%s'", subordinate), http.StatusBadRequest
		}
		e.mutex.Unlock()

		if err := e.AddSubordinate(subordinateIdentifier); err != nil {
			return fmt.Errorf("failed to add subordinate: %w", err), http.StatusInternalServerError
		}
	}

	return nil, http.StatusOK
}
