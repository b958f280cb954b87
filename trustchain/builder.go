package trustchain

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/tgeoghegan/fedtrust/entity"
	"github.com/tgeoghegan/fedtrust/errors"
	"github.com/tgeoghegan/fedtrust/policy"
)

const (
	// DefaultMaxDepth bounds how many subordinate statements a chain may contain when the caller
	// does not say otherwise.
	DefaultMaxDepth = 10
	// DefaultHopTimeout bounds each statement fetch when the caller does not say otherwise.
	DefaultHopTimeout = 10 * time.Second
)

// Chain construction failure kinds, wrapped with %w so callers can classify failures with
// errors.Is. Statement verification failures surface as the entity package's kinds and policy
// failures as policy.ErrPolicyConflict.
var (
	// ErrLeafUnreachable means the leaf's own entity configuration could not be fetched and
	// verified.
	ErrLeafUnreachable = stderrors.New("leaf entity unreachable")
	// ErrAnchorUnreachable means no verified path from the leaf to the trust anchor exists
	// within the hop bound.
	ErrAnchorUnreachable = stderrors.New("trust anchor unreachable")
	// ErrCyclicChain means an issuer repeated within a single chain.
	ErrCyclicChain = stderrors.New("cycle in trust chain")
	// ErrFetchTimeout means a single hop's fetch exceeded its deadline.
	ErrFetchTimeout = stderrors.New("statement fetch timed out")
)

// StatementFetcher retrieves raw signed statements on behalf of the builder. Implementations own
// transport concerns: retries, TLS, connection reuse. A fetch that cannot be resolved is a hop
// failure for the caller.
type StatementFetcher interface {
	// EntityConfiguration fetches the named entity's self-issued entity configuration.
	EntityConfiguration(ctx context.Context, subject entity.Identifier) (string, error)
	// SubordinateStatement fetches the superior's statement about the subordinate.
	SubordinateStatement(ctx context.Context, superior, subordinate entity.Identifier) (string, error)
}

// AnchorRegistry answers whether an entity is a trust anchor whose trust was established
// out-of-band. How that trust was established (configuration, pinning, ...) is the
// implementation's business.
type AnchorRegistry interface {
	IsRecognizedAnchor(identifier entity.Identifier) bool
}

// StaticAnchorRegistry is an AnchorRegistry over a fixed set of identifiers supplied at
// construction.
type StaticAnchorRegistry struct {
	anchors map[string]struct{}
}

// NewStaticAnchorRegistry constructs a StaticAnchorRegistry from trust anchor identifiers.
func NewStaticAnchorRegistry(anchors []string) (*StaticAnchorRegistry, error) {
	registry := StaticAnchorRegistry{anchors: make(map[string]struct{})}
	for _, anchor := range anchors {
		identifier, err := entity.NewIdentifier(anchor)
		if err != nil {
			return nil, fmt.Errorf("invalid trust anchor identifier %s: %w", anchor, err)
		}
		registry.anchors[identifier.String()] = struct{}{}
	}

	return &registry, nil
}

func (r *StaticAnchorRegistry) IsRecognizedAnchor(identifier entity.Identifier) bool {
	_, ok := r.anchors[identifier.String()]
	return ok
}

// BuilderOptions are options for constructing a Builder.
type BuilderOptions struct {
	// Fetcher retrieves raw statements. Required.
	Fetcher StatementFetcher
	// Anchors recognizes out-of-band trusted anchors. Required.
	Anchors AnchorRegistry
	// Clock is used for statement expiry checks. Defaults to the system clock.
	Clock entity.Clock
	// MaxDepth bounds how many subordinate statements a chain may contain. Defaults to
	// DefaultMaxDepth.
	MaxDepth int
	// HopTimeout bounds each statement fetch. Defaults to DefaultHopTimeout.
	HopTimeout time.Duration
}

// Builder constructs verified trust chains from a leaf entity to a trust anchor. A Builder holds
// no mutable state across calls, so a single Builder may be used from many goroutines.
type Builder struct {
	fetcher    StatementFetcher
	anchors    AnchorRegistry
	clock      entity.Clock
	maxDepth   int
	hopTimeout time.Duration
}

// NewBuilder constructs a Builder.
func NewBuilder(options BuilderOptions) (*Builder, error) {
	if options.Fetcher == nil {
		return nil, errors.Errorf("a statement fetcher is required")
	}
	if options.Anchors == nil {
		return nil, errors.Errorf("an anchor registry is required")
	}

	builder := Builder{
		fetcher:    options.Fetcher,
		anchors:    options.Anchors,
		clock:      options.Clock,
		maxDepth:   options.MaxDepth,
		hopTimeout: options.HopTimeout,
	}
	if builder.clock == nil {
		builder.clock = entity.SystemClock
	}
	if builder.maxDepth == 0 {
		builder.maxDepth = DefaultMaxDepth
	}
	if builder.hopTimeout == 0 {
		builder.hopTimeout = DefaultHopTimeout
	}

	return &builder, nil
}

// Build walks from the leaf entity up through its authorities until it reaches the trust anchor,
// fetching and verifying a statement per hop, and returns the verified chain with its combined
// metadata policy. Build is all-or-nothing: any verification failure, cycle, timeout or exhausted
// hop budget fails the whole call and no partial chain is ever returned.
func (b *Builder) Build(
	ctx context.Context, leafID, trustAnchorID entity.Identifier,
) (*TrustChain, error) {
	// The anchor's own trust is established out-of-band. If we don't recognize it, no chain we
	// could construct would mean anything.
	if !b.anchors.IsRecognizedAnchor(trustAnchorID) {
		return nil, fmt.Errorf("%w: '%s' is not a recognized trust anchor",
			ErrAnchorUnreachable, trustAnchorID.String())
	}

	rawLeaf, err := b.fetchOneHop(ctx, func(hopCtx context.Context) (string, error) {
		return b.fetcher.EntityConfiguration(hopCtx, leafID)
	})
	if err != nil {
		if stderrors.Is(err, ErrFetchTimeout) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLeafUnreachable, err)
	}

	leafConfiguration, err := entity.ValidateEntityStatement(rawLeaf, nil, &leafID, b.clock)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLeafUnreachable, err)
	}

	// visited tracks issuers along the current path for cycle detection. Entries are removed on
	// backtrack so that two sibling paths through a shared authority are not mistaken for a cycle.
	visited := map[string]struct{}{leafID.String(): {}}
	rawStatements, parsedStatements, err := b.extend(ctx, leafConfiguration, trustAnchorID, visited, 1)
	if err != nil {
		return nil, err
	}

	chain := append([]string{rawLeaf}, rawStatements...)
	parsedChain := append([]entity.EntityStatement{*leafConfiguration}, parsedStatements...)

	// The leaf's entity configuration carries no policy about itself; policies live in the
	// subordinate statements, which are already in chain order (leaf-adjacent first).
	policies := make([]policy.Policy, 0, len(parsedChain)-1)
	for _, statement := range parsedChain[1:] {
		policies = append(policies, statement.MetadataPolicy)
	}
	combinedPolicy, err := policy.Combine(policies)
	if err != nil {
		return nil, err
	}

	return New(chain, parsedChain, combinedPolicy, trustAnchorID, leafID)
}

// extend advances one hop from the entity described by current, trying that entity's authority
// hints in deterministic order: a hint equal to the target anchor first, then hints recognized by
// the anchor registry, then the rest in listed order. Per-hop verification failures, cycles and
// timeouts abort the build; only a hint whose subtree cannot reach the anchor within the hop
// budget causes the next hint to be attempted.
func (b *Builder) extend(
	ctx context.Context,
	current *entity.EntityStatement,
	trustAnchorID entity.Identifier,
	visited map[string]struct{},
	hop int,
) ([]string, []entity.EntityStatement, error) {
	if hop > b.maxDepth {
		return nil, nil, fmt.Errorf("%w: no path within %d hops", ErrAnchorUnreachable, b.maxDepth)
	}

	hints := orderHints(current.AuthorityHints, trustAnchorID, b.anchors)
	if len(hints) == 0 {
		return nil, nil, fmt.Errorf("%w: entity '%s' has no authority hints",
			ErrAnchorUnreachable, current.Subject.String())
	}

	var unreachable error
	for _, hint := range hints {
		if _, ok := visited[hint.String()]; ok {
			return nil, nil, fmt.Errorf("%w: issuer '%s' repeats", ErrCyclicChain, hint.String())
		}

		rawSuperior, err := b.fetchOneHop(ctx, func(hopCtx context.Context) (string, error) {
			return b.fetcher.EntityConfiguration(hopCtx, hint)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch entity configuration for '%s': %w",
				hint.String(), err)
		}
		superiorConfiguration, err := entity.ValidateEntityStatement(rawSuperior, nil, &hint, b.clock)
		if err != nil {
			return nil, nil, err
		}

		subordinate := current.Subject
		rawStatement, err := b.fetchOneHop(ctx, func(hopCtx context.Context) (string, error) {
			return b.fetcher.SubordinateStatement(hopCtx, hint, subordinate)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch statement by '%s' about '%s': %w",
				hint.String(), subordinate.String(), err)
		}

		statement, err := entity.ValidateEntityStatement(
			rawStatement, &superiorConfiguration.FederationEntityKeys, &subordinate, b.clock)
		if err != nil {
			return nil, nil, err
		}
		if !statement.Issuer.Equals(&hint) {
			return nil, nil, fmt.Errorf("%w: statement issuer '%s' is not the authority '%s' it was fetched from",
				entity.ErrMalformedStatement, statement.Issuer.String(), hint.String())
		}

		if hint.Equals(&trustAnchorID) {
			// Terminal hop: the issuer is the anchor whose trust was already confirmed in Build.
			return []string{rawStatement}, []entity.EntityStatement{*statement}, nil
		}

		visited[hint.String()] = struct{}{}
		deeperRaw, deeperParsed, err := b.extend(ctx, superiorConfiguration, trustAnchorID, visited, hop+1)
		if err != nil {
			if stderrors.Is(err, ErrAnchorUnreachable) {
				// This hint's subtree can't reach the anchor. Backtrack and try the next one.
				delete(visited, hint.String())
				if unreachable == nil {
					unreachable = err
				}
				continue
			}
			return nil, nil, err
		}

		return append([]string{rawStatement}, deeperRaw...),
			append([]entity.EntityStatement{*statement}, deeperParsed...), nil
	}

	return nil, nil, unreachable
}

// fetchOneHop runs a single fetch under the per-hop timeout, translating a blown deadline into
// ErrFetchTimeout. Cancellation of the parent context is passed through untranslated.
func (b *Builder) fetchOneHop(
	ctx context.Context, fetch func(context.Context) (string, error),
) (string, error) {
	hopCtx, cancel := context.WithTimeout(ctx, b.hopTimeout)
	defer cancel()

	raw, err := fetch(hopCtx)
	if err != nil {
		if stderrors.Is(hopCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("%w: %w", ErrFetchTimeout, err)
		}
		return "", err
	}

	return raw, nil
}

// orderHints classifies authority hints into {anchor-match, registry-recognized, ordered
// fallback} and returns them in that order, preserving listed order within each class.
func orderHints(
	hints []entity.Identifier, trustAnchorID entity.Identifier, registry AnchorRegistry,
) []entity.Identifier {
	var anchorMatch, recognized, rest []entity.Identifier
	for _, hint := range hints {
		switch {
		case hint.Equals(&trustAnchorID):
			anchorMatch = append(anchorMatch, hint)
		case registry.IsRecognizedAnchor(hint):
			recognized = append(recognized, hint)
		default:
			rest = append(rest, hint)
		}
	}

	ordered := make([]entity.Identifier, 0, len(hints))
	ordered = append(ordered, anchorMatch...)
	ordered = append(ordered, recognized...)
	ordered = append(ordered, rest...)

	return ordered
}
