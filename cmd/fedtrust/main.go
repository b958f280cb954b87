// fedtrust stands up OpenID Federation entities and resolves verified trust chains through them.
//
// A YAML config drives a run. The federation section serves local entities so that federations
// can be assembled across processes; the resolve section walks from a leaf entity to a trust
// anchor and prints the verified chain with its combined metadata policy.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	yaml "gopkg.in/yaml.v3"

	"github.com/tgeoghegan/fedtrust/entity"
	"github.com/tgeoghegan/fedtrust/trustchain"
)

type Config struct {
	// Federation describes entities to serve from this process.
	Federation []EntityConfig `yaml:"federation,omitempty"`
	// Resolve describes a trust chain to build.
	Resolve *ResolveConfig `yaml:"resolve,omitempty"`
}

type EntityConfig struct {
	Identifier   string   `yaml:"identifier"`
	TrustAnchors []string `yaml:"trust_anchors,omitempty"`
	// Superiors is the identifiers this entity should be subordinated to. They must be served by
	// this process or already reachable.
	Superiors []string `yaml:"superiors,omitempty"`
}

type ResolveConfig struct {
	Leaf        string `yaml:"leaf"`
	TrustAnchor string `yaml:"trust_anchor"`
	// RecognizedAnchors is the full set of trusted anchors. Defaults to just TrustAnchor.
	RecognizedAnchors []string `yaml:"recognized_anchors,omitempty"`
	MaxDepth          int      `yaml:"max_depth,omitempty"`
	// HopTimeout is a Go duration string, e.g. "10s".
	HopTimeout string `yaml:"hop_timeout,omitempty"`
}

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage: fedtrust <config.yaml>")
		os.Exit(1)
	}

	configBytes, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("failed to read config", "error", err)
		os.Exit(1)
	}
	var config Config
	if err := yaml.Unmarshal(configBytes, &config); err != nil {
		logger.Error("failed to parse config", "error", err)
		os.Exit(1)
	}
	if len(config.Federation) == 0 && config.Resolve == nil {
		logger.Error("config must contain a federation section, a resolve section or both")
		os.Exit(1)
	}

	entities, err := serveFederation(logger, config.Federation)
	if err != nil {
		logger.Error("failed to serve federation", "error", err)
		os.Exit(1)
	}
	for _, fedEntity := range entities {
		defer fedEntity.CleanUp()
	}

	if config.Resolve != nil {
		if err := resolve(logger, *config.Resolve); err != nil {
			logger.Error("failed to resolve trust chain", "error", err)
			os.Exit(1)
		}

		return
	}

	logger.Info("serving OpenID Federation endpoints", "entities", len(entities))
	select {}
}

// serveFederation stands up the configured entities and wires up their subordinations.
func serveFederation(logger *slog.Logger, configs []EntityConfig) ([]*entity.Entity, error) {
	entities := []*entity.Entity{}
	for _, entityConfig := range configs {
		fedEntity, err := entity.NewAndServe(entityConfig.Identifier, entity.EntityOptions{
			TrustAnchors: entityConfig.TrustAnchors,
		})
		if err != nil {
			return entities, fmt.Errorf("failed to construct entity '%s': %w",
				entityConfig.Identifier, err)
		}
		logger.Info("serving entity", "identifier", fedEntity.Identifier.String())
		entities = append(entities, fedEntity)
	}

	// Subordinations are established once every entity is up, since subordination fetches the
	// subordinate's entity configuration.
	oidfClient := entity.NewOIDFClient()
	ctx := context.Background()
	for i, entityConfig := range configs {
		for _, superior := range entityConfig.Superiors {
			superiorIdentifier, err := entity.NewIdentifier(superior)
			if err != nil {
				return entities, fmt.Errorf("invalid superior identifier '%s': %w", superior, err)
			}

			endpoints, err := oidfClient.NewFederationEndpoints(ctx, superiorIdentifier)
			if err != nil {
				return entities, fmt.Errorf("failed to reach superior '%s': %w", superior, err)
			}
			if err := endpoints.AddSubordinates(ctx, []entity.Identifier{entities[i].Identifier}); err != nil {
				return entities, fmt.Errorf("failed to subordinate '%s' to '%s': %w",
					entityConfig.Identifier, superior, err)
			}
			entities[i].AddSuperior(superiorIdentifier)

			logger.Info("subordinated entity",
				"subordinate", entityConfig.Identifier, "superior", superior)
		}
	}

	return entities, nil
}

// resolve builds a verified trust chain per the config and prints it to stdout as JSON.
func resolve(logger *slog.Logger, config ResolveConfig) error {
	leafID, err := entity.NewIdentifier(config.Leaf)
	if err != nil {
		return fmt.Errorf("invalid leaf identifier '%s': %w", config.Leaf, err)
	}
	trustAnchorID, err := entity.NewIdentifier(config.TrustAnchor)
	if err != nil {
		return fmt.Errorf("invalid trust anchor identifier '%s': %w", config.TrustAnchor, err)
	}

	recognizedAnchors := config.RecognizedAnchors
	if len(recognizedAnchors) == 0 {
		recognizedAnchors = []string{config.TrustAnchor}
	}
	registry, err := trustchain.NewStaticAnchorRegistry(recognizedAnchors)
	if err != nil {
		return err
	}

	var hopTimeout time.Duration
	if config.HopTimeout != "" {
		hopTimeout, err = time.ParseDuration(config.HopTimeout)
		if err != nil {
			return fmt.Errorf("invalid hop_timeout '%s': %w", config.HopTimeout, err)
		}
	}

	builder, err := trustchain.NewBuilder(trustchain.BuilderOptions{
		Fetcher:    trustchain.NewHTTPFetcher(nil),
		Anchors:    registry,
		MaxDepth:   config.MaxDepth,
		HopTimeout: hopTimeout,
	})
	if err != nil {
		return err
	}

	logger.Info("building trust chain",
		"leaf", leafID.String(), "trust_anchor", trustAnchorID.String())

	chain, err := trustchain.NewResolver(builder).Resolve(context.Background(), leafID, trustAnchorID)
	if err != nil {
		return err
	}

	for i, statement := range chain.ParsedChain {
		logger.Info("chain statement", "position", i,
			"iss", statement.Issuer.String(), "sub", statement.Subject.String(),
			"exp", time.Unix(statement.Expiration, 0))
	}
	logger.Info("trust chain verified",
		"statements", len(chain.Chain), "valid_until", chain.MinExpiry())

	output, err := json.MarshalIndent(map[string]any{
		"trust_chain":     chain.Chain,
		"combined_policy": chain.CombinedPolicy,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chain: %w", err)
	}
	fmt.Println(string(output))

	return nil
}
