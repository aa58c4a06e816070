package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource defines where secrets are loaded from
type SecretSource string

const (
	SourceEnvironment SecretSource = "environment"
	SourceVault       SecretSource = "vault"
	// SourceAuto resolves to vault outside development
	SourceAuto SecretSource = "auto"
)

// secretStore is the subset of VaultClient used by Provider
type secretStore interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Provider resolves named secrets from the environment or Azure Key Vault
type Provider struct {
	source SecretSource
	store  secretStore
	logger *zap.Logger
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ResolveSource turns SourceAuto into a concrete source for the given environment
func ResolveSource(source SecretSource, environment string) SecretSource {
	if source != SourceAuto {
		return source
	}
	switch environment {
	case "development", "local", "test", "":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

// NewProvider creates a new secrets provider
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment)
	p := &Provider{source: source, logger: logger}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.store = vault
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// GetSecret retrieves a secret by name. For the environment source the name is
// used as the environment variable name.
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("environment variable '%s' not set", name)
		}
		return value, nil
	case SourceVault:
		if p.store == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.store.GetSecret(ctx, name)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretOrEnv prefers an explicitly set environment variable over the configured source
func (p *Provider) GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if value := os.Getenv(envName); value != "" {
		p.logger.Debug("Using environment variable override", zap.String("env_name", envName))
		return value, nil
	}
	return p.GetSecret(ctx, secretName)
}

// Source returns the resolved secret source
func (p *Provider) Source() SecretSource {
	return p.source
}
