package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

const defaultCacheTTL = 5 * time.Minute

// VaultClient reads secrets from Azure Key Vault with an optional TTL cache
type VaultClient struct {
	fetch        func(ctx context.Context, name string) (string, error)
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	now          func() time.Time

	mu    sync.Mutex
	cache map[string]cachedSecret
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

// VaultConfig holds configuration for the vault client
type VaultConfig struct {
	VaultName    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewVaultClient authenticates with DefaultAzureCredential (env vars, managed
// identity or Azure CLI) and targets https://<vault>.vault.azure.net/.
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", cfg.VaultName)
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	logger.Info("Azure Key Vault client initialized",
		zap.String("vault_url", vaultURL),
		zap.Bool("cache_enabled", cfg.CacheEnabled),
	)

	fetch := func(ctx context.Context, name string) (string, error) {
		resp, err := client.GetSecret(ctx, name, "", nil)
		if err != nil {
			return "", err
		}
		if resp.Value == nil {
			return "", fmt.Errorf("secret '%s' has no value", name)
		}
		return *resp.Value, nil
	}

	return newVaultClient(fetch, cfg.CacheEnabled, cfg.CacheTTL, logger), nil
}

func newVaultClient(fetch func(ctx context.Context, name string) (string, error), cacheEnabled bool, ttl time.Duration, logger *zap.Logger) *VaultClient {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &VaultClient{
		fetch:        fetch,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     ttl,
		now:          time.Now,
		cache:        make(map[string]cachedSecret),
	}
}

// GetSecret retrieves a secret, serving it from cache while fresh
func (v *VaultClient) GetSecret(ctx context.Context, name string) (string, error) {
	if v.cacheEnabled {
		v.mu.Lock()
		cached, ok := v.cache[name]
		v.mu.Unlock()
		if ok && v.now().Before(cached.expiresAt) {
			return cached.value, nil
		}
	}

	value, err := v.fetch(ctx, name)
	if err != nil {
		v.logger.Error("Failed to get secret from Key Vault",
			zap.String("secret_name", name),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get secret '%s': %w", name, err)
	}

	if v.cacheEnabled {
		v.mu.Lock()
		v.cache[name] = cachedSecret{value: value, expiresAt: v.now().Add(v.cacheTTL)}
		v.mu.Unlock()
	}
	return value, nil
}

// ClearCache drops all cached secrets
func (v *VaultClient) ClearCache() {
	v.mu.Lock()
	v.cache = make(map[string]cachedSecret)
	v.mu.Unlock()
}
