package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/formlytic/formlytic-api/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	ApiKey    ApiKeyConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
	Jobs      JobsConfig
	Billing   BillingConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// PublicBaseURL is used to build links in outgoing e-mails
	PublicBaseURL string
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	AutoMigrate     bool
}

// AuthConfig holds access token settings
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
	// TokenTTL is the access token lifetime in minutes
	TokenTTL   int
	BcryptCost int
}

type ApiKeyConfig struct {
	SecretName string
	Value      string // Loaded from secrets or environment
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
	AllowedContentTypes   []string
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	// "auto" uses environment in development, vault in staging/production
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests
	// Use "*" to allow all origins (not recommended for production)
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	// FrameOptions sets the X-Frame-Options header (DENY, SAMEORIGIN, or empty to disable)
	FrameOptions       string
	ContentTypeNosniff bool
	XSSProtection      string
	ReferrerPolicy     string
	PermissionsPolicy  string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the default rate limit for unauthenticated requests (per IP)
	RequestsPerMinute int
	// RequestsPerMinuteAuth is the rate limit for authenticated requests (per user)
	RequestsPerMinuteAuth int
	// SubmissionsPerMinute limits public response submissions per IP
	SubmissionsPerMinute int
	WhitelistIPs         []string
	// WhitelistPaths is a list of paths that bypass rate limiting (e.g., /health)
	WhitelistPaths []string
}

// EmailConfig holds outgoing e-mail configuration
type EmailConfig struct {
	// Provider is "log" (development) or "sendgrid"
	Provider       string
	SendgridAPIKey string
	FromAddress    string
	FromName       string
	SubjectPrefix  string
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	Enabled bool
	// SubscriptionExpiryCron is a cron expression with seconds field
	SubscriptionExpiryCron string
	// Timeout is the maximum run time of a single job execution (seconds)
	Timeout int
}

// BillingConfig holds defaults for the payment stubs
type BillingConfig struct {
	Currency                  string
	DefaultPurchaseAmount     float64
	DefaultSubscriptionAmount float64
	SubscriptionMonths        int
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// TokenTTLDuration returns the access token lifetime as duration
func (a *AuthConfig) TokenTTLDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Minute
}

// MaxUploadBytes returns the upload limit in bytes
func (s *StorageConfig) MaxUploadBytes() int64 {
	return s.MaxUploadSizeMB * 1024 * 1024
}

// TimeoutDuration returns the job timeout as duration
func (j *JobsConfig) TimeoutDuration() time.Duration {
	return time.Duration(j.Timeout) * time.Second
}

// Load loads configuration from file and environment variables
// This is a basic load that doesn't fetch secrets from vault
// Use LoadWithSecrets for full secret resolution
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ApiKey.Value == "" {
		cfg.ApiKey.Value = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.Email.SendgridAPIKey == "" {
		cfg.Email.SendgridAPIKey = v.GetString("SENDGRID_API_KEY")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// Validate checks settings the service cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret (JWT_SECRET) is required")
	}
	if c.App.Environment == "production" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwtSecret must be at least 32 characters in production")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Email.Provider == "sendgrid" && c.Email.SendgridAPIKey == "" {
		return fmt.Errorf("email.sendgridApiKey is required when email.provider=sendgrid")
	}
	return nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source.
//
// Key Vault is used when BOTH conditions are met:
// 1. USE_AZURE_KEY_VAULT environment variable is set to "true"
// 2. Environment is "staging" or "production"
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider (USE_AZURE_KEY_VAULT=true requires valid vault): %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	if host, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-HOST", "DATABASE_HOST"); err == nil && host != "" {
		cfg.Database.Host = host
	}
	if user, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-USER", "DATABASE_USER"); err == nil && user != "" {
		cfg.Database.User = user
	}
	if password, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-PASSWORD", "DATABASE_PASSWORD"); err == nil && password != "" {
		cfg.Database.Password = password
	}
	// Azure PostgreSQL requires "require"
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}

	if secret, err := provider.GetSecretOrEnv(ctx, "jwt-secret", "JWT_SECRET"); err == nil && secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if apiKey, err := provider.GetSecretOrEnv(ctx, "admin-api-key", "ADMIN_API_KEY"); err == nil && apiKey != "" {
		cfg.ApiKey.Value = apiKey
	}
	if connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING"); err == nil && connStr != "" {
		cfg.Storage.CloudConnectionString = connStr
	}
	if key, err := provider.GetSecretOrEnv(ctx, "sendgrid-api-key", "SENDGRID_API_KEY"); err == nil && key != "" {
		cfg.Email.SendgridAPIKey = key
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Formlytic API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.publicBaseUrl", "http://localhost:3000")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "formlytic")
	v.SetDefault("database.user", "formlytic_user")
	v.SetDefault("database.password", "formlytic_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.sqlitePath", "./formlytic.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.autoMigrate", false)

	v.SetDefault("auth.issuer", "formlytic")
	v.SetDefault("auth.audience", "formlytic-api")
	v.SetDefault("auth.tokenTTL", 60*24) // one day
	v.SetDefault("auth.bcryptCost", 10)

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "form-uploads")
	v.SetDefault("storage.maxUploadSizeMB", 10)
	v.SetDefault("storage.allowedContentTypes", []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID", "Content-Disposition"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.submissionsPerMinute", 10)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})

	v.SetDefault("email.provider", "log")
	v.SetDefault("email.fromAddress", "no-reply@formlytic.app")
	v.SetDefault("email.fromName", "Formlytic")
	v.SetDefault("email.subjectPrefix", "[Formlytic] ")

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.subscriptionExpiryCron", "0 5 * * * *") // minute 5 of every hour
	v.SetDefault("jobs.timeout", 120)

	v.SetDefault("billing.currency", "INR")
	v.SetDefault("billing.defaultPurchaseAmount", 10)
	v.SetDefault("billing.defaultSubscriptionAmount", 300)
	v.SetDefault("billing.subscriptionMonths", 1)
}
