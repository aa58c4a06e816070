package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the access token claims issued by this service
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 access tokens
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer creates an issuer from auth config
func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTLDuration(),
		now:      time.Now,
	}
}

// Issue returns a signed token for the user and its expiry time
func (i *TokenIssuer) Issue(userID uuid.UUID, email, name string) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// JWTValidator validates access tokens signed with the shared secret
type JWTValidator struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &JWTValidator{
		secret: []byte(cfg.JWTSecret),
		parser: jwt.NewParser(opts...),
	}
}

// ValidateToken validates a JWT token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return &UserContext{
		UserID:      userID,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}
