// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or signed with another key.
	ErrInvalidToken = errors.New("invalid or expired token")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims are the JWT claims carried by both token types.
// Access tokens also carry the public identity of the user.
type Claims struct {
	jwt.RegisteredClaims
	Type     string `json:"typ"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// UserID returns the subject as an ObjectID.
func (c *Claims) UserID() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}

// Identity is the user information embedded into an access token.
type Identity struct {
	UserID   primitive.ObjectID
	Username string
	Email    string
	FullName string
}

// TokenPair is an access token with its matching refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuerConfig holds the keys and lifetimes of issued tokens.
type TokenIssuerConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenIssuer signs and parses HS256 tokens. Access and refresh tokens use separate keys.
type TokenIssuer struct {
	cfg TokenIssuerConfig
	now func() time.Time
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(cfg TokenIssuerConfig) (*TokenIssuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	return &TokenIssuer{cfg: cfg, now: time.Now}, nil
}

// IssuePair signs a new access and refresh token for the user.
func (i *TokenIssuer) IssuePair(id Identity) (TokenPair, error) {
	access, err := i.sign(Claims{
		RegisteredClaims: i.registered(id.UserID, i.cfg.AccessTTL),
		Type:             tokenTypeAccess,
		Username:         id.Username,
		Email:            id.Email,
		FullName:         id.FullName,
	}, i.cfg.AccessSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := i.sign(Claims{
		RegisteredClaims: i.registered(id.UserID, i.cfg.RefreshTTL),
		Type:             tokenTypeRefresh,
	}, i.cfg.RefreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess verifies an access token.
func (i *TokenIssuer) ParseAccess(token string) (*Claims, error) {
	return i.parse(token, i.cfg.AccessSecret, tokenTypeAccess)
}

// ParseRefresh verifies a refresh token.
func (i *TokenIssuer) ParseRefresh(token string) (*Claims, error) {
	return i.parse(token, i.cfg.RefreshSecret, tokenTypeRefresh)
}

// AccessTTL is the lifetime of access tokens.
func (i *TokenIssuer) AccessTTL() time.Duration { return i.cfg.AccessTTL }

// RefreshTTL is the lifetime of refresh tokens.
func (i *TokenIssuer) RefreshTTL() time.Duration { return i.cfg.RefreshTTL }

func (i *TokenIssuer) registered(userID primitive.ObjectID, ttl time.Duration) jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.Hex(),
		Issuer:    i.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (i *TokenIssuer) sign(claims Claims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (i *TokenIssuer) parse(token, secret, wantType string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != wantType {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return &claims, nil
}
