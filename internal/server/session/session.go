// Package session issues and verifies the signed session tokens carried in
// the "token" cookie or the Authorization header.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/storage"
)

// DefaultTTL время жизни токена по умолчанию (7 дней)
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidSignature covers tampered, malformed and wrongly signed tokens
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired indicates that the token is past its expiry
	ErrExpired = errors.New("token expired")

	// ErrRevoked indicates that the token was revoked by logout
	ErrRevoked = errors.New("token revoked")
)

// Claims представляет JWT claims сессии.
// Роль копируется в момент выдачи и не обновляется до истечения токена.
type Claims struct {
	UserID   string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token was issued to an admin.
func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Codec signs and verifies session tokens with HS256
type Codec struct {
	revoked storage.RevocationStorage
	now     func() time.Time
	secret  []byte
	ttl     time.Duration
}

// NewCodec создает кодек; revoked может быть nil, тогда отзыв токенов отключен
func NewCodec(secret []byte, ttl time.Duration, revoked storage.RevocationStorage) *Codec {
	return &Codec{
		secret:  secret,
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// TTL returns the lifetime of issued tokens
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue создает подписанный токен для пользователя
func (c *Codec) Issue(user *models.User) (string, *Claims, error) {
	now := c.now()

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			Issuer:    "starmap",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims, nil
}

// Verify проверяет подпись, срок действия и отзыв токена
func (c *Codec) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		// Принимаем только HS256: alg=none и подмена алгоритма отвергаются
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: incomplete claims", ErrInvalidSignature)
	}

	if c.revoked != nil && claims.ID != "" {
		revoked, err := c.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check revocation: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}

	return claims, nil
}

// Revoke добавляет токен в denylist до истечения его срока
func (c *Codec) Revoke(ctx context.Context, claims *Claims) error {
	if c.revoked == nil || claims.ID == "" {
		return nil
	}

	expiresAt := c.now().Add(c.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := c.revoked.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}
