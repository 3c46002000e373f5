package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avolkov/tourneyadmin/internal/common"
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// Claims carries the registered JWT claims plus the identity of the session
// subject.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GenerateToken issues a signed, self-contained session token for identity.
// The token embeds issued-at and a fixed expiry of now+validityDuration.
// Because the token is stateless there is no server-side revocation: role
// changes and deletions take effect only once the token expires, so keep the
// configured lifetime short.
func GenerateToken(identity Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: identity.Name,
		Role:     string(identity.Role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken verifies the signature and expiry of a session token
// and returns the embedded identity. Expired tokens yield
// common.ErrTokenExpired; any other defect (bad signature, wrong algorithm,
// malformed payload, unknown role) yields common.ErrInvalidToken.
func GetIdentityFromToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrInvalidToken
	}

	if !token.Valid {
		return Identity{}, common.ErrInvalidToken
	}

	role := models.Role(claims.Role)
	if claims.Username == "" || !role.Valid() {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{Name: claims.Username, Role: role}, nil
}
