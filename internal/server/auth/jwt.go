package auth

import (
	"time"

	"github.com/dmitrijs2005/keepsake/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims plus the verified role.
type Claims struct {
	jwt.RegisteredClaims
	Role string
}

// JWTIssuer issues HS256-signed session tokens carrying the verified role.
type JWTIssuer struct {
	secretKey        []byte
	validityDuration time.Duration
}

// NewJWTIssuer constructs an issuer signing with the given HMAC secret.
func NewJWTIssuer(secretKey []byte, validityDuration time.Duration) *JWTIssuer {
	return &JWTIssuer{secretKey: secretKey, validityDuration: validityDuration}
}

func (i *JWTIssuer) Issue(role Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.validityDuration)),
		},
		Role: string(role),
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (i *JWTIssuer) Validate(tokenString string) (Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return "", common.ErrInvalidToken
	}

	return role, nil
}
