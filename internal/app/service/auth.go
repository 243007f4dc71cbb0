// Visitor identity: anonymous visitors get a signed token cookie carrying
// a generated user id. The id only attributes created links; no
// authorization decisions are made from it.
package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AuthIface defines the visitor-token operations used by middleware.
type AuthIface interface {
	BuildTokenString() (string, string, error)
	ParseClaims(c *http.Cookie) (*Claims, error)
	ParseRawToken(tokenString string) (*Claims, error)
}

// Claims embeds the registered JWT claims and adds the visitor id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenExp defines the expiration time of the visitor token (1 year).
const TokenExp = time.Hour * 24 * 365

// Auth builds and parses visitor tokens.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// BuildTokenString generates a fresh visitor id and returns the signed
// token along with the id.
func (a *Auth) BuildTokenString() (string, string, error) {
	userID := uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", "", err
	}

	return tokenString, userID, nil
}

// ParseClaims parses the token from the provided cookie and returns the
// claims embedded within it.
func (a *Auth) ParseClaims(c *http.Cookie) (*Claims, error) {
	return a.ParseRawToken(c.Value)
}

func (a *Auth) ParseRawToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token or claims")
	}

	return claims, nil
}
