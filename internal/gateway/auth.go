package gateway

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
)

const subjectClaim = "sub"

// Authenticator validates the bearer credential presented at
// connection handshake and extracts the bound user identity.
type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey []byte) *Authenticator {
	return &Authenticator{signingKey: signingKey}
}

// UserIdFromToken verifies the token's signature and expiry and
// returns the embedded user id. Any failure rejects the handshake.
func (a *Authenticator) UserIdFromToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("no token present")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userId, ok := claims[subjectClaim].(string)
	if !ok || userId == "" {
		return "", fmt.Errorf("missing subject claim")
	}

	return userId, nil
}

// BearerToken extracts the handshake credential from the request: a
// "token" query field, or an Authorization header of the form
// "Bearer <token>".
func BearerToken(r *http.Request) (string, bool) {
	if token := r.URL.Query().Get("token"); token != "" {
		return token, true
	}

	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok && after != "" {
		return after, true
	}

	return "", false
}
