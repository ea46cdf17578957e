package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ems-dash/apiserver/types"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth_token"

// sessionTTL is the fixed lifetime of an issued session token.
const sessionTTL = time.Hour

// Claims are the identity fields carried by a session token.
type Claims struct {
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionConfig fixes the signing secret and cookie attributes for the
// process. It is built once at startup and passed to the handlers rather
// than read from globals.
type SessionConfig struct {
	Secret     []byte
	Production bool
}

// sessionCookie builds the auth cookie. Set and clear must use identical
// attributes or some clients keep the stale cookie; maxAge < 0 clears.
func (c SessionConfig) sessionCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if c.Production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Production,
		SameSite: sameSite,
	}
}

func issueToken(user types.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.UserID,
		UserName: user.UserName,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// parseClaims verifies the token signature and expiry. Callers treat every
// failure the same way, so the error is not differentiated further.
func parseClaims(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireSession rejects requests without a valid session cookie and injects
// the decoded claims into the request context. One verification attempt per
// request; there is no refresh.
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Not authenticated"})
				return
			}

			claims, err := parseClaims(cookie.Value, cfg.Secret)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Invalid or expired token"})
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
