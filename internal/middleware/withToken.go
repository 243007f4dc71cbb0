package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/avasilev/go-shortlinks/internal/app/service"
)

// ContextKey is a custom type used for keys in the context.
// It helps prevent collisions in context keys.
type ContextKey string

// UserIDKey is the key used to store and retrieve the visitor ID from the context.
const UserIDKey ContextKey = "userID"

// InjectUserID adds the visitor ID to the request context, making it
// accessible for downstream handlers.
func InjectUserID(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

// WithVisitorToken checks for a valid visitor token in the request's
// cookies. A missing or unparsable token gets replaced with a freshly
// issued one. The visitor ID from the token claims is injected into the
// request context.
func WithVisitorToken(auth service.AuthIface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := ""

			cookie, cErr := r.Cookie("token")
			if cErr == nil {
				claims, err := auth.ParseClaims(cookie)
				if err == nil {
					userID = claims.UserID
				}
			}

			// Issue a fresh token when the cookie is missing or invalid.
			if userID == "" {
				tokenString, generatedID, err := auth.BuildTokenString()
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     "token",
					Value:    tokenString,
					Expires:  time.Now().Add(service.TokenExp),
					HttpOnly: true,
					Path:     "/",
				})
				userID = generatedID
			}

			next.ServeHTTP(w, InjectUserID(r, userID))
		})
	}
}
