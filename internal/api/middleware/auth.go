package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/auth"
)

// AccessCookie is the cookie carrying the access token.
const AccessCookie = "accessToken"

const userIDKey ctxKey = iota + 1

// AccessTokenParser verifies access tokens.
type AccessTokenParser interface {
	ParseAccess(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid access token. The token is
// read from the accessToken cookie, then from an "Authorization: Bearer" header.
func Authenticate(parser AccessTokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized request")
				return
			}
			userID, err := verify(parser, token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuthenticate identifies the caller when a valid token is present and
// lets the request through anonymously otherwise.
func OptionalAuthenticate(parser AccessTokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := accessToken(r); token != "" {
				if userID, err := verify(parser, token); err == nil {
					r = r.WithContext(WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUserID returns a context carrying the authenticated user.
func WithUserID(ctx context.Context, userID primitive.ObjectID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user, if any.
func UserID(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(userIDKey).(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func verify(parser AccessTokenParser, token string) (primitive.ObjectID, error) {
	claims, err := parser.ParseAccess(token)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return claims.UserID()
}
