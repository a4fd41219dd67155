package stubserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smazurs/peerpoint/internal/client/models"
)

var (
	errEmailTaken   = errors.New("email already registered")
	errNoSuchDoubt  = errors.New("no such doubt")
	errNoSuchAnswer = errors.New("no such answer")
	errNotYourDoubt = errors.New("not the doubt author")
)

type contextKey string

const userKey contextKey = "user"

// issueToken mints an HS256 session token for a user.
func (s *Server) issueToken(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opts.JWTSecret)
}

// parseToken validates a token and returns the subject user id.
func (s *Server) parseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.opts.JWTSecret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}

// authRequired rejects requests without a valid bearer token and puts the
// resolved user record on the request context.
func (s *Server) authRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		userID, err := s.parseToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, ok := s.store.UserByID(userID)
		if !ok {
			http.Error(w, "Unknown user", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestUser(ctx context.Context) models.UserRecord {
	user, _ := ctx.Value(userKey).(models.UserRecord)
	return user
}
