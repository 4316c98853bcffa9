package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Dosada05/teamfinder/logger"
	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/services"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorResolver turns a bearer token into the request's actor.
type ActorResolver interface {
	ParseToken(tokenString string) (int, error)
	ResolveActor(ctx context.Context, userID int) (models.Actor, error)
}

// Authenticate resolves the Authorization header into an Actor. Requests
// without the header continue as the anonymous actor; a header with a bad
// token is rejected with 401.
func Authenticate(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				writeError(w, http.StatusUnauthorized, "authorization header must be 'Bearer <token>'")
				return
			}

			userID, err := resolver.ParseToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, services.ErrInvalidToken.Error())
				return
			}

			actor, err := resolver.ResolveActor(r.Context(), userID)
			if err != nil {
				if errors.Is(err, services.ErrInvalidToken) {
					writeError(w, http.StatusUnauthorized, err.Error())
					return
				}
				logger.FromContext(r.Context()).Error("failed to resolve actor", zap.Int("user_id", userID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
				return
			}

			ctx := WithActor(r.Context(), actor)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.Int("user_id", actor.UserID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous actors with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ActorFromContext(r.Context()).IsAuthenticated() {
			writeError(w, http.StatusUnauthorized, services.ErrAuthenticationRequired.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the request's actor; the anonymous actor when
// Authenticate did not run or saw no credentials.
func ActorFromContext(ctx context.Context) models.Actor {
	actor, _ := ctx.Value(actorContextKey).(models.Actor)
	return actor
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
