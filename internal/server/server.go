package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tlvflow/tlvflow/internal/security"
	"github.com/tlvflow/tlvflow/internal/store"
)

// Env carries the process-wide collaborators into the handlers: the
// seeded store, the token issuer, and the logger.
type Env struct {
	store  *store.Store
	tokens *security.TokenIssuer
	log    *zap.Logger
}

type contextKey int

const contextKeyUserID contextKey = iota

// GetUserID returns the authenticated caller's user ID. Only valid on
// routes behind the authentication middleware.
func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(contextKeyUserID).(string)
	if !ok {
		panic("missing required user ID")
	}
	return userID
}

func parseBearerToken(r *http.Request) (bearerToken string, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		err = fmt.Errorf("missing required Authorization header")
		return
	}
	authTokenParts := strings.Split(authHeader, "Bearer ")
	if len(authTokenParts) < 2 {
		err = fmt.Errorf("malformed Authorization header (only Bearer scheme is supported)")
		return
	}
	bearerToken = authTokenParts[1]
	return
}

func (env *Env) authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearerToken, err := parseBearerToken(r)
		if err == nil {
			var userID string
			userID, err = env.tokens.Verify(bearerToken)
			if err == nil {
				r = r.WithContext(context.WithValue(r.Context(), contextKeyUserID, userID))
				next.ServeHTTP(w, r)
				return
			}
		}
		env.log.Info("rejected request", zap.Error(err))
		w.Header().Set("WWW-Authenticate", `Bearer, charset="UTF-8"`)
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func New(st *store.Store, tokens *security.TokenIssuer, log *zap.Logger) *chi.Mux {
	env := &Env{store: st, tokens: tokens, log: log}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(15 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	router.Mount("/stations", NewStationsRouter(env))
	router.Mount("/users", NewUsersRouter(env))
	router.Mount("/auth", NewAuthRouter(env))
	router.Mount("/vehicles", NewVehiclesRouter(env))
	router.Mount("/rides", NewRidesRouter(env))
	router.Mount("/reports", NewReportsRouter(env))

	return router
}
