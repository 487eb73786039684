package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tlvflow/tlvflow/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthRouter(env *Env) *chi.Mux {
	authRouter := chi.NewRouter()
	authRouter.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{"login payload is not valid JSON"},
			})
			return
		}
		defer r.Body.Close()

		// Unknown email and wrong password produce the same response.
		user, err := env.store.Users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil || !user.Login(req.Password) {
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeNotPermitted,
				Details: []string{"invalid email or password"},
			})
			return
		}

		accessToken, err := env.tokens.Issue(user.UserID)
		if err != nil {
			env.log.Error("failed to issue access token", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, tokenResponse{AccessToken: accessToken, TokenType: "bearer"})
	})
	return authRouter
}
