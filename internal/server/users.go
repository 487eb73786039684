package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tlvflow/tlvflow/internal/domain"
	"github.com/tlvflow/tlvflow/internal/store"
)

type registerRequest struct {
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	PaymentMethodID string     `json:"payment_method_id"`
	Account         string     `json:"account"`
	LicenseNumber   string     `json:"license_number,omitempty"`
	LicenseExpiry   *time.Time `json:"license_expiry,omitempty"`
}

// UserView is the public wire shape of a user. The password hash never
// leaves the process.
type UserView struct {
	UserID          string             `json:"user_id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	PaymentMethodID string             `json:"payment_method_id"`
	Account         domain.AccountType `json:"account"`
	LicenseNumber   string             `json:"license_number,omitempty"`
}

func NewUserView(user *domain.User) UserView {
	return UserView{
		UserID:          user.UserID,
		Name:            user.Name,
		Email:           user.Email,
		PaymentMethodID: user.PaymentMethodID,
		Account:         user.Account,
		LicenseNumber:   user.LicenseNumber,
	}
}

func NewUsersRouter(env *Env) *chi.Mux {
	usersRouter := chi.NewRouter()
	usersRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			env.log.Info("malformed register payload", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{"register payload is not valid JSON"},
			})
			return
		}
		defer r.Body.Close()

		account := domain.AccountTypeAmateur
		if req.Account != "" {
			var err error
			account, err = domain.ParseAccountType(req.Account)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, domain.ApiError{
					Type:    domain.ApiErrorTypeBadParam,
					Details: []string{"account: must be one of amateur, pro"},
				})
				return
			}
		}

		params := domain.RegisterParams{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			PaymentMethodID: req.PaymentMethodID,
			Account:         account,
			LicenseNumber:   req.LicenseNumber,
		}
		if req.LicenseExpiry != nil {
			params.LicenseExpiry = *req.LicenseExpiry
		}

		user, err := domain.Register(params)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{err.Error()},
			})
			return
		}

		if err := env.store.Users.Add(user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				w.WriteHeader(http.StatusConflict)
				render.JSON(w, r, domain.ApiError{
					Type:    domain.ApiErrorTypeAlreadyRegistered,
					Details: []string{"email: an account with this email already exists"},
				})
				return
			}
			env.log.Error("failed to store user", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, NewUserView(user))
	})
	return usersRouter
}
