package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tlvflow/tlvflow/internal/domain"
	"github.com/tlvflow/tlvflow/internal/store"
)

// RideView adds the derived status to the ride wire shape.
type RideView struct {
	*domain.Ride
	Status domain.RideStatus `json:"status"`
}

func NewRideView(ride *domain.Ride) RideView {
	return RideView{Ride: ride, Status: ride.Status()}
}

type startRideRequest struct {
	VehicleID string  `json:"vehicle_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

type endRideRequest struct {
	RideID   string  `json:"ride_id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance"`
	Fee      float64 `json:"fee"`
}

// caller resolves the authenticated principal against the user store.
func (env *Env) caller(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, err := env.store.Users.Get(GetUserID(r))
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

func NewRidesRouter(env *Env) *chi.Mux {
	ridesRouter := chi.NewRouter()
	ridesRouter.Use(env.authentication)

	ridesRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		user, ok := env.caller(w, r)
		if !ok {
			return
		}
		history := user.RideHistory()
		rides := make([]RideView, 0, len(history))
		for _, ride := range history {
			rides = append(rides, NewRideView(ride))
		}
		render.JSON(w, r, map[string][]RideView{"rides": rides})
	})

	ridesRouter.Post("/start", func(w http.ResponseWriter, r *http.Request) {
		user, ok := env.caller(w, r)
		if !ok {
			return
		}

		var req startRideRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{"ride payload is not valid JSON"},
			})
			return
		}
		defer r.Body.Close()

		vehicle, err := env.store.Vehicles.Get(req.VehicleID)
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if vehicle.Status != domain.VehicleStatusAvailable {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeConflict,
				Details: []string{"vehicle is not available"},
			})
			return
		}

		if !user.CanRent(vehicle, time.Now()) {
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeNotPermitted,
				Details: []string{"user is not permitted to rent this vehicle"},
			})
			return
		}

		rideID := strings.ReplaceAll(uuid.NewString(), "-", "")
		ride, err := domain.NewRide(rideID, user.UserID, vehicle.VehicleID, time.Now().UTC(),
			domain.Coordinate{Lat: req.Lat, Lon: req.Lon})
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{err.Error()},
			})
			return
		}

		if err := user.StartRide(ride); err != nil {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeConflict,
				Details: []string{err.Error()},
			})
			return
		}

		if err := env.store.Rides.Add(ride); err != nil {
			env.log.Error("failed to store ride", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		vehicle.Status = domain.VehicleStatusInUse

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, NewRideView(ride))
	})

	ridesRouter.Post("/end", func(w http.ResponseWriter, r *http.Request) {
		user, ok := env.caller(w, r)
		if !ok {
			return
		}

		var req endRideRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{"ride payload is not valid JSON"},
			})
			return
		}
		defer r.Body.Close()

		ride, err := env.store.Rides.Get(req.RideID)
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if err := user.EndRide(ride); err != nil {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeConflict,
				Details: []string{err.Error()},
			})
			return
		}

		if err := ride.Complete(time.Now().UTC(), domain.Coordinate{Lat: req.Lat, Lon: req.Lon}, req.Distance, req.Fee); err != nil {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeConflict,
				Details: []string{err.Error()},
			})
			return
		}

		if vehicle, err := env.store.Vehicles.Get(ride.VehicleID); err == nil {
			vehicle.RecordRide()
			vehicle.Status = domain.VehicleStatusAvailable
		}

		render.JSON(w, r, NewRideView(ride))
	})

	return ridesRouter
}
