package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tlvflow/tlvflow/internal/domain"
)

type reportRequest struct {
	RideID      string `json:"ride_id"`
	VehicleID   string `json:"vehicle_id"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

func NewReportsRouter(env *Env) *chi.Mux {
	reportsRouter := chi.NewRouter()
	reportsRouter.Use(env.authentication)

	reportsRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		user, ok := env.caller(w, r)
		if !ok {
			return
		}

		var req reportRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{"report payload is not valid JSON"},
			})
			return
		}
		defer r.Body.Close()

		report, err := user.ReportVehicleIssue(req.RideID, req.VehicleID, req.ImageURL, req.Description)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: []string{err.Error()},
			})
			return
		}

		env.store.Reports.Add(report)
		// A reported vehicle is pulled from circulation until reviewed.
		if vehicle, err := env.store.Vehicles.Get(report.VehicleID); err == nil {
			vehicle.Status = domain.VehicleStatusAwaitingReportReview
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, report)
	})

	return reportsRouter
}
