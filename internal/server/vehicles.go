package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tlvflow/tlvflow/internal/domain"
)

// VehicleView adds the policy-computed maintenance flag to the vehicle
// wire shape.
type VehicleView struct {
	*domain.Vehicle
	NeedsMaintenance bool `json:"needs_maintenance"`
}

func NewVehiclesRouter(env *Env) *chi.Mux {
	vehiclesRouter := chi.NewRouter()
	vehiclesRouter.Get("/{vid}", func(w http.ResponseWriter, r *http.Request) {
		vid := chi.URLParam(r, "vid")
		vehicle, err := env.store.Vehicles.Get(vid)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		reports := env.store.Reports.ForVehicle(vid)
		render.JSON(w, r, VehicleView{
			Vehicle:          vehicle,
			NeedsMaintenance: vehicle.NeedsMaintenance(reports),
		})
	})
	return vehiclesRouter
}
