package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tlvflow/tlvflow/internal/domain"
)

type nearestStationParams struct {
	Lon float64
	Lat float64
}

func parseNearestStationParams(r *http.Request) (params nearestStationParams, errs []string) {
	var err error
	lon := r.URL.Query().Get("lon")
	if lon == "" {
		errs = append(errs, "lon: missing required parameter")
	} else {
		params.Lon, err = strconv.ParseFloat(lon, 64)
		if err != nil || params.Lon < -180 || params.Lon > 180 {
			errs = append(errs, "lon: must be a number between -180 and 180")
		}
	}

	lat := r.URL.Query().Get("lat")
	if lat == "" {
		errs = append(errs, "lat: missing required parameter")
	} else {
		params.Lat, err = strconv.ParseFloat(lat, 64)
		if err != nil || params.Lat < -90 || params.Lat > 90 {
			errs = append(errs, "lat: must be a number between -90 and 90")
		}
	}

	return
}

// StationView is the wire shape of a station, with the derived slot
// fields recomputed at render time.
type StationView struct {
	StationID      int     `json:"station_id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	MaxCapacity    int     `json:"max_capacity"`
	AvailableSlots int     `json:"available_slots"`
	IsFull         bool    `json:"is_full"`
	IsEmpty        bool    `json:"is_empty"`
}

func NewStationView(station *domain.Station) StationView {
	return StationView{
		StationID:      station.StationID,
		Name:           station.Name,
		Lat:            station.Latitude,
		Lon:            station.Longitude,
		MaxCapacity:    station.Capacity,
		AvailableSlots: station.AvailableSlots(),
		IsFull:         station.IsFull(),
		IsEmpty:        station.IsEmpty(),
	}
}

func NewStationsRouter(env *Env) *chi.Mux {
	stationsRouter := chi.NewRouter()
	stationsRouter.Get("/nearest", func(w http.ResponseWriter, r *http.Request) {
		if env.store == nil || env.store.Stations == nil {
			env.log.Error("station store not initialized")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"detail": "Station repository not initialized"})
			return
		}

		params, errs := parseNearestStationParams(r)
		if len(errs) > 0 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, domain.ApiError{
				Type:    domain.ApiErrorTypeBadParam,
				Details: errs,
			})
			return
		}

		nearest := domain.NearestStation(env.store.Stations.All(), params.Lon, params.Lat)
		if nearest == nil {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, map[string]string{"detail": "No stations available"})
			return
		}

		render.JSON(w, r, NewStationView(nearest))
	})
	return stationsRouter
}
