package store

import "errors"

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("already exists")

// Store aggregates every in-memory repository. It is constructed once in
// main, seeded from the CSV feeds, and handed to the server; there is no
// ambient global state and nothing survives process shutdown.
type Store struct {
	Vehicles *VehicleStore
	Stations *StationStore
	Users    *UserStore
	Rides    *RideStore
	Reports  *ReportStore
}

func New() *Store {
	return &Store{
		Vehicles: NewVehicleStore(),
		Stations: NewStationStore(),
		Users:    NewUserStore(),
		Rides:    NewRideStore(),
		Reports:  NewReportStore(),
	}
}
