package domain

import (
	"errors"
	"strings"
)

// Capacity and docking rule violations.
var (
	ErrStationFull      = errors.New("station is full")
	ErrVehicleNotDocked = errors.New("vehicle is not in this station")
)

// Station is a physical dock that holds vehicles. The docked sequence
// never exceeds Capacity; the derived slot counts are always recomputed
// from it, never stored.
type Station struct {
	StationID int
	Name      string
	Latitude  float64
	Longitude float64
	Capacity  int

	docked []*Vehicle
}

func NewStation(stationID int, name string, latitude, longitude float64, capacity int) (*Station, error) {
	if stationID < 0 {
		return nil, errors.New("station_id must be a non-negative integer")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name must be a non-empty string")
	}
	if latitude < -90 || latitude > 90 {
		return nil, errors.New("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return nil, errors.New("longitude must be between -180 and 180")
	}
	if capacity <= 0 {
		return nil, errors.New("capacity must be a positive integer")
	}
	return &Station{
		StationID: stationID,
		Name:      name,
		Latitude:  latitude,
		Longitude: longitude,
		Capacity:  capacity,
	}, nil
}

func (s *Station) AvailableSlots() int {
	return s.Capacity - len(s.docked)
}

func (s *Station) IsFull() bool {
	return s.AvailableSlots() == 0
}

func (s *Station) IsEmpty() bool {
	return len(s.docked) == 0
}

// DockedVehicles returns a snapshot copy of the docked sequence.
func (s *Station) DockedVehicles() []*Vehicle {
	docked := make([]*Vehicle, len(s.docked))
	copy(docked, s.docked)
	return docked
}

func (s *Station) Dock(vehicle *Vehicle) error {
	if s.IsFull() {
		return ErrStationFull
	}
	s.docked = append(s.docked, vehicle)
	return nil
}

func (s *Station) Undock(vehicle *Vehicle) error {
	for i, docked := range s.docked {
		if docked == vehicle {
			s.docked = append(s.docked[:i], s.docked[i+1:]...)
			return nil
		}
	}
	return ErrVehicleNotDocked
}

// NearestStation picks the station minimizing squared Euclidean distance
// in (lon, lat) space. Flat-plane approximation, fine for a single city.
// Returns nil on an empty collection; the first minimum encountered wins
// ties.
func NearestStation(stations []*Station, lon, lat float64) *Station {
	var nearest *Station
	var nearestDistSq float64
	for _, station := range stations {
		dx := station.Longitude - lon
		dy := station.Latitude - lat
		distSq := dx*dx + dy*dy
		if nearest == nil || distSq < nearestDistSq {
			nearest = station
			nearestDistSq = distSq
		}
	}
	return nearest
}
