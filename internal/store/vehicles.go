package store

import (
	"sync"

	"github.com/tlvflow/tlvflow/internal/domain"
)

// VehicleStore holds the fleet keyed by vehicle ID. Adding an existing
// ID replaces the entry (last write wins).
type VehicleStore struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle
}

func NewVehicleStore() *VehicleStore {
	return &VehicleStore{vehicles: make(map[string]*domain.Vehicle)}
}

func (s *VehicleStore) Add(vehicle *domain.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[vehicle.VehicleID] = vehicle
}

func (s *VehicleStore) Get(vehicleID string) (*domain.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vehicle, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, ErrNotFound
	}
	return vehicle, nil
}

func (s *VehicleStore) All() []*domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vehicles := make([]*domain.Vehicle, 0, len(s.vehicles))
	for _, vehicle := range s.vehicles {
		vehicles = append(vehicles, vehicle)
	}
	return vehicles
}

func (s *VehicleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles)
}
