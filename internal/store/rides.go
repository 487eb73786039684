package store

import (
	"sync"

	"github.com/tlvflow/tlvflow/internal/domain"
)

// RideStore holds rides keyed by ride ID.
type RideStore struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride
}

func NewRideStore() *RideStore {
	return &RideStore{rides: make(map[string]*domain.Ride)}
}

func (s *RideStore) Add(ride *domain.Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rides[ride.RideID]; ok {
		return ErrConflict
	}
	s.rides[ride.RideID] = ride
	return nil
}

func (s *RideStore) Get(rideID string) (*domain.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ride, ok := s.rides[rideID]
	if !ok {
		return nil, ErrNotFound
	}
	return ride, nil
}
