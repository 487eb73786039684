package store

import (
	"sort"
	"sync"

	"github.com/tlvflow/tlvflow/internal/domain"
)

// StationStore holds stations keyed by station ID. All returns stations
// in ascending ID order so that iteration-order tie-breaks downstream
// (nearest-station search) are deterministic.
type StationStore struct {
	mu       sync.RWMutex
	stations map[int]*domain.Station
}

func NewStationStore() *StationStore {
	return &StationStore{stations: make(map[int]*domain.Station)}
}

func (s *StationStore) Add(station *domain.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations[station.StationID] = station
}

func (s *StationStore) Get(stationID int) (*domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	station, ok := s.stations[stationID]
	if !ok {
		return nil, ErrNotFound
	}
	return station, nil
}

func (s *StationStore) All() []*domain.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stations := make([]*domain.Station, 0, len(s.stations))
	for _, station := range s.stations {
		stations = append(stations, station)
	}
	sort.Slice(stations, func(i, j int) bool {
		return stations[i].StationID < stations[j].StationID
	})
	return stations
}

func (s *StationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stations)
}
