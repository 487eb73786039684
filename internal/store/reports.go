package store

import (
	"sync"

	"github.com/tlvflow/tlvflow/internal/domain"
)

// ReportStore is the append-only log of rider-filed vehicle reports.
type ReportStore struct {
	mu      sync.RWMutex
	reports []domain.VehicleReport
}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

func (s *ReportStore) Add(report domain.VehicleReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
}

func (s *ReportStore) All() []domain.VehicleReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := make([]domain.VehicleReport, len(s.reports))
	copy(reports, s.reports)
	return reports
}

// ForVehicle returns the reports filed against one vehicle.
func (s *ReportStore) ForVehicle(vehicleID string) []domain.VehicleReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.VehicleReport
	for _, report := range s.reports {
		if report.VehicleID == vehicleID {
			matched = append(matched, report)
		}
	}
	return matched
}
