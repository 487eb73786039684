package domain

import (
	"errors"
	"fmt"
	"strings"
)

// VehicleKind discriminates the fleet variants.
type VehicleKind int

const (
	VehicleKindBike VehicleKind = iota
	VehicleKindEBike
	VehicleKindScooter
)

var vehicleKindNames = [...]string{"bike", "ebike", "scooter"}

func (k VehicleKind) String() string {
	if k < 0 || int(k) >= len(vehicleKindNames) {
		return fmt.Sprintf("VehicleKind(%d)", int(k))
	}
	return vehicleKindNames[k]
}

func ParseVehicleKind(name string) (VehicleKind, error) {
	for i, candidate := range vehicleKindNames {
		if candidate == name {
			return VehicleKind(i), nil
		}
	}
	return 0, fmt.Errorf("%s is not a valid VehicleKind", name)
}

func (k VehicleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *VehicleKind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseVehicleKind(string(text))
	return
}

// VehicleStatus tracks where a vehicle is in its operational cycle.
type VehicleStatus int

const (
	VehicleStatusAvailable VehicleStatus = iota
	VehicleStatusInUse
	VehicleStatusAwaitingReportReview
	VehicleStatusDegraded
)

var vehicleStatusNames = [...]string{"available", "in_use", "awaiting_report_review", "degraded"}

func (s VehicleStatus) String() string {
	if s < 0 || int(s) >= len(vehicleStatusNames) {
		return fmt.Sprintf("VehicleStatus(%d)", int(s))
	}
	return vehicleStatusNames[s]
}

func ParseVehicleStatus(name string) (VehicleStatus, error) {
	for i, candidate := range vehicleStatusNames {
		if candidate == name {
			return VehicleStatus(i), nil
		}
	}
	return 0, fmt.Errorf("%s is not a valid VehicleStatus", name)
}

func (s VehicleStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *VehicleStatus) UnmarshalText(text []byte) (err error) {
	*s, err = ParseVehicleStatus(string(text))
	return
}

const (
	// A vehicle is due for a service after this many rides since the
	// previous one.
	maintenanceRideThreshold = 10

	// Electric vehicles below this battery percentage are due regardless
	// of ride count.
	lowBatteryThreshold = 20
)

// Vehicle is a single rentable unit in the fleet. The Kind field selects
// variant-specific behavior: HasChildSeat is only meaningful for bikes,
// BatteryLevel only for ebikes and scooters.
type Vehicle struct {
	VehicleID                string        `json:"vehicle_id"`
	FrameNumber              string        `json:"frame_number"`
	Kind                     VehicleKind   `json:"kind"`
	Status                   VehicleStatus `json:"status"`
	RideCount                int           `json:"ride_count"`
	LastMaintenanceRideCount int           `json:"last_maintenance_ride_count"`
	HasHelmet                bool          `json:"has_helmet"`
	HasChildSeat             bool          `json:"has_child_seat,omitempty"`
	BatteryLevel             int           `json:"battery_level,omitempty"`
}

func newVehicle(kind VehicleKind, vehicleID, frameNumber string, status VehicleStatus) (*Vehicle, error) {
	if strings.TrimSpace(vehicleID) == "" {
		return nil, errors.New("vehicle_id must be a non-empty string")
	}
	return &Vehicle{
		VehicleID:   vehicleID,
		FrameNumber: frameNumber,
		Kind:        kind,
		Status:      status,
	}, nil
}

func NewBike(vehicleID, frameNumber string, hasChildSeat bool, status VehicleStatus) (*Vehicle, error) {
	bike, err := newVehicle(VehicleKindBike, vehicleID, frameNumber, status)
	if err != nil {
		return nil, err
	}
	bike.HasChildSeat = hasChildSeat
	return bike, nil
}

func NewEBike(vehicleID, frameNumber string, batteryLevel int, status VehicleStatus) (*Vehicle, error) {
	ebike, err := newVehicle(VehicleKindEBike, vehicleID, frameNumber, status)
	if err != nil {
		return nil, err
	}
	if batteryLevel < 0 || batteryLevel > 100 {
		return nil, errors.New("battery level must be between 0 and 100")
	}
	ebike.BatteryLevel = batteryLevel
	return ebike, nil
}

func NewScooter(vehicleID, frameNumber string, batteryLevel int, status VehicleStatus) (*Vehicle, error) {
	scooter, err := newVehicle(VehicleKindScooter, vehicleID, frameNumber, status)
	if err != nil {
		return nil, err
	}
	if batteryLevel < 0 || batteryLevel > 100 {
		return nil, errors.New("battery level must be between 0 and 100")
	}
	scooter.BatteryLevel = batteryLevel
	return scooter, nil
}

func (v *Vehicle) IsElectric() bool {
	return v.Kind == VehicleKindEBike || v.Kind == VehicleKindScooter
}

// NeedsMaintenance reports whether the vehicle is due for a service:
// 10+ rides since the last one, a rider-filed report against this
// vehicle, or (electric kinds) a low battery.
func (v *Vehicle) NeedsMaintenance(reports []VehicleReport) bool {
	if v.RideCount-v.LastMaintenanceRideCount >= maintenanceRideThreshold {
		return true
	}
	for _, report := range reports {
		if report.VehicleID == v.VehicleID {
			return true
		}
	}
	if v.IsElectric() && v.BatteryLevel < lowBatteryThreshold {
		return true
	}
	return false
}

// CompleteMaintenance resets the ride counter baseline. It does not touch
// the battery level or any filed reports.
func (v *Vehicle) CompleteMaintenance() {
	v.LastMaintenanceRideCount = v.RideCount
}

// RecordRide bumps the monotonic ride counter.
func (v *Vehicle) RecordRide() {
	v.RideCount++
}
