package domain

import (
	"errors"
	"fmt"
	"time"
)

// RideStatus is derived from the presence of an end time, never stored.
type RideStatus int

const (
	RideStatusInProgress RideStatus = iota
	RideStatusCompleted
)

var rideStatusNames = [...]string{"in_progress", "completed"}

func (s RideStatus) String() string {
	if s < 0 || int(s) >= len(rideStatusNames) {
		return fmt.Sprintf("RideStatus(%d)", int(s))
	}
	return rideStatusNames[s]
}

func (s RideStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Coordinate is a flat-plane (lat, lon) pair. No geodesic correction
// anywhere in the system; acceptable for a single-city deployment.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Ride is a single rental from unlock to return. EndTime is nil while
// the ride is in progress.
type Ride struct {
	RideID    string     `json:"ride_id"`
	UserID    string     `json:"user_id"`
	VehicleID string     `json:"vehicle_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Start     Coordinate `json:"start"`
	End       Coordinate `json:"end"`
	Distance  float64    `json:"distance"`
	Fee       float64    `json:"fee"`
}

func NewRide(rideID, userID, vehicleID string, startTime time.Time, start Coordinate) (*Ride, error) {
	if rideID == "" {
		return nil, errors.New("ride_id must be a non-empty string")
	}
	if userID == "" {
		return nil, errors.New("user_id must be a non-empty string")
	}
	if vehicleID == "" {
		return nil, errors.New("vehicle_id must be a non-empty string")
	}
	if startTime.IsZero() {
		return nil, errors.New("start_time is required")
	}
	return &Ride{
		RideID:    rideID,
		UserID:    userID,
		VehicleID: vehicleID,
		StartTime: startTime,
		Start:     start,
	}, nil
}

func (r *Ride) Status() RideStatus {
	if r.EndTime == nil {
		return RideStatusInProgress
	}
	return RideStatusCompleted
}

// Complete finalizes the ride. A ride can only be completed once.
func (r *Ride) Complete(endTime time.Time, end Coordinate, distance, fee float64) error {
	if r.EndTime != nil {
		return errors.New("ride is already completed")
	}
	if endTime.IsZero() {
		return errors.New("end_time is required")
	}
	r.EndTime = &endTime
	r.End = end
	r.Distance = distance
	r.Fee = fee
	return nil
}
