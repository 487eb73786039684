package domain

import "errors"

// VehicleReport is a rider-filed issue against a vehicle. A report
// against a vehicle makes it maintenance-due until the report is
// resolved out of band.
type VehicleReport struct {
	RideID      string `json:"ride_id"`
	VehicleID   string `json:"vehicle_id"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

func NewVehicleReport(rideID, vehicleID, imageURL, description string) (VehicleReport, error) {
	if rideID == "" {
		return VehicleReport{}, errors.New("ride_id is required")
	}
	if vehicleID == "" {
		return VehicleReport{}, errors.New("vehicle_id is required")
	}
	return VehicleReport{
		RideID:      rideID,
		VehicleID:   vehicleID,
		ImageURL:    imageURL,
		Description: description,
	}, nil
}
