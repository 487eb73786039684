package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tlvflow/tlvflow/internal/domain"
)

// Vehicle feed columns. frame_number, has_child_seat and battery_level
// are optional.
const (
	colVehicleID   = "vehicle_id"
	colStationID   = "station_id"
	colFrameNumber = "frame_number"
	colVehicleType = "vehicle_type"
	colStatus      = "status"
	colRidesSince  = "rides_since_last_treated"
	colChildSeat   = "has_child_seat"
	colBattery     = "battery_level"
)

// Feed vehicle_type values map onto the internal kinds.
var vehicleTypeMap = map[string]domain.VehicleKind{
	"bicycle":          domain.VehicleKindBike,
	"electric_bicycle": domain.VehicleKindEBike,
	"scooter":          domain.VehicleKindScooter,
}

// VehicleRow pairs a parsed vehicle with the station assignment from the
// feed. StationID is -1 when the feed row carries none.
type VehicleRow struct {
	Vehicle   *domain.Vehicle
	StationID int
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func parseIntDefault(value string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	return strconv.Atoi(trimmed)
}

type csvRow struct {
	index  map[string]int
	fields []string
}

func (r csvRow) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// openFeed opens a CSV feed and reads its header. A missing file is not
// an error: it yields a nil reader and the caller returns an empty set.
func openFeed(path string, log *zap.Logger) (*csv.Reader, *os.File, map[string]int, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("csv feed not found", zap.String("path", path))
		return nil, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		file.Close()
		return nil, nil, nil, nil
	}
	if err != nil {
		file.Close()
		return nil, nil, nil, err
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return reader, file, index, nil
}

// LoadVehiclesCSV reads the vehicle feed. Malformed rows are logged and
// skipped; a missing file yields an empty result. Battery levels are
// clamped to [0,100] and a missing frame number defaults to
// "FRAME-{vehicle_id}".
func LoadVehiclesCSV(path string, log *zap.Logger) ([]VehicleRow, error) {
	reader, file, index, err := openFeed(path, log)
	if err != nil || reader == nil {
		return nil, err
	}
	defer file.Close()

	var rows []VehicleRow
	for rowNum := 2; ; rowNum++ { // 2 = header + 1
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("unreadable vehicle row, skipping", zap.Int("row", rowNum), zap.Error(err))
			continue
		}
		row := csvRow{index: index, fields: fields}

		vehicle, stationID, err := parseVehicleRow(row)
		if err != nil {
			log.Warn("invalid vehicle row, skipping", zap.Int("row", rowNum), zap.Error(err))
			continue
		}
		rows = append(rows, VehicleRow{Vehicle: vehicle, StationID: stationID})
	}

	log.Info("loaded vehicles feed", zap.String("path", path), zap.Int("count", len(rows)))
	return rows, nil
}

func parseVehicleRow(row csvRow) (*domain.Vehicle, int, error) {
	vehicleID := row.get(colVehicleID)
	if vehicleID == "" {
		return nil, 0, errors.New("missing vehicle_id")
	}

	frameNumber := row.get(colFrameNumber)
	if frameNumber == "" {
		frameNumber = "FRAME-" + vehicleID
	}

	kind, ok := vehicleTypeMap[strings.ToLower(row.get(colVehicleType))]
	if !ok {
		return nil, 0, fmt.Errorf("invalid vehicle_type %q", row.get(colVehicleType))
	}

	statusName := row.get(colStatus)
	if statusName == "" {
		statusName = "available"
	}
	status, err := domain.ParseVehicleStatus(strings.ToLower(statusName))
	if err != nil {
		return nil, 0, err
	}

	ridesSince, err := parseIntDefault(row.get(colRidesSince), 0)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid rides_since_last_treated: %w", err)
	}

	var vehicle *domain.Vehicle
	switch kind {
	case domain.VehicleKindBike:
		vehicle, err = domain.NewBike(vehicleID, frameNumber, parseBool(row.get(colChildSeat)), status)
	default:
		var battery int
		battery, err = parseIntDefault(row.get(colBattery), 100)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid battery_level: %w", err)
		}
		battery = min(100, max(0, battery))
		if kind == domain.VehicleKindEBike {
			vehicle, err = domain.NewEBike(vehicleID, frameNumber, battery, status)
		} else {
			vehicle, err = domain.NewScooter(vehicleID, frameNumber, battery, status)
		}
	}
	if err != nil {
		return nil, 0, err
	}
	vehicle.RideCount = ridesSince

	stationID := -1
	if raw := row.get(colStationID); raw != "" {
		stationID, err = strconv.Atoi(raw)
		if err != nil {
			stationID = -1
		}
	}
	return vehicle, stationID, nil
}

// LoadStationsCSV reads the station feed (station_id,name,lat,lon,
// max_capacity). Any missing or invalid field skips the row.
func LoadStationsCSV(path string, log *zap.Logger) ([]*domain.Station, error) {
	reader, file, index, err := openFeed(path, log)
	if err != nil || reader == nil {
		return nil, err
	}
	defer file.Close()

	var stations []*domain.Station
	for rowNum := 2; ; rowNum++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("unreadable station row, skipping", zap.Int("row", rowNum), zap.Error(err))
			continue
		}
		row := csvRow{index: index, fields: fields}

		station, err := parseStationRow(row)
		if err != nil {
			log.Warn("invalid station row, skipping", zap.Int("row", rowNum), zap.Error(err))
			continue
		}
		stations = append(stations, station)
	}

	log.Info("loaded stations feed", zap.String("path", path), zap.Int("count", len(stations)))
	return stations, nil
}

func parseStationRow(row csvRow) (*domain.Station, error) {
	stationID, err := strconv.Atoi(row.get("station_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid station_id: %w", err)
	}
	lat, err := strconv.ParseFloat(row.get("lat"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(row.get("lon"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lon: %w", err)
	}
	capacity, err := strconv.Atoi(row.get("max_capacity"))
	if err != nil {
		return nil, fmt.Errorf("invalid max_capacity: %w", err)
	}
	return domain.NewStation(stationID, row.get("name"), lat, lon, capacity)
}

// SeedFromCSV loads both feeds into the store and docks each vehicle at
// its assigned station. Full stations and unknown station IDs are logged
// and skipped. Returns the loaded vehicle and station counts.
func (s *Store) SeedFromCSV(vehiclesPath, stationsPath string, log *zap.Logger) (int, int, error) {
	stations, err := LoadStationsCSV(stationsPath, log)
	if err != nil {
		return 0, 0, err
	}
	for _, station := range stations {
		s.Stations.Add(station)
	}

	rows, err := LoadVehiclesCSV(vehiclesPath, log)
	if err != nil {
		return 0, len(stations), err
	}
	for _, row := range rows {
		s.Vehicles.Add(row.Vehicle)
		if row.StationID < 0 {
			continue
		}
		station, err := s.Stations.Get(row.StationID)
		if err != nil {
			log.Warn("vehicle assigned to unknown station",
				zap.String("vehicle_id", row.Vehicle.VehicleID), zap.Int("station_id", row.StationID))
			continue
		}
		if err := station.Dock(row.Vehicle); err != nil {
			log.Warn("could not dock vehicle at station",
				zap.String("vehicle_id", row.Vehicle.VehicleID), zap.Int("station_id", row.StationID),
				zap.Error(err))
		}
	}
	return len(rows), len(stations), nil
}
