package store

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/tlvflow/tlvflow/internal/domain"
)

func writeFeed(dir, name, contents string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(contents), 0o644)).To(Succeed())
	return path
}

var _ = Describe("LoadVehiclesCSV", func() {
	var dir string
	log := zap.NewNop()

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("returns an empty result for a missing file", func() {
		rows, err := LoadVehiclesCSV(filepath.Join(dir, "nope.csv"), log)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(BeEmpty())
	})

	It("loads exactly the valid rows and skips the rest", func() {
		path := writeFeed(dir, "vehicles.csv", ""+
			"vehicle_id,station_id,vehicle_type,status,rides_since_last_treated,last_treated_date\n"+
			"v-1,1,bicycle,available,3,2026-01-01\n"+
			",1,bicycle,available,3,2026-01-01\n"+ // missing vehicle_id
			"v-2,1,unicycle,available,3,2026-01-01\n"+ // invalid type
			"v-3,1,scooter,parked,3,2026-01-01\n"+ // invalid status
			"v-4,1,electric_bicycle,in_use,12,2026-01-01\n")

		rows, err := LoadVehiclesCSV(path, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))

		Expect(rows[0].Vehicle.VehicleID).To(Equal("v-1"))
		Expect(rows[0].Vehicle.Kind).To(Equal(domain.VehicleKindBike))
		Expect(rows[0].Vehicle.RideCount).To(Equal(3))
		Expect(rows[0].Vehicle.LastMaintenanceRideCount).To(Equal(0))
		Expect(rows[0].StationID).To(Equal(1))

		Expect(rows[1].Vehicle.Kind).To(Equal(domain.VehicleKindEBike))
		Expect(rows[1].Vehicle.Status).To(Equal(domain.VehicleStatusInUse))
	})

	It("defaults the frame number and clamps the battery level", func() {
		path := writeFeed(dir, "vehicles.csv", ""+
			"vehicle_id,station_id,vehicle_type,status,rides_since_last_treated,last_treated_date,frame_number,battery_level\n"+
			"v-1,1,scooter,available,0,2026-01-01,,250\n"+
			"v-2,1,electric_bicycle,available,0,2026-01-01,FR-77,-5\n"+
			"v-3,1,electric_bicycle,available,0,2026-01-01,,\n")

		rows, err := LoadVehiclesCSV(path, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))

		Expect(rows[0].Vehicle.FrameNumber).To(Equal("FRAME-v-1"))
		Expect(rows[0].Vehicle.BatteryLevel).To(Equal(100))
		Expect(rows[1].Vehicle.FrameNumber).To(Equal("FR-77"))
		Expect(rows[1].Vehicle.BatteryLevel).To(Equal(0))
		Expect(rows[2].Vehicle.BatteryLevel).To(Equal(100))
	})

	It("defaults a blank status to available and parses the child seat flag", func() {
		path := writeFeed(dir, "vehicles.csv", ""+
			"vehicle_id,station_id,vehicle_type,status,rides_since_last_treated,last_treated_date,has_child_seat\n"+
			"v-1,,bicycle,,0,,yes\n")

		rows, err := LoadVehiclesCSV(path, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].Vehicle.Status).To(Equal(domain.VehicleStatusAvailable))
		Expect(rows[0].Vehicle.HasChildSeat).To(BeTrue())
		Expect(rows[0].StationID).To(Equal(-1))
	})
})

var _ = Describe("LoadStationsCSV", func() {
	var dir string
	log := zap.NewNop()

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("returns an empty result for a missing file", func() {
		stations, err := LoadStationsCSV(filepath.Join(dir, "nope.csv"), log)
		Expect(err).NotTo(HaveOccurred())
		Expect(stations).To(BeEmpty())
	})

	It("loads exactly the valid rows and skips the rest", func() {
		path := writeFeed(dir, "stations.csv", ""+
			"station_id,name,lat,lon,max_capacity\n"+
			"1,Rothschild,32.0636,34.7749,20\n"+
			"x,Broken,32.0,34.7,20\n"+ // bad ID
			"2,,32.0,34.7,20\n"+ // blank name
			"3,NoCap,32.0,34.7,zero\n"+ // bad capacity
			"4,OutOfRange,99.0,34.7,20\n"+ // bad latitude
			"5,Dizengoff,32.0777,34.7746,15\n")

		stations, err := LoadStationsCSV(path, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(stations).To(HaveLen(2))
		Expect(stations[0].StationID).To(Equal(1))
		Expect(stations[1].StationID).To(Equal(5))
		Expect(stations[1].Capacity).To(Equal(15))
	})
})

var _ = Describe("SeedFromCSV", func() {
	var dir string
	log := zap.NewNop()

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("loads both feeds and docks vehicles at their stations", func() {
		vehiclesPath := writeFeed(dir, "vehicles.csv", ""+
			"vehicle_id,station_id,vehicle_type,status,rides_since_last_treated,last_treated_date\n"+
			"v-1,1,bicycle,available,0,\n"+
			"v-2,1,scooter,available,0,\n"+
			"v-3,9,bicycle,available,0,\n") // unknown station
		stationsPath := writeFeed(dir, "stations.csv", ""+
			"station_id,name,lat,lon,max_capacity\n"+
			"1,Rothschild,32.0636,34.7749,2\n")

		st := New()
		nVehicles, nStations, err := st.SeedFromCSV(vehiclesPath, stationsPath, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(nVehicles).To(Equal(3))
		Expect(nStations).To(Equal(1))

		station, err := st.Stations.Get(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(station.DockedVehicles()).To(HaveLen(2))
		Expect(station.IsFull()).To(BeTrue())
		Expect(st.Vehicles.Len()).To(Equal(3))
	})

	It("skips docking beyond station capacity", func() {
		vehiclesPath := writeFeed(dir, "vehicles.csv", ""+
			"vehicle_id,station_id,vehicle_type,status,rides_since_last_treated,last_treated_date\n"+
			"v-1,1,bicycle,available,0,\n"+
			"v-2,1,bicycle,available,0,\n")
		stationsPath := writeFeed(dir, "stations.csv", ""+
			"station_id,name,lat,lon,max_capacity\n"+
			"1,Tiny,32.0,34.7,1\n")

		st := New()
		_, _, err := st.SeedFromCSV(vehiclesPath, stationsPath, log)
		Expect(err).NotTo(HaveOccurred())

		station, err := st.Stations.Get(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(station.DockedVehicles()).To(HaveLen(1))
	})

	It("tolerates both feeds missing", func() {
		st := New()
		nVehicles, nStations, err := st.SeedFromCSV(
			filepath.Join(dir, "nope-vehicles.csv"), filepath.Join(dir, "nope-stations.csv"), log)
		Expect(err).NotTo(HaveOccurred())
		Expect(nVehicles).To(BeZero())
		Expect(nStations).To(BeZero())
	})
})
