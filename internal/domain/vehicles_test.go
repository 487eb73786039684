package domain

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Vehicle construction", func() {
	It("rejects an empty vehicle ID", func() {
		_, err := NewBike("  ", "FRAME-1", false, VehicleStatusAvailable)
		Expect(err).To(HaveOccurred())
	})

	It("rejects battery levels outside [0, 100]", func() {
		_, err := NewEBike("eb-1", "FRAME-1", -1, VehicleStatusAvailable)
		Expect(err).To(HaveOccurred())

		_, err = NewScooter("sc-1", "FRAME-1", 101, VehicleStatusAvailable)
		Expect(err).To(HaveOccurred())
	})

	It("accepts boundary battery levels", func() {
		_, err := NewEBike("eb-1", "FRAME-1", 0, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())

		_, err = NewScooter("sc-1", "FRAME-1", 100, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())
	})

	It("classifies ebikes and scooters as electric, bikes as not", func() {
		bike, err := NewBike("b-1", "FRAME-1", true, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())
		Expect(bike.IsElectric()).To(BeFalse())

		ebike, err := NewEBike("eb-1", "FRAME-1", 80, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())
		Expect(ebike.IsElectric()).To(BeTrue())

		scooter, err := NewScooter("sc-1", "FRAME-1", 80, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())
		Expect(scooter.IsElectric()).To(BeTrue())
	})
})

var _ = Describe("Vehicle maintenance policy", func() {
	newTestBike := func() *Vehicle {
		bike, err := NewBike("b-1", "FRAME-1", false, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())
		return bike
	}

	It("is not due for a fresh vehicle", func() {
		Expect(newTestBike().NeedsMaintenance(nil)).To(BeFalse())
	})

	It("is due at 10 rides since the last service, not at 9", func() {
		bike := newTestBike()
		bike.RideCount = 9
		Expect(bike.NeedsMaintenance(nil)).To(BeFalse())

		bike.RecordRide()
		Expect(bike.NeedsMaintenance(nil)).To(BeTrue())
	})

	It("counts rides relative to the last service baseline", func() {
		bike := newTestBike()
		bike.RideCount = 25
		bike.LastMaintenanceRideCount = 20
		Expect(bike.NeedsMaintenance(nil)).To(BeFalse())

		bike.RideCount = 30
		Expect(bike.NeedsMaintenance(nil)).To(BeTrue())
	})

	It("is due when a report references this vehicle", func() {
		bike := newTestBike()
		report, err := NewVehicleReport("r-1", "b-1", "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(bike.NeedsMaintenance([]VehicleReport{report})).To(BeTrue())
	})

	It("ignores reports against other vehicles", func() {
		bike := newTestBike()
		report, err := NewVehicleReport("r-1", "b-2", "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(bike.NeedsMaintenance([]VehicleReport{report})).To(BeFalse())
	})

	It("is due for electric vehicles below 20% battery", func() {
		ebike, err := NewEBike("eb-1", "FRAME-1", 19, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())
		Expect(ebike.NeedsMaintenance(nil)).To(BeTrue())

		ebike.BatteryLevel = 20
		Expect(ebike.NeedsMaintenance(nil)).To(BeFalse())
	})

	It("never battery-flags a plain bike", func() {
		bike := newTestBike()
		bike.BatteryLevel = 0
		Expect(bike.NeedsMaintenance(nil)).To(BeFalse())
	})

	It("resets the baseline on completed maintenance", func() {
		bike := newTestBike()
		bike.RideCount = 15
		Expect(bike.NeedsMaintenance(nil)).To(BeTrue())

		bike.CompleteMaintenance()
		Expect(bike.NeedsMaintenance(nil)).To(BeFalse())
		Expect(bike.LastMaintenanceRideCount).To(Equal(15))
	})

	It("completes maintenance idempotently", func() {
		bike := newTestBike()
		bike.RideCount = 12
		bike.CompleteMaintenance()
		first := bike.NeedsMaintenance(nil)
		bike.CompleteMaintenance()
		Expect(bike.NeedsMaintenance(nil)).To(Equal(first))
	})

	It("does not clear low-battery due on completed maintenance", func() {
		scooter, err := NewScooter("sc-1", "FRAME-1", 5, VehicleStatusAvailable)
		Expect(err).NotTo(HaveOccurred())
		scooter.CompleteMaintenance()
		Expect(scooter.NeedsMaintenance(nil)).To(BeTrue())
	})
})

var _ = Describe("Vehicle enums", func() {
	It("parses feed status names", func() {
		status, err := ParseVehicleStatus("awaiting_report_review")
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(VehicleStatusAwaitingReportReview))
	})

	It("rejects unknown status names", func() {
		_, err := ParseVehicleStatus("parked")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips kind names", func() {
		for _, name := range []string{"bike", "ebike", "scooter"} {
			kind, err := ParseVehicleKind(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(kind.String()).To(Equal(name))
		}
	})
})
