package model_test

import (
	"testing"
	"time"

	"github.com/DeLaParraL/CareShift/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAcuity(t *testing.T) {
	Convey("Given the acuity levels", t, func() {
		Convey("Then weights are ordered low to critical", func() {
			So(model.AcuityLow.Weight(), ShouldEqual, 1.0)
			So(model.AcuityMedium.Weight(), ShouldEqual, 1.4)
			So(model.AcuityHigh.Weight(), ShouldEqual, 1.8)
			So(model.AcuityCritical.Weight(), ShouldEqual, 2.2)
		})

		Convey("Then all levels validate and unknowns do not", func() {
			for _, a := range []model.Acuity{model.AcuityLow, model.AcuityMedium, model.AcuityHigh, model.AcuityCritical} {
				So(a.Valid(), ShouldBeTrue)
			}
			So(model.Acuity("severe").Valid(), ShouldBeFalse)
			So(model.Acuity("severe").Weight(), ShouldEqual, 0)
		})
	})
}

func TestOrderType(t *testing.T) {
	Convey("Given the order types", t, func() {
		Convey("Then weights reflect time sensitivity", func() {
			So(model.OrderMedication.Weight(), ShouldEqual, 1.4)
			So(model.OrderProcedure.Weight(), ShouldEqual, 1.3)
			So(model.OrderAssessment.Weight(), ShouldEqual, 1.2)
			So(model.OrderLab.Weight(), ShouldEqual, 1.1)
		})

		Convey("Then unknown types are invalid", func() {
			So(model.OrderType("imaging").Valid(), ShouldBeFalse)
		})
	})
}

func TestShift(t *testing.T) {
	Convey("Given shift windows", t, func() {
		now := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

		Convey("Then end after start is valid", func() {
			So(model.Shift{StartAt: now, EndAt: now.Add(12 * time.Hour)}.Valid(), ShouldBeTrue)
		})

		Convey("Then end at or before start is invalid", func() {
			So(model.Shift{StartAt: now, EndAt: now}.Valid(), ShouldBeFalse)
			So(model.Shift{StartAt: now, EndAt: now.Add(-time.Hour)}.Valid(), ShouldBeFalse)
		})
	})
}

func TestOrderDuration(t *testing.T) {
	Convey("Given an order with a duration in minutes", t, func() {
		o := model.Order{DurationMinutes: 45}

		Convey("Then Duration converts exactly", func() {
			So(o.Duration(), ShouldEqual, 45*time.Minute)
		})
	})
}
