package demo_test

import (
	"testing"
	"time"

	"github.com/DeLaParraL/CareShift/internal/demo"
	"github.com/DeLaParraL/CareShift/internal/domain/model"
	"github.com/DeLaParraL/CareShift/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPayload(t *testing.T) {
	now := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	Convey("Given a demo payload", t, func() {
		req := demo.Payload(now, demo.DefaultShiftHours)

		Convey("Then the shift is valid and starts slightly in the future", func() {
			So(req.Shift.Valid(), ShouldBeTrue)
			So(req.Shift.StartAt.After(now), ShouldBeTrue)
			So(req.Shift.EndAt.Sub(req.Shift.StartAt), ShouldEqual, 12*time.Hour)
		})

		Convey("Then IDs are unique and every order references a known patient", func() {
			seen := map[string]bool{}
			known := map[string]bool{}
			for _, p := range req.Patients {
				So(seen[p.ID], ShouldBeFalse)
				seen[p.ID] = true
				known[p.ID] = true
				So(p.Acuity.Valid(), ShouldBeTrue)
			}
			for _, o := range req.Orders {
				So(seen[o.ID], ShouldBeFalse)
				seen[o.ID] = true
				So(known[o.PatientID], ShouldBeTrue)
				So(o.Type.Valid(), ShouldBeTrue)
				So(o.DurationMinutes, ShouldBeBetweenOrEqual, model.MinDurationMinutes, model.MaxDurationMinutes)
			}
		})

		Convey("Then the payload schedules without degradation notes", func() {
			got := schedule.Generate(now, req.Shift, req.Patients, req.Orders)
			So(got.Notes, ShouldBeEmpty)
			So(got.Tasks, ShouldHaveLength, len(req.Orders))

			Convey("And the critical STAT procedure ranks first", func() {
				So(got.Tasks[0].Summary, ShouldContainSubstring, "STAT")
				So(got.Tasks[0].ScoreBreakdown.Acuity, ShouldEqual, "critical")
			})
		})

		Convey("When asked for a nonsense shift length", func() {
			fallback := demo.Payload(now, 0)

			Convey("Then the default length applies", func() {
				So(fallback.Shift.EndAt.Sub(fallback.Shift.StartAt), ShouldEqual, demo.DefaultShiftHours*time.Hour)
			})
		})
	})
}
