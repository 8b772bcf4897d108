// Package demo builds fresh sample schedule requests.
//
// A hardcoded payload with fixed dates goes stale fast and everything looks
// overdue, so the sample is generated against the supplied reference time:
// the shift starts a few minutes out and the orders fall due inside it. All
// data is simulated; none of it refers to real patients.
package demo

import (
	"time"

	"github.com/google/uuid"

	"github.com/DeLaParraL/CareShift/internal/domain/model"
)

// Payload layout constants.
const (
	shiftLeadMinutes  = 10
	DefaultShiftHours = 12
)

// Request is the full snapshot shape accepted by schedule generation.
type Request struct {
	Shift    model.Shift     `json:"shift"`
	Patients []model.Patient `json:"patients"`
	Orders   []model.Order   `json:"orders"`
}

// Payload returns a sample Request that schedules cleanly against now.
//
// The mix is deliberate: a critical STAT procedure that should clearly rank
// first, a routine medication for a low-acuity patient, an overdue lab, and
// a PRN assessment, so the demo shows every scoring factor at work.
func Payload(now time.Time, shiftHours int) Request {
	if shiftHours < 1 {
		shiftHours = DefaultShiftHours
	}

	start := now.Add(shiftLeadMinutes * time.Minute)
	shift := model.Shift{
		StartAt: start,
		EndAt:   start.Add(time.Duration(shiftHours) * time.Hour),
	}

	patients := []model.Patient{
		{ID: uuid.NewString(), DisplayName: "Patient A", Acuity: model.AcuityCritical},
		{ID: uuid.NewString(), DisplayName: "Patient B", Acuity: model.AcuityLow},
		{ID: uuid.NewString(), DisplayName: "Patient C", Acuity: model.AcuityMedium},
	}

	orders := []model.Order{
		{
			ID:              uuid.NewString(),
			PatientID:       patients[1].ID,
			Type:            model.OrderMedication,
			Description:     "Routine med (demo)",
			DueAt:           start.Add(45 * time.Minute),
			DurationMinutes: 10,
		},
		{
			ID:              uuid.NewString(),
			PatientID:       patients[0].ID,
			Type:            model.OrderProcedure,
			Description:     "Critical stat procedure (demo)",
			DueAt:           start.Add(90 * time.Minute),
			DurationMinutes: 20,
			IsSTAT:          true,
		},
		{
			ID:              uuid.NewString(),
			PatientID:       patients[2].ID,
			Type:            model.OrderLab,
			Description:     "Overdue draw (demo)",
			DueAt:           now.Add(-20 * time.Minute),
			DurationMinutes: 15,
		},
		{
			ID:              uuid.NewString(),
			PatientID:       patients[2].ID,
			Type:            model.OrderAssessment,
			Description:     "PRN pain assessment (demo)",
			DueAt:           start.Add(3 * time.Hour),
			DurationMinutes: 15,
			IsPRN:           true,
		},
	}

	return Request{Shift: shift, Patients: patients, Orders: orders}
}
