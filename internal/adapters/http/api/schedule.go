package api

import (
	"fmt"
	"net/http"

	"github.com/DeLaParraL/CareShift/internal/domain/model"
)

// scheduleRequest mirrors the wire shape of POST /schedule/generate: a full
// snapshot of shift window, patients, and orders.
type scheduleRequest struct {
	Shift    model.Shift     `json:"shift"`
	Patients []model.Patient `json:"patients"`
	Orders   []model.Order   `json:"orders"`
}

// validate checks closed-set fields and presence. It does not reject an
// inverted shift window: the core degrades that to a note by design, and the
// stateless endpoint keeps that behavior observable.
func (req *scheduleRequest) validate(maxOrders int) error {
	if req.Shift.StartAt.IsZero() || req.Shift.EndAt.IsZero() {
		return fmt.Errorf("%w: shift.start_at and shift.end_at are required", ErrValidation)
	}
	if len(req.Orders) > maxOrders {
		return fmt.Errorf("%w: at most %d orders per request", ErrValidation, maxOrders)
	}
	for i, p := range req.Patients {
		if p.ID == "" {
			return fmt.Errorf("%w: patients[%d].id is required", ErrValidation, i)
		}
		if !p.Acuity.Valid() {
			return fmt.Errorf("%w: patients[%d].acuity %q is not one of low, medium, high, critical", ErrValidation, i, p.Acuity)
		}
	}
	for i := range req.Orders {
		if err := validateOrder(&req.Orders[i]); err != nil {
			return fmt.Errorf("%w (orders[%d])", err, i)
		}
	}
	return nil
}

// validateOrder normalizes and bounds-checks a single order in place.
func validateOrder(o *model.Order) error {
	if o.ID == "" {
		return fmt.Errorf("%w: order id is required", ErrValidation)
	}
	if o.PatientID == "" {
		return fmt.Errorf("%w: order patient_id is required", ErrValidation)
	}
	if !o.Type.Valid() {
		return fmt.Errorf("%w: order type %q is not one of medication, procedure, lab, assessment", ErrValidation, o.Type)
	}
	if o.DueAt.IsZero() {
		return fmt.Errorf("%w: order due_at is required", ErrValidation)
	}
	if o.DurationMinutes == 0 {
		o.DurationMinutes = model.DefaultDurationMinutes
	}
	if o.DurationMinutes < model.MinDurationMinutes || o.DurationMinutes > model.MaxDurationMinutes {
		return fmt.Errorf("%w: order duration_minutes must be between %d and %d",
			ErrValidation, model.MinDurationMinutes, model.MaxDurationMinutes)
	}
	return nil
}

// handleGenerateSchedule handles POST /schedule/generate.
func (s *Server) handleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(s.deps.MaxOrders()); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
		return
	}

	result := s.deps.GenerateSchedule(r.Context(), req.Shift, req.Patients, req.Orders)
	writeJSON(w, http.StatusOK, result)
}
