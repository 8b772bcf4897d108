package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DeLaParraL/CareShift/internal/domain/model"
	"github.com/DeLaParraL/CareShift/internal/state"
)

// stateResponse is the wire shape of GET /state.
type stateResponse struct {
	Shift     *model.Shift    `json:"shift"`
	Patients  []model.Patient `json:"patients"`
	Orders    []model.Order   `json:"orders"`
	UpdatedAt string          `json:"updated_at"`
}

// handleGetState handles GET /state.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	snap := s.deps.State(r.Context())
	writeJSON(w, http.StatusOK, stateResponse{
		Shift:     snap.Shift,
		Patients:  snap.Patients,
		Orders:    snap.Orders,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleResetState handles POST /state/reset.
func (s *Server) handleResetState(w http.ResponseWriter, r *http.Request) {
	s.deps.ResetState(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// handleSetShift handles POST /state/shift. Unlike the stateless generate
// path, a bad window is rejected here so replans never have to guess.
func (s *Server) handleSetShift(w http.ResponseWriter, r *http.Request) {
	var shift model.Shift
	if err := decodeJSON(r, &shift); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if shift.StartAt.IsZero() || shift.EndAt.IsZero() {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed",
			fmt.Errorf("%w: start_at and end_at are required", ErrValidation))
		return
	}
	if err := s.deps.SetShift(r.Context(), shift); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, shift)
}

// handleSetPatients handles POST /state/patients, replacing the full list.
func (s *Server) handleSetPatients(w http.ResponseWriter, r *http.Request) {
	var patients []model.Patient
	if err := decodeJSON(r, &patients); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	for i, p := range patients {
		if p.ID == "" {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed",
				fmt.Errorf("%w: patients[%d].id is required", ErrValidation, i))
			return
		}
		if !p.Acuity.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed",
				fmt.Errorf("%w: patients[%d].acuity %q is not one of low, medium, high, critical", ErrValidation, i, p.Acuity))
			return
		}
	}
	if err := s.deps.SetPatients(r.Context(), patients); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// handleAddOrder handles POST /state/orders.
func (s *Server) handleAddOrder(w http.ResponseWriter, r *http.Request) {
	var order model.Order
	if err := decodeJSON(r, &order); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := validateOrder(&order); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
		return
	}
	if err := s.deps.AddOrder(r.Context(), order); err != nil {
		switch {
		case errors.Is(err, state.ErrDuplicateOrder):
			writeError(w, http.StatusConflict, "conflict", err)
		case errors.Is(err, state.ErrUnknownPatient):
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// handleRemoveOrder handles DELETE /state/orders/{orderID}.
func (s *Server) handleRemoveOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if err := s.deps.RemoveOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, state.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReplan handles POST /state/replan.
func (s *Server) handleReplan(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.Replan(r.Context())
	if err != nil {
		if errors.Is(err, state.ErrShiftNotSet) {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
