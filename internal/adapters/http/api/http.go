// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/DeLaParraL/CareShift/internal/demo"
	"github.com/DeLaParraL/CareShift/internal/domain/model"
	"github.com/DeLaParraL/CareShift/internal/state"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the app service.
type Dependencies interface {
	// GenerateSchedule runs one stateless scoring+packing pass.
	GenerateSchedule(ctx context.Context, shift model.Shift, patients []model.Patient, orders []model.Order) model.Schedule

	// DemoPayload returns a fresh sample request.
	DemoPayload(ctx context.Context) demo.Request

	// Shift-context operations.
	State(ctx context.Context) state.Snapshot
	ResetState(ctx context.Context)
	SetShift(ctx context.Context, shift model.Shift) error
	SetPatients(ctx context.Context, patients []model.Patient) error
	AddOrder(ctx context.Context, order model.Order) error
	RemoveOrder(ctx context.Context, orderID string) error
	Replan(ctx context.Context) (model.Schedule, error)

	// MaxOrders caps the orders accepted in one request.
	MaxOrders() int

	// GetStats exposes service statistics.
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the scheduling API.
type Server struct {
	deps Dependencies
}

// NewServer creates the API server.
func NewServer(deps Dependencies) *Server {
	return &Server{deps: deps}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(MetricsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metricsHandler())
	r.Get("/stats", s.handleStats)

	r.Post("/schedule/generate", s.handleGenerateSchedule)
	r.Get("/demo/payload", s.handleDemoPayload)

	r.Route("/state", func(r chi.Router) {
		r.Get("/", s.handleGetState)
		r.Post("/reset", s.handleResetState)
		r.Post("/shift", s.handleSetShift)
		r.Post("/patients", s.handleSetPatients)
		r.Post("/orders", s.handleAddOrder)
		r.Delete("/orders/{orderID}", s.handleRemoveOrder)
		r.Post("/replan", s.handleReplan)
	})

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
