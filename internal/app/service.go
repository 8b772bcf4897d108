// Package app provides the core service that implements the dependencies
// required by the HTTP API.
package app

import (
	"context"
	"time"

	"github.com/DeLaParraL/CareShift/internal/demo"
	"github.com/DeLaParraL/CareShift/internal/domain/model"
	"github.com/DeLaParraL/CareShift/internal/domain/schedule"
	"github.com/DeLaParraL/CareShift/internal/state"
	"github.com/DeLaParraL/CareShift/pkg/logger"
	"github.com/DeLaParraL/CareShift/pkg/metrics"
)

// Service bundles the shift context store with the scheduling core. The core
// itself is pure; the service owns the reference clock and captures "now"
// exactly once per generation so a pass is reproducible.
type Service struct {
	store *state.Store
	clock func() time.Time

	demoShiftHours int
	maxOrders      int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the reference clock. Tests use this to pin time.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithStore sets a custom shift context store.
func WithStore(store *state.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDemoShiftHours sets the shift length used by demo payloads.
func WithDemoShiftHours(hours int) Option {
	return func(s *Service) {
		if hours > 0 {
			s.demoShiftHours = hours
		}
	}
}

// WithMaxOrders caps the number of orders accepted in one request.
func WithMaxOrders(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxOrders = n
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:          state.New(),
		clock:          func() time.Time { return time.Now().UTC() },
		demoShiftHours: demo.DefaultShiftHours,
		maxOrders:      500,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// MaxOrders returns the per-request order cap.
func (s *Service) MaxOrders() int { return s.maxOrders }

// GenerateSchedule scores and packs a full snapshot in one synchronous pass.
func (s *Service) GenerateSchedule(ctx context.Context, shift model.Shift, patients []model.Patient, orders []model.Order) model.Schedule {
	now := s.clock()
	started := time.Now()

	result := schedule.Generate(now, shift, patients, orders)

	known := make(map[string]struct{}, len(patients))
	for _, p := range patients {
		known[p.ID] = struct{}{}
	}
	skipped := 0
	for _, o := range orders {
		if _, ok := known[o.PatientID]; !ok {
			skipped++
		}
	}

	metrics.RecordScheduleGenerated(len(result.Tasks))
	metrics.RecordOrdersScored(len(orders)-skipped, skipped)
	metrics.RecordScheduleDuration(float64(time.Since(started).Microseconds()) / 1000.0)
	for _, note := range result.Notes {
		metrics.RecordScheduleNote(noteReason(note))
	}

	s.logger.Info(ctx, "schedule generated",
		logger.Int("orders", len(orders)),
		logger.Int("tasks", len(result.Tasks)),
		logger.Int("notes", len(result.Notes)),
		logger.Int("skipped_unknown_patient", skipped),
	)
	return result
}

// DemoPayload returns a fresh sample request valid against the current time.
func (s *Service) DemoPayload(_ context.Context) demo.Request {
	return demo.Payload(s.clock(), s.demoShiftHours)
}

// State returns a consistent snapshot of the shift context.
func (s *Service) State(_ context.Context) state.Snapshot {
	return s.store.Snapshot()
}

// ResetState clears the shift context.
func (s *Service) ResetState(ctx context.Context) {
	s.store.Reset()
	s.refreshStateGauges()
	s.logger.Info(ctx, "shift context reset")
}

// SetShift stores the shift window for stateful replanning.
func (s *Service) SetShift(ctx context.Context, shift model.Shift) error {
	if err := s.store.SetShift(shift); err != nil {
		return err
	}
	s.logger.Info(ctx, "shift window set",
		logger.String("start_at", shift.StartAt.Format(time.RFC3339)),
		logger.String("end_at", shift.EndAt.Format(time.RFC3339)),
	)
	return nil
}

// SetPatients replaces the patient list, pruning orphaned orders.
func (s *Service) SetPatients(ctx context.Context, patients []model.Patient) error {
	if err := s.store.SetPatients(patients); err != nil {
		return err
	}
	s.refreshStateGauges()
	s.logger.Info(ctx, "patient list replaced", logger.Int("patients", len(patients)))
	return nil
}

// AddOrder appends one order to the shift context.
func (s *Service) AddOrder(ctx context.Context, order model.Order) error {
	if err := s.store.AddOrder(order); err != nil {
		return err
	}
	s.refreshStateGauges()
	s.logger.Info(ctx, "order added",
		logger.String("order_id", order.ID),
		logger.String("type", string(order.Type)),
		logger.Bool("stat", order.IsSTAT),
	)
	return nil
}

// RemoveOrder deletes one order from the shift context.
func (s *Service) RemoveOrder(ctx context.Context, orderID string) error {
	if err := s.store.RemoveOrder(orderID); err != nil {
		return err
	}
	s.refreshStateGauges()
	s.logger.Info(ctx, "order removed", logger.String("order_id", orderID))
	return nil
}

// Replan generates a schedule from the current shift context. The shift
// window must have been set; patients and orders may legitimately be empty.
func (s *Service) Replan(ctx context.Context) (model.Schedule, error) {
	snap := s.store.Snapshot()
	if snap.Shift == nil {
		return model.Schedule{}, state.ErrShiftNotSet
	}
	return s.GenerateSchedule(ctx, *snap.Shift, snap.Patients, snap.Orders), nil
}

// GetStats returns service statistics for the stats endpoint and the
// periodic metrics refresher.
func (s *Service) GetStats() map[string]interface{} {
	patients, orders := s.store.Counts()
	return map[string]interface{}{
		"patients":  patients,
		"orders":    orders,
		"shift_set": s.store.HasShift(),
	}
}

// RefreshMetrics pushes current state sizes into the gauges.
func (s *Service) RefreshMetrics() {
	s.refreshStateGauges()
}

func (s *Service) refreshStateGauges() {
	patients, orders := s.store.Counts()
	metrics.UpdateStatePatients(patients)
	metrics.UpdateStateOrders(orders)
}

// noteReason maps a packer note to a stable metric label.
func noteReason(note string) string {
	switch note {
	case schedule.NoteInvalidWindow:
		return "invalid_window"
	case schedule.NoteWindowElapsed:
		return "window_elapsed"
	case schedule.NoteShiftFull:
		return "shift_full"
	case schedule.NoteTaskOverflow:
		return "task_overflow"
	}
	return "other"
}
