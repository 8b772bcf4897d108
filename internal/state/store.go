// Package state holds the mutable shift context accumulated across requests.
//
// The store is the only mutable thing in the service. The scheduling core is
// pure and must never observe a snapshot mutate mid-computation, so every
// read path goes through Snapshot, which copies under the lock. Persistence
// is deliberately absent; the context resets with the process.
package state

import (
	"sync"

	"github.com/DeLaParraL/CareShift/internal/domain/model"
)

// Snapshot is a fully materialized, internally consistent view of the shift
// context, safe to hand to the scheduling core.
type Snapshot struct {
	Shift    *model.Shift
	Patients []model.Patient
	Orders   []model.Order
}

// Store is a mutex-guarded in-memory shift context.
type Store struct {
	mu       sync.RWMutex
	shift    *model.Shift
	patients []model.Patient
	orders   []model.Order
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithInitialCapacity pre-sizes the patient and order slices.
func WithInitialCapacity(patients, orders int) Option {
	return func(s *Store) {
		if patients > 0 {
			s.patients = make([]model.Patient, 0, patients)
		}
		if orders > 0 {
			s.orders = make([]model.Order, 0, orders)
		}
	}
}

// New creates an empty shift context store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a consistent copy of the current context.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Patients: make([]model.Patient, len(s.patients)),
		Orders:   make([]model.Order, len(s.orders)),
	}
	copy(snap.Patients, s.patients)
	copy(snap.Orders, s.orders)
	if s.shift != nil {
		shift := *s.shift
		snap.Shift = &shift
	}
	return snap
}

// Reset clears the shift context back to empty.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = nil
	s.patients = nil
	s.orders = nil
}

// SetShift stores the shift window. Invalid windows are rejected here so the
// stateful replan path never has to guess; the stateless generate path keeps
// the core's soft-failure behavior instead.
func (s *Store) SetShift(shift model.Shift) error {
	if !shift.Valid() {
		return ErrInvalidShift
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = &shift
	return nil
}

// SetPatients replaces the patient list. IDs must be unique. Orders
// referencing a patient no longer on the list are pruned so the context
// stays internally consistent.
func (s *Store) SetPatients(patients []model.Patient) error {
	ids := make(map[string]struct{}, len(patients))
	for _, p := range patients {
		if _, dup := ids[p.ID]; dup {
			return ErrDuplicatePatient
		}
		ids[p.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.patients = make([]model.Patient, len(patients))
	copy(s.patients, patients)

	kept := s.orders[:0]
	for _, o := range s.orders {
		if _, ok := ids[o.PatientID]; ok {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	return nil
}

// AddOrder appends a single order. The referenced patient must already be in
// the context and the order ID must be new, so delete stays unambiguous.
func (s *Store) AddOrder(order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPatientLocked(order.PatientID) {
		return ErrUnknownPatient
	}
	for _, o := range s.orders {
		if o.ID == order.ID {
			return ErrDuplicateOrder
		}
	}
	s.orders = append(s.orders, order)
	return nil
}

// RemoveOrder deletes the order with the given ID.
func (s *Store) RemoveOrder(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.ID == orderID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return ErrOrderNotFound
}

// Counts returns the current patient and order counts.
func (s *Store) Counts() (patients, orders int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patients), len(s.orders)
}

// HasShift reports whether a shift window has been set.
func (s *Store) HasShift() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shift != nil
}

func (s *Store) hasPatientLocked(patientID string) bool {
	for _, p := range s.patients {
		if p.ID == patientID {
			return true
		}
	}
	return false
}
