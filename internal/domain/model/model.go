// Package model contains the clinical domain types passed between layers.
//
// All values here are request-scoped: built from an input snapshot, used for
// one scoring/packing pass, and discarded. Nothing mutates after construction.
package model

import "time"

// Acuity is the ordered severity classification of a patient.
type Acuity string

// Acuity levels, lowest to highest.
const (
	AcuityLow      Acuity = "low"
	AcuityMedium   Acuity = "medium"
	AcuityHigh     Acuity = "high"
	AcuityCritical Acuity = "critical"
)

// Valid reports whether a is a known acuity level.
func (a Acuity) Valid() bool {
	switch a {
	case AcuityLow, AcuityMedium, AcuityHigh, AcuityCritical:
		return true
	}
	return false
}

// Weight returns the priority multiplier for the acuity level. Higher acuity
// amplifies time sensitivity and order type rather than adding a flat bump.
// The zero weight for unknown values never surfaces in practice because
// inputs are validated at the boundary.
func (a Acuity) Weight() float64 {
	switch a {
	case AcuityLow:
		return 1.0
	case AcuityMedium:
		return 1.4
	case AcuityHigh:
		return 1.8
	case AcuityCritical:
		return 2.2
	}
	return 0
}

// OrderType classifies a clinical order.
type OrderType string

// Order types.
const (
	OrderMedication OrderType = "medication"
	OrderProcedure  OrderType = "procedure"
	OrderLab        OrderType = "lab"
	OrderAssessment OrderType = "assessment"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	switch t {
	case OrderMedication, OrderProcedure, OrderLab, OrderAssessment:
		return true
	}
	return false
}

// Weight returns the priority multiplier for the order type. Meds and
// procedures are typically more time sensitive and riskier when delayed.
func (t OrderType) Weight() float64 {
	switch t {
	case OrderMedication:
		return 1.4
	case OrderProcedure:
		return 1.3
	case OrderAssessment:
		return 1.2
	case OrderLab:
		return 1.1
	}
	return 0
}

// Order duration bounds in minutes.
const (
	MinDurationMinutes     = 1
	MaxDurationMinutes     = 240
	DefaultDurationMinutes = 10
)

// Shift is the bounded time window tasks may be placed in.
type Shift struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// Valid reports whether the window end is strictly after its start.
func (s Shift) Valid() bool {
	return s.EndAt.After(s.StartAt)
}

// Patient is one patient assigned to the shift.
type Patient struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Acuity      Acuity `json:"acuity"`
}

// Order is a single pending work item for a patient.
type Order struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	Type            OrderType `json:"type"`
	Description     string    `json:"description"`
	DueAt           time.Time `json:"due_at"`
	DurationMinutes int       `json:"duration_minutes"`
	IsPRN           bool      `json:"is_prn"`
	IsSTAT          bool      `json:"is_stat"`
}

// Duration returns the order duration as a time.Duration.
func (o Order) Duration() time.Duration {
	return time.Duration(o.DurationMinutes) * time.Minute
}

// ScoreBreakdown is the structured explanation of one computed score. It
// exists so weight tuning stays debuggable without decoding the summary line.
type ScoreBreakdown struct {
	Acuity       string  `json:"acuity"`
	OrderType    string  `json:"order_type"`
	DueInMinutes float64 `json:"due_in_minutes"`
	Urgency      float64 `json:"urgency"`
	IsSTAT       bool    `json:"is_stat"`
	IsPRN        bool    `json:"is_prn"`
}

// ScoredOrder pairs an order with its computed score and explanation so the
// sorting and packing steps stay simple.
type ScoredOrder struct {
	Order     Order
	Score     float64
	Summary   string
	Breakdown ScoreBreakdown
}

// ScheduledTask is one placed task in the generated timeline.
type ScheduledTask struct {
	OrderID            string         `json:"order_id"`
	PatientID          string         `json:"patient_id"`
	PatientDisplayName string         `json:"patient_display_name"`
	StartsAt           time.Time      `json:"starts_at"`
	EndsAt             time.Time      `json:"ends_at"`
	PriorityScore      float64        `json:"priority_score"`
	Summary            string         `json:"summary"`
	ScoreBreakdown     ScoreBreakdown `json:"score_breakdown"`
}

// Schedule is the full result of one generation pass.
type Schedule struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Tasks       []ScheduledTask `json:"tasks"`
	Notes       []string        `json:"notes"`
}
