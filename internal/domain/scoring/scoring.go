// Package scoring computes a priority score and a structured, human-readable
// explanation for each order in a shift.
//
// The scoring is deterministic and rules based on purpose: in a clinical
// setting the plan has to be explainable, so every factor that contributed to
// a score is surfaced in the breakdown. Score takes the reference time as an
// argument and reads no clocks, which keeps it a pure function of its inputs.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/DeLaParraL/CareShift/internal/domain/model"
)

// Score formula constants.
const (
	// statBonus is additive so STAT breaks near-ties without overwhelming
	// acuity and urgency for non-critical patients.
	statBonus = 1.5

	// prnPenalty is deliberately small; PRNs are conditional, not ignorable.
	prnPenalty = 0.4

	// Overdue urgency starts at overdueBase and climbs by one point per
	// overdueRampMinutes, capped at overdueBase+overdueCap so an arbitrarily
	// overdue order never eclipses every other factor indefinitely.
	overdueBase        = 3.0
	overdueRampMinutes = 30.0
	overdueCap         = 2.0

	// Future urgency decays linearly from dueNowUrgency toward urgencyFloor
	// as the due time recedes: 120 minutes out is 1.5, past roughly 9.2
	// hours the floor applies.
	dueNowUrgency = 2.5
	decayMinutes  = 120.0
	urgencyFloor  = 0.2
)

// minutesUntil returns the signed minutes from now until dueAt. Negative
// means overdue.
func minutesUntil(now, dueAt time.Time) float64 {
	return dueAt.Sub(now).Minutes()
}

// urgency converts minutes-until-due into an urgency factor.
func urgency(minutesUntilDue float64) float64 {
	if minutesUntilDue <= 0 {
		overdue := -minutesUntilDue
		ramp := overdue / overdueRampMinutes
		if ramp > overdueCap {
			ramp = overdueCap
		}
		return overdueBase + ramp
	}
	u := dueNowUrgency - minutesUntilDue/decayMinutes
	if u < urgencyFloor {
		return urgencyFloor
	}
	return u
}

// Score assigns a priority score to each order and returns them ranked.
//
// The score combines the patient acuity multiplier, the order type
// multiplier, a time-based urgency factor, a bonus for STAT, and a small
// penalty for PRN. Orders referencing a patient absent from patients are
// skipped silently; that is a data-quality problem upstream, and dropping is
// more forgiving than failing the whole schedule.
//
// The result is sorted by score descending with ties broken by earlier due
// time. The sort is stable so identical inputs always rank identically.
func Score(now time.Time, patients map[string]model.Patient, orders []model.Order) []model.ScoredOrder {
	scored := make([]model.ScoredOrder, 0, len(orders))

	for _, o := range orders {
		p, ok := patients[o.PatientID]
		if !ok {
			continue
		}

		mins := minutesUntil(now, o.DueAt)
		urg := urgency(mins)

		score := p.Acuity.Weight() * o.Type.Weight() * urg
		if o.IsSTAT {
			score += statBonus
		}
		if o.IsPRN {
			score -= prnPenalty
		}

		scored = append(scored, model.ScoredOrder{
			Order:   o,
			Score:   score,
			Summary: summarize(o, p, mins),
			Breakdown: model.ScoreBreakdown{
				Acuity:       string(p.Acuity),
				OrderType:    string(o.Type),
				DueInMinutes: round1(mins),
				Urgency:      round2(urg),
				IsSTAT:       o.IsSTAT,
				IsPRN:        o.IsPRN,
			},
		})
	}

	// Highest score first; earlier due time wins a tie.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Order.DueAt.Before(scored[j].Order.DueAt)
	})

	return scored
}

// summarize builds the one-line rationale a nurse can skim without decoding
// key=value pairs, e.g. "procedure for Patient A (acuity: critical, due in ~84m, STAT)".
func summarize(o model.Order, p model.Patient, mins float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for %s (acuity: %s, due in ~%.0fm", o.Type, p.DisplayName, p.Acuity, mins)
	if o.IsSTAT {
		b.WriteString(", STAT")
	}
	if o.IsPRN {
		b.WriteString(", PRN")
	}
	b.WriteString(")")
	return b.String()
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
