// Package schedule packs ranked orders onto a shift timeline.
//
// Placement is priority-ordered sequential packing, not a calendar that
// honors each order's own due time: due time only influences the score, not
// the slot. The output is a recommended working order the nurse can still
// re-sequence. Nothing here raises an error; every abnormal condition
// degrades to an empty or partial result plus a descriptive note, and callers
// inspect the notes to detect degraded output.
package schedule

import (
	"time"

	"github.com/DeLaParraL/CareShift/internal/domain/model"
	"github.com/DeLaParraL/CareShift/internal/domain/scoring"
)

// Notes emitted when a pass degrades.
const (
	NoteInvalidWindow = "Invalid shift window: end_at must be after start_at."
	NoteWindowElapsed = "Shift window has already ended relative to current time."
	NoteShiftFull     = "Shift is full. Remaining tasks could not be scheduled."
	NoteTaskOverflow  = "A task would exceed shift end. Stopping schedule generation."
)

// Pack walks the ranked orders once, placing each end-to-end from the cursor
// until the shift window is exhausted or the next task would not fit. The
// cursor starts at max(shift.StartAt, now) so an in-progress shift never gets
// tasks scheduled into the past, while a future shift starts when it was
// asked to. A task either fits entirely or placement stops; there is no
// splitting and no backtracking.
//
// patients is used only to resolve display names for the response.
func Pack(now time.Time, shift model.Shift, patients map[string]model.Patient, ranked []model.ScoredOrder) ([]model.ScheduledTask, []string) {
	if !shift.Valid() {
		return nil, []string{NoteInvalidWindow}
	}

	cursor := shift.StartAt
	if now.After(cursor) {
		cursor = now
	}
	if !cursor.Before(shift.EndAt) {
		return nil, []string{NoteWindowElapsed}
	}

	tasks := make([]model.ScheduledTask, 0, len(ranked))
	var notes []string

	for _, item := range ranked {
		if !cursor.Before(shift.EndAt) {
			notes = append(notes, NoteShiftFull)
			break
		}

		start := cursor
		end := start.Add(item.Order.Duration())
		if end.After(shift.EndAt) {
			notes = append(notes, NoteTaskOverflow)
			break
		}

		displayName := "Unknown patient"
		if p, ok := patients[item.Order.PatientID]; ok {
			displayName = p.DisplayName
		}

		tasks = append(tasks, model.ScheduledTask{
			OrderID:            item.Order.ID,
			PatientID:          item.Order.PatientID,
			PatientDisplayName: displayName,
			StartsAt:           start,
			EndsAt:             end,
			PriorityScore:      item.Score,
			Summary:            item.Summary,
			ScoreBreakdown:     item.Breakdown,
		})
		cursor = end
	}

	return tasks, notes
}

// Generate scores the orders and packs them in one pass, stamping the result
// with the reference time it was generated against. The caller supplies now
// exactly once so replaying the same snapshot reproduces the same schedule.
func Generate(now time.Time, shift model.Shift, patients []model.Patient, orders []model.Order) model.Schedule {
	byID := make(map[string]model.Patient, len(patients))
	for _, p := range patients {
		byID[p.ID] = p
	}

	ranked := scoring.Score(now, byID, orders)
	tasks, notes := Pack(now, shift, byID, ranked)

	// Keep the wire shape stable: empty lists, never null.
	if tasks == nil {
		tasks = []model.ScheduledTask{}
	}
	if notes == nil {
		notes = []string{}
	}

	return model.Schedule{
		GeneratedAt: now.UTC(),
		Tasks:       tasks,
		Notes:       notes,
	}
}
