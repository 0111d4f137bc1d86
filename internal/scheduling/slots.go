// Package scheduling computes offerable time slots and validates booking forms.
package scheduling

import (
	"fmt"
	"time"

	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

// SlotStep is the granularity of bookable start times.
const SlotStep = 30 * time.Minute

// SlotsPerDay is the size of the candidate set.
const SlotsPerDay = int(24 * time.Hour / SlotStep)

// Slot is one candidate start time on a given day.
type Slot struct {
	Time  string
	Taken bool
}

var candidates = func() []string {
	out := make([]string, 0, SlotsPerDay)
	for m := 0; m < 24*60; m += int(SlotStep / time.Minute) {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}()

// CandidateSlots returns every HH:MM from 00:00 to 23:30.
func CandidateSlots() []string {
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}

// OccupiedTimes returns the HH:MM times taken on day by appointments that are not cancelled.
func OccupiedTimes(appts []model.Appointment, day timeinput.Date) map[string]bool {
	taken := make(map[string]bool)
	for i := range appts {
		a := &appts[i]
		if a.IsCancelled() || a.DateTime.IsZero() {
			continue
		}
		at := a.DateTime.UTC()
		if timeinput.DateOf(at) != day {
			continue
		}
		taken[at.Format("15:04")] = true
	}
	return taken
}

// DaySlots returns the full candidate set for day with occupied entries flagged.
func DaySlots(appts []model.Appointment, day timeinput.Date) []Slot {
	taken := OccupiedTimes(appts, day)
	out := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Slot{Time: c, Taken: taken[c]})
	}
	return out
}

// AvailableSlots returns the candidates not occupied on day.
func AvailableSlots(appts []model.Appointment, day timeinput.Date) []string {
	taken := OccupiedTimes(appts, day)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !taken[c] {
			out = append(out, c)
		}
	}
	return out
}

// IsSlotFree reports whether clock is free on day. The check is advisory;
// the backend has the final word on double booking.
func IsSlotFree(appts []model.Appointment, day timeinput.Date, clock string) bool {
	return !OccupiedTimes(appts, day)[clock]
}
