package service

import (
	"sort"
	"time"

	"toutouchic-api/core/constants"
	"toutouchic-api/modules/appointment/entity"
)

// OpeningHours describes the salon's weekly opening rules.
type OpeningHours struct {
	// OpeningHour is the first bookable hour of the day.
	OpeningHour int
	// ClosingHour is exclusive: no slot starts at or after it.
	ClosingHour int
	// SaturdayClosingHour shortens Saturdays.
	SaturdayClosingHour int
	// ClosedDays yield no slots at all.
	ClosedDays []time.Weekday
	// SlotDuration is the interval between candidate start instants.
	SlotDuration time.Duration
}

// DefaultOpeningHours returns the salon's posted hours.
func DefaultOpeningHours() OpeningHours {
	return OpeningHours{
		OpeningHour:         constants.DefaultOpeningHour,
		ClosingHour:         constants.DefaultClosingHour,
		SaturdayClosingHour: constants.DefaultSaturdayClosingHour,
		ClosedDays:          []time.Weekday{time.Sunday},
		SlotDuration:        constants.DefaultSlotDuration,
	}
}

// SlotGenerator produces the bookable start instants for a given day and
// answers availability questions against existing appointments. All
// computation happens in the salon's local time zone.
type SlotGenerator struct {
	hours OpeningHours
	loc   *time.Location
}

func NewSlotGenerator(hours OpeningHours, loc *time.Location) *SlotGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &SlotGenerator{hours: hours, loc: loc}
}

// GenerateSlots returns the candidate start instants for the calendar day of
// date, ascending. A closed weekday yields an empty list, not an error. When
// date is the same calendar day as now, instants strictly before now are
// excluded.
func (g *SlotGenerator) GenerateSlots(date time.Time, now time.Time) []time.Time {
	day := date.In(g.loc)
	if g.closed(day.Weekday()) {
		return []time.Time{}
	}

	closingHour := g.hours.ClosingHour
	if day.Weekday() == time.Saturday {
		closingHour = g.hours.SaturdayClosingHour
	}

	opening := time.Date(day.Year(), day.Month(), day.Day(), g.hours.OpeningHour, 0, 0, 0, g.loc)
	closing := time.Date(day.Year(), day.Month(), day.Day(), closingHour, 0, 0, 0, g.loc)

	slots := []time.Time{}
	for t := opening; t.Before(closing); t = t.Add(g.hours.SlotDuration) {
		if g.SameDay(day, now) && t.Before(now) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

// IsBookable reports whether instant is one of the generated slots for its
// own day. This single check covers closed days, out-of-hours instants,
// off-grid instants and slots already in the past.
func (g *SlotGenerator) IsBookable(instant time.Time, now time.Time) bool {
	for _, slot := range g.GenerateSlots(instant, now) {
		if slot.Equal(instant) {
			return true
		}
	}
	return false
}

// OccupiedInstants returns the start instants of the appointments falling on
// the calendar day of date, ascending.
func (g *SlotGenerator) OccupiedInstants(date time.Time, appointments []entity.Appointment) []time.Time {
	instants := []time.Time{}
	for _, a := range appointments {
		if g.SameDay(a.StartInstant, date) {
			instants = append(instants, a.StartInstant)
		}
	}
	sort.Slice(instants, func(i, j int) bool { return instants[i].Before(instants[j]) })
	return instants
}

// IsSlotTaken reports whether any appointment starts exactly at instant.
// Exact-instant equality, not interval overlap. Should slot durations ever
// vary by service, adjacent bookings could overlap without being flagged
// here.
func (g *SlotGenerator) IsSlotTaken(instant time.Time, appointments []entity.Appointment) bool {
	for _, a := range appointments {
		if a.StartInstant.Equal(instant) {
			return true
		}
	}
	return false
}

// SameDay reports whether a and b fall on the same calendar day in the
// salon's time zone.
func (g *SlotGenerator) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(g.loc).Date()
	by, bm, bd := b.In(g.loc).Date()
	return ay == by && am == bm && ad == bd
}

func (g *SlotGenerator) closed(weekday time.Weekday) bool {
	for _, d := range g.hours.ClosedDays {
		if d == weekday {
			return true
		}
	}
	return false
}
