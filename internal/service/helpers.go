package service

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// startOfDay returns midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// startOfWeek returns the Sunday midnight on or before t in loc.
func startOfWeek(t time.Time, loc *time.Location) time.Time {
	day := startOfDay(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// daysBetween counts calendar days from a to b in loc.
func daysBetween(a, b time.Time, loc *time.Location) int {
	from, to := startOfDay(a, loc), startOfDay(b, loc)
	ay, am, ad := from.Date()
	by, bm, bd := to.Date()
	// Midnight-to-midnight in UTC avoids DST-length days.
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return part * 100 / whole
}

func inLocation(sessions []*domain.StudySession, loc *time.Location) {
	for _, s := range sessions {
		s.StartAt = s.StartAt.In(loc)
		s.EndAt = s.EndAt.In(loc)
	}
}
