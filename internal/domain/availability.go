package domain

import "fmt"

// Weekday numbers days Monday=0 through Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts a full or three-letter English day name.
func ParseWeekday(s string) (Weekday, bool) {
	for i, name := range weekdayNames {
		if len(s) >= 3 && (equalFoldPrefix(name, s)) {
			return Weekday(i), true
		}
	}
	return 0, false
}

func equalFoldPrefix(name, s string) bool {
	if len(s) > len(name) {
		return false
	}
	for i := 0; i < len(s); i++ {
		a, b := name[i], s[i]
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// AvailabilitySlot is one free hour in the user's weekly template.
type AvailabilitySlot struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Day    Weekday `json:"day" validate:"min=0,max=6"`
	Hour   int     `json:"hour" validate:"min=0,max=23"`
}

// Label renders the slot as "Monday: 09:00 - 10:00".
func (s AvailabilitySlot) Label() string {
	return fmt.Sprintf("%s: %02d:00 - %02d:00", s.Day, s.Hour, (s.Hour+1)%24)
}
