package models

import (
	"sort"
	"strings"
	"time"
)

// dayAbbrev normalizes full day names and 3-letter abbreviations to the
// canonical short form used for comparisons.
var dayAbbrev = map[string]string{
	"monday": "Mon", "mon": "Mon",
	"tuesday": "Tue", "tue": "Tue",
	"wednesday": "Wed", "wed": "Wed",
	"thursday": "Thu", "thu": "Thu",
	"friday": "Fri", "fri": "Fri",
	"saturday": "Sat", "sat": "Sat",
	"sunday": "Sun", "sun": "Sun",
}

// Schedule is one operating-hours definition: a set of weekdays, a date
// range it applies over and the open/close times. Schedules are
// informational; activation only guards against overlapping actives.
type Schedule struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	DaysOfWeek string `gorm:"type:varchar(100);not null" json:"days_of_week"`
	StartDate  string `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate    string `gorm:"type:varchar(10);not null" json:"end_date"`
	OpenTime   string `gorm:"type:varchar(5);not null" json:"open_time"`
	CloseTime  string `gorm:"type:varchar(5);not null" json:"close_time"`
	Location   string `gorm:"type:varchar(200)" json:"location,omitempty"`
	Holidays   string `gorm:"type:text" json:"holidays,omitempty"`
	IsActive   bool   `gorm:"not null;default:false" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizedDays returns the schedule's weekdays as a canonical
// Mon..Sun set. Unrecognized entries are dropped.
func (s *Schedule) NormalizedDays() map[string]bool {
	out := make(map[string]bool)
	for _, part := range strings.Split(s.DaysOfWeek, ",") {
		if day, ok := dayAbbrev[strings.ToLower(strings.TrimSpace(part))]; ok {
			out[day] = true
		}
	}
	return out
}

// OverlapDays returns the weekdays both schedules cover, sorted.
func (s *Schedule) OverlapDays(other *Schedule) []string {
	mine, theirs := s.NormalizedDays(), other.NormalizedDays()
	var shared []string
	for day := range mine {
		if theirs[day] {
			shared = append(shared, day)
		}
	}
	sort.Strings(shared)
	return shared
}

// DatesOverlap reports whether the two date ranges intersect,
// boundaries inclusive. ISO dates compare lexically.
func (s *Schedule) DatesOverlap(other *Schedule) bool {
	return s.EndDate >= other.StartDate && s.StartDate <= other.EndDate
}

// HolidayDates returns the listed closure dates.
func (s *Schedule) HolidayDates() map[string]bool {
	out := make(map[string]bool)
	for _, part := range strings.Split(s.Holidays, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out[p] = true
		}
	}
	return out
}

// AppliesOn reports whether the schedule covers the given weekday on
// the given date. Holiday dates are closed.
func (s *Schedule) AppliesOn(day time.Weekday, date string) bool {
	if s.HolidayDates()[date] {
		return false
	}
	return s.NormalizedDays()[day.String()[:3]] && date >= s.StartDate && date <= s.EndDate
}
