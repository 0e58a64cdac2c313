package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedDaysAcceptsFullAndAbbreviatedNames(t *testing.T) {
	s := Schedule{DaysOfWeek: "Monday, wed,FRIDAY, sat , nonsense"}
	days := s.NormalizedDays()
	assert.Equal(t, map[string]bool{"Mon": true, "Wed": true, "Fri": true, "Sat": true}, days)
}

func TestOverlapDaysSorted(t *testing.T) {
	a := Schedule{DaysOfWeek: "Mon,Wed,Fri,Sun"}
	b := Schedule{DaysOfWeek: "Sunday,Friday,Tuesday"}
	assert.Equal(t, []string{"Fri", "Sun"}, a.OverlapDays(&b))
}

func TestDatesOverlapInclusiveBoundaries(t *testing.T) {
	a := Schedule{StartDate: "2026-09-01", EndDate: "2026-09-30"}
	b := Schedule{StartDate: "2026-09-30", EndDate: "2026-10-31"}
	c := Schedule{StartDate: "2026-10-01", EndDate: "2026-10-31"}

	assert.True(t, a.DatesOverlap(&b))
	assert.True(t, b.DatesOverlap(&a))
	assert.False(t, a.DatesOverlap(&c))
}

func TestAppliesOn(t *testing.T) {
	s := Schedule{DaysOfWeek: "Mon,Wed", StartDate: "2026-09-01", EndDate: "2026-12-15"}

	assert.True(t, s.AppliesOn(time.Monday, "2026-10-05"))
	assert.False(t, s.AppliesOn(time.Tuesday, "2026-10-05"))
	assert.False(t, s.AppliesOn(time.Monday, "2027-01-04"), "outside the date range")
}
