package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
)

func createSchedule(t *testing.T, db *gorm.DB, name, days, start, end string, active bool) *models.Schedule {
	t.Helper()
	s := &models.Schedule{
		Name: name, DaysOfWeek: days,
		StartDate: start, EndDate: end,
		OpenTime: "09:00", CloseTime: "17:00",
		IsActive: active,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func TestActivateRefusesOverlappingActive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	createSchedule(t, db, "Fall", "Mon,Wed,Fri", "2026-09-01", "2026-12-15", true)
	candidate := createSchedule(t, db, "Workshops", "Wednesday,Saturday", "2026-10-01", "2026-10-31", false)

	_, err := svc.Activate(candidate.ID)
	require.Error(t, err)

	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "Workshops", ce.Name)
	require.Len(t, ce.Conflicts, 1)
	assert.Equal(t, "Fall", ce.Conflicts[0].Schedule.Name)
	assert.Equal(t, []string{"Wed"}, ce.Conflicts[0].OverlapDays)
	assert.Equal(t, "2026-10-01", ce.Conflicts[0].OverlapStart)
	assert.Equal(t, "2026-10-31", ce.Conflicts[0].OverlapEnd)

	var stored models.Schedule
	require.NoError(t, db.First(&stored, candidate.ID).Error)
	assert.False(t, stored.IsActive, "refused activation leaves the schedule inactive")
}

func TestActivateAllowsDisjointDays(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	createSchedule(t, db, "Weekdays", "Mon,Tue,Wed,Thu,Fri", "2026-09-01", "2026-12-15", true)
	weekend := createSchedule(t, db, "Weekend", "Sat,Sun", "2026-09-01", "2026-12-15", false)

	activated, err := svc.Activate(weekend.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
}

func TestActivateAllowsDisjointDateRanges(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	createSchedule(t, db, "Fall", "Mon,Wed", "2026-09-01", "2026-12-15", true)
	spring := createSchedule(t, db, "Spring", "Mon,Wed", "2027-01-10", "2027-05-05", false)

	_, err := svc.Activate(spring.ID)
	require.NoError(t, err)
}

func TestActivateSharedBoundaryDateConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	createSchedule(t, db, "First", "Mon", "2026-09-01", "2026-09-30", true)
	second := createSchedule(t, db, "Second", "Mon", "2026-09-30", "2026-10-31", false)

	_, err := svc.Activate(second.ID)
	_, ok := AsConflict(err)
	assert.True(t, ok, "touching end dates still overlap")
}

func TestDeactivateIsUnconditional(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	s := createSchedule(t, db, "Fall", "Mon", "2026-09-01", "2026-12-15", true)

	out, err := svc.Deactivate(s.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
}

func TestWeeklyHoursMondayFirstWithClosedDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	createSchedule(t, db, "Fall", "monday,Wed,FRIDAY", "2026-09-01", "2026-12-15", true)
	createSchedule(t, db, "Dormant", "Tue", "2026-09-01", "2026-12-15", false)

	today := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	hours, err := svc.WeeklyHours(today)
	require.NoError(t, err)
	require.Len(t, hours, 7)

	assert.Equal(t, "Monday", hours[0].Day)
	assert.True(t, hours[0].Open)
	assert.Equal(t, "09:00 - 17:00", hours[0].Hours)
	assert.Equal(t, "Fall", hours[0].ScheduleName)

	// Tuesday's only schedule is inactive.
	assert.Equal(t, "Tuesday", hours[1].Day)
	assert.False(t, hours[1].Open)
	assert.Equal(t, "Closed", hours[1].Hours)

	assert.True(t, hours[2].Open)  // Wednesday
	assert.True(t, hours[4].Open)  // Friday
	assert.False(t, hours[6].Open) // Sunday
}

func TestWeeklyHoursOutsideDateRangeIsClosed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	createSchedule(t, db, "Fall", "Mon,Tue,Wed,Thu,Fri,Sat,Sun", "2026-09-01", "2026-12-15", true)

	today := time.Date(2027, 1, 4, 12, 0, 0, 0, time.UTC)
	hours, err := svc.WeeklyHours(today)
	require.NoError(t, err)
	for _, h := range hours {
		assert.False(t, h.Open)
	}
}

func TestScheduleDeleteActiveOrNot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewScheduleService(db)
	s := createSchedule(t, db, "Fall", "Mon", "2026-09-01", "2026-12-15", true)

	require.NoError(t, svc.Delete(s.ID))
	assert.ErrorIs(t, svc.Delete(s.ID), ErrNotFound)
}
