package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
)

// ScheduleService is the registry of operating-hours definitions and
// the activation guard. Schedules are informational only: nothing here
// is enforced against reservations.
type ScheduleService struct {
	DB *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{DB: db}
}

// CheckConflicts returns every currently-active schedule that shares
// both a day of the week and an overlapping date range with the
// candidate. The candidate itself is excluded.
func (s *ScheduleService) CheckConflicts(candidate *models.Schedule) ([]ScheduleConflict, error) {
	var active []models.Schedule
	if err := s.DB.Where("is_active = ? AND id <> ?", true, candidate.ID).Find(&active).Error; err != nil {
		return nil, err
	}

	var conflicts []ScheduleConflict
	for _, other := range active {
		days := candidate.OverlapDays(&other)
		if len(days) == 0 || !candidate.DatesOverlap(&other) {
			continue
		}
		conflicts = append(conflicts, ScheduleConflict{
			Schedule:     other,
			OverlapDays:  days,
			OverlapStart: maxDate(candidate.StartDate, other.StartDate),
			OverlapEnd:   minDate(candidate.EndDate, other.EndDate),
		})
	}
	return conflicts, nil
}

// Activate marks the schedule active, refusing with a ConflictError
// that enumerates each collision when the pairwise check fails.
func (s *ScheduleService) Activate(id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := s.DB.First(&schedule, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	conflicts, err := s.CheckConflicts(&schedule)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Name: schedule.Name, Conflicts: conflicts}
	}

	if err := s.DB.Model(&schedule).Update("is_active", true).Error; err != nil {
		return nil, err
	}
	schedule.IsActive = true
	return &schedule, nil
}

// Deactivate is unconditional.
func (s *ScheduleService) Deactivate(id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := s.DB.First(&schedule, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.DB.Model(&schedule).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	schedule.IsActive = false
	return &schedule, nil
}

// DayHours is one row of the weekly "are we open" view.
type DayHours struct {
	Day          string `json:"day"`
	Hours        string `json:"hours"`
	Open         bool   `json:"open"`
	ScheduleName string `json:"schedule_name,omitempty"`
}

// WeeklyHours reports, for each weekday, the first active schedule
// covering the given date, Monday first.
func (s *ScheduleService) WeeklyHours(today time.Time) ([]DayHours, error) {
	var active []models.Schedule
	if err := s.DB.Where("is_active = ?", true).Find(&active).Error; err != nil {
		return nil, err
	}

	date := today.Format("2006-01-02")
	week := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	out := make([]DayHours, 0, len(week))
	for _, day := range week {
		row := DayHours{Day: day.String(), Hours: "Closed"}
		for _, sch := range active {
			if sch.AppliesOn(day, date) {
				row.Hours = fmt.Sprintf("%s - %s", sch.OpenTime, sch.CloseTime)
				row.Open = true
				row.ScheduleName = sch.Name
				break
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Delete removes a schedule regardless of activation state.
func (s *ScheduleService) Delete(id uint) error {
	res := s.DB.Delete(&models.Schedule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func maxDate(a, b string) string {
	if a > b {
		return a
	}
	return b
}

func minDate(a, b string) string {
	if a < b {
		return a
	}
	return b
}
