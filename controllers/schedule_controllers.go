package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/services"
	"github.com/hatchlab/hatchery-backend/utils"
)

type ScheduleController struct {
	DB        *gorm.DB
	Schedules *services.ScheduleService
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db, Schedules: services.NewScheduleService(db)}
}

type scheduleRequest struct {
	Name       string `json:"name" binding:"required"`
	DaysOfWeek string `json:"days_of_week" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	OpenTime   string `json:"open_time" binding:"required"`
	CloseTime  string `json:"close_time" binding:"required"`
	Location   string `json:"location"`
	Holidays   string `json:"holidays"`
}

func (req *scheduleRequest) validate() error {
	if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		return errors.New("start_date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("2006-01-02", req.EndDate); err != nil {
		return errors.New("end_date must be in YYYY-MM-DD format")
	}
	if req.EndDate < req.StartDate {
		return errors.New("end_date must not precede start_date")
	}
	if _, err := time.Parse("15:04", req.OpenTime); err != nil {
		return errors.New("open_time must be in HH:MM format")
	}
	if _, err := time.Parse("15:04", req.CloseTime); err != nil {
		return errors.New("close_time must be in HH:MM format")
	}
	probe := models.Schedule{DaysOfWeek: req.DaysOfWeek}
	if len(probe.NormalizedDays()) == 0 {
		return errors.New("days_of_week must name at least one weekday")
	}
	return nil
}

// GetAllSchedules lists schedules, filterable by q over the name.
func (sc *ScheduleController) GetAllSchedules(c *gin.Context) {
	query := sc.DB.Model(&models.Schedule{})
	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	var schedules []models.Schedule
	if err := query.Order("start_date, name").Find(&schedules).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of schedules", schedules)
}

// CreateSchedule registers a schedule. New schedules start inactive;
// activation is a separate, conflict-guarded step.
func (sc *ScheduleController) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	schedule := models.Schedule{
		Name:       req.Name,
		DaysOfWeek: req.DaysOfWeek,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
		Location:   req.Location,
		Holidays:   req.Holidays,
	}
	if err := sc.DB.Create(&schedule).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Schedule created: %s", schedule.Name)
	utils.RespondJSON(c, http.StatusCreated, "Schedule created successfully", schedule)
}

// UpdateSchedule edits a schedule's definition. Activation state is
// untouched; an active schedule keeps its new definition without a
// fresh conflict check, matching the activation-time-only guard.
func (sc *ScheduleController) UpdateSchedule(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var schedule models.Schedule
	if err := sc.DB.First(&schedule, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("schedule not found"))
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	schedule.Name = req.Name
	schedule.DaysOfWeek = req.DaysOfWeek
	schedule.StartDate = req.StartDate
	schedule.EndDate = req.EndDate
	schedule.OpenTime = req.OpenTime
	schedule.CloseTime = req.CloseTime
	schedule.Location = req.Location
	schedule.Holidays = req.Holidays
	if err := sc.DB.Save(&schedule).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Schedule updated", schedule)
}

// DeleteSchedule removes a schedule, active or not.
func (sc *ScheduleController) DeleteSchedule(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := sc.Schedules.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Schedule deleted", nil)
}

// Activate turns the schedule on, refusing with a 409 conflict report
// when it collides with another active schedule.
func (sc *ScheduleController) Activate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	schedule, err := sc.Schedules.Activate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Schedule activated: %s", schedule.Name)
	utils.RespondJSON(c, http.StatusOK, "Schedule activated", schedule)
}

// Deactivate turns the schedule off unconditionally.
func (sc *ScheduleController) Deactivate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	schedule, err := sc.Schedules.Deactivate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Schedule deactivated", schedule)
}

// WeeklyHours is the public "are we open this week" view, Monday first.
func (sc *ScheduleController) WeeklyHours(c *gin.Context) {
	hours, err := sc.Schedules.WeeklyHours(time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Weekly hours", hours)
}
