package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/middlewares"
	"github.com/hatchlab/hatchery-backend/models"
)

func scheduleRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	sc := NewScheduleController(db)
	r.GET("/schedules", sc.GetAllSchedules)
	r.GET("/schedules/weekly-hours", sc.WeeklyHours)

	staff := r.Group("/staff", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))
	staff.POST("/schedules", sc.CreateSchedule)
	staff.PATCH("/schedules/:id", sc.UpdateSchedule)
	staff.DELETE("/schedules/:id", sc.DeleteSchedule)
	staff.POST("/schedules/:id/activate", sc.Activate)
	staff.POST("/schedules/:id/deactivate", sc.Deactivate)
	return r
}

func scheduleBody(name, days, start, end string) gin.H {
	return gin.H{
		"name": name, "days_of_week": days,
		"start_date": start, "end_date": end,
		"open_time": "09:00", "close_time": "17:00",
	}
}

func TestScheduleActivationConflictIs409(t *testing.T) {
	db := setupTestDB(t)
	r := scheduleRouter(db)
	staff := createUser(t, db, "Sam Staff", models.RoleStaff)
	token := tokenFor(t, staff)

	w := doJSON(t, r, "POST", "/staff/schedules", token,
		scheduleBody("Fall", "Mon,Wed,Fri", "2026-09-01", "2026-12-15"))
	requireStatus(t, w, http.StatusCreated)
	w = doJSON(t, r, "POST", "/staff/schedules", token,
		scheduleBody("Workshops", "Wednesday", "2026-10-01", "2026-10-31"))
	requireStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, "POST", "/staff/schedules/1/activate", token, nil)
	requireStatus(t, w, http.StatusOK)

	w = doJSON(t, r, "POST", "/staff/schedules/2/activate", token, nil)
	requireStatus(t, w, http.StatusConflict)
	body := decodeBody(t, w)
	conflicts := body["conflicts"].([]interface{})
	require.Len(t, conflicts, 1)
	row := conflicts[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"Wed"}, row["overlap_days"])
	assert.Equal(t, "2026-10-01", row["overlap_start"])
	assert.Equal(t, "2026-10-31", row["overlap_end"])

	// Deactivating the blocker lets the candidate through.
	w = doJSON(t, r, "POST", "/staff/schedules/1/deactivate", token, nil)
	requireStatus(t, w, http.StatusOK)
	w = doJSON(t, r, "POST", "/staff/schedules/2/activate", token, nil)
	requireStatus(t, w, http.StatusOK)
}

func TestScheduleValidation(t *testing.T) {
	db := setupTestDB(t)
	r := scheduleRouter(db)
	staff := createUser(t, db, "Sam Staff", models.RoleStaff)
	token := tokenFor(t, staff)

	w := doJSON(t, r, "POST", "/staff/schedules", token,
		scheduleBody("Backwards", "Mon", "2026-12-15", "2026-09-01"))
	requireStatus(t, w, http.StatusBadRequest)

	w = doJSON(t, r, "POST", "/staff/schedules", token,
		scheduleBody("Nonsense days", "Funday", "2026-09-01", "2026-12-15"))
	requireStatus(t, w, http.StatusBadRequest)
}

func TestWeeklyHoursEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := scheduleRouter(db)

	w := doJSON(t, r, "GET", "/schedules/weekly-hours", "", nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	days := body["data"].([]interface{})
	require.Len(t, days, 7)
	first := days[0].(map[string]interface{})
	assert.Equal(t, "Monday", first["day"])
	assert.Equal(t, "Closed", first["hours"])
}

func TestScheduleListFilter(t *testing.T) {
	db := setupTestDB(t)
	r := scheduleRouter(db)
	require.NoError(t, db.Create(&models.Schedule{
		Name: "Fall Semester", DaysOfWeek: "Mon", StartDate: "2026-09-01",
		EndDate: "2026-12-15", OpenTime: "09:00", CloseTime: "17:00",
	}).Error)
	require.NoError(t, db.Create(&models.Schedule{
		Name: "Winter Break", DaysOfWeek: "Mon", StartDate: "2026-12-16",
		EndDate: "2027-01-10", OpenTime: "10:00", CloseTime: "14:00",
	}).Error)

	w := doJSON(t, r, "GET", "/schedules?q=Fall", "", nil)
	requireStatus(t, w, http.StatusOK)
	entries := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, "Fall Semester", entries[0].(map[string]interface{})["name"])
}
