package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/services"
	"github.com/hatchlab/hatchery-backend/utils"
)

type TrainingController struct {
	DB    *gorm.DB
	Certs *services.CertificationService
}

func NewTrainingController(db *gorm.DB) *TrainingController {
	return &TrainingController{DB: db, Certs: services.NewCertificationService(db)}
}

// GetAllCourses lists training courses.
func (tc *TrainingController) GetAllCourses(c *gin.Context) {
	var courses []models.TrainingCourse
	if err := tc.DB.Order("name").Find(&courses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of training courses", courses)
}

// CreateCourse adds a training course.
func (tc *TrainingController) CreateCourse(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		About string `json:"about"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	course := models.TrainingCourse{Name: req.Name, About: req.About}
	if err := tc.DB.Create(&course).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("a course with this name already exists"))
		return
	}
	utils.InfoLogger.Printf("Training course created: %s", course.Name)
	utils.RespondJSON(c, http.StatusCreated, "Training course created", course)
}

// GrantRecord marks a course completed for a user, creating their
// training-registry identity if needed. Granting twice is a no-op.
func (tc *TrainingController) GrantRecord(c *gin.Context) {
	var req struct {
		UserID   uint `json:"user_id" binding:"required"`
		CourseID uint `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.Certs.Grant(req.UserID, req.CourseID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Training granted: user=%d course=%d", req.UserID, req.CourseID)
	utils.RespondJSON(c, http.StatusOK, "Training record granted", nil)
}

// MyCertifications lists the courses the caller has completed. A user
// with no training-registry identity sees an empty list.
func (tc *TrainingController) MyCertifications(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var person models.Person
	if err := tc.DB.Where("user_id = ?", userID).First(&person).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "My certifications", []models.TrainingCourse{})
		return
	}

	var courses []models.TrainingCourse
	if err := tc.DB.
		Joins("JOIN training_records ON training_records.training_course_id = training_courses.id").
		Where("training_records.person_id = ?", person.ID).
		Order("training_courses.name").
		Find(&courses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My certifications", courses)
}
