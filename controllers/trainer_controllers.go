package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

type TrainerController struct {
	DB *gorm.DB
}

func NewTrainerController(db *gorm.DB) *TrainerController {
	return &TrainerController{DB: db}
}

type trainerRequest struct {
	Name                string   `json:"name" binding:"required"`
	CustomID            string   `json:"custom_id" binding:"required"`
	Major               string   `json:"major"`
	Certificates        []string `json:"training_certificates"`
	CertifiedMachineIDs []uint   `json:"certified_machine_ids"`
}

// GetAllTrainers lists trainers, filterable by q (name/custom_id) and
// by carried certificate category.
func (tc *TrainerController) GetAllTrainers(c *gin.Context) {
	query := tc.DB.Model(&models.Trainer{})

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR custom_id LIKE ?", like, like)
	}
	if cert := c.Query("certificate"); cert != "" {
		query = query.Where("training_certificates LIKE ?", "%"+cert+"%")
	}

	var trainers []models.Trainer
	if err := query.Order("name").Find(&trainers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of trainers", trainers)
}

// GetTrainersForMachine lists trainers whose certificates cover the
// machine's category.
func (tc *TrainerController) GetTrainersForMachine(c *gin.Context) {
	var machine models.Machine
	if err := tc.DB.Where("custom_id = ?", c.Param("custom_id")).First(&machine).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("machine not found"))
		return
	}

	var trainers []models.Trainer
	if err := tc.DB.Where("training_certificates LIKE ?", "%"+machine.Category+"%").
		Find(&trainers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Trainers for machine", trainers)
}

// CreateTrainer adds a trainer. Trainer names are unique
// case-insensitively.
func (tc *TrainerController) CreateTrainer(c *gin.Context) {
	var req trainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	tc.DB.Model(&models.Trainer{}).Where("LOWER(name) = ?", strings.ToLower(req.Name)).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("a trainer with this name already exists"))
		return
	}

	trainer := models.Trainer{
		Name:     req.Name,
		CustomID: req.CustomID,
		Major:    req.Major,
	}
	trainer.SetCertificates(req.Certificates)

	if err := tc.DB.Create(&trainer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(req.CertifiedMachineIDs) > 0 {
		var machines []models.Machine
		if err := tc.DB.Find(&machines, req.CertifiedMachineIDs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := tc.DB.Model(&trainer).Association("CertifiedMachines").Replace(machines); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("Trainer created: %s (%s)", trainer.Name, trainer.CustomID)
	utils.RespondJSON(c, http.StatusCreated, "Trainer created successfully", trainer)
}

// GetTrainer returns one trainer by primary key.
func (tc *TrainerController) GetTrainer(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var trainer models.Trainer
	if err := tc.DB.Preload("CertifiedMachines").First(&trainer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("trainer not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Trainer detail", trainer)
}

// UpdateTrainer edits a trainer.
func (tc *TrainerController) UpdateTrainer(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var trainer models.Trainer
	if err := tc.DB.First(&trainer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("trainer not found"))
		return
	}

	var req trainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	tc.DB.Model(&models.Trainer{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(req.Name), trainer.ID).
		Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("a trainer with this name already exists"))
		return
	}

	trainer.Name = req.Name
	trainer.Major = req.Major
	trainer.SetCertificates(req.Certificates)
	if err := tc.DB.Save(&trainer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if req.CertifiedMachineIDs != nil {
		var machines []models.Machine
		if len(req.CertifiedMachineIDs) > 0 {
			if err := tc.DB.Find(&machines, req.CertifiedMachineIDs).Error; err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
		if err := tc.DB.Model(&trainer).Association("CertifiedMachines").Replace(machines); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Trainer updated", trainer)
}

// DeleteTrainer removes a trainer.
func (tc *TrainerController) DeleteTrainer(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	res := tc.DB.Delete(&models.Trainer{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("trainer not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Trainer deleted", nil)
}

// UploadImage attaches a photo to the trainer.
func (tc *TrainerController) UploadImage(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var trainer models.Trainer
	if err := tc.DB.First(&trainer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("trainer not found"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	url, err := utils.SaveImage(c, file, "trainers")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.DB.Model(&trainer).Update("trainer_image", url).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Image uploaded", gin.H{"url": url})
}
