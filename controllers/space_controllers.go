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

type SpaceController struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewSpaceController(db *gorm.DB) *SpaceController {
	return &SpaceController{DB: db, Catalog: services.NewCatalogService(db)}
}

type spaceRequest struct {
	Title          string `json:"title" binding:"required"`
	CustomID       string `json:"custom_id" binding:"required"`
	Capacity       int    `json:"capacity"`
	Location       string `json:"location" binding:"required"`
	Floor          int    `json:"floor" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=station classroom"`
	Notes          string `json:"notes"`
	CapabilityIDs  []uint `json:"capability_ids"`
	CurrentMachine *uint  `json:"current_machine_id"`
}

func validLocation(location string) bool {
	for _, l := range models.SpaceLocations {
		if l == location {
			return true
		}
	}
	return false
}

// GetAllSpaces lists spaces with the catalog filters: free-text q over
// title/custom_id, type, location and has_machines=yes|no.
func (sc *SpaceController) GetAllSpaces(c *gin.Context) {
	query := sc.DB.Model(&models.Space{}).Preload("CurrentMachine")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("title LIKE ? OR custom_id LIKE ?", like, like)
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if loc := c.Query("location"); loc != "" {
		query = query.Where("location = ?", loc)
	}
	switch c.Query("has_machines") {
	case "yes":
		query = query.Where("current_machine_id IS NOT NULL")
	case "no":
		query = query.Where("current_machine_id IS NULL")
	}

	var spaces []models.Space
	if err := query.Order("custom_id").Find(&spaces).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of spaces", spaces)
}

// CreateSpace adds a space and runs the install sync when a current
// machine is supplied.
func (sc *SpaceController) CreateSpace(c *gin.Context) {
	var req spaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !validLocation(req.Location) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown location"))
		return
	}

	space := models.Space{
		Title:    req.Title,
		CustomID: req.CustomID,
		Capacity: req.Capacity,
		Location: req.Location,
		Floor:    req.Floor,
		Type:     req.Type,
		Notes:    req.Notes,
	}
	if space.Capacity <= 0 {
		space.Capacity = 1
	}

	if err := sc.DB.Create(&space).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(req.CapabilityIDs) > 0 {
		var machines []models.Machine
		if err := sc.DB.Find(&machines, req.CapabilityIDs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := sc.DB.Model(&space).Association("Capabilities").Replace(machines); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if req.CurrentMachine != nil {
		if err := sc.Catalog.InstallMachine(space.ID, req.CurrentMachine); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	created, err := sc.Catalog.SpaceByID(space.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Space created: %s", created.CustomID)
	utils.RespondJSON(c, http.StatusCreated, "Space created successfully", created)
}

// GetSpace returns one space by custom ID.
func (sc *SpaceController) GetSpace(c *gin.Context) {
	space, err := sc.Catalog.SpaceByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Space detail", space)
}

// UpdateSpace edits a space's fields and re-syncs the installed
// machine through the catalog service.
func (sc *SpaceController) UpdateSpace(c *gin.Context) {
	space, err := sc.Catalog.SpaceByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req spaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !validLocation(req.Location) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown location"))
		return
	}

	updates := map[string]interface{}{
		"title":    req.Title,
		"capacity": req.Capacity,
		"location": req.Location,
		"floor":    req.Floor,
		"type":     req.Type,
		"notes":    req.Notes,
	}
	if err := sc.DB.Model(space).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if req.CapabilityIDs != nil {
		var machines []models.Machine
		if len(req.CapabilityIDs) > 0 {
			if err := sc.DB.Find(&machines, req.CapabilityIDs).Error; err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
		if err := sc.DB.Model(space).Association("Capabilities").Replace(machines); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := sc.Catalog.InstallMachine(space.ID, req.CurrentMachine); err != nil {
		respondServiceError(c, err)
		return
	}

	updated, err := sc.Catalog.SpaceByID(space.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Space updated", updated)
}

// InstallMachine is the space-side entry point of the install sync.
// Passing a null machine_id clears the installation.
func (sc *SpaceController) InstallMachine(c *gin.Context) {
	space, err := sc.Catalog.SpaceByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req struct {
		MachineID *uint `json:"machine_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Catalog.InstallMachine(space.ID, req.MachineID); err != nil {
		respondServiceError(c, err)
		return
	}

	updated, err := sc.Catalog.SpaceByID(space.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Machine installation updated", updated)
}

// DeleteSpace removes a space; reservations cascade away with it.
func (sc *SpaceController) DeleteSpace(c *gin.Context) {
	space, err := sc.Catalog.SpaceByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := sc.DB.Select("Capabilities").Delete(space).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Space deleted: %s", space.CustomID)
	utils.RespondJSON(c, http.StatusOK, "Space deleted", nil)
}

// UploadImage attaches a floor-plan image to the space.
func (sc *SpaceController) UploadImage(c *gin.Context) {
	space, err := sc.Catalog.SpaceByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	url, err := utils.SaveImage(c, file, "floorplans")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.DB.Model(space).Update("floorplan_image", url).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Image uploaded", gin.H{"url": url})
}
