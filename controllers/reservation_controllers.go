package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/middlewares"
	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/services"
	"github.com/hatchlab/hatchery-backend/utils"
)

type ReservationController struct {
	DB           *gorm.DB
	Reservations *services.ReservationService
	Catalog      *services.CatalogService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:           db,
		Reservations: services.NewReservationService(db),
		Catalog:      services.NewCatalogService(db),
	}
}

type reservationRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Notes     string `json:"notes"`
}

func (rc *ReservationController) create(c *gin.Context, target services.TargetRef) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res, err := rc.Reservations.Create(userID, target, services.ReservationInput{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", res)
}

// CreateForSpace books a space. If the space has an installed machine
// the linked machine reservation is created in the same transaction.
func (rc *ReservationController) CreateForSpace(c *gin.Context) {
	space, err := rc.Catalog.SpaceByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rc.create(c, services.TargetRef{Kind: models.TargetSpace, ID: space.ID})
}

// CreateForMachine books a machine directly.
func (rc *ReservationController) CreateForMachine(c *gin.Context) {
	machine, err := rc.Catalog.MachineByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rc.create(c, services.TargetRef{Kind: models.TargetMachine, ID: machine.ID})
}

// CreateForTrainer requests a training session; the reservation starts
// pending.
func (rc *ReservationController) CreateForTrainer(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	rc.create(c, services.TargetRef{Kind: models.TargetTrainer, ID: id})
}

// UpdateReservation edits the window/title/notes of an owned
// reservation.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	userID, role, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	isStaff := role == models.RoleStaff || role == models.RoleAdmin
	res, err := rc.Reservations.Update(userID, isStaff, id, services.ReservationInput{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", res)
}

// DeleteReservation removes one side of a booking; a linked partner
// stays with its link cleared.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	userID, role, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	isStaff := role == models.RoleStaff || role == models.RoleAdmin
	if err := rc.Reservations.Delete(userID, isStaff, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", nil)
}

// SetApproval approves or rejects a pending trainer reservation.
func (rc *ReservationController) SetApproval(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req struct {
		Action string `json:"action" binding:"required,oneof=approve reject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res, err := rc.Reservations.SetApproval(id, req.Action == "approve")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation "+res.Status, res)
}

// feedEntry is one row of a read-side calendar feed.
type feedEntry struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Username  string `json:"username"`

	SpaceTitle  string `json:"space_title,omitempty"`
	MachineName string `json:"machine_name,omitempty"`

	TrainerID       uint   `json:"trainer_id,omitempty"`
	TrainerName     string `json:"trainer_name,omitempty"`
	TrainerCustomID string `json:"trainer_custom_id,omitempty"`
	Status          string `json:"status,omitempty"`
}

// MyReservations lists the caller's bookings: all non-trainer ones plus
// only approved trainer sessions.
func (rc *ReservationController) MyReservations(c *gin.Context) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	reservations, err := rc.Reservations.ForUser(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	entries := make([]feedEntry, 0, len(reservations))
	for _, r := range reservations {
		e := feedEntry{
			ID: r.ID, Title: r.Title, Date: r.Date,
			StartTime: r.StartTime, EndTime: r.EndTime, Status: r.Status,
		}
		if r.Space != nil {
			e.SpaceTitle = r.Space.Title
		}
		if r.Machine != nil {
			e.MachineName = r.Machine.Name
		}
		if r.Trainer != nil {
			e.TrainerName = r.Trainer.Name
		}
		entries = append(entries, e)
	}
	utils.RespondJSON(c, http.StatusOK, "My reservations", entries)
}

// SpaceFeed returns every reservation for one space.
func (rc *ReservationController) SpaceFeed(c *gin.Context) {
	space, err := rc.Catalog.SpaceByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Preload("User").Where("space_id = ?", space.ID).
		Order("date, start_time").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Space reservations", plainFeed(reservations))
}

// MachineFeed returns every reservation for one machine.
func (rc *ReservationController) MachineFeed(c *gin.Context) {
	machine, err := rc.Catalog.MachineByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Preload("User").Where("machine_id = ?", machine.ID).
		Order("date, start_time").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Machine reservations", plainFeed(reservations))
}

// TrainerFeed returns one trainer's calendar. Only rejected bookings
// are excluded; pending ones stay visible until an explicit reject.
func (rc *ReservationController) TrainerFeed(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var trainer models.Trainer
	if err := rc.DB.First(&trainer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("trainer not found"))
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Preload("User").Preload("Trainer").
		Where("trainer_id = ? AND status <> ?", trainer.ID, models.StatusRejected).
		Order("date, start_time").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Trainer reservations", trainerFeed(reservations))
}

// AllTrainersFeed returns every trainer's calendar, rejected excluded.
func (rc *ReservationController) AllTrainersFeed(c *gin.Context) {
	var reservations []models.Reservation
	if err := rc.DB.Preload("User").Preload("Trainer").
		Where("trainer_id IS NOT NULL AND status <> ?", models.StatusRejected).
		Order("date, start_time").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All trainer reservations", trainerFeed(reservations))
}

func plainFeed(reservations []models.Reservation) []feedEntry {
	entries := make([]feedEntry, 0, len(reservations))
	for _, r := range reservations {
		entries = append(entries, feedEntry{
			ID: r.ID, Title: r.Title, Date: r.Date,
			StartTime: r.StartTime, EndTime: r.EndTime,
			Username: r.User.Name,
		})
	}
	return entries
}

func trainerFeed(reservations []models.Reservation) []feedEntry {
	entries := make([]feedEntry, 0, len(reservations))
	for _, r := range reservations {
		e := feedEntry{
			ID: r.ID, Title: r.Title, Date: r.Date,
			StartTime: r.StartTime, EndTime: r.EndTime,
			Username: r.User.Name, Status: r.Status,
		}
		if r.Trainer != nil {
			e.TrainerID = r.Trainer.ID
			e.TrainerName = r.Trainer.Name
			e.TrainerCustomID = r.Trainer.CustomID
		}
		entries = append(entries, e)
	}
	return entries
}
