package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/middlewares"
	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

type HelpTicketController struct {
	DB *gorm.DB
}

func NewHelpTicketController(db *gorm.DB) *HelpTicketController {
	return &HelpTicketController{DB: db}
}

// CreateTicket files a support request under the caller's account.
func (hc *HelpTicketController) CreateTicket(c *gin.Context) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req struct {
		Category    string `json:"category" binding:"required,oneof=website machine spaces training"`
		Subject     string `json:"subject" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ticket := models.HelpTicket{
		UserID:      userID,
		Category:    req.Category,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      models.TicketOpen,
	}
	if err := hc.DB.Create(&ticket).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Help ticket %d opened (%s)", ticket.ID, ticket.Category)
	utils.RespondJSON(c, http.StatusCreated, "Help ticket created", ticket)
}

// MyTickets lists the caller's own tickets, newest first.
func (hc *HelpTicketController) MyTickets(c *gin.Context) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var tickets []models.HelpTicket
	if err := hc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My help tickets", tickets)
}

// ListOpenTickets is the admin queue: unresolved tickets, oldest first.
func (hc *HelpTicketController) ListOpenTickets(c *gin.Context) {
	var tickets []models.HelpTicket
	if err := hc.DB.Where("status = ?", models.TicketOpen).
		Order("created_at").Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Open help tickets", tickets)
}

// ResolveTicket closes a ticket, recording who resolved it and when.
func (hc *HelpTicketController) ResolveTicket(c *gin.Context) {
	adminID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var ticket models.HelpTicket
	if err := hc.DB.First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("help ticket not found"))
		return
	}
	if ticket.Status == models.TicketResolved {
		utils.RespondError(c, http.StatusBadRequest, errors.New("ticket is already resolved"))
		return
	}

	ticket.Resolve(adminID, time.Now())
	if err := hc.DB.Save(&ticket).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Help ticket %d resolved by user %d", ticket.ID, adminID)
	utils.RespondJSON(c, http.StatusOK, "Help ticket resolved", ticket)
}
