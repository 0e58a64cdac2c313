package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

// DirectoryController serves the public informational pages: staff
// contacts, showcased projects and upcoming events.
type DirectoryController struct {
	DB *gorm.DB
}

func NewDirectoryController(db *gorm.DB) *DirectoryController {
	return &DirectoryController{DB: db}
}

func (dc *DirectoryController) GetContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := dc.DB.Order("display_order, name").Find(&contacts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Contacts", contacts)
}

func (dc *DirectoryController) CreateContact(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Position string `json:"position" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"required"`
		Order    int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	contact := models.Contact{
		Name: req.Name, Position: req.Position,
		Email: req.Email, Phone: req.Phone, Order: req.Order,
	}
	if err := dc.DB.Create(&contact).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Contact created", contact)
}

func (dc *DirectoryController) GetProjects(c *gin.Context) {
	var projects []models.Project
	if err := dc.DB.Order("display_order, date_completed DESC").Find(&projects).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Projects", projects)
}

func (dc *DirectoryController) CreateProject(c *gin.Context) {
	var req struct {
		Title         string `json:"title" binding:"required"`
		Description   string `json:"description" binding:"required"`
		StudentName   string `json:"student_name" binding:"required"`
		DateCompleted string `json:"date_completed" binding:"required"`
		Order         int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	project := models.Project{
		Title: req.Title, Description: req.Description,
		StudentName: req.StudentName, DateCompleted: req.DateCompleted,
		Order: req.Order,
	}
	if err := dc.DB.Create(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Project created", project)
}

func (dc *DirectoryController) GetEvents(c *gin.Context) {
	var events []models.Event
	if err := dc.DB.Order("display_order, event_date, event_time").Find(&events).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Events", events)
}

func (dc *DirectoryController) CreateEvent(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		EventDate   string `json:"event_date" binding:"required"`
		EventTime   string `json:"event_time" binding:"required"`
		Location    string `json:"location" binding:"required"`
		Order       int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	event := models.Event{
		Title: req.Title, Description: req.Description,
		EventDate: req.EventDate, EventTime: req.EventTime,
		Location: req.Location, Order: req.Order,
	}
	if err := dc.DB.Create(&event).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Event created", event)
}

// UploadImage attaches an image to a contact, project or event.
func (dc *DirectoryController) UploadImage(c *gin.Context, model interface{}, column, subdir string) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	url, err := utils.SaveImage(c, file, subdir)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.DB.Model(model).Update(column, url).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Image uploaded", gin.H{"url": url})
}

// UploadContactPhoto handles POST /contacts/:id/image.
func (dc *DirectoryController) UploadContactPhoto(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var contact models.Contact
	if err := dc.DB.First(&contact, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	dc.UploadImage(c, &contact, "photo", "contacts")
}

// UploadProjectImage handles POST /projects/:id/image.
func (dc *DirectoryController) UploadProjectImage(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var project models.Project
	if err := dc.DB.First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	dc.UploadImage(c, &project, "image", "projects")
}

// UploadEventImage handles POST /events/:id/image.
func (dc *DirectoryController) UploadEventImage(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var event models.Event
	if err := dc.DB.First(&event, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	dc.UploadImage(c, &event, "image", "events")
}
