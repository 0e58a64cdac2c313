package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/services"
	"github.com/hatchlab/hatchery-backend/utils"
)

type MachineController struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewMachineController(db *gorm.DB) *MachineController {
	return &MachineController{DB: db, Catalog: services.NewCatalogService(db)}
}

type machineRequest struct {
	Name             string  `json:"name" binding:"required"`
	CustomID         string  `json:"custom_id" binding:"required"`
	About            string  `json:"about"`
	Category         string  `json:"category" binding:"required"`
	Specifications   string  `json:"specifications"`
	Amount           float64 `json:"amount"`
	InstalledIn      *uint   `json:"installed_in_id"`
	CertificationIDs []uint  `json:"certification_ids"`
}

func validCategory(category string) bool {
	for _, c := range models.MachineCategories {
		if c == category {
			return true
		}
	}
	return false
}

// machineListEntry is a machine row in the deduplicated list view,
// annotated with every location where a machine of that name is
// installed.
type machineListEntry struct {
	models.Machine
	AllLocations []string `json:"all_locations"`
}

// GetAllMachines lists machines with the catalog filters (q over
// name/custom_id/specifications, category, space_location),
// deduplicated by name with per-name installed locations aggregated.
func (mc *MachineController) GetAllMachines(c *gin.Context) {
	query := mc.DB.Model(&models.Machine{}).Preload("InstalledIn").Preload("CertificationsRequired")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR custom_id LIKE ? OR specifications LIKE ?", like, like, like)
	}
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	if loc := c.Query("space_location"); loc != "" {
		query = query.Joins("JOIN spaces ON spaces.id = machines.installed_in_id").
			Where("spaces.location = ?", loc)
	}

	var machines []models.Machine
	if err := query.Order("name, id").Find(&machines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Duplicate names are the same kind of machine in different places;
	// show each kind once with all its installed locations.
	locationsByName := make(map[string]map[string]bool)
	for _, m := range machines {
		if m.InstalledIn != nil {
			if locationsByName[m.Name] == nil {
				locationsByName[m.Name] = make(map[string]bool)
			}
			locationsByName[m.Name][m.InstalledIn.Location] = true
		}
	}

	seen := make(map[string]bool)
	entries := make([]machineListEntry, 0, len(machines))
	for _, m := range machines {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true

		var locs []string
		for loc := range locationsByName[m.Name] {
			locs = append(locs, loc)
		}
		sort.Strings(locs)
		entries = append(entries, machineListEntry{Machine: m, AllLocations: locs})
	}

	utils.RespondJSON(c, http.StatusOK, "List of machines", entries)
}

// GetMachinesByName returns every machine sharing the exact name,
// together with the locations where they are installed.
func (mc *MachineController) GetMachinesByName(c *gin.Context) {
	name := c.Param("name")

	var machines []models.Machine
	if err := mc.DB.Preload("InstalledIn").Preload("CertificationsRequired").
		Where("name = ?", name).Find(&machines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(machines) == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("no machines found with that name"))
		return
	}

	locSet := make(map[string]bool)
	for _, m := range machines {
		if m.InstalledIn != nil {
			locSet[m.InstalledIn.Location+": "+m.InstalledIn.Title] = true
		}
	}
	var locations []string
	for l := range locSet {
		locations = append(locations, l)
	}
	sort.Strings(locations)

	utils.RespondJSON(c, http.StatusOK, "Machines by name", gin.H{
		"name":      name,
		"machines":  machines,
		"locations": locations,
	})
}

// CreateMachine adds a machine; supplying installed_in_id triggers the
// machine-side install sync.
func (mc *MachineController) CreateMachine(c *gin.Context) {
	var req machineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !validCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category"))
		return
	}

	machine := models.Machine{
		Name:           req.Name,
		CustomID:       req.CustomID,
		About:          req.About,
		Category:       req.Category,
		Specifications: req.Specifications,
		Amount:         req.Amount,
	}
	if machine.Amount <= 0 {
		machine.Amount = 1
	}

	if err := mc.DB.Create(&machine).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(req.CertificationIDs) > 0 {
		var courses []models.TrainingCourse
		if err := mc.DB.Find(&courses, req.CertificationIDs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := mc.DB.Model(&machine).Association("CertificationsRequired").Replace(courses); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if req.InstalledIn != nil {
		if err := mc.Catalog.InstallMachine(*req.InstalledIn, &machine.ID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	created, err := mc.Catalog.MachineByID(machine.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Machine created: %s (%s)", created.Name, created.CustomID)
	utils.RespondJSON(c, http.StatusCreated, "Machine created successfully", created)
}

// GetMachine returns one machine by custom ID.
func (mc *MachineController) GetMachine(c *gin.Context) {
	machine, err := mc.Catalog.MachineByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Machine detail", machine)
}

// UpdateMachine edits a machine. The installed_in field goes through
// the same catalog sync as the space-side edit, so both paths converge.
func (mc *MachineController) UpdateMachine(c *gin.Context) {
	machine, err := mc.Catalog.MachineByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req machineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !validCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category"))
		return
	}

	updates := map[string]interface{}{
		"name":           req.Name,
		"about":          req.About,
		"category":       req.Category,
		"specifications": req.Specifications,
	}
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}
	if err := mc.DB.Model(machine).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if req.CertificationIDs != nil {
		var courses []models.TrainingCourse
		if len(req.CertificationIDs) > 0 {
			if err := mc.DB.Find(&courses, req.CertificationIDs).Error; err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
		if err := mc.DB.Model(machine).Association("CertificationsRequired").Replace(courses); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if req.InstalledIn != nil {
		if err := mc.Catalog.InstallMachine(*req.InstalledIn, &machine.ID); err != nil {
			respondServiceError(c, err)
			return
		}
	} else if machine.InstalledInID != nil {
		// Machine-side clear: detach from whichever space hosts it.
		if err := mc.Catalog.InstallMachine(*machine.InstalledInID, nil); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	updated, err := mc.Catalog.MachineByID(machine.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Machine updated", updated)
}

// DeleteMachine removes a machine.
func (mc *MachineController) DeleteMachine(c *gin.Context) {
	machine, err := mc.Catalog.MachineByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if machine.InstalledInID != nil {
		if err := mc.Catalog.InstallMachine(*machine.InstalledInID, nil); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if err := mc.DB.Select("CertificationsRequired").Delete(machine).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Machine deleted: %s", machine.CustomID)
	utils.RespondJSON(c, http.StatusOK, "Machine deleted", nil)
}

// UploadImage attaches a photo to the machine.
func (mc *MachineController) UploadImage(c *gin.Context) {
	machine, err := mc.Catalog.MachineByCustomID(c.Param("custom_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	url, err := utils.SaveImage(c, file, "machines")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.DB.Model(machine).Update("machine_image", url).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Image uploaded", gin.H{"url": url})
}
