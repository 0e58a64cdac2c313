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

func catalogRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	sc := NewSpaceController(db)
	mc := NewMachineController(db)

	r.GET("/spaces", sc.GetAllSpaces)
	r.GET("/spaces/:custom_id", sc.GetSpace)
	r.GET("/machines", mc.GetAllMachines)
	r.GET("/machines/by-name/:name", mc.GetMachinesByName)

	staff := r.Group("/staff", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))
	staff.POST("/spaces", sc.CreateSpace)
	staff.PATCH("/spaces/:custom_id", sc.UpdateSpace)
	staff.PUT("/spaces/:custom_id/machine", sc.InstallMachine)
	staff.DELETE("/spaces/:custom_id", sc.DeleteSpace)
	staff.POST("/machines", mc.CreateMachine)
	staff.PATCH("/machines/:custom_id", mc.UpdateMachine)
	return r
}

func TestSpaceCRUDRequiresStaff(t *testing.T) {
	db := setupTestDB(t)
	r := catalogRouter(db)
	student := createUser(t, db, "Riley Student", models.RoleStudent)
	staff := createUser(t, db, "Sam Staff", models.RoleStaff)

	body := gin.H{
		"title": "Classroom A", "custom_id": "CS-001",
		"location": "Annex", "floor": 1, "type": "classroom", "capacity": 24,
	}

	w := doJSON(t, r, "POST", "/staff/spaces", tokenFor(t, student), body)
	requireStatus(t, w, http.StatusForbidden)

	w = doJSON(t, r, "POST", "/staff/spaces", tokenFor(t, staff), body)
	requireStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, "GET", "/spaces/CS-001", "", nil)
	requireStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Classroom A", data["title"])

	w = doJSON(t, r, "DELETE", "/staff/spaces/CS-001", tokenFor(t, staff), nil)
	requireStatus(t, w, http.StatusOK)
	w = doJSON(t, r, "GET", "/spaces/CS-001", "", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestInstallSyncConvergesFromBothEditPaths(t *testing.T) {
	db := setupTestDB(t)
	r := catalogRouter(db)
	staff := createUser(t, db, "Sam Staff", models.RoleStaff)
	token := tokenFor(t, staff)

	w := doJSON(t, r, "POST", "/staff/machines", token, gin.H{
		"name": "CNC Mill", "custom_id": "MC-001", "category": "CNC",
	})
	requireStatus(t, w, http.StatusCreated)
	w = doJSON(t, r, "POST", "/staff/spaces", token, gin.H{
		"title": "Station A", "custom_id": "SP-001",
		"location": "Workshop Hall", "floor": 1, "type": "station",
	})
	requireStatus(t, w, http.StatusCreated)

	// Space-side install.
	w = doJSON(t, r, "PUT", "/staff/spaces/SP-001/machine", token, gin.H{"machine_id": 1})
	requireStatus(t, w, http.StatusOK)

	var machine models.Machine
	require.NoError(t, db.First(&machine, 1).Error)
	require.NotNil(t, machine.InstalledInID)
	assert.EqualValues(t, 1, *machine.InstalledInID)

	// Machine-side clear via update without installed_in_id.
	w = doJSON(t, r, "PATCH", "/staff/machines/MC-001", token, gin.H{
		"name": "CNC Mill", "custom_id": "MC-001", "category": "CNC",
	})
	requireStatus(t, w, http.StatusOK)

	var space models.Space
	require.NoError(t, db.First(&space, 1).Error)
	assert.Nil(t, space.CurrentMachineID)
	require.NoError(t, db.First(&machine, 1).Error)
	assert.Nil(t, machine.InstalledInID)
}

func TestSpaceListFilters(t *testing.T) {
	db := setupTestDB(t)
	r := catalogRouter(db)

	spaces := []models.Space{
		{Title: "Station A", CustomID: "SP-001", Location: "Workshop Hall", Type: models.SpaceTypeStation, Floor: 1, Capacity: 2},
		{Title: "Classroom A", CustomID: "CS-001", Location: "Annex", Type: models.SpaceTypeClassroom, Floor: 1, Capacity: 24},
	}
	for i := range spaces {
		require.NoError(t, db.Create(&spaces[i]).Error)
	}
	machine := models.Machine{Name: "CNC Mill", CustomID: "MC-001", Category: "CNC", Amount: 1}
	require.NoError(t, db.Create(&machine).Error)
	require.NoError(t, db.Model(&spaces[0]).Update("current_machine_id", machine.ID).Error)

	w := doJSON(t, r, "GET", "/spaces?type=classroom", "", nil)
	requireStatus(t, w, http.StatusOK)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 1)

	w = doJSON(t, r, "GET", "/spaces?has_machines=yes", "", nil)
	entries := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, "SP-001", entries[0].(map[string]interface{})["custom_id"])

	w = doJSON(t, r, "GET", "/spaces?q=Classroom", "", nil)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 1)
}

func TestMachineListDeduplicatesByName(t *testing.T) {
	db := setupTestDB(t)
	r := catalogRouter(db)

	spaceA := models.Space{Title: "Station A", CustomID: "SP-001", Location: "Main Building", Type: models.SpaceTypeStation, Floor: 1, Capacity: 1}
	spaceB := models.Space{Title: "Station B", CustomID: "SP-002", Location: "Annex", Type: models.SpaceTypeStation, Floor: 2, Capacity: 1}
	require.NoError(t, db.Create(&spaceA).Error)
	require.NoError(t, db.Create(&spaceB).Error)

	m1 := models.Machine{Name: "Prusa MK4", CustomID: "MC-001", Category: "3D Printing", Amount: 1, InstalledInID: &spaceA.ID}
	m2 := models.Machine{Name: "Prusa MK4", CustomID: "MC-002", Category: "3D Printing", Amount: 1, InstalledInID: &spaceB.ID}
	require.NoError(t, db.Create(&m1).Error)
	require.NoError(t, db.Create(&m2).Error)

	w := doJSON(t, r, "GET", "/machines", "", nil)
	requireStatus(t, w, http.StatusOK)
	entries := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, entries, 1, "same-name machines collapse into one row")
	row := entries[0].(map[string]interface{})
	locs := row["all_locations"].([]interface{})
	assert.ElementsMatch(t, []interface{}{"Main Building", "Annex"}, locs)

	w = doJSON(t, r, "GET", "/machines/by-name/Prusa%20MK4", "", nil)
	requireStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["machines"].([]interface{}), 2)

	w = doJSON(t, r, "GET", "/machines/by-name/Unknown", "", nil)
	requireStatus(t, w, http.StatusNotFound)
}
