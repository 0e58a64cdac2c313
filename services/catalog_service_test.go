package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
)

func reloadSpace(t *testing.T, db *gorm.DB, id uint) *models.Space {
	t.Helper()
	var space models.Space
	require.NoError(t, db.Preload("Capabilities").First(&space, id).Error)
	return &space
}

func reloadMachine(t *testing.T, db *gorm.DB, id uint) *models.Machine {
	t.Helper()
	var machine models.Machine
	require.NoError(t, db.First(&machine, id).Error)
	return &machine
}

func TestInstallMachineSyncsBothSides(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	space := createSpace(t, db, "Fabrication Station", "SP-001")
	machine := createMachine(t, db, "CNC Mill", "MC-001")

	require.NoError(t, catalog.InstallMachine(space.ID, &machine.ID))

	s := reloadSpace(t, db, space.ID)
	m := reloadMachine(t, db, machine.ID)
	require.NotNil(t, s.CurrentMachineID)
	require.NotNil(t, m.InstalledInID)
	assert.Equal(t, machine.ID, *s.CurrentMachineID)
	assert.Equal(t, space.ID, *m.InstalledInID)
	assert.True(t, s.HasCapability(machine.ID), "installing registers the capability")
}

func TestInstallMachineIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	space := createSpace(t, db, "Fabrication Station", "SP-001")
	machine := createMachine(t, db, "CNC Mill", "MC-001")

	require.NoError(t, catalog.InstallMachine(space.ID, &machine.ID))
	require.NoError(t, catalog.InstallMachine(space.ID, &machine.ID))

	s := reloadSpace(t, db, space.ID)
	assert.Len(t, s.Capabilities, 1, "repeated installs do not duplicate the capability")
}

func TestInstallMachineEvictsPreviousOccupants(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	spaceA := createSpace(t, db, "Station A", "SP-001")
	spaceB := createSpace(t, db, "Station B", "SP-002")
	mill := createMachine(t, db, "CNC Mill", "MC-001")
	printer := createMachine(t, db, "Prusa MK4", "MC-002")

	require.NoError(t, catalog.InstallMachine(spaceA.ID, &mill.ID))

	// Installing a different machine into A evicts the mill.
	require.NoError(t, catalog.InstallMachine(spaceA.ID, &printer.ID))
	assert.Nil(t, reloadMachine(t, db, mill.ID).InstalledInID)
	assert.Equal(t, printer.ID, *reloadSpace(t, db, spaceA.ID).CurrentMachineID)

	// Moving the printer to B clears A's claim on it.
	require.NoError(t, catalog.InstallMachine(spaceB.ID, &printer.ID))
	assert.Nil(t, reloadSpace(t, db, spaceA.ID).CurrentMachineID)
	assert.Equal(t, spaceB.ID, *reloadMachine(t, db, printer.ID).InstalledInID)
}

func TestInstallMachineClear(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	space := createSpace(t, db, "Fabrication Station", "SP-001")
	machine := createMachine(t, db, "CNC Mill", "MC-001")

	require.NoError(t, catalog.InstallMachine(space.ID, &machine.ID))
	require.NoError(t, catalog.InstallMachine(space.ID, nil))

	assert.Nil(t, reloadSpace(t, db, space.ID).CurrentMachineID)
	assert.Nil(t, reloadMachine(t, db, machine.ID).InstalledInID)
}

func TestInstallMachineNotFound(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	space := createSpace(t, db, "Fabrication Station", "SP-001")

	missing := uint(999)
	assert.ErrorIs(t, catalog.InstallMachine(space.ID, &missing), ErrNotFound)
	assert.ErrorIs(t, catalog.InstallMachine(999, nil), ErrNotFound)
}

func TestLookupsByCustomID(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	space := createSpace(t, db, "Fabrication Station", "SP-001")
	course := createCourse(t, db, "Laser Safety")
	machine := createMachine(t, db, "CNC Mill", "MC-001", course)
	require.NoError(t, catalog.InstallMachine(space.ID, &machine.ID))

	s, err := catalog.SpaceByCustomID("SP-001")
	require.NoError(t, err)
	require.NotNil(t, s.CurrentMachine)
	assert.Len(t, s.CurrentMachine.CertificationsRequired, 1)

	m, err := catalog.MachineByCustomID("MC-001")
	require.NoError(t, err)
	require.NotNil(t, m.InstalledIn)
	assert.Equal(t, "SP-001", m.InstalledIn.CustomID)

	_, err = catalog.SpaceByCustomID("SP-999")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = catalog.MachineByCustomID("MC-999")
	assert.ErrorIs(t, err, ErrNotFound)
}
