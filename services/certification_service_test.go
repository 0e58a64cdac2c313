package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatchlab/hatchery-backend/models"
)

func TestMissingCoursesEmptyRequirementNeedsNothing(t *testing.T) {
	db := setupTestDB(t)
	certs := NewCertificationService(db)
	user := createUser(t, db, "Riley Student", models.RoleStudent)

	missing, err := certs.MissingCourses(user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestMissingCoursesFailsClosedWithoutPerson(t *testing.T) {
	db := setupTestDB(t)
	certs := NewCertificationService(db)
	user := createUser(t, db, "Riley Student", models.RoleStudent)
	course := createCourse(t, db, "Laser Safety")

	missing, err := certs.MissingCourses(user.ID, []models.TrainingCourse{*course})
	assert.ErrorIs(t, err, ErrNoPersonRecord)
	assert.Len(t, missing, 1)
}

func TestMissingCoursesReportsExactSubset(t *testing.T) {
	db := setupTestDB(t)
	certs := NewCertificationService(db)
	user := createUser(t, db, "Riley Student", models.RoleStudent)
	safety := createCourse(t, db, "Laser Safety")
	ops := createCourse(t, db, "CNC Operation")
	grantCourse(t, db, user, safety)

	missing, err := certs.MissingCourses(user.ID, []models.TrainingCourse{*safety, *ops})
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "CNC Operation", missing[0].Name)
}

func TestGrantCreatesPersonAndIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	certs := NewCertificationService(db)
	user := createUser(t, db, "Riley Student", models.RoleStudent)
	course := createCourse(t, db, "Laser Safety")

	require.NoError(t, certs.Grant(user.ID, course.ID))
	require.NoError(t, certs.Grant(user.ID, course.ID))

	var records int64
	require.NoError(t, db.Model(&models.TrainingRecord{}).Count(&records).Error)
	assert.EqualValues(t, 1, records)

	var person models.Person
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&person).Error)
	assert.Equal(t, user.Name, person.Name)
}

func TestGrantUnknownCourseOrUser(t *testing.T) {
	db := setupTestDB(t)
	certs := NewCertificationService(db)
	user := createUser(t, db, "Riley Student", models.RoleStudent)
	course := createCourse(t, db, "Laser Safety")

	assert.ErrorIs(t, certs.Grant(user.ID, 999), ErrNotFound)
	assert.ErrorIs(t, certs.Grant(999, course.ID), ErrNotFound)
}
