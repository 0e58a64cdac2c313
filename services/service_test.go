package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.TrainingCourse{}, &models.Person{},
		&models.TrainingRecord{}, &models.Machine{}, &models.Space{},
		&models.Trainer{}, &models.Reservation{}, &models.Schedule{},
		&models.HelpTicket{}, &models.Contact{}, &models.Project{}, &models.Event{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@test.local",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, name string) *models.TrainingCourse {
	t.Helper()
	course := &models.TrainingCourse{Name: name}
	require.NoError(t, db.Create(course).Error)
	return course
}

func createMachine(t *testing.T, db *gorm.DB, name, customID string, required ...*models.TrainingCourse) *models.Machine {
	t.Helper()
	machine := &models.Machine{Name: name, CustomID: customID, Category: "CNC", Amount: 1}
	require.NoError(t, db.Create(machine).Error)
	for _, course := range required {
		require.NoError(t, db.Model(machine).Association("CertificationsRequired").Append(course))
	}
	return machine
}

func createSpace(t *testing.T, db *gorm.DB, title, customID string) *models.Space {
	t.Helper()
	space := &models.Space{
		Title: title, CustomID: customID,
		Location: "Main Building", Type: models.SpaceTypeStation,
		Floor: 1, Capacity: 2,
	}
	require.NoError(t, db.Create(space).Error)
	return space
}

func grantCourse(t *testing.T, db *gorm.DB, user *models.User, course *models.TrainingCourse) {
	t.Helper()
	certs := NewCertificationService(db)
	require.NoError(t, certs.Grant(user.ID, course.ID))
}

func linkPerson(t *testing.T, db *gorm.DB, user *models.User) *models.Person {
	t.Helper()
	person := &models.Person{UserID: user.ID, Name: user.Name}
	require.NoError(t, db.Create(person).Error)
	return person
}
