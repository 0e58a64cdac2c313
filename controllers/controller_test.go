package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared",
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
		Password: "$2a$10$abcdefghijklmnopqrstuv",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
