package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/config"
	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/router"
	"github.com/hatchlab/hatchery-backend/utils"
)

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.TrainingCourse{},
		&models.Person{},
		&models.TrainingRecord{},
		&models.Machine{},
		&models.Space{},
		&models.Trainer{},
		&models.Reservation{},
		&models.Schedule{},
		&models.HelpTicket{},
		&models.Contact{},
		&models.Project{},
		&models.Event{},
	)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	utils.InitDB(db)

	if err := autoMigrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	r := router.SetupRouter(db)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("setting trusted proxies: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.InfoLogger.Printf("Hatchery backend listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
