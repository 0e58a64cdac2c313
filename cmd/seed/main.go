// Command seed loads demonstration fixtures: spaces, machines with
// their certification requirements, trainers, training courses, a
// semester schedule and demo accounts.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/config"
	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/services"
	"github.com/hatchlab/hatchery-backend/utils"
)

func main() {
	wipe := flag.Bool("wipe", false, "delete existing rows before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.TrainingCourse{}, &models.Person{},
		&models.TrainingRecord{}, &models.Machine{}, &models.Space{},
		&models.Trainer{}, &models.Reservation{}, &models.Schedule{},
		&models.HelpTicket{}, &models.Contact{}, &models.Project{}, &models.Event{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if *wipe {
		for _, m := range []interface{}{
			&models.Reservation{}, &models.TrainingRecord{}, &models.Person{},
			&models.Schedule{}, &models.Trainer{}, &models.Space{},
			&models.Machine{}, &models.TrainingCourse{}, &models.HelpTicket{},
			&models.Contact{}, &models.Project{}, &models.Event{}, &models.User{},
		} {
			if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				log.Fatalf("wipe failed: %v", err)
			}
		}
	}

	if err := seed(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("seeding complete")
}

func seed(db *gorm.DB) error {
	users := []struct {
		name, email, password, role string
	}{
		{"Avery Admin", "admin@hatchery.test", "admin-password", models.RoleAdmin},
		{"Sam Staff", "staff@hatchery.test", "staff-password", models.RoleStaff},
		{"Riley Student", "student@hatchery.test", "student-password", models.RoleStudent},
	}
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{Name: u.name, Email: u.email, Password: string(hashed), Role: u.role}
		if err := db.Where("email = ?", u.email).FirstOrCreate(&user, user).Error; err != nil {
			return err
		}
	}

	courses := map[string]*models.TrainingCourse{}
	for _, name := range []string{"Laser Safety", "3D Printer Basics", "CNC Operation", "Shop Orientation"} {
		course := &models.TrainingCourse{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(course).Error; err != nil {
			return err
		}
		courses[name] = course
	}

	machines := []struct {
		name, customID, category string
		required                 []string
	}{
		{"CNC Mill", "MC-001", "CNC", []string{"Laser Safety", "CNC Operation"}},
		{"Prusa MK4", "MC-002", "3D Printing", []string{"3D Printer Basics"}},
		{"Prusa MK4", "MC-003", "3D Printing", []string{"3D Printer Basics"}},
		{"Glowforge Pro", "MC-004", "Laser Cutting", []string{"Laser Safety"}},
		{"Soldering Station", "MC-005", "Electronics", nil},
	}
	byCustomID := map[string]*models.Machine{}
	for _, m := range machines {
		machine := &models.Machine{Name: m.name, CustomID: m.customID, Category: m.category, Amount: 1}
		if err := db.Where("custom_id = ?", m.customID).FirstOrCreate(machine).Error; err != nil {
			return err
		}
		var reqs []models.TrainingCourse
		for _, name := range m.required {
			reqs = append(reqs, *courses[name])
		}
		if err := db.Model(machine).Association("CertificationsRequired").Replace(reqs); err != nil {
			return err
		}
		byCustomID[m.customID] = machine
	}

	spaces := []struct {
		title, customID, location, spaceType string
		floor, capacity                      int
		machine                              string
	}{
		{"Fabrication Station 1", "SP-001", "Workshop Hall", models.SpaceTypeStation, 1, 2, "MC-001"},
		{"Print Station 1", "SP-002", "Main Building", models.SpaceTypeStation, 2, 1, "MC-002"},
		{"Open Bench", "SP-003", "Main Building", models.SpaceTypeStation, 2, 4, ""},
		{"Classroom A", "CS-001", "Annex", models.SpaceTypeClassroom, 1, 24, ""},
	}
	catalog := services.NewCatalogService(db)
	for _, s := range spaces {
		space := &models.Space{
			Title: s.title, CustomID: s.customID, Location: s.location,
			Type: s.spaceType, Floor: s.floor, Capacity: s.capacity,
		}
		if err := db.Where("custom_id = ?", s.customID).FirstOrCreate(space).Error; err != nil {
			return err
		}
		if s.machine != "" {
			id := byCustomID[s.machine].ID
			if err := catalog.InstallMachine(space.ID, &id); err != nil {
				return err
			}
		}
	}

	trainers := []struct {
		name, customID, major string
		certs                 []string
	}{
		{"Jordan Lee", "TR-001", "Mechanical Engineering", []string{"CNC", "Laser Cutting"}},
		{"Casey Park", "TR-002", "Industrial Design", []string{"3D Printing"}},
	}
	for _, t := range trainers {
		trainer := &models.Trainer{Name: t.name, CustomID: t.customID, Major: t.major}
		trainer.SetCertificates(t.certs)
		if err := db.Where("custom_id = ?", t.customID).FirstOrCreate(trainer).Error; err != nil {
			return err
		}
	}

	schedule := &models.Schedule{
		Name:       "Fall Semester",
		DaysOfWeek: "Mon,Tue,Wed,Thu,Fri",
		StartDate:  "2026-08-24",
		EndDate:    "2026-12-18",
		OpenTime:   "09:00",
		CloseTime:  "21:00",
		IsActive:   true,
	}
	return db.Where("name = ?", schedule.Name).FirstOrCreate(schedule).Error
}
