package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/controllers"
	"github.com/hatchlab/hatchery-backend/middlewares"
	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

// SetupRouter wires every endpoint. Catalog browsing, feeds and the
// directory pages are public; booking requires a login; catalog and
// schedule mutations require staff; ticket resolution requires admin.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.NewRateLimiter(100, 60).RateLimit())

	userCtrl := controllers.NewUserController(db)
	spaceCtrl := controllers.NewSpaceController(db)
	machineCtrl := controllers.NewMachineController(db)
	trainerCtrl := controllers.NewTrainerController(db)
	reservationCtrl := controllers.NewReservationController(db)
	scheduleCtrl := controllers.NewScheduleController(db)
	trainingCtrl := controllers.NewTrainingController(db)
	ticketCtrl := controllers.NewHelpTicketController(db)
	directoryCtrl := controllers.NewDirectoryController(db)

	feedCache := cache.New(30*time.Second, time.Minute)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.Static("/uploads", utils.UploadDir())

	strict := middlewares.NewStrictRateLimiter()
	r.POST("/register", strict, userCtrl.Register)
	r.POST("/login", strict, userCtrl.Login)

	// Public catalog and informational pages.
	r.GET("/spaces", spaceCtrl.GetAllSpaces)
	r.GET("/spaces/:custom_id", spaceCtrl.GetSpace)
	r.GET("/machines", machineCtrl.GetAllMachines)
	r.GET("/machines/by-name/:name", machineCtrl.GetMachinesByName)
	r.GET("/machines/:custom_id", machineCtrl.GetMachine)
	r.GET("/machines/:custom_id/trainers", trainerCtrl.GetTrainersForMachine)
	r.GET("/trainers", trainerCtrl.GetAllTrainers)
	r.GET("/trainers/:id", trainerCtrl.GetTrainer)
	r.GET("/training-courses", trainingCtrl.GetAllCourses)
	r.GET("/schedules", scheduleCtrl.GetAllSchedules)
	r.GET("/schedules/weekly-hours", scheduleCtrl.WeeklyHours)
	r.GET("/contacts", directoryCtrl.GetContacts)
	r.GET("/projects", directoryCtrl.GetProjects)
	r.GET("/events", directoryCtrl.GetEvents)

	// Calendar feeds are read-only and briefly cached.
	cached := middlewares.Cache(feedCache, 30*time.Second)
	r.GET("/feeds/spaces/:custom_id", cached, reservationCtrl.SpaceFeed)
	r.GET("/feeds/machines/:custom_id", cached, reservationCtrl.MachineFeed)
	r.GET("/feeds/trainers", cached, reservationCtrl.AllTrainersFeed)
	r.GET("/feeds/trainers/:id", cached, reservationCtrl.TrainerFeed)

	// Anything a logged-in user may do.
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/my/certifications", trainingCtrl.MyCertifications)

		auth.POST("/reservations/spaces/:custom_id", reservationCtrl.CreateForSpace)
		auth.POST("/reservations/machines/:custom_id", reservationCtrl.CreateForMachine)
		auth.POST("/reservations/trainers/:id", reservationCtrl.CreateForTrainer)
		auth.GET("/my/reservations", reservationCtrl.MyReservations)
		auth.PATCH("/reservations/:id", reservationCtrl.UpdateReservation)
		auth.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)

		auth.POST("/help-tickets", ticketCtrl.CreateTicket)
		auth.GET("/my/help-tickets", ticketCtrl.MyTickets)
	}

	// Staff manage the catalog, schedules, training and approvals.
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))
	{
		staff.POST("/spaces", spaceCtrl.CreateSpace)
		staff.PATCH("/spaces/:custom_id", spaceCtrl.UpdateSpace)
		staff.PUT("/spaces/:custom_id/machine", spaceCtrl.InstallMachine)
		staff.DELETE("/spaces/:custom_id", spaceCtrl.DeleteSpace)
		staff.POST("/spaces/:custom_id/image", spaceCtrl.UploadImage)

		staff.POST("/machines", machineCtrl.CreateMachine)
		staff.PATCH("/machines/:custom_id", machineCtrl.UpdateMachine)
		staff.DELETE("/machines/:custom_id", machineCtrl.DeleteMachine)
		staff.POST("/machines/:custom_id/image", machineCtrl.UploadImage)

		staff.POST("/trainers", trainerCtrl.CreateTrainer)
		staff.PATCH("/trainers/:id", trainerCtrl.UpdateTrainer)
		staff.DELETE("/trainers/:id", trainerCtrl.DeleteTrainer)
		staff.POST("/trainers/:id/image", trainerCtrl.UploadImage)

		staff.POST("/reservations/:id/approval", reservationCtrl.SetApproval)

		staff.POST("/schedules", scheduleCtrl.CreateSchedule)
		staff.PATCH("/schedules/:id", scheduleCtrl.UpdateSchedule)
		staff.DELETE("/schedules/:id", scheduleCtrl.DeleteSchedule)
		staff.POST("/schedules/:id/activate", scheduleCtrl.Activate)
		staff.POST("/schedules/:id/deactivate", scheduleCtrl.Deactivate)

		staff.POST("/training-courses", trainingCtrl.CreateCourse)
		staff.POST("/training-records", trainingCtrl.GrantRecord)

		staff.POST("/contacts", directoryCtrl.CreateContact)
		staff.POST("/contacts/:id/image", directoryCtrl.UploadContactPhoto)
		staff.POST("/projects", directoryCtrl.CreateProject)
		staff.POST("/projects/:id/image", directoryCtrl.UploadProjectImage)
		staff.POST("/events", directoryCtrl.CreateEvent)
		staff.POST("/events/:id/image", directoryCtrl.UploadEventImage)
	}

	// Admin-only surfaces.
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/help-tickets", ticketCtrl.ListOpenTickets)
		admin.POST("/help-tickets/:id/resolve", ticketCtrl.ResolveTicket)
	}

	return r
}
