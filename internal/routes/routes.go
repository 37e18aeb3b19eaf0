package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/audit"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/cache"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/config"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/handlers"
	infraRepo "github.com/RodrigobSilva/PsicoCare-sub000/internal/infra/repository"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/middleware"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/notify"
	ucSchedule "github.com/RodrigobSilva/PsicoCare-sub000/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, store cache.Cache) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	var notifier notify.Notifier
	if mailer := notify.NewMailNotifier(cfg.MailAPIKey, cfg.MailSenderEmail, cfg.MailSenderName); mailer != nil {
		notifier = mailer
	}
	notifyDispatcher := notify.NewDispatcher(notifier)

	slotCache := ucSchedule.NewSlotCache(store)

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucSchedule.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
		notifyDispatcher,
		slotCache,
		cfg.EnforceAvailability,
	)
	confirmUC := ucSchedule.NewConfirmAppointment(scheduleRepo, auditDispatcher)
	cancelUC := ucSchedule.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
		notifyDispatcher,
		slotCache,
	)
	completeUC := ucSchedule.NewCompleteAppointment(scheduleRepo, auditDispatcher)
	rescheduleUC := ucSchedule.NewRescheduleAppointment(
		scheduleRepo,
		auditDispatcher,
		slotCache,
		cfg.EnforceAvailability,
	)
	listUC := ucSchedule.NewListAppointments(scheduleRepo)
	calendarUC := ucSchedule.NewProjectCalendar(scheduleRepo, cfg.CalendarDayCap)
	slotsUC := ucSchedule.NewGetSlots(scheduleRepo, slotCache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		confirmUC,
		cancelUC,
		completeUC,
		rescheduleUC,
		listUC,
		calendarUC,
		slotsUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/branches", clinicHandler.ListBranches)
			secured.GET("/branches/:id/rooms", clinicHandler.ListRooms)
			secured.GET("/psychologists", clinicHandler.ListPsychologists)

			// disponibilidade semanal + bloqueios
			secured.GET("/psychologists/:id/availability", availabilityHandler.GetWindows)
			secured.PUT("/psychologists/:id/availability", availabilityHandler.UpdateWindows)
			secured.DELETE("/psychologists/:id/availability/:wid", availabilityHandler.DeleteWindow)

			secured.GET("/psychologists/:id/exceptions", availabilityHandler.ListBlocks)
			secured.POST("/psychologists/:id/exceptions", availabilityHandler.CreateBlock)
			secured.PATCH(
				"/exceptions/:id/approve",
				middleware.RequireRole("admin"),
				availabilityHandler.ApproveBlock,
			)

			// agendamentos
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/calendar", appointmentHandler.Calendar)
			secured.GET("/appointments/slots", appointmentHandler.Slots)
			secured.PATCH("/appointments/:id", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		}
	}
}
