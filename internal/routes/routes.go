package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/cache"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/config"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/handlers"
	infraRepo "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/infra/repository"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/middleware"
	ucAppointment "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/usecase/appointment"
	ucBlocked "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/usecase/blockedslot"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	slotCache := cache.NewAvailabilityCache(rdb)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	updateUC := ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	softDeleteUC := ucAppointment.NewSoftDeleteAppointment(appointmentRepo, auditDispatcher)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	checkSlotUC := ucAppointment.NewCheckSlot(appointmentRepo)

	// ======================================================
	// USE CASES — BLOCKED SLOTS
	// ======================================================
	createBlockedUC := ucBlocked.NewCreateBlockedSlot(appointmentRepo, auditDispatcher)
	deleteBlockedUC := ucBlocked.NewDeleteBlockedSlot(appointmentRepo, auditDispatcher)
	cleanupBlockedUC := ucBlocked.NewCleanupExpiredBlocks(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		updateUC,
		confirmUC,
		completeUC,
		cancelUC,
		softDeleteUC,
		listByDateUC,
		listByMonthUC,
		slotCache,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(
		availabilityUC,
		checkSlotUC,
		slotCache,
	)

	blockedSlotHandler := handlers.NewBlockedSlotHandler(
		createBlockedUC,
		deleteBlockedUC,
		cleanupBlockedUC,
		slotCache,
	)

	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// AVAILABILITY (read path)
		// ------------------------------
		api.GET("/appointments/available-slots", availabilityHandler.AvailableSlots)
		api.GET("/appointments/check-slot", availabilityHandler.CheckSlot)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.ListByDate)
		api.GET("/appointments/month", appointmentHandler.ListByMonth)
		api.PATCH("/appointments/:id", appointmentHandler.Update)
		api.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)
		api.POST("/appointments/:id/restore", appointmentHandler.Restore)

		// ------------------------------
		// BLOCKED SLOTS
		// ------------------------------
		api.POST("/blocked-slots", blockedSlotHandler.Create)
		api.DELETE("/blocked-slots/:id", blockedSlotHandler.Delete)
		api.POST("/blocked-slots/cleanup", blockedSlotHandler.Cleanup)

		// ------------------------------
		// WORKING HOURS (read-only)
		// ------------------------------
		api.GET("/mechanics/:id/working-hours", workingHoursHandler.GetForMechanic)
	}
}
