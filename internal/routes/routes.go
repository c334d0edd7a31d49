package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	"github.com/eduqar/tutor-marketplace/internal/config"
	"github.com/eduqar/tutor-marketplace/internal/handlers"
	infraRepo "github.com/eduqar/tutor-marketplace/internal/infra/repository"
	"github.com/eduqar/tutor-marketplace/internal/lock"
	"github.com/eduqar/tutor-marketplace/internal/middleware"
	"github.com/eduqar/tutor-marketplace/internal/timezone"
	ucBooking "github.com/eduqar/tutor-marketplace/internal/usecase/booking"
	ucPayment "github.com/eduqar/tutor-marketplace/internal/usecase/payment"
	ucPayout "github.com/eduqar/tutor-marketplace/internal/usecase/payout"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, locker lock.Locker) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	payoutRepo := infraRepo.NewPayoutGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	stripeClient := ucPayment.NewStripeClient()

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		locker,
		auditDispatcher,
		cfg.CommissionRate,
		timezone.Location(cfg.MarketTimezone),
	)

	updateBookingUC := ucBooking.NewUpdateBooking(
		bookingRepo,
		auditDispatcher,
		cfg.MarketTimezone,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		cfg.MarketTimezone,
	)

	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// 🧠 USE CASES — PAYMENTS
	// ======================================================
	reconciler := ucPayment.NewReconciler(
		bookingRepo,
		auditDispatcher,
		cfg.MarketTimezone,
	)

	createIntentUC := ucPayment.NewCreateIntent(
		bookingRepo,
		stripeClient,
		auditDispatcher,
	)

	confirmPaymentUC := ucPayment.NewConfirmPayment(
		bookingRepo,
		stripeClient,
		reconciler,
	)

	// ======================================================
	// 🧠 USE CASES — PAYOUTS
	// ======================================================
	requestPayoutUC := ucPayout.NewRequestPayout(
		payoutRepo,
		bookingRepo,
		auditDispatcher,
	)

	processPayoutUC := ucPayout.NewProcessPayout(
		payoutRepo,
		auditDispatcher,
		cfg.MarketTimezone,
	)

	listPayoutsUC := ucPayout.NewListPayouts(
		payoutRepo,
		bookingRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	teacherHandler := handlers.NewTeacherHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateBookingUC,
		cancelBookingUC,
		getBookingUC,
		listBookingsUC,
	)

	paymentHandler := handlers.NewPaymentHandler(
		cfg,
		createIntentUC,
		confirmPaymentUC,
		reconciler,
	)

	payoutHandler := handlers.NewPayoutHandler(
		requestPayoutUC,
		processPayoutUC,
		listPayoutsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, cfg)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/teachers", publicHandler.ListTeachers)
			publicAPI.GET("/teachers/:id", publicHandler.GetTeacher)
			publicAPI.GET("/teachers/:id/availability", publicHandler.Availability)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 💳 WEBHOOK (signature-verified, no JWT)
		// ------------------------------
		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// 🔐 PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// TEACHER PROFILE
			// ------------------------------
			secured.POST("/me/teacher", teacherHandler.Create)
			secured.GET("/me/teacher", teacherHandler.GetMine)
			secured.PUT("/me/teacher", teacherHandler.UpdateMine)
			secured.PUT("/me/teacher/payout-account", teacherHandler.SetPayoutAccount)

			secured.GET("/me/availability", availabilityHandler.Get)
			secured.PUT("/me/availability", availabilityHandler.Update)
			secured.POST("/me/availability", availabilityHandler.Create)
			secured.DELETE("/me/availability/:id", availabilityHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.ListMine)
			secured.GET("/bookings/teacher", bookingHandler.ListForTeacher)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PUT("/bookings/:id", bookingHandler.Update)
			secured.PUT("/bookings/teacher/:id", bookingHandler.Update)
			secured.DELETE("/bookings/:id", bookingHandler.Cancel)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.POST("/payments/create-intent", paymentHandler.CreateIntent)
			secured.POST("/payments/confirm/:intent_id", paymentHandler.Confirm)

			// ------------------------------
			// PAYOUTS
			// ------------------------------
			secured.POST("/teachers/:id/payouts", payoutHandler.Request)
			secured.GET("/teachers/:id/payouts", payoutHandler.List)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.PATCH("/payouts/:id", payoutHandler.Process)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
