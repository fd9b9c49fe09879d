package routes

import (
	"github.com/FawazNazmo/MechLink/configs"
	"github.com/FawazNazmo/MechLink/controllers"
	"github.com/FawazNazmo/MechLink/middlewares"
	"github.com/FawazNazmo/MechLink/pkg/mailer"
	"github.com/FawazNazmo/MechLink/repository"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, mail *mailer.Mailer) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	recordRepo := repository.NewServiceRecordRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	chatRepo := repository.NewChatRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	bankRepo := repository.NewBankAccountRepository(db)
	alertRepo := repository.NewAlertSettingRepository(db)
	reminderRepo := repository.NewVehicleReminderRepository(db)
	pricingRepo := repository.NewPricingRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	tokenSvc := services.NewTokenService(db, tokenRepo, mail)
	pricingSvc := services.NewPricingService(pricingRepo)
	bookingSvc := services.NewBookingService(db, bookingRepo, userRepo, recordRepo, alertRepo, pricingSvc, mail)
	mechanicSvc := services.NewMechanicService(userRepo, feedbackRepo, recordRepo)
	feedbackSvc := services.NewFeedbackService(feedbackRepo, userRepo, tokenRepo, bookingRepo)
	chatSvc := services.NewChatService(chatRepo, userRepo)
	vehicleSvc := services.NewVehicleService(vehicleRepo, recordRepo)
	historySvc := services.NewHistoryService(recordRepo, tokenRepo)
	paymentSvc := services.NewPaymentService(paymentRepo, bankRepo, bookingRepo)
	alertSvc := services.NewAlertService(alertRepo, reminderRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	tokenCtrl := controllers.NewTokenController(tokenSvc)
	bookingCtrl := controllers.NewBookingController(bookingSvc)
	mechanicCtrl := controllers.NewMechanicController(mechanicSvc)
	feedbackCtrl := controllers.NewFeedbackController(feedbackSvc)
	chatCtrl := controllers.NewChatController(chatSvc)
	vehicleCtrl := controllers.NewVehicleController(vehicleSvc)
	historyCtrl := controllers.NewHistoryController(historySvc)
	triageCtrl := controllers.NewTriageController()
	pricingCtrl := controllers.NewPricingController(pricingSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	alertCtrl := controllers.NewAlertController(alertSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(), authCtrl.Me)

	// Public
	r.GET("/mechanics", mechanicCtrl.Search) // ?q=
	r.GET("/mechanics/:id/feedback", feedbackCtrl.ListForMechanic)
	r.GET("/mechanics/:id/feedback/summary", feedbackCtrl.Summary)
	r.GET("/pricing/quote", pricingCtrl.Quote) // ?serviceType=&carSize=&cost=

	// Breakdown tokens (user)
	u := r.Group("/tokens", middlewares.AuthMiddleware("user"))
	{
		u.POST("", tokenCtrl.Raise)
		u.GET("/mine/latest", tokenCtrl.MyLatest)
	}

	// Breakdown tokens (mechanic)
	m := r.Group("/tokens", middlewares.AuthMiddleware("mechanic"))
	{
		m.GET("/nearby", tokenCtrl.Nearby) // ?lat=&lng=&radius=
		m.GET("/assigned", tokenCtrl.Assigned)
		m.PATCH("/:id/accept", tokenCtrl.Accept)
		m.PATCH("/:id/resolve", tokenCtrl.Resolve)
		m.PATCH("/:id/reject", tokenCtrl.Reject)
	}

	// Mechanics directory (user)
	r.GET("/mechanics/nearby", middlewares.AuthMiddleware(), mechanicCtrl.Nearby) // ?lat=&lng=&radius=
	r.GET("/mechanics/:id/integrity", middlewares.AuthMiddleware(), mechanicCtrl.Integrity)
	r.GET("/mechanics/:id/match", middlewares.AuthMiddleware(), mechanicCtrl.MatchScore) // ?lat=&lng=&serviceType=
	r.GET("/mechanics/:id/slot", middlewares.AuthMiddleware(), bookingCtrl.CheckSlot)    // ?date=&time=

	// Mechanic self-service
	me := r.Group("/mechanic", middlewares.AuthMiddleware("mechanic"))
	{
		me.PUT("/location", mechanicCtrl.SaveLocation)
		me.PUT("/schedule", mechanicCtrl.SaveSchedule)
		me.GET("/schedule", mechanicCtrl.GetSchedule)
		me.GET("/jobs", historyCtrl.MechanicJobs)
		me.GET("/feedback/summary", feedbackCtrl.MySummary)
		me.POST("/bank-account", paymentCtrl.CreateBankAccount)
		me.GET("/bank-account", paymentCtrl.GetBankAccount)
	}

	// Bookings
	bu := r.Group("/bookings", middlewares.AuthMiddleware("user"))
	{
		bu.POST("", bookingCtrl.Create)
		bu.GET("/mine", bookingCtrl.ListMine)
		bu.PATCH("/:id/cancel", bookingCtrl.CancelByUser)
	}
	bm := r.Group("/bookings", middlewares.AuthMiddleware("mechanic"))
	{
		bm.GET("/assigned", bookingCtrl.ListForMechanic)
		bm.PATCH("/:id/accept", bookingCtrl.Accept)
		bm.PATCH("/:id/complete", bookingCtrl.Complete)
		bm.PATCH("/:id/cancel-by-mechanic", bookingCtrl.CancelByMechanic)
		bm.PATCH("/:id/no-show", bookingCtrl.MarkNoShow)
	}

	// Feedback
	fb := r.Group("/feedback", middlewares.AuthMiddleware("user"))
	{
		fb.POST("", feedbackCtrl.Create)
		fb.GET("/pending", feedbackCtrl.Pending)
	}

	// Chat (REST)
	chat := r.Group("/chat", middlewares.AuthMiddleware())
	{
		chat.GET("/conversations", chatCtrl.Conversations)
		chat.GET("/:id", chatCtrl.Thread)
		chat.POST("/:id", chatCtrl.Send)
	}

	// Chat (WebSocket)
	hub := ws.NewChatHub(chatSvc)
	go hub.Run()
	r.GET("/ws/chat/:peerId", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)

	// Vehicles & history (user)
	v := r.Group("/vehicles", middlewares.AuthMiddleware("user"))
	{
		v.POST("", vehicleCtrl.Create)
		v.GET("", vehicleCtrl.List)
		v.GET("/:id", vehicleCtrl.Get)
		v.PATCH("/:id", vehicleCtrl.Update)
		v.GET("/:id/health", vehicleCtrl.Health)
	}
	r.GET("/history", middlewares.AuthMiddleware("user"), historyCtrl.Mine)

	// Triage
	r.POST("/triage", middlewares.AuthMiddleware(), triageCtrl.Analyze)

	// Payments (user)
	p := r.Group("/payments", middlewares.AuthMiddleware("user"))
	{
		p.POST("/deposit", paymentCtrl.RecordDeposit)
		p.GET("/mine", paymentCtrl.ListMine)
	}

	// Alerts & reminders
	al := r.Group("/alerts", middlewares.AuthMiddleware())
	{
		al.GET("/settings", alertCtrl.GetSettings)
		al.PUT("/settings", alertCtrl.SaveSettings)
		al.GET("/vehicle-reminder", alertCtrl.GetVehicleReminder)
		al.PUT("/vehicle-reminder", alertCtrl.SaveVehicleReminder)
		al.GET("/due-soon", alertCtrl.DueSoon)
	}
}
