package routes

import (
	"time"

	"clinichub/handlers"
	"clinichub/middleware"
	"clinichub/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route group onto r.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(corsMiddleware(hb.AllowOrigins))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequests))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterChatRoutes(r, hb)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterUserRoutes registers sign-up, sign-in and patient endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterHandler)
		api.POST("/login", hb.Users.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuth(hb.Auth))
		api.POST("/logout", hb.Users.LogoutHandler)
		api.GET("/me", hb.Users.MeHandler)
		api.PUT("/me", hb.Users.UpdateMeHandler)

		patient := api.Group("", middleware.RequireRole(models.RolePatient))
		patient.GET("/showAppointment", hb.Appointments.ListHandler)
		patient.PUT("/appointment/cancel", hb.Appointments.CancelHandler)
		patient.GET("/reports", hb.Reports.ListHandler)
	}
}

// RegisterAdminRoutes registers the admin panel endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin", middleware.JWTAuth(hb.Auth), middleware.RequireRole(models.RoleAdmin))
	{
		api.GET("/dashboard", hb.Appointments.AdminDashboardHandler)
		api.GET("/patients", hb.Users.ListPatientsHandler)

		api.POST("/doctors", hb.Doctors.CreateDoctorHandler)
		api.GET("/doctors", hb.Doctors.AdminListDoctorsHandler)
		api.GET("/doctors/:id", hb.Doctors.GetDoctorHandler)
		api.PUT("/doctors/:id", hb.Doctors.UpdateDoctorHandler)
		api.DELETE("/doctors/:id", hb.Doctors.DeleteDoctorHandler)
		api.PATCH("/doctors/:id/availability", hb.Doctors.SetAvailabilityHandler)
		api.POST("/doctors/:id/image", hb.Doctors.UploadImageHandler)

		api.POST("/services", hb.Services.CreateServiceHandler)
		api.GET("/services", hb.Services.AdminListServicesHandler)
		api.PUT("/services/:id", hb.Services.UpdateServiceHandler)
		api.DELETE("/services/:id", hb.Services.DeleteServiceHandler)

		api.GET("/appointments", hb.Appointments.ListHandler)
		api.PUT("/appointments/:id/cancel", hb.Appointments.AdminCancelHandler)
	}
}

// RegisterDoctorRoutes registers the public directory and the doctor panel.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		// Doctor panel; static paths take precedence over /:id.
		panel := api.Group("", middleware.JWTAuth(hb.Auth), middleware.RequireRole(models.RoleDoctor))
		panel.GET("/appointments", hb.Appointments.ListHandler)
		panel.PUT("/appointment/cancel", hb.Appointments.CancelHandler)
		panel.PUT("/appointment/reschedule", hb.Appointments.RescheduleHandler)
		panel.PUT("/appointment/complete", hb.Appointments.CompleteHandler)
		panel.GET("/dashboard", hb.Appointments.DoctorDashboardHandler)

		api.GET("", hb.Doctors.ListDoctorsHandler)
		api.GET("/:id", hb.Doctors.GetDoctorHandler)
		api.GET("/:id/slots", hb.Doctors.SlotsHandler)
		api.GET("/:id/reviews", hb.Doctors.ReviewsHandler)
	}
}

// RegisterServiceRoutes registers the public services catalogue.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Services.ListServicesHandler)
		api.GET("/:id", hb.Services.GetServiceHandler)
	}
}

// RegisterAppointmentRoutes registers booking and review endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments", middleware.JWTAuth(hb.Auth))
	{
		api.POST("/book", middleware.RequireRole(models.RolePatient), hb.Appointments.BookHandler)
		api.POST("/reviews", middleware.RequireRole(models.RolePatient), hb.Reviews.SubmitHandler)
		api.GET("/:id", hb.Appointments.GetHandler)
	}
}

// RegisterNotificationRoutes registers the notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications", middleware.JWTAuth(hb.Auth))
	{
		api.GET("", hb.Notifications.ListHandler)
		api.GET("/unread-count", hb.Notifications.UnreadCountHandler)
		api.PUT("/read-all", hb.Notifications.MarkAllReadHandler)
		api.PUT("/:id/read", hb.Notifications.MarkReadHandler)
		api.DELETE("/:id", hb.Notifications.DeleteHandler)
	}
}

// RegisterReportRoutes registers medical report endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports", middleware.JWTAuth(hb.Auth))
	{
		api.POST("", middleware.RequireRole(models.RoleDoctor), hb.Reports.CreateHandler)
		api.GET("", middleware.RequireRole(models.RoleDoctor, models.RolePatient), hb.Reports.ListHandler)
		api.PUT("/:id", middleware.RequireRole(models.RoleDoctor), hb.Reports.UpdateHandler)
		api.GET("/:id", hb.Reports.GetHandler)
		api.GET("/:id/pdf", hb.Reports.PDFHandler)
	}
}

// RegisterChatRoutes registers chat token and channel endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat", middleware.JWTAuth(hb.Auth), middleware.RequireRole(models.RolePatient, models.RoleDoctor))
	{
		api.GET("/token", hb.Chat.TokenHandler)
		api.GET("/channels", hb.Chat.ChannelsHandler)
		api.POST("/channels", hb.Chat.EnsureChannelHandler)
	}
}
