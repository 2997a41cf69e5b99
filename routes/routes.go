package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/utils"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Relay routes, unauthenticated by design
	r.GET("/health", controllers.Health)
	r.POST("/send-email", controllers.SendEmail)
	r.POST("/cloudinary-sign", controllers.CloudinarySign)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		appointments := api.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.POST("", controllers.BookAppointment)
			appointments.GET("/feed", controllers.AppointmentFeedSocket)
			appointments.GET("/assigned", controllers.GetStylistAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.POST("/:id/cancel", controllers.CancelAppointment)
			appointments.POST("/:id/reschedule", controllers.RescheduleAppointment)
		}

		services := api.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.GET("/pricing", controllers.GetServicePricing)
			services.GET("/:id", controllers.GetService)
			services.GET("/:id/price", controllers.GetServicePrice)
		}

		api.GET("/stylists", controllers.GetStylists)
		api.GET("/branches", controllers.GetBranches)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			notifications.PUT("/:id/read", controllers.MarkNotificationRead)
		}

		transactions := api.Group("/transactions")
		{
			transactions.GET("", controllers.GetTransactions)
			transactions.GET("/:id", controllers.GetTransaction)
		}

		products := api.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
		}

		api.PUT("/profile", controllers.UpdateProfile)
	}

	return r
}
