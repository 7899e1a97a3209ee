package routes

import (
	"net/http"

	"github.com/Siddhant-kochhar/goatfit/controllers"
	"github.com/Siddhant-kochhar/goatfit/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers struct {
	OAuth    *controllers.OAuthController
	Vitals   *controllers.VitalsController
	Contacts *controllers.ContactController
	Realtime *controllers.RealtimeController
	Devices  *controllers.DeviceController
	Dev      *controllers.DevController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		// Google redirects here without our Authorization header; identity
		// travels in the state parameter.
		auth.GET("/google/callback", ctl.OAuth.Callback)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/auth/google", ctl.OAuth.AuthorizeURL)

		protected.GET("/user/profile", controllers.GetProfile)
		protected.PUT("/user/profile", controllers.UpdateProfile)
		protected.POST("/user/notifications/toggle", controllers.ToggleNotifications)

		protected.GET("/vitals/latest", ctl.Vitals.Latest)
		protected.GET("/vitals/history", ctl.Vitals.History)
		protected.GET("/vitals/weekly", ctl.Vitals.Weekly)
		protected.POST("/vitals/sync", ctl.Vitals.Sync)

		protected.GET("/contacts", ctl.Contacts.List)
		protected.POST("/contacts", ctl.Contacts.Add)
		protected.PUT("/contacts/:id", ctl.Contacts.Update)
		protected.DELETE("/contacts/:id", ctl.Contacts.Delete)
		protected.POST("/contacts/:id/test", ctl.Contacts.Test)

		protected.POST("/monitoring/start", controllers.StartMonitoring)
		protected.POST("/monitoring/stop", controllers.StopMonitoring)
		protected.GET("/monitoring/status", controllers.MonitoringStatus)
		protected.GET("/monitoring/settings", controllers.GetMonitoringSettings)
		protected.PUT("/monitoring/settings", controllers.UpdateMonitoringSettings)

		protected.GET("/alerts", controllers.ListAlerts)
		protected.GET("/ws/alerts", ctl.Realtime.AlertsWS)

		protected.POST("/devices", ctl.Devices.Register)

		protected.POST("/dev/simulate", ctl.Dev.Simulate)
		protected.GET("/dev/quick-test/:heart_rate", ctl.Dev.QuickTest)
	}

	return r
}
