package routes

import (
	"net/http"
	"time"

	"hotelsupport/config"
	"hotelsupport/handlers"
	"hotelsupport/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSessionRoutes registers the conversation endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotel/sessions")
	{
		api.POST("", hb.StartSessionHandler)
		api.GET("/:id", hb.GetSessionHandler)
		api.DELETE("/:id", hb.EndSessionHandler)
		api.PUT("/:id/user", hb.UpdateUserNameHandler)
		api.POST("/:id/messages", hb.MessageHandler)
		api.POST("/:id/voice", hb.VoiceHandler)
	}
}

// RegisterBookingRoutes registers direct room ledger endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotel/sessions/:id")
	{
		api.GET("/rooms", hb.ListRoomsHandler)
		api.GET("/rooms/:roomID", hb.CheckRoomHandler)
		api.POST("/bookings", hb.ReserveHandler)
		api.GET("/bookings/:bookingID", hb.GetBookingHandler)
		api.DELETE("/bookings/:bookingID", hb.CancelBookingHandler)
	}
}

// RegisterIssueRoutes registers direct ticket endpoints.
func RegisterIssueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotel/sessions/:id/tickets")
	{
		api.POST("", hb.CreateTicketHandler)
		api.GET("/:ticketID", hb.GetTicketHandler)
		api.POST("/:ticketID/resolve", hb.ResolveTicketHandler)
	}
}

// RegisterDirectionsRoutes registers the stateless wayfinding endpoint.
func RegisterDirectionsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/hotel/directions", hb.DirectionsHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":   http.StatusText(code),
			"message":  "Hi, I'm the " + config.AppConfig.HotelName + " support desk",
			"backends": status,
		})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
	RegisterSessionRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterIssueRoutes(r, hb)
	RegisterDirectionsRoutes(r, hb)
}
