package routes

import (
	"net/http"
	"time"

	"glowdesk/handlers"
	"glowdesk/middleware"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the route registrations need.
type HandlerBundle struct {
	Assistant *handlers.AssistantHandler
	Booking   *handlers.BookingHandler
	Voice     *handlers.VoiceHandler
}

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterChannelRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}

// RegisterChannelRoutes registers the inbound message webhooks, one per
// channel. All of them sit behind the shared gateway token.
func RegisterChannelRoutes(r *gin.Engine, hb *HandlerBundle) {
	channels := r.Group("/api/channels")
	{
		channels.Use(middleware.WebhookAuthMiddleware())
		channels.POST("/sms", hb.Assistant.HandleInbound(models.ChannelSMS))
		channels.POST("/email", hb.Assistant.HandleInbound(models.ChannelEmail))
		channels.POST("/voice", hb.Voice.HandleVoiceMessage)
	}
}

// RegisterBookingRoutes registers the tool-call compatible booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		booking.Use(middleware.WebhookAuthMiddleware())
		booking.POST("/availability", hb.Booking.CheckAvailabilityHandler)
		booking.POST("/book", hb.Booking.BookAppointmentHandler)
		booking.POST("/reschedule", hb.Booking.RescheduleAppointmentHandler)
		booking.POST("/cancel", hb.Booking.CancelAppointmentHandler)
		booking.GET("/appointment/:eventID", hb.Booking.GetAppointmentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
