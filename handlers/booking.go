package handlers

import (
	"net/http"

	conversationRepo "glowdesk/database/repository/conversation"
	"glowdesk/models"
	"glowdesk/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the tool-call compatible booking endpoints used by
// channel adapters and by operators for direct requests.
type BookingHandler struct {
	svc    booking.Service
	repo   conversationRepo.ConversationRepository
	logger *zap.Logger
}

func NewBookingHandler(svc booking.Service, repo conversationRepo.ConversationRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, repo: repo, logger: logger}
}

func (h *BookingHandler) loadConversation(c *gin.Context, id string) *models.Conversation {
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id is required"})
		return nil
	}
	conv, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Sugar().Errorf("failed to load conversation %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversation"})
		return nil
	}
	if conv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return nil
	}
	return conv
}

// CheckAvailabilityHandler handles POST /api/booking/availability.
func (h *BookingHandler) CheckAvailabilityHandler(c *gin.Context) {
	var input struct {
		ConversationID string `json:"conversation_id" binding:"required"`
		Date           string `json:"date" binding:"required"`
		ServiceType    string `json:"service_type" binding:"required"`
		Limit          int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	conv := h.loadConversation(c, input.ConversationID)
	if conv == nil {
		return
	}

	result := h.svc.CheckAvailability(c.Request.Context(), conv, input.Date, input.ServiceType, input.Limit)
	c.JSON(http.StatusOK, result)
}

// BookAppointmentHandler handles POST /api/booking/book.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	var input struct {
		ConversationID string `json:"conversation_id" binding:"required"`
		models.BookingParams
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	conv := h.loadConversation(c, input.ConversationID)
	if conv == nil {
		return
	}

	result, err := h.svc.BookAppointment(c.Request.Context(), conv, input.BookingParams)
	if err != nil {
		h.logger.Sugar().Errorf("booking fault for conversation %s: %v", conv.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal booking error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RescheduleAppointmentHandler handles POST /api/booking/reschedule.
func (h *BookingHandler) RescheduleAppointmentHandler(c *gin.Context) {
	var input struct {
		EventID     string `json:"event_id" binding:"required"`
		StartTime   string `json:"start_time" binding:"required"`
		ServiceType string `json:"service_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result := h.svc.RescheduleAppointment(c.Request.Context(), input.EventID, input.StartTime, input.ServiceType)
	c.JSON(http.StatusOK, result)
}

// CancelAppointmentHandler handles POST /api/booking/cancel.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	var input struct {
		EventID string `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result := h.svc.CancelAppointment(c.Request.Context(), input.EventID)
	c.JSON(http.StatusOK, result)
}

// GetAppointmentHandler handles GET /api/booking/appointment/:eventID.
func (h *BookingHandler) GetAppointmentHandler(c *gin.Context) {
	eventID := c.Param("eventID")
	details, err := h.svc.GetAppointmentDetails(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch appointment"})
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	c.JSON(http.StatusOK, details)
}
