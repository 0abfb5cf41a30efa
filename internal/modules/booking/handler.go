package booking

import (
	"errors"
	"net/http"

	"peluqueria/internal/notify"
	"peluqueria/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/availability", h.GetAvailability)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing fields or slot not bookable on that date")
		case errors.Is(err, ErrSlotTaken):
			response.Error(c, http.StatusConflict, "SLOT_TAKEN", "That slot was just taken, refresh availability and pick another")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"reservation":  r,
		"whatsapp_url": h.service.WhatsAppLink(r, notify.KindCreated),
	})
}

func (h *Handler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}

	slots, err := h.service.Availability(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}
