package admin

import (
	"errors"
	"net/http"

	"peluqueria/internal/domain"
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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.Login)
}

// RegisterRoutes expects a group already behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.ListReservations)
	rg.PATCH("/reservations/:id/confirm", h.ToggleConfirm)
	rg.DELETE("/reservations/:id", h.RemoveReservation)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Wrong username or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

func (h *Handler) ListReservations(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from/to must be YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": rows})
}

func (h *Handler) ToggleConfirm(c *gin.Context) {
	r, err := h.service.ToggleConfirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update reservation")
		return
	}

	data := gin.H{"reservation": r}
	if r.Status == domain.ReservationConfirmed {
		data["whatsapp_url"] = h.service.WhatsAppLink(r, notify.KindConfirmed)
	}
	response.Success(c, http.StatusOK, data)
}

func (h *Handler) RemoveReservation(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}
