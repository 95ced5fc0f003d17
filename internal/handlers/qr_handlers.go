package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle_booking_backend/internal/services"
	"shuttle_booking_backend/pkg/utils"
)

// QRHandler serves meal pickup QR images.
type QRHandler struct {
	verificationService services.VerificationService
}

// NewQRHandler creates a new QRHandler.
func NewQRHandler(vs services.VerificationService) *QRHandler {
	return &QRHandler{verificationService: vs}
}

// GetQRCode renders the QR image for a verification code such as IGA1-02849-20250115.
// Only codes backed by an active meal order are rendered.
func (h *QRHandler) GetQRCode(c *gin.Context) {
	code := c.Param("code")
	ticket, err := h.verificationService.TicketForCode(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMalformedVerificationCode):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Malformed verification code", err.Error()))
		case errors.Is(err, services.ErrEmployeeNotFound), errors.Is(err, services.ErrNoMealOrder):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No meal order for this code", ""))
		default:
			utils.LogError(err, "GetQRCode: Error from verificationService.TicketForCode")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load meal order", "Internal error"))
		}
		return
	}

	png, err := services.RenderQRCode(ticket.QRContent())
	if err != nil {
		utils.LogError(err, "GetQRCode: Failed to render QR code")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to render QR code", "Internal error"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
