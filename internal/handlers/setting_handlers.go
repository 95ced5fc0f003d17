package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle_booking_backend/internal/services"
	"shuttle_booking_backend/pkg/utils"
)

// SettingHandler exposes the booking deadline table.
type SettingHandler struct {
	settingService services.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: ss}
}

// GetDeadlines returns the deadlines currently in force.
func (h *SettingHandler) GetDeadlines(c *gin.Context) {
	deadlines, err := h.settingService.Deadlines(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetDeadlines: Error from settingService.Deadlines")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch deadlines.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, deadlines)
}

// UpdateDeadlines changes some or all deadlines.
func (h *SettingHandler) UpdateDeadlines(c *gin.Context) {
	var req services.UpdateDeadlinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	deadlines, err := h.settingService.UpdateDeadlines(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "UpdateDeadlines")
		return
	}
	c.JSON(http.StatusOK, deadlines)
}

// DisableDeadlines moves every deadline to 23:59.
func (h *SettingHandler) DisableDeadlines(c *gin.Context) {
	deadlines, err := h.settingService.DisableDeadlines(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "DisableDeadlines")
		return
	}
	c.JSON(http.StatusOK, deadlines)
}

// ResetDeadlines drops stored overrides, falling back to the configured deadlines.
func (h *SettingHandler) ResetDeadlines(c *gin.Context) {
	deadlines, err := h.settingService.ResetDeadlines(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "ResetDeadlines")
		return
	}
	c.JSON(http.StatusOK, deadlines)
}

func (h *SettingHandler) respondError(c *gin.Context, err error, op string) {
	if errors.Is(err, services.ErrInvalidDeadline) {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	utils.LogError(err, op+": Error from settingService")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update deadlines.", "Internal error"))
}
