package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/services"
	"shuttle_booking_backend/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the daily booking roster.
type ReportHandler struct {
	reportService services.ReportService
	now           services.Clock
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService, now services.Clock) *ReportHandler {
	return &ReportHandler{reportService: rs, now: now}
}

// parseDate reads ?date=YYYY-MM-DD, defaulting to today in the booking timezone.
func (h *ReportHandler) parseDate(c *gin.Context) (time.Time, bool) {
	now := h.now()
	raw := c.Query("date")
	if raw == "" {
		return models.BookingDate(now), true
	}
	date, err := time.ParseInLocation(models.DateLayout, raw, now.Location())
	if err != nil {
		utils.RespondValidationFailed(c, fmt.Sprintf("date must be YYYY-MM-DD, got %q", raw))
		return time.Time{}, false
	}
	return date, true
}

// GetRoster lists every active booking of a day.
func (h *ReportHandler) GetRoster(c *gin.Context) {
	date, ok := h.parseDate(c)
	if !ok {
		return
	}
	entries, err := h.reportService.Roster(c.Request.Context(), date)
	if err != nil {
		utils.LogError(err, "GetRoster: Error from reportService.Roster")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch bookings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format(models.DateLayout), "bookings": entries})
}

// ExportRoster downloads the roster of a day as an Excel workbook.
func (h *ReportHandler) ExportRoster(c *gin.Context) {
	date, ok := h.parseDate(c)
	if !ok {
		return
	}
	buf, filename, err := h.reportService.ExportRoster(c.Request.Context(), date)
	if err != nil {
		utils.LogError(err, "ExportRoster: Error from reportService.ExportRoster")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export bookings.", "Internal error"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
