package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dj-idk/gym-backend/internal/services"
)

// AnalyticsHandlers handles the admin reporting endpoints.
type AnalyticsHandlers struct {
	analyticsSvc *services.AnalyticsService
}

func NewAnalyticsHandlers(analyticsSvc *services.AnalyticsService) *AnalyticsHandlers {
	return &AnalyticsHandlers{analyticsSvc: analyticsSvc}
}

// Dashboard returns the overview counters. Admin only.
func (h *AnalyticsHandlers) Dashboard(c *gin.Context) {
	stats, err := h.analyticsSvc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// Revenue reports paid volume for a date range. Admin only.
func (h *AnalyticsHandlers) Revenue(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", time.Now().AddDate(0, -1, 0).Format("2006-01-02")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "from must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", time.Now().Format("2006-01-02")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "to must be YYYY-MM-DD"})
		return
	}
	// The range is half open, so include the whole end day
	to = to.AddDate(0, 0, 1)

	report, err := h.analyticsSvc.Revenue(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"from":                from.Format("2006-01-02"),
		"to":                  to.AddDate(0, 0, -1).Format("2006-01-02"),
		"revenue":             report.Revenue,
		"orders":              report.Orders,
		"average_order_value": report.AverageOrderValue,
		"refunds":             report.Refunds,
		"refund_rate":         report.RefundRate,
	}})
}
