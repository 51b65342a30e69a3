package controllers

import (
	"net/http"

	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

// GET /api/admin/analytics
func (ac *AnalyticsController) Summary(c *gin.Context) {
	summary, err := ac.Analytics.Summary(c.Request.Context())
	if err != nil {
		respondError(c, "admin.analytics", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
