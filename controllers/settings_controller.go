package controllers

import (
	"net/http"

	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Lodge *services.LodgeService
}

func NewSettingsController(lodge *services.LodgeService) *SettingsController {
	return &SettingsController{Lodge: lodge}
}

// GET /api/settings/lodge
func (sc *SettingsController) GetLodge(c *gin.Context) {
	setting, err := sc.Lodge.Current(c.Request.Context())
	if err != nil {
		respondError(c, "settings.lodge.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lodge": setting})
}

// PUT /api/admin/settings/lodge
func (sc *SettingsController) UpdateLodge(c *gin.Context) {
	var in services.LodgeSettingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	setting, err := sc.Lodge.Update(c.Request.Context(), in)
	if err != nil {
		respondError(c, "settings.lodge.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lodge": setting})
}
