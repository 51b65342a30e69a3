package controllers

import (
	"net/http"

	"lodge-backend/middleware"
	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

type CurrencyController struct {
	Resolver *services.CurrencyResolver
}

func NewCurrencyController(resolver *services.CurrencyResolver) *CurrencyController {
	return &CurrencyController{Resolver: resolver}
}

// GET /api/currency
func (cc *CurrencyController) Current(c *gin.Context) {
	cur := cc.Resolver.Resolve(c.Request.Context(), middleware.ClientKey(c), c.ClientIP())
	c.JSON(http.StatusOK, cur)
}

type currencyPayload struct {
	CountryCode string `json:"country_code" binding:"required"`
}

// PUT /api/currency
func (cc *CurrencyController) SetPreference(c *gin.Context) {
	var payload currencyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	cur, err := cc.Resolver.SetPreference(c.Request.Context(), middleware.ClientKey(c), payload.CountryCode)
	if err != nil {
		respondError(c, "currency.set", err)
		return
	}
	c.JSON(http.StatusOK, cur)
}

// GET /api/currencies
func (cc *CurrencyController) List(c *gin.Context) {
	c.JSON(http.StatusOK, services.Currencies())
}
