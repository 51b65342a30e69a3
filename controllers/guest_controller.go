package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"lodge-backend/middleware"
	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests   *services.GuestService
	Receipts *services.ReceiptService
}

func NewGuestController(guests *services.GuestService, receipts *services.ReceiptService) *GuestController {
	return &GuestController{Guests: guests, Receipts: receipts}
}

// GET /api/admin/guests?q=
func (gc *GuestController) List(c *gin.Context) {
	result, err := gc.Guests.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, "admin.guests.list", err)
		return
	}
	if result.Suggestion != "" {
		c.Header("X-Search-Suggestion", result.Suggestion)
	}
	c.JSON(http.StatusOK, result.Guests)
}

// POST /api/admin/guests
func (gc *GuestController) Create(c *gin.Context) {
	var in services.GuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	session, _ := middleware.CurrentSession(c)
	guest, err := gc.Guests.Create(c.Request.Context(), in, session.Username)
	if err != nil {
		respondError(c, "admin.guests.create", err)
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// PUT /api/admin/guests/:id/checkout
func (gc *GuestController) Checkout(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	guest, err := gc.Guests.Checkout(c.Request.Context(), id)
	if err != nil {
		respondError(c, "admin.guests.checkout", err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

type removeGuestPayload struct {
	Reason string `json:"reason"`
}

// DELETE /api/admin/guests/:id with {reason}
func (gc *GuestController) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload removeGuestPayload
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, err)
			return
		}
	}
	if payload.Reason == "" {
		payload.Reason = c.Query("reason")
	}
	session, _ := middleware.CurrentSession(c)
	guest, err := gc.Guests.Remove(c.Request.Context(), id, payload.Reason, session.Username)
	if err != nil {
		respondError(c, "admin.guests.remove", err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// DELETE /api/admin/guests/:id/permanent
func (gc *GuestController) DeletePermanent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := gc.Guests.DeletePermanent(c.Request.Context(), id); err != nil {
		respondError(c, "admin.guests.delete", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Guest permanently deleted"})
}

// GET /api/admin/removal-reasons
func (gc *GuestController) RemovalReasons(c *gin.Context) {
	reasons, err := gc.Guests.RemovalReasons(c.Request.Context())
	if err != nil {
		respondError(c, "admin.removal_reasons", err)
		return
	}
	c.JSON(http.StatusOK, reasons)
}

// GET /api/admin/guests/:id/receipt?format=text|thermal|a4&output=html|pdf
func (gc *GuestController) Receipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	format, err := services.ParseReceiptFormat(c.Query("format"))
	if err != nil {
		respondError(c, "admin.guests.receipt", err)
		return
	}
	output := strings.ToLower(c.DefaultQuery("output", services.OutputHTML))

	doc, err := gc.Receipts.Generate(c.Request.Context(), id, format, output)
	if err != nil {
		respondError(c, "admin.guests.receipt", err)
		return
	}

	disposition := "inline"
	if format == services.ReceiptText || output == services.OutputPDF {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
