package controllers

import (
	"errors"
	"net/http"

	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

// POST /api/bookings
func (bc *BookingController) Create(c *gin.Context) {
	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	checkout, err := bc.Bookings.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "bookings.create", err)
		return
	}
	c.JSON(http.StatusCreated, checkout)
}

// GET /api/payments/verify/:reference
func (bc *BookingController) VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")
	booking, err := bc.Bookings.VerifyPayment(c.Request.Context(), reference)
	if err != nil && !errors.Is(err, services.ErrPaymentNotSettled) {
		respondError(c, "payments.verify", err)
		return
	}

	paid := err == nil
	status := services.GatewaySuccess
	message := "Payment verified"
	if !paid {
		status = booking.PaymentStatus
		message = err.Error()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  paid,
		"message": message,
		"data": gin.H{
			"status":     status,
			"reference":  booking.Reference,
			"booking_id": booking.ID,
		},
	})
}

// GET /api/admin/bookings
func (bc *BookingController) List(c *gin.Context) {
	bookings, err := bc.Bookings.List(c.Request.Context())
	if err != nil {
		respondError(c, "admin.bookings.list", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type bookingStatusPayload struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// PUT /api/admin/bookings/:id
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload bookingStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	booking, err := bc.Bookings.UpdateStatus(c.Request.Context(), id, payload.PaymentStatus)
	if err != nil {
		respondError(c, "admin.bookings.update", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
