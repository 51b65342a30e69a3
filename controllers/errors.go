package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{services.ErrRoomNotFound, http.StatusNotFound, "ROOM_NOT_FOUND"},
	{services.ErrRoomNotAvailable, http.StatusConflict, "ROOM_NOT_AVAILABLE"},
	{services.ErrRoomDisabled, http.StatusConflict, "ROOM_DISABLED"},
	{services.ErrRoomInUse, http.StatusConflict, "ROOM_IN_USE"},
	{services.ErrInvalidStay, http.StatusBadRequest, "INVALID_STAY"},
	{services.ErrStayInPast, http.StatusBadRequest, "STAY_IN_PAST"},
	{services.ErrTooManyGuests, http.StatusBadRequest, "TOO_MANY_GUESTS"},
	{services.ErrInvalidGuestCount, http.StatusBadRequest, "INVALID_GUEST_COUNT"},
	{services.ErrBookingNotFound, http.StatusNotFound, "BOOKING_NOT_FOUND"},
	{services.ErrInvalidPayment, http.StatusBadRequest, "INVALID_PAYMENT_STATUS"},
	{services.ErrPaymentGateway, http.StatusBadGateway, "PAYMENT_GATEWAY_ERROR"},
	{services.ErrPaymentNotSettled, http.StatusPaymentRequired, "PAYMENT_NOT_SETTLED"},
	{services.ErrPaymentConflict, http.StatusConflict, "PAYMENT_CONFLICT"},
	{services.ErrGuestNotFound, http.StatusNotFound, "GUEST_NOT_FOUND"},
	{services.ErrInvalidTransition, http.StatusConflict, "GUEST_NOT_ACTIVE"},
	{services.ErrReasonRequired, http.StatusBadRequest, "REASON_REQUIRED"},
	{services.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{services.ErrDuplicateUsername, http.StatusConflict, "USERNAME_TAKEN"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{services.ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{services.ErrCannotDeleteSelf, http.StatusBadRequest, "CANNOT_DELETE_SELF"},
	{services.ErrLastManager, http.StatusConflict, "LAST_MANAGER"},
	{services.ErrImageNotFound, http.StatusNotFound, "IMAGE_NOT_FOUND"},
	{services.ErrInvalidImage, http.StatusBadRequest, "INVALID_IMAGE"},
	{services.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE"},
	{services.ErrUnknownCurrency, http.StatusBadRequest, "UNKNOWN_CURRENCY"},
	{services.ErrUnknownFormat, http.StatusBadRequest, "UNKNOWN_FORMAT"},
	{services.ErrPrintSurfaceUnavailable, http.StatusServiceUnavailable, "PRINT_UNAVAILABLE"},
}

// respondError logs the failure with the handler's prefix and writes the mapped status.
func respondError(c *gin.Context, prefix string, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			log.Printf("%s: %v", prefix, err)
			utils.JSONError(c, m.status, err.Error(), m.code)
			return
		}
	}
	log.Printf("%s: %v", prefix, err)
	utils.JSONError(c, http.StatusInternalServerError, "internal server error", "INTERNAL")
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id", "INVALID_ID")
		return 0, false
	}
	return uint(id), true
}
