package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomNotAvailable   = errors.New("no units of this room are free for the selected dates")
	ErrRoomDisabled       = errors.New("room is not open for booking")
	ErrRoomInUse          = errors.New("room still has bookings or guests")
	ErrInvalidStay        = errors.New("check-out must be at least one night after check-in")
	ErrStayInPast         = errors.New("check-in date cannot be in the past")
	ErrTooManyGuests      = errors.New("guest count exceeds room capacity")
	ErrInvalidGuestCount  = errors.New("guest count must be at least 1")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidPayment     = errors.New("invalid payment status")
	ErrPaymentGateway     = errors.New("payment gateway error")
	ErrPaymentNotSettled  = errors.New("payment has not been completed")
	ErrPaymentConflict    = errors.New("payment received but the room is no longer free for these dates; a refund is required")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrInvalidTransition  = errors.New("guest is no longer active")
	ErrReasonRequired     = errors.New("a reason is required to remove a guest early")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("role must be admin or manager")
	ErrCannotDeleteSelf   = errors.New("you cannot delete your own account")
	ErrLastManager        = errors.New("at least one manager account must remain")
	ErrImageNotFound      = errors.New("image not found")
	ErrInvalidImage       = errors.New("image must be a base64 data URL")
	ErrImageTooLarge      = errors.New("image exceeds the 10MB limit")
	ErrUnknownCurrency    = errors.New("unsupported country code")
	ErrUnknownFormat      = errors.New("unknown receipt format")

	// ErrPrintSurfaceUnavailable is returned when the headless print surface cannot be opened.
	ErrPrintSurfaceUnavailable = errors.New("print surface unavailable; use the HTML receipt and print from the browser")
)

// isDuplicateKey detects unique constraint violations across the supported drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique constraint")
}

// isForeignKeyViolation reports MySQL 1451/1452 and the equivalent postgres/sqlite messages.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1451 || myErr.Number == 1452
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}
