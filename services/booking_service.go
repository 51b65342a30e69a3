package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingInput struct {
	RoomID   FlexInt `json:"roomId" binding:"required,min=1"`
	CheckIn  string  `json:"checkIn" binding:"required,stay_date"`
	CheckOut string  `json:"checkOut" binding:"required,stay_date"`
	Guests   FlexInt `json:"guests" binding:"required,min=1"`
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone" binding:"required"`
}

type BookingCheckout struct {
	Booking    models.Booking `json:"booking"`
	PaymentURL string         `json:"paymentUrl"`
}

type BookingService struct {
	DB           *gorm.DB
	Gateway      PaymentGateway
	Rooms        *RoomService
	Lodge        *LodgeService
	CallbackURL  string
	Now          func() time.Time
	SendMail     func(utils.Mail) error
	NewReference func() string
}

func NewBookingService(db *gorm.DB, gateway PaymentGateway, rooms *RoomService, lodge *LodgeService, callbackURL string) *BookingService {
	return &BookingService{
		DB:           db,
		Gateway:      gateway,
		Rooms:        rooms,
		Lodge:        lodge,
		CallbackURL:  callbackURL,
		Now:          time.Now,
		SendMail:     utils.SendMail,
		NewReference: func() string { return "LDG-" + uuid.NewString() },
	}
}

// Create validates the stay, reserves a unit as a pending booking and opens a payment session.
// The availability check and insert run in one transaction with the room row locked.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*BookingCheckout, error) {
	checkIn, err := ParseStayDate(in.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStay, err)
	}
	checkOut, err := ParseStayDate(in.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStay, err)
	}
	if err := ValidateStay(checkIn, checkOut); err != nil {
		return nil, err
	}
	if checkIn.Before(StartOfDay(s.Now().UTC())) {
		return nil, ErrStayInPast
	}
	if in.Guests < 1 {
		return nil, ErrInvalidGuestCount
	}

	var booking models.Booking
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, uint(in.RoomID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("lock room: %w", err)
		}
		if !room.Available {
			return ErrRoomDisabled
		}
		if int(in.Guests) > room.MaxGuests {
			return ErrTooManyGuests
		}
		free, err := availableUnits(tx, room, checkIn, checkOut)
		if err != nil {
			return err
		}
		if free < 1 {
			return ErrRoomNotAvailable
		}

		quote := QuoteStay(room.Price, checkIn, checkOut)
		booking = models.Booking{
			RoomID:        room.ID,
			CustomerName:  strings.TrimSpace(in.Name),
			CustomerEmail: strings.TrimSpace(in.Email),
			CustomerPhone: strings.TrimSpace(in.Phone),
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        int(in.Guests),
			Nights:        quote.Nights,
			TotalCost:     quote.Total,
			PaymentStatus: models.PaymentPending,
			Reference:     s.NewReference(),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		booking.RoomName = room.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Rooms.InvalidateCatalog(ctx)

	session, err := s.Gateway.Initialize(ctx, PaymentInit{
		Email:       booking.CustomerEmail,
		AmountMinor: int64(math.Round(booking.TotalCost * 100)),
		Currency:    LookupCurrency(DefaultCountry).Code,
		Reference:   booking.Reference,
		CallbackURL: s.CallbackURL,
		Metadata: map[string]interface{}{
			"booking_id": booking.ID,
			"room":       booking.RoomName,
			"check_in":   booking.CheckIn.Format("2006-01-02"),
			"check_out":  booking.CheckOut.Format("2006-01-02"),
		},
	})
	if err != nil {
		log.Printf("booking %d: payment init failed: %v", booking.ID, err)
		if uErr := s.DB.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("payment_status", models.PaymentFailed).Error; uErr != nil {
			log.Printf("booking %d: failed to release unit: %v", booking.ID, uErr)
		}
		s.Rooms.InvalidateCatalog(ctx)
		return nil, err
	}

	return &BookingCheckout{Booking: booking, PaymentURL: session.AuthorizationURL}, nil
}

// VerifyPayment confirms a payment with the gateway. A booking is marked paid at most once,
// and only that transition sends the confirmation email.
func (s *BookingService) VerifyPayment(ctx context.Context, reference string) (models.Booking, error) {
	reference = strings.TrimSpace(reference)
	var booking models.Booking
	if err := s.DB.WithContext(ctx).Preload("Room").Where("reference = ?", reference).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("load booking: %w", err)
	}
	booking.RoomName = booking.Room.Name
	if booking.PaymentStatus == models.PaymentPaid {
		return booking, nil
	}

	result, err := s.Gateway.Verify(ctx, reference)
	if err != nil {
		return booking, err
	}

	switch result.Status {
	case GatewaySuccess:
		expected := int64(math.Round(booking.TotalCost * 100))
		if result.AmountMinor != 0 && result.AmountMinor != expected {
			log.Printf("booking %d: amount mismatch, paid %d expected %d", booking.ID, result.AmountMinor, expected)
			return booking, ErrPaymentNotSettled
		}
		paidAt := s.Now().UTC()
		if result.PaidAt != nil {
			paidAt = result.PaidAt.UTC()
		}
		if !booking.OccupiesUnit() {
			return s.settleReleased(ctx, booking, paidAt)
		}
		res := s.DB.WithContext(ctx).Model(&models.Booking{}).
			Where("id = ? AND payment_status <> ?", booking.ID, models.PaymentPaid).
			Updates(map[string]interface{}{"payment_status": models.PaymentPaid, "paid_at": paidAt})
		if res.Error != nil {
			return booking, fmt.Errorf("mark booking paid: %w", res.Error)
		}
		booking.PaymentStatus = models.PaymentPaid
		booking.PaidAt = &paidAt
		if res.RowsAffected == 1 {
			s.Rooms.InvalidateCatalog(ctx)
			s.sendConfirmation(ctx, booking)
		}
		return booking, nil
	case GatewayFailed, GatewayAbandoned:
		status := models.PaymentFailed
		if result.Status == GatewayAbandoned {
			status = models.PaymentAbandoned
		}
		if err := s.DB.WithContext(ctx).Model(&models.Booking{}).
			Where("id = ? AND payment_status = ?", booking.ID, models.PaymentPending).
			Update("payment_status", status).Error; err != nil {
			return booking, fmt.Errorf("mark booking %s: %w", status, err)
		}
		booking.PaymentStatus = status
		s.Rooms.InvalidateCatalog(ctx)
		return booking, ErrPaymentNotSettled
	}
	return booking, ErrPaymentNotSettled
}

// settleReleased records a late payment on a booking that already gave its unit back.
// The unit is taken again only if it is still free; otherwise the booking becomes
// paid_conflict and keeps no unit.
func (s *BookingService) settleReleased(ctx context.Context, booking models.Booking, paidAt time.Time) (models.Booking, error) {
	previous := booking.PaymentStatus
	status := models.PaymentPaid
	changed := true
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, booking.RoomID).Error; err != nil {
			return fmt.Errorf("lock room: %w", err)
		}
		free, err := availableUnits(tx, room, booking.CheckIn, booking.CheckOut)
		if err != nil {
			return err
		}
		if free < 1 {
			status = models.PaymentConflict
		}
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND payment_status = ?", booking.ID, previous).
			Updates(map[string]interface{}{"payment_status": status, "paid_at": paidAt})
		if res.Error != nil {
			return fmt.Errorf("mark booking %s: %w", status, res.Error)
		}
		changed = res.RowsAffected == 1
		return nil
	})
	if err != nil {
		return booking, err
	}

	if !changed {
		// another verification settled it first
		var current models.Booking
		if err := s.DB.WithContext(ctx).First(&current, booking.ID).Error; err != nil {
			return booking, fmt.Errorf("reload booking: %w", err)
		}
		current.RoomName = booking.RoomName
		if current.PaymentStatus == models.PaymentPaid {
			return current, nil
		}
		if current.PaymentStatus == models.PaymentConflict {
			return current, ErrPaymentConflict
		}
		return current, ErrPaymentNotSettled
	}

	booking.PaymentStatus = status
	booking.PaidAt = &paidAt
	if status == models.PaymentConflict {
		log.Printf("booking %d (%s): paid after release but no unit is free; refund required", booking.ID, booking.Reference)
		return booking, ErrPaymentConflict
	}
	s.Rooms.InvalidateCatalog(ctx)
	s.sendConfirmation(ctx, booking)
	return booking, nil
}

func (s *BookingService) sendConfirmation(ctx context.Context, b models.Booking) {
	if b.CustomerEmail == "" {
		return
	}
	lodge, err := s.Lodge.Current(ctx)
	if err != nil {
		log.Printf("booking %d: lodge setting unavailable for email: %v", b.ID, err)
	}
	mail := utils.BookingConfirmationMail(utils.BookingEmail{
		LodgeName: lodge.Name,
		Guest:     b.CustomerName,
		Email:     b.CustomerEmail,
		Room:      b.RoomName,
		CheckIn:   b.CheckIn.Format("02 Jan 2006"),
		CheckOut:  b.CheckOut.Format("02 Jan 2006"),
		Nights:    b.Nights,
		Total:     FormatPrice(LookupCurrency(DefaultCountry).Convert(b.TotalCost)),
		Reference: b.Reference,
	})
	if err := s.SendMail(mail); err != nil {
		log.Printf("booking %d: confirmation email failed: %v", b.ID, err)
	}
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if err := s.DB.WithContext(ctx).Preload("Room").Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for i := range bookings {
		bookings[i].RoomName = bookings[i].Room.Name
	}
	return bookings, nil
}

// UpdateStatus is the back-office override of a booking's payment status.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status string) (models.Booking, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	valid := false
	for _, st := range models.PaymentStatuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return models.Booking{}, ErrInvalidPayment
	}

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("load booking: %w", err)
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking.Room, booking.RoomID).Error; err != nil {
			return fmt.Errorf("lock room: %w", err)
		}

		// moving a released booking back to pending or paid needs a free unit
		if (models.Booking{PaymentStatus: status}).OccupiesUnit() && !booking.OccupiesUnit() {
			free, err := availableUnits(tx, booking.Room, booking.CheckIn, booking.CheckOut)
			if err != nil {
				return err
			}
			if free < 1 {
				return ErrRoomNotAvailable
			}
		}

		updates := map[string]interface{}{"payment_status": status}
		if status == models.PaymentPaid && booking.PaidAt == nil {
			now := s.Now().UTC()
			updates["paid_at"] = now
			booking.PaidAt = &now
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		booking.PaymentStatus = status
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	booking.RoomName = booking.Room.Name
	s.Rooms.InvalidateCatalog(ctx)
	return booking, nil
}

// ReconcilePending re-verifies bookings left pending for longer than olderThan and
// returns how many turned out to be paid.
func (s *BookingService) ReconcilePending(ctx context.Context, olderThan time.Duration) (int, error) {
	var pending []models.Booking
	cutoff := s.Now().UTC().Add(-olderThan)
	if err := s.DB.WithContext(ctx).
		Where("payment_status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Find(&pending).Error; err != nil {
		return 0, fmt.Errorf("load pending bookings: %w", err)
	}

	paid := 0
	for _, b := range pending {
		updated, err := s.VerifyPayment(ctx, b.Reference)
		if err != nil && !errors.Is(err, ErrPaymentNotSettled) {
			log.Printf("reconcile: booking %d (%s): %v", b.ID, b.Reference, err)
			continue
		}
		if updated.PaymentStatus == models.PaymentPaid {
			paid++
		}
	}
	return paid, nil
}

// ExpireStale abandons bookings still pending after olderThan, releasing their units.
func (s *BookingService) ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.Now().UTC().Add(-olderThan)
	res := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("payment_status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Update("payment_status", models.PaymentAbandoned)
	if res.Error != nil {
		return 0, fmt.Errorf("expire pending bookings: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.Rooms.InvalidateCatalog(ctx)
	}
	return res.RowsAffected, nil
}
