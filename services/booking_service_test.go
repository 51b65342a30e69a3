package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lodge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type bookingFixture struct {
	db      *gorm.DB
	svc     *BookingService
	gateway *fakeGateway
	mail    *mailRecorder
	room    models.Room
}

func newBookingFixture(t *testing.T) bookingFixture {
	db := newTestDB(t)
	now := fixedClock("2024-01-01T09:00:00Z")
	gateway := &fakeGateway{status: GatewaySuccess}
	mail := &mailRecorder{}

	svc := NewBookingService(db, gateway, newTestRoomService(db, now), NewLodgeService(db, models.SkinElkad), "http://localhost:5173/booking-success")
	svc.Now = now
	svc.SendMail = mail.send
	n := 0
	svc.NewReference = func() string {
		n++
		return "LDG-TEST-" + string(rune('A'+n-1))
	}

	return bookingFixture{db: db, svc: svc, gateway: gateway, mail: mail, room: seedRoom(t, db, "Standard", 200, 2, 1)}
}

func (f bookingFixture) input(roomID uint) BookingInput {
	return BookingInput{
		RoomID: FlexInt(roomID), CheckIn: "2024-01-02", CheckOut: "2024-01-04", Guests: 2,
		Name: "Abena Mensah", Email: "abena@example.com", Phone: "0240000000",
	}
}

func TestCreateBookingOpensPaymentSession(t *testing.T) {
	f := newBookingFixture(t)

	checkout, err := f.svc.Create(context.Background(), f.input(f.room.ID))
	require.NoError(t, err)

	assert.Equal(t, "https://pay.test/LDG-TEST-A", checkout.PaymentURL)
	assert.Equal(t, models.PaymentPending, checkout.Booking.PaymentStatus)
	assert.Equal(t, 2, checkout.Booking.Nights)
	assert.Equal(t, 400.0, checkout.Booking.TotalCost)
	assert.Equal(t, "Standard", checkout.Booking.RoomName)

	require.Len(t, f.gateway.initialized, 1)
	assert.Equal(t, int64(40000), f.gateway.initialized[0].AmountMinor)
	assert.Equal(t, "GHS", f.gateway.initialized[0].Currency)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	in := f.input(f.room.ID)
	in.CheckOut = in.CheckIn
	_, err := f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidStay)

	in = f.input(f.room.ID)
	in.CheckIn, in.CheckOut = "2023-12-30", "2024-01-02"
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrStayInPast)

	in = f.input(f.room.ID)
	in.Guests = 3
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrTooManyGuests)

	_, err = f.svc.Create(ctx, f.input(999))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	assert.Empty(t, f.gateway.initialized)
}

func TestCreateBookingRefusesFullRoom(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.input(f.room.ID))
	assert.ErrorIs(t, err, ErrRoomNotAvailable)

	in := f.input(f.room.ID)
	in.CheckIn, in.CheckOut = "2024-01-04", "2024-01-05"
	_, err = f.svc.Create(ctx, in)
	assert.NoError(t, err, "a stay starting on the checkout day fits")
}

func TestCreateBookingReleasesUnitWhenGatewayFails(t *testing.T) {
	f := newBookingFixture(t)
	f.gateway.initErr = errors.New("gateway down")

	_, err := f.svc.Create(context.Background(), f.input(f.room.ID))
	require.Error(t, err)

	var b models.Booking
	require.NoError(t, f.db.First(&b).Error)
	assert.Equal(t, models.PaymentFailed, b.PaymentStatus)

	f.gateway.initErr = nil
	_, err = f.svc.Create(context.Background(), f.input(f.room.ID))
	assert.NoError(t, err)
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	checkout, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)
	ref := checkout.Booking.Reference

	b, err := f.svc.VerifyPayment(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
	assert.NotNil(t, b.PaidAt)

	b, err = f.svc.VerifyPayment(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)

	assert.Equal(t, 1, f.mail.count(), "confirmation is sent once")
	assert.Len(t, f.gateway.verified, 1, "paid bookings are not re-verified")
	assert.Equal(t, "abena@example.com", f.mail.sent[0].To)
}

func TestVerifyPaymentAmountMismatch(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	checkout, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)

	f.gateway.amount = 100
	_, err = f.svc.VerifyPayment(ctx, checkout.Booking.Reference)
	assert.ErrorIs(t, err, ErrPaymentNotSettled)
	assert.Zero(t, f.mail.count())
}

func TestVerifyPaymentAbandoned(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	checkout, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)

	f.gateway.status = GatewayAbandoned
	b, err := f.svc.VerifyPayment(ctx, checkout.Booking.Reference)
	assert.ErrorIs(t, err, ErrPaymentNotSettled)
	assert.Equal(t, models.PaymentAbandoned, b.PaymentStatus)

	_, err = f.svc.VerifyPayment(ctx, "LDG-UNKNOWN")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	checkout, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)

	b, err := f.svc.UpdateStatus(ctx, checkout.Booking.ID, "Paid")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
	assert.NotNil(t, b.PaidAt)

	_, err = f.svc.UpdateStatus(ctx, checkout.Booking.ID, "refunded")
	assert.ErrorIs(t, err, ErrInvalidPayment)
	_, err = f.svc.UpdateStatus(ctx, 999, "paid")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExpireStaleAndReconcile(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	old := time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 1, 1, 8, 55, 0, 0, time.UTC)

	for _, b := range []models.Booking{
		{RoomID: f.room.ID, Reference: "stale", CheckIn: mustDate(t, "2024-01-05"), CheckOut: mustDate(t, "2024-01-06"), TotalCost: 200, PaymentStatus: models.PaymentPending, CreatedAt: old},
		{RoomID: f.room.ID, Reference: "fresh", CheckIn: mustDate(t, "2024-01-07"), CheckOut: mustDate(t, "2024-01-08"), TotalCost: 200, PaymentStatus: models.PaymentPending, CreatedAt: recent},
	} {
		require.NoError(t, f.db.Create(&b).Error)
	}

	n, err := f.svc.ExpireStale(ctx, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var stale models.Booking
	require.NoError(t, f.db.Where("reference = ?", "stale").First(&stale).Error)
	assert.Equal(t, models.PaymentAbandoned, stale.PaymentStatus)

	paid, err := f.svc.ReconcilePending(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, paid)
	assert.Equal(t, []string{"fresh"}, f.gateway.verified)
}

func occupyingBookings(t *testing.T, db *gorm.DB, roomID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("room_id = ? AND payment_status IN ?", roomID, models.OccupyingStatuses).Count(&n).Error)
	return n
}

func TestLatePaymentAfterUnitWasResold(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)
	f.gateway.status = GatewayAbandoned
	_, err = f.svc.VerifyPayment(ctx, first.Booking.Reference)
	require.ErrorIs(t, err, ErrPaymentNotSettled)

	f.gateway.status = GatewaySuccess
	second, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err, "the abandoned booking released the only unit")
	_, err = f.svc.VerifyPayment(ctx, second.Booking.Reference)
	require.NoError(t, err)

	late, err := f.svc.VerifyPayment(ctx, first.Booking.Reference)
	assert.ErrorIs(t, err, ErrPaymentConflict)
	assert.Equal(t, models.PaymentConflict, late.PaymentStatus)
	assert.NotNil(t, late.PaidAt)

	var stored models.Booking
	require.NoError(t, f.db.First(&stored, first.Booking.ID).Error)
	assert.Equal(t, models.PaymentConflict, stored.PaymentStatus)
	assert.Equal(t, int64(1), occupyingBookings(t, f.db, f.room.ID))
	assert.Equal(t, 1, f.mail.count(), "only the booking holding the unit is confirmed")
}

func TestLatePaymentReclaimsFreeUnit(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	checkout, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)
	f.gateway.status = GatewayAbandoned
	_, err = f.svc.VerifyPayment(ctx, checkout.Booking.Reference)
	require.ErrorIs(t, err, ErrPaymentNotSettled)

	f.gateway.status = GatewaySuccess
	b, err := f.svc.VerifyPayment(ctx, checkout.Booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
	assert.Equal(t, 1, f.mail.count())

	_, err = f.svc.Create(ctx, f.input(f.room.ID))
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
}

func TestUpdateStatusReopeningNeedsFreeUnit(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, first.Booking.ID, models.PaymentCancelled)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.input(f.room.ID))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, first.Booking.ID, models.PaymentPaid)
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	_, err = f.svc.UpdateStatus(ctx, first.Booking.ID, models.PaymentPending)
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	assert.Equal(t, int64(1), occupyingBookings(t, f.db, f.room.ID))

	b, err := f.svc.UpdateStatus(ctx, first.Booking.ID, models.PaymentAbandoned)
	require.NoError(t, err, "moves between released statuses need no unit")
	assert.Equal(t, models.PaymentAbandoned, b.PaymentStatus)
	assert.Equal(t, "Standard", b.RoomName)
}
