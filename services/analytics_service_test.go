package services

import (
	"context"
	"testing"

	"lodge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsSummary(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, "Standard", 200, 2, 3)
	seedRoom(t, db, "Suite", 600, 4, 1)

	require.NoError(t, db.Create(&models.Guest{RoomID: room.ID, Name: "A", CheckIn: mustDate(t, "2024-06-01"), CheckOut: mustDate(t, "2024-06-03"), Status: models.GuestActive}).Error)
	require.NoError(t, db.Create(&models.Guest{RoomID: room.ID, Name: "B", CheckIn: mustDate(t, "2024-05-01"), CheckOut: mustDate(t, "2024-05-03"), Status: models.GuestCheckedOut}).Error)
	require.NoError(t, db.Create(&models.Booking{RoomID: room.ID, Reference: "p1", CheckIn: mustDate(t, "2024-06-02"), CheckOut: mustDate(t, "2024-06-04"), TotalCost: 400, PaymentStatus: models.PaymentPaid}).Error)
	require.NoError(t, db.Create(&models.Booking{RoomID: room.ID, Reference: "f1", CheckIn: mustDate(t, "2024-06-02"), CheckOut: mustDate(t, "2024-06-04"), TotalCost: 400, PaymentStatus: models.PaymentFailed}).Error)

	svc := NewAnalyticsService(db, NewAvailabilityService(db))
	svc.Now = fixedClock("2024-06-02T21:00:00Z")

	a, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), a.TotalBookings)
	assert.Equal(t, int64(1), a.PaidBookings)
	assert.Equal(t, int64(2), a.TotalGuests)
	assert.Equal(t, int64(1), a.ActiveGuests)
	assert.Equal(t, 400.0, a.TotalRevenue)
	assert.Equal(t, 4, a.TotalUnits)
	assert.Equal(t, 2, a.OccupiedRooms)
	assert.Equal(t, 2, a.AvailableRooms)
	assert.Equal(t, 50.0, a.OccupancyRate)
}
