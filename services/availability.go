package services

import (
	"context"
	"fmt"
	"time"

	"lodge-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService counts free units of a room over a date range.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// AvailableUnits = room.Quantity - overlapping active guests and pending/paid bookings, floored at 0.
func (s *AvailabilityService) AvailableUnits(ctx context.Context, room models.Room, from, to time.Time) (int, error) {
	return availableUnits(s.DB.WithContext(ctx), room, from, to)
}

// AvailableToday fills AvailableRooms on each room for tonight.
func (s *AvailabilityService) AvailableToday(ctx context.Context, rooms []models.Room, now time.Time) error {
	from := StartOfDay(now)
	to := from.AddDate(0, 0, 1)
	for i := range rooms {
		n, err := s.AvailableUnits(ctx, rooms[i], from, to)
		if err != nil {
			return err
		}
		rooms[i].AvailableRooms = n
	}
	return nil
}

func availableUnits(tx *gorm.DB, room models.Room, from, to time.Time) (int, error) {
	occupied, err := occupiedUnits(tx, room.ID, from, to)
	if err != nil {
		return 0, err
	}
	free := room.Quantity - occupied
	if free < 0 {
		free = 0
	}
	return free, nil
}

// occupiedUnits loads the room's occupying stays and applies the overlap rule in Go so that
// date comparison does not depend on how each driver stores timestamps.
func occupiedUnits(tx *gorm.DB, roomID uint, from, to time.Time) (int, error) {
	var guests []models.Guest
	if err := tx.Select("id", "check_in", "check_out").
		Where("room_id = ? AND status = ?", roomID, models.GuestActive).
		Find(&guests).Error; err != nil {
		return 0, fmt.Errorf("load active guests: %w", err)
	}

	var bookings []models.Booking
	if err := tx.Select("id", "check_in", "check_out").
		Where("room_id = ? AND payment_status IN ?", roomID, models.OccupyingStatuses).
		Find(&bookings).Error; err != nil {
		return 0, fmt.Errorf("load open bookings: %w", err)
	}

	n := 0
	for _, g := range guests {
		if Overlaps(g.CheckIn, g.CheckOut, from, to) {
			n++
		}
	}
	for _, b := range bookings {
		if Overlaps(b.CheckIn, b.CheckOut, from, to) {
			n++
		}
	}
	return n, nil
}
