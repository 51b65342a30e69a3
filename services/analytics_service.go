package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"lodge-backend/models"

	"gorm.io/gorm"
)

type Analytics struct {
	TotalBookings  int64   `json:"totalBookings"`
	PaidBookings   int64   `json:"paidBookings"`
	TotalGuests    int64   `json:"totalGuests"`
	ActiveGuests   int64   `json:"activeGuests"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalUnits     int     `json:"totalUnits"`
	OccupiedRooms  int     `json:"occupiedRooms"`
	AvailableRooms int     `json:"availableRooms"`
	OccupancyRate  float64 `json:"occupancyRate"`
}

type AnalyticsService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Now          func() time.Time
}

func NewAnalyticsService(db *gorm.DB, availability *AvailabilityService) *AnalyticsService {
	return &AnalyticsService{DB: db, Availability: availability, Now: time.Now}
}

// Summary reports booking and guest totals, paid revenue and tonight's occupancy.
func (s *AnalyticsService) Summary(ctx context.Context) (Analytics, error) {
	db := s.DB.WithContext(ctx)
	var a Analytics

	if err := db.Model(&models.Booking{}).Count(&a.TotalBookings).Error; err != nil {
		return a, fmt.Errorf("count bookings: %w", err)
	}
	if err := db.Model(&models.Booking{}).Where("payment_status = ?", models.PaymentPaid).Count(&a.PaidBookings).Error; err != nil {
		return a, fmt.Errorf("count paid bookings: %w", err)
	}
	if err := db.Model(&models.Guest{}).Count(&a.TotalGuests).Error; err != nil {
		return a, fmt.Errorf("count guests: %w", err)
	}
	if err := db.Model(&models.Guest{}).Where("status = ?", models.GuestActive).Count(&a.ActiveGuests).Error; err != nil {
		return a, fmt.Errorf("count active guests: %w", err)
	}

	var revenue struct{ Total float64 }
	if err := db.Model(&models.Booking{}).Select("COALESCE(SUM(total_cost), 0) AS total").
		Where("payment_status = ?", models.PaymentPaid).Scan(&revenue).Error; err != nil {
		return a, fmt.Errorf("sum revenue: %w", err)
	}
	a.TotalRevenue = revenue.Total

	rooms := []models.Room{}
	if err := db.Find(&rooms).Error; err != nil {
		return a, fmt.Errorf("load rooms: %w", err)
	}
	if err := s.Availability.AvailableToday(ctx, rooms, s.Now()); err != nil {
		return a, err
	}
	for _, r := range rooms {
		a.TotalUnits += r.Quantity
		a.AvailableRooms += r.AvailableRooms
		occupied := r.Quantity - r.AvailableRooms
		if occupied > 0 {
			a.OccupiedRooms += occupied
		}
	}
	if a.TotalUnits > 0 {
		a.OccupancyRate = math.Round(float64(a.OccupiedRooms)/float64(a.TotalUnits)*1000) / 10
	}
	return a, nil
}
