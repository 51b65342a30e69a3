package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lodge-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuestInput struct {
	Name           string  `json:"name" binding:"required"`
	Phone          string  `json:"phone" binding:"required"`
	Email          string  `json:"email" binding:"omitempty,email"`
	RoomID         FlexInt `json:"room_id" binding:"required,min=1"`
	CheckIn        string  `json:"check_in" binding:"required,stay_date"`
	CheckOut       string  `json:"check_out" binding:"required,stay_date"`
	Guests         FlexInt `json:"guests"`
	Breakfast      bool    `json:"breakfast"`
	ExtraBreakfast FlexInt `json:"extra_breakfast" binding:"min=0"`
	Laundry        bool    `json:"laundry"`
}

// GuestService manages front-desk stays: active -> checked_out, or active -> removed with a reason.
type GuestService struct {
	DB    *gorm.DB
	Rooms *RoomService
	Now   func() time.Time
}

func NewGuestService(db *gorm.DB, rooms *RoomService) *GuestService {
	return &GuestService{DB: db, Rooms: rooms, Now: time.Now}
}

func (s *GuestService) List(ctx context.Context, query string) (GuestSearchResult, error) {
	guests := []models.Guest{}
	if err := s.DB.WithContext(ctx).Preload("Room").Order("created_at DESC").Find(&guests).Error; err != nil {
		return GuestSearchResult{}, fmt.Errorf("list guests: %w", err)
	}
	for i := range guests {
		guests[i].RoomName = guests[i].Room.Name
	}
	return SearchGuests(guests, query), nil
}

func (s *GuestService) Get(ctx context.Context, id uint) (models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).Preload("Room").First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Guest{}, ErrGuestNotFound
		}
		return models.Guest{}, fmt.Errorf("get guest: %w", err)
	}
	guest.RoomName = guest.Room.Name
	return guest, nil
}

// Create registers a guest against a free unit of the room.
func (s *GuestService) Create(ctx context.Context, in GuestInput, addedBy string) (models.Guest, error) {
	checkIn, err := ParseStayDate(in.CheckIn)
	if err != nil {
		return models.Guest{}, fmt.Errorf("%w: %v", ErrInvalidStay, err)
	}
	checkOut, err := ParseStayDate(in.CheckOut)
	if err != nil {
		return models.Guest{}, fmt.Errorf("%w: %v", ErrInvalidStay, err)
	}
	if err := ValidateStay(checkIn, checkOut); err != nil {
		return models.Guest{}, err
	}
	count := int(in.Guests)
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return models.Guest{}, ErrInvalidGuestCount
	}

	var guest models.Guest
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, uint(in.RoomID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("lock room: %w", err)
		}
		if count > room.MaxGuests {
			return ErrTooManyGuests
		}
		free, err := availableUnits(tx, room, checkIn, checkOut)
		if err != nil {
			return err
		}
		if free < 1 {
			return ErrRoomNotAvailable
		}

		guest = models.Guest{
			RoomID:         room.ID,
			Name:           strings.TrimSpace(in.Name),
			Phone:          strings.TrimSpace(in.Phone),
			Email:          strings.TrimSpace(in.Email),
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			Guests:         count,
			Breakfast:      in.Breakfast,
			ExtraBreakfast: int(in.ExtraBreakfast),
			Laundry:        in.Laundry,
			Status:         models.GuestActive,
			AddedBy:        addedBy,
		}
		if err := tx.Create(&guest).Error; err != nil {
			return fmt.Errorf("create guest: %w", err)
		}
		guest.RoomName = room.Name
		return nil
	})
	if err != nil {
		return models.Guest{}, err
	}
	s.Rooms.InvalidateCatalog(ctx)
	return guest, nil
}

// Checkout ends an active stay.
func (s *GuestService) Checkout(ctx context.Context, id uint) (models.Guest, error) {
	guest, err := s.transition(ctx, id, models.GuestCheckedOut, "checked_out_at", nil)
	if err != nil {
		return models.Guest{}, err
	}
	s.Rooms.InvalidateCatalog(ctx)
	return guest, nil
}

// Remove ends an active stay early and records why.
func (s *GuestService) Remove(ctx context.Context, id uint, reason, removedBy string) (models.Guest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Guest{}, ErrReasonRequired
	}
	guest, err := s.transition(ctx, id, models.GuestRemoved, "removed_at", func(tx *gorm.DB, g models.Guest) error {
		return tx.Create(&models.RemovalReason{
			GuestID:   g.ID,
			GuestName: g.Name,
			RoomName:  g.RoomName,
			Reason:    reason,
			RemovedBy: removedBy,
		}).Error
	})
	if err != nil {
		return models.Guest{}, err
	}
	s.Rooms.InvalidateCatalog(ctx)
	return guest, nil
}

func (s *GuestService) transition(ctx context.Context, id uint, status, stampColumn string, after func(*gorm.DB, models.Guest) error) (models.Guest, error) {
	var guest models.Guest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Room").First(&guest, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return fmt.Errorf("load guest: %w", err)
		}
		if guest.Status != models.GuestActive {
			return ErrInvalidTransition
		}
		guest.RoomName = guest.Room.Name

		now := s.Now().UTC()
		if err := tx.Model(&models.Guest{}).Where("id = ?", guest.ID).
			Updates(map[string]interface{}{"status": status, stampColumn: now}).Error; err != nil {
			return fmt.Errorf("update guest: %w", err)
		}
		guest.Status = status
		if stampColumn == "checked_out_at" {
			guest.CheckedOutAt = &now
		} else {
			guest.RemovedAt = &now
		}
		if after != nil {
			return after(tx, guest)
		}
		return nil
	})
	return guest, err
}

// DeletePermanent erases the guest record. Removal reasons are kept as history.
func (s *GuestService) DeletePermanent(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Guest{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete guest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	s.Rooms.InvalidateCatalog(ctx)
	return nil
}

func (s *GuestService) RemovalReasons(ctx context.Context) ([]models.RemovalReason, error) {
	reasons := []models.RemovalReason{}
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&reasons).Error; err != nil {
		return nil, fmt.Errorf("list removal reasons: %w", err)
	}
	return reasons, nil
}
