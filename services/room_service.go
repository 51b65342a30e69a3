package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lodge-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	roomCatalogKey = "rooms:catalog"
	roomCatalogTTL = 15 * time.Second
)

type RoomInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gte=0"`
	MaxGuests   int      `json:"max_guests" binding:"omitempty,min=1"`
	Quantity    *int     `json:"quantity" binding:"omitempty,min=0"`
	ImageURL    string   `json:"image_url"`
	Images      []string `json:"images"`
	Available   *bool    `json:"available"`
}

type RoomService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Images       ImageStore
	Cache        Cache
	Now          func() time.Time
}

func NewRoomService(db *gorm.DB, availability *AvailabilityService, images ImageStore, cache Cache) *RoomService {
	return &RoomService{DB: db, Availability: availability, Images: images, Cache: cache, Now: time.Now}
}

// Catalog is the public room list with tonight's free units, cached briefly.
func (s *RoomService) Catalog(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if found, err := s.Cache.Get(ctx, roomCatalogKey, &rooms); err != nil {
		log.Printf("rooms: catalog cache read failed: %v", err)
	} else if found {
		return rooms, nil
	}

	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, roomCatalogKey, rooms, roomCatalogTTL); err != nil {
		log.Printf("rooms: catalog cache write failed: %v", err)
	}
	return rooms, nil
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if err := s.Availability.AvailableToday(ctx, rooms, s.Now()); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("get room: %w", err)
	}
	rooms := []models.Room{room}
	if err := s.Availability.AvailableToday(ctx, rooms, s.Now()); err != nil {
		return models.Room{}, err
	}
	return rooms[0], nil
}

// Quote prices a stay in the room. An incomplete selection is not an error.
func (s *RoomService) Quote(ctx context.Context, id uint, checkIn, checkOut time.Time) (models.Room, StayQuote, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return models.Room{}, StayQuote{}, err
	}
	return room, QuoteStay(room.Price, checkIn, checkOut), nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (models.Room, error) {
	room := models.Room{MaxGuests: 2, Quantity: 1, Available: true}
	if err := s.apply(ctx, &room, in); err != nil {
		return models.Room{}, err
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return models.Room{}, fmt.Errorf("create room: %w", err)
	}
	s.InvalidateCatalog(ctx)
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("get room: %w", err)
	}
	if err := s.apply(ctx, &room, in); err != nil {
		return models.Room{}, err
	}
	if err := s.DB.WithContext(ctx).Save(&room).Error; err != nil {
		return models.Room{}, fmt.Errorf("update room: %w", err)
	}
	s.InvalidateCatalog(ctx)
	return room, nil
}

// Delete refuses rooms that still hold active guests or open bookings.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)
	var room models.Room
	if err := db.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("get room: %w", err)
	}

	var active int64
	if err := db.Model(&models.Guest{}).Where("room_id = ? AND status = ?", id, models.GuestActive).Count(&active).Error; err != nil {
		return fmt.Errorf("count active guests: %w", err)
	}
	var open int64
	if err := db.Model(&models.Booking{}).Where("room_id = ? AND payment_status IN ?", id, models.OccupyingStatuses).Count(&open).Error; err != nil {
		return fmt.Errorf("count open bookings: %w", err)
	}
	if active+open > 0 {
		return ErrRoomInUse
	}

	if err := db.Delete(&room).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrRoomInUse
		}
		return fmt.Errorf("delete room: %w", err)
	}
	s.InvalidateCatalog(ctx)
	return nil
}

func (s *RoomService) InvalidateCatalog(ctx context.Context) {
	if err := s.Cache.Delete(ctx, roomCatalogKey); err != nil {
		log.Printf("rooms: catalog cache invalidation failed: %v", err)
	}
}

func (s *RoomService) apply(ctx context.Context, room *models.Room, in RoomInput) error {
	room.Name = strings.TrimSpace(in.Name)
	room.Description = strings.TrimSpace(in.Description)
	room.Price = in.Price
	if in.MaxGuests > 0 {
		room.MaxGuests = in.MaxGuests
	}
	if in.Quantity != nil {
		room.Quantity = *in.Quantity
	}
	if in.Available != nil {
		room.Available = *in.Available
	}

	cover, err := s.storeImage(ctx, in.ImageURL)
	if err != nil {
		return err
	}
	room.ImageURL = cover

	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		url, err := s.storeImage(ctx, img)
		if err != nil {
			return err
		}
		if url != "" {
			images = append(images, url)
		}
	}
	room.Images = datatypes.JSONSlice[string](images)
	if room.ImageURL == "" && len(images) > 0 {
		room.ImageURL = images[0]
	}
	return nil
}

// storeImage uploads data URLs and passes plain URLs through.
func (s *RoomService) storeImage(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !IsDataURL(raw) {
		return raw, nil
	}
	data, err := DecodeDataURL(raw)
	if err != nil {
		return "", err
	}
	stored, err := s.Images.Save(ctx, data, "rooms")
	if err != nil {
		return "", err
	}
	return stored.URL, nil
}
