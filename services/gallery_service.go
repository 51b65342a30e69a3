package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lodge-backend/models"

	"gorm.io/gorm"
)

type GalleryInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageData   string `json:"image_data" binding:"required"`
}

type GalleryService struct {
	DB     *gorm.DB
	Images ImageStore
}

func NewGalleryService(db *gorm.DB, images ImageStore) *GalleryService {
	return &GalleryService{DB: db, Images: images}
}

func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	images := []models.GalleryImage{}
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return images, nil
}

func (s *GalleryService) Create(ctx context.Context, in GalleryInput) (models.GalleryImage, error) {
	if !IsDataURL(in.ImageData) {
		return models.GalleryImage{}, ErrInvalidImage
	}
	data, err := DecodeDataURL(in.ImageData)
	if err != nil {
		return models.GalleryImage{}, err
	}
	stored, err := s.Images.Save(ctx, data, "gallery")
	if err != nil {
		return models.GalleryImage{}, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}
	img := models.GalleryImage{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		ImageData:   strings.TrimSpace(in.ImageData),
		ImageURL:    stored.URL,
		PublicID:    stored.PublicID,
	}
	if err := s.DB.WithContext(ctx).Create(&img).Error; err != nil {
		if rmErr := s.Images.Remove(ctx, stored.PublicID); rmErr != nil {
			log.Printf("gallery: failed to clean up %s: %v", stored.PublicID, rmErr)
		}
		return models.GalleryImage{}, fmt.Errorf("create gallery image: %w", err)
	}
	return img, nil
}

func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	var img models.GalleryImage
	if err := s.DB.WithContext(ctx).First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("load gallery image: %w", err)
	}
	if err := s.DB.WithContext(ctx).Delete(&img).Error; err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	if err := s.Images.Remove(ctx, img.PublicID); err != nil {
		log.Printf("gallery: failed to remove stored image %s: %v", img.PublicID, err)
	}
	return nil
}
