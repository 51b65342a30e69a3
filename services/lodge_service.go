package services

import (
	"context"
	"errors"
	"fmt"

	"lodge-backend/models"

	"gorm.io/gorm"
)

type LodgeSettingInput struct {
	Name    string `json:"name" binding:"required"`
	Tagline string `json:"tagline"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Website string `json:"website"`
	Logo    string `json:"logo"`
}

// LodgeService serves the branding of the active skin.
type LodgeService struct {
	DB   *gorm.DB
	Skin string
}

func NewLodgeService(db *gorm.DB, skin string) *LodgeService {
	if _, ok := models.LodgeSkins[skin]; !ok {
		skin = models.SkinElkad
	}
	return &LodgeService{DB: db, Skin: skin}
}

// Current returns the stored setting for the active skin, or its preset when nothing is stored.
func (s *LodgeService) Current(ctx context.Context) (models.LodgeSetting, error) {
	var setting models.LodgeSetting
	err := s.DB.WithContext(ctx).Where("skin = ?", s.Skin).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.LodgeSkins[s.Skin], nil
	}
	if err != nil {
		return models.LodgeSetting{}, fmt.Errorf("load lodge setting: %w", err)
	}
	return setting, nil
}

func (s *LodgeService) Update(ctx context.Context, in LodgeSettingInput) (models.LodgeSetting, error) {
	var setting models.LodgeSetting
	err := s.DB.WithContext(ctx).Where("skin = ?", s.Skin).First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.LodgeSetting{}, fmt.Errorf("load lodge setting: %w", err)
	}

	setting.Skin = s.Skin
	setting.Name = in.Name
	setting.Tagline = in.Tagline
	setting.Address = in.Address
	setting.Phone = in.Phone
	setting.Email = in.Email
	setting.Website = in.Website
	setting.Logo = in.Logo

	if err := s.DB.WithContext(ctx).Save(&setting).Error; err != nil {
		return models.LodgeSetting{}, fmt.Errorf("save lodge setting: %w", err)
	}
	return setting, nil
}
