package models

import "time"

type GalleryImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:50;default:general" json:"category"`
	ImageData   string    `gorm:"size:16777216" json:"image_data,omitempty"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	PublicID    string    `gorm:"size:255" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
