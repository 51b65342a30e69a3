package models

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"size:150;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Price       float64                     `json:"price"`
	MaxGuests   int                         `gorm:"column:max_guests" json:"max_guests"`
	Quantity    int                         `json:"quantity"`
	ImageURL    string                      `gorm:"column:image_url;size:512" json:"image_url"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Available   bool                        `json:"available"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`

	// computed per request
	AvailableRooms int `gorm:"-" json:"available_rooms"`
}
