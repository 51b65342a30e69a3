package models

import "time"

const (
	GuestActive     = "active"
	GuestCheckedOut = "checked_out"
	GuestRemoved    = "removed"
)

type Guest struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID         uint       `gorm:"index;column:room_id" json:"room_id"`
	Name           string     `gorm:"size:150;not null" json:"name"`
	Phone          string     `gorm:"size:50" json:"phone"`
	Email          string     `gorm:"size:150" json:"email"`
	CheckIn        time.Time  `gorm:"index" json:"check_in"`
	CheckOut       time.Time  `gorm:"index" json:"check_out"`
	Guests         int        `gorm:"default:1" json:"guests"`
	Breakfast      bool       `json:"breakfast"`
	ExtraBreakfast int        `json:"extra_breakfast"`
	Laundry        bool       `json:"laundry"`
	Status         string     `gorm:"size:20;index;default:active" json:"status"`
	AddedBy        string     `gorm:"size:150" json:"added_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CheckedOutAt   *time.Time `json:"checked_out_at"`
	RemovedAt      *time.Time `json:"removed_at"`

	Room     Room   `gorm:"foreignKey:RoomID" json:"-"`
	RoomName string `gorm:"-" json:"room_name"`
}
