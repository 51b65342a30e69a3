package models

import "time"

// RemovalReason records why a guest was removed before their check-out date.
type RemovalReason struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"index" json:"guest_id"`
	GuestName string    `gorm:"size:150" json:"guest_name"`
	RoomName  string    `gorm:"size:150" json:"room_name"`
	Reason    string    `gorm:"type:text" json:"reason"`
	RemovedBy string    `gorm:"size:150" json:"removed_by"`
	CreatedAt time.Time `json:"created_at"`
}
