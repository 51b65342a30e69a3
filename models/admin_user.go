package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

type AdminUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash
	Role      string    `gorm:"size:20;default:admin" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminUser) TableName() string { return "admin_users" }
