package models

import "time"

type LodgeSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Skin      string    `gorm:"size:20;uniqueIndex" json:"skin"`
	Name      string    `gorm:"size:255" json:"name"`
	Tagline   string    `gorm:"size:255" json:"tagline"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:120" json:"phone"`
	Email     string    `gorm:"size:150" json:"email"`
	Website   string    `gorm:"size:255" json:"website"`
	Logo      string    `gorm:"size:255" json:"logo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	SkinSmart = "smart"
	SkinElkad = "elkad"
)

// LodgeSkins holds the seeded branding for each front-end skin.
var LodgeSkins = map[string]LodgeSetting{
	SkinSmart: {
		Skin:    SkinSmart,
		Name:    "Smart Hotel",
		Tagline: "True serenity for smart people.",
		Address: "Community 6, SOS Road, Tema, Ghana",
		Phone:   "+233 30 321 7656 / +233 30 331 9430 / +233 248 724 661",
		Email:   "Smarthotel24@gmail.com",
	},
	SkinElkad: {
		Skin:    SkinElkad,
		Name:    "Elkad Lodge",
		Tagline: "Comfort and hospitality in the heart of Kumasi.",
		Address: "Sewua - Awiem, Kumasi",
		Phone:   "+233 24 640 1209",
		Email:   "elkadlodge@gmail.com",
	},
}
