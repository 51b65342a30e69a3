package models

import "time"

const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentAbandoned = "abandoned"
	PaymentCancelled = "cancelled"
	// PaymentConflict marks money received after the unit was released and resold; it needs a refund.
	PaymentConflict = "paid_conflict"
)

// PaymentStatuses lists every value accepted for Booking.PaymentStatus.
var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentAbandoned, PaymentCancelled, PaymentConflict}

// OccupyingStatuses are the payment statuses that hold a room unit.
var OccupyingStatuses = []string{PaymentPending, PaymentPaid}

type Booking struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RoomID        uint       `gorm:"index;not null" json:"room_id"`
	CustomerName  string     `gorm:"size:150" json:"customer_name"`
	CustomerEmail string     `gorm:"size:150" json:"customer_email"`
	CustomerPhone string     `gorm:"size:50" json:"customer_phone"`
	CheckIn       time.Time  `gorm:"index" json:"check_in"`
	CheckOut      time.Time  `gorm:"index" json:"check_out"`
	Guests        int        `json:"guests"`
	Nights        int        `json:"nights"`
	TotalCost     float64    `json:"total_cost"`
	PaymentStatus string     `gorm:"size:20;index;default:pending" json:"payment_status"`
	Reference     string     `gorm:"size:64;uniqueIndex" json:"reference"`
	PaidAt        *time.Time `json:"paid_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Room     Room   `gorm:"foreignKey:RoomID" json:"-"`
	RoomName string `gorm:"-" json:"room_name"`
}

// OccupiesUnit reports whether the booking holds a room unit for its dates.
func (b Booking) OccupiesUnit() bool {
	for _, st := range OccupyingStatuses {
		if b.PaymentStatus == st {
			return true
		}
	}
	return false
}
