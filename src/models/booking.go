package models

import (
	"bookit/src/types"

	"github.com/google/uuid"
)

type Booking struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RequestID    *uuid.UUID `gorm:"type:uuid" json:"-"`
	ExperienceID uint       `json:"experience_id,omitempty"`
	UserID       uint       `json:"user_id,omitempty"`
	SlotID       uint       `json:"slot_id,omitempty"`

	// Snapshot of the slot at booking time; later slot edits must not alter
	// historical bookings.
	SlotDate      string `json:"slot_date,omitempty"`
	SlotStartTime string `json:"slot_start_time,omitempty"`
	SlotEndTime   string `json:"slot_end_time,omitempty"`

	Participants   int                 `json:"participants,omitempty"`
	CustomerName   string              `json:"customer_name,omitempty"`
	CustomerEmail  string              `json:"customer_email,omitempty"`
	CustomerPhone  string              `json:"customer_phone,omitempty"`
	TotalAmount    float64             `json:"total_amount"`
	DiscountAmount float64             `json:"discount_amount"`
	FinalAmount    float64             `json:"final_amount"`
	PromoCode      *string             `json:"promo_code,omitempty"`
	Status         types.BookingStatus `gorm:"default:'confirmed'" json:"status,omitempty"`

	BookingReference string `gorm:"uniqueIndex" json:"booking_reference,omitempty"`

	Experience *Experience `json:"experience,omitempty"`
	User       *User       `json:"-"`

	types.Timestamps
}
