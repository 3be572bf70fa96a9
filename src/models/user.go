package models

import "bookit/src/types"

type User struct {
	ID       uint           `gorm:"primarykey" json:"id"`
	Name     string         `json:"name,omitempty"`
	Email    string         `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string         `json:"-"`
	Role     types.UserRole `gorm:"default:'user'" json:"role,omitempty"`

	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}
