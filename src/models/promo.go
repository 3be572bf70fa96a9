package models

import (
	"time"

	"bookit/src/types"
)

type PromoCode struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	Code          string             `gorm:"uniqueIndex" json:"code,omitempty"`
	DiscountType  types.DiscountType `json:"discount_type,omitempty"`
	DiscountValue float64            `json:"discount_value"`
	MinAmount     float64            `gorm:"default:0" json:"min_amount"`
	MaxDiscount   *float64           `json:"max_discount,omitempty"`
	ValidFrom     time.Time          `json:"valid_from,omitempty"`
	ValidUntil    time.Time          `json:"valid_until,omitempty"`
	UsageLimit    *uint              `json:"usage_limit,omitempty"`
	UsedCount     uint               `gorm:"default:0" json:"used_count"`
	Active        bool               `gorm:"default:true" json:"active"`

	types.Timestamps
}
