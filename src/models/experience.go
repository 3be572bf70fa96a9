package models

import "bookit/src/types"

type Experience struct {
	ID           uint                       `gorm:"primarykey" json:"id"`
	Title        string                     `json:"title,omitempty"`
	Slug         string                     `gorm:"index" json:"slug,omitempty"`
	Description  string                     `json:"description,omitempty"`
	Category     types.ExperienceCategory   `json:"category,omitempty"`
	Location     string                     `json:"location,omitempty"`
	Images       types.JSONBArray           `gorm:"type:jsonb" json:"images,omitempty"`
	Duration     float64                    `json:"duration,omitempty"`
	Difficulty   types.ExperienceDifficulty `gorm:"default:'Moderate'" json:"difficulty,omitempty"`
	Includes     types.JSONBArray           `gorm:"type:jsonb" json:"includes,omitempty"`
	Excludes     types.JSONBArray           `gorm:"type:jsonb" json:"excludes,omitempty"`
	Requirements types.JSONBArray           `gorm:"type:jsonb" json:"requirements,omitempty"`
	Rating       float64                    `gorm:"default:0" json:"rating"`
	ReviewCount  uint                       `gorm:"default:0" json:"review_count"`
	Featured     bool                       `gorm:"default:false" json:"featured"`

	Slots []Slot `json:"slots,omitempty"`

	types.Timestamps
}

// Slot is a single bookable date/time instance of an experience. Unlike the
// embedded documents it replaces, each slot carries a surrogate ID so that
// duplicate (date, startTime) pairs stay unambiguous and capacity updates can
// target one row.
type Slot struct {
	ID                 uint    `gorm:"primarykey" json:"id"`
	ExperienceID       uint    `gorm:"index:idx_slots_lookup" json:"experience_id,omitempty"`
	Date               string  `gorm:"index:idx_slots_lookup" json:"date,omitempty"`
	StartTime          string  `gorm:"index:idx_slots_lookup" json:"start_time,omitempty"`
	EndTime            string  `json:"end_time,omitempty"`
	Price              float64 `json:"price"`
	MaxParticipants    uint    `json:"max_participants"`
	BookedParticipants uint    `gorm:"default:0" json:"booked_participants"`

	Experience Experience `json:"-"`

	types.Timestamps
}

// SpotsLeft reports the remaining capacity as of the last read. Only the
// conditional update in the booking path may rely on it for correctness.
func (s Slot) SpotsLeft() uint {
	if s.BookedParticipants >= s.MaxParticipants {
		return 0
	}
	return s.MaxParticipants - s.BookedParticipants
}
