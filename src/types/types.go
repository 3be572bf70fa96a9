package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type ExperienceCategory string

const (
	CATEGORY_ADVENTURE ExperienceCategory = "Adventure"
	CATEGORY_CULTURAL  ExperienceCategory = "Cultural"
	CATEGORY_FOOD      ExperienceCategory = "Food"
	CATEGORY_NATURE    ExperienceCategory = "Nature"
	CATEGORY_URBAN     ExperienceCategory = "Urban"
)

type ExperienceDifficulty string

const (
	DIFFICULTY_EASY      ExperienceDifficulty = "Easy"
	DIFFICULTY_MODERATE  ExperienceDifficulty = "Moderate"
	DIFFICULTY_DIFFICULT ExperienceDifficulty = "Difficult"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "cancelled"
)

type DiscountType string

const (
	DISCOUNT_PERCENTAGE DiscountType = "percentage"
	DISCOUNT_FIXED      DiscountType = "fixed"
)

type UserRole string

const (
	ROLE_USER  UserRole = "user"
	ROLE_ADMIN UserRole = "admin"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CustomerInfo struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type CreateBookingRequestBody struct {
	ExperienceID  uint         `json:"experienceId" binding:"required"`
	SlotDate      string       `json:"slotDate" binding:"required,slotdate"`
	SlotStartTime string       `json:"slotStartTime" binding:"required,slottime"`
	Participants  int          `json:"participants" binding:"required,min=1,max=10"`
	CustomerInfo  CustomerInfo `json:"customerInfo" binding:"required"`
	PromoCode     string       `json:"promoCode"`
}

type ValidatePromoRequestBody struct {
	Code        string  `json:"code" binding:"required"`
	TotalAmount float64 `json:"totalAmount" binding:"required,gt=0"`
}

type PromoQuote struct {
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discountType"`
	DiscountValue  float64      `json:"discountValue"`
	DiscountAmount float64      `json:"discountAmount"`
	FinalAmount    float64      `json:"finalAmount"`
}

type CreateSlotRequestBody struct {
	Date            string  `json:"date" binding:"required,slotdate"`
	StartTime       string  `json:"startTime" binding:"required,slottime"`
	EndTime         string  `json:"endTime" binding:"required,slottime"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	MaxParticipants uint    `json:"maxParticipants" binding:"required,gt=0"`
}

type CreateExperienceRequestBody struct {
	Title        string                  `json:"title" binding:"required,max=100"`
	Description  string                  `json:"description" binding:"required"`
	Category     ExperienceCategory      `json:"category" binding:"required,oneof=Adventure Cultural Food Nature Urban"`
	Location     string                  `json:"location" binding:"required"`
	Images       []ExperienceImage       `json:"images"`
	Duration     float64                 `json:"duration" binding:"required,gt=0"`
	Difficulty   ExperienceDifficulty    `json:"difficulty" binding:"omitempty,oneof=Easy Moderate Difficult"`
	Includes     []string                `json:"includes"`
	Excludes     []string                `json:"excludes"`
	Requirements []string                `json:"requirements"`
	Featured     bool                    `json:"featured"`
	Slots        []CreateSlotRequestBody `json:"slots"`
}

type UpdateExperienceRequestBody struct {
	Title        *string               `json:"title" binding:"omitempty,max=100"`
	Description  *string               `json:"description"`
	Category     *ExperienceCategory   `json:"category" binding:"omitempty,oneof=Adventure Cultural Food Nature Urban"`
	Location     *string               `json:"location"`
	Images       []ExperienceImage     `json:"images"`
	Duration     *float64              `json:"duration" binding:"omitempty,gt=0"`
	Difficulty   *ExperienceDifficulty `json:"difficulty" binding:"omitempty,oneof=Easy Moderate Difficult"`
	Includes     []string              `json:"includes"`
	Excludes     []string              `json:"excludes"`
	Requirements []string              `json:"requirements"`
	Featured     *bool                 `json:"featured"`
}

type ExperienceImage struct {
	URL string `json:"url" binding:"required"`
	Alt string `json:"alt"`
}

type CreatePromoCodeRequestBody struct {
	Code          string       `json:"code" binding:"required"`
	DiscountType  DiscountType `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue float64      `json:"discountValue" binding:"required,gt=0"`
	MinAmount     float64      `json:"minAmount" binding:"gte=0"`
	MaxDiscount   *float64     `json:"maxDiscount" binding:"omitempty,gt=0"`
	ValidFrom     time.Time    `json:"validFrom" binding:"required"`
	ValidUntil    time.Time    `json:"validUntil" binding:"required,gtfield=ValidFrom"`
	UsageLimit    *uint        `json:"usageLimit" binding:"omitempty,gt=0"`
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Claims struct {
	Role UserRole `json:"role"`
	jwt.RegisteredClaims
}

type Environment string

const (
	Development Environment = "local"
	Test        Environment = "test"
	Production  Environment = "production"
)
