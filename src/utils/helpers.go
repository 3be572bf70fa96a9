package utils

import (
	"bookit/src/db"
	"bookit/src/lib"
	"bookit/src/models"
	"bookit/src/types"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	// Reservation attempts are retried only on booking-reference collisions.
	// Capacity races are settled by the conditional update and never retried.
	maxReserveAttempts = 3

	referencePrefix = "BK"
	referenceDigits = 8

	catalogCacheKey = "experiences:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// CreateBooking runs the reservation flow for a single request: resolve the
// slot, price the order, debit capacity and write the booking as one
// transaction. No side effect survives any failure path.
func CreateBooking(params *types.CreateBookingRequestBody, userId uint) (*models.Booking, error) {
	var booking *models.Booking
	var err error
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		booking, err = tryReserve(params, userId)
		if errors.Is(err, types.ErrConflict) {
			log.Printf("Booking reference collision, retrying (attempt %d)\n", attempt+1)
			continue
		}
		break
	}
	return booking, err
}

func tryReserve(params *types.CreateBookingRequestBody, userId uint) (*models.Booking, error) {
	requestId := uuid.New()
	participants := uint(params.Participants)
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var experience models.Experience
		if err := tx.
			Model(&models.Experience{}).
			Where(&models.Experience{ID: params.ExperienceID}).
			First(&experience).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		var slot models.Slot
		if err := tx.
			Where(&models.Slot{
				ExperienceID: experience.ID,
				Date:         params.SlotDate,
				StartTime:    params.SlotStartTime,
			}).
			First(&slot).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrInvalidSlot
			}
			return err
		}

		if slot.BookedParticipants+participants > slot.MaxParticipants {
			return types.ErrCapacityExceeded
		}

		totalAmount := slot.Price * float64(params.Participants)
		var discountAmount float64
		var appliedCode *string
		if params.PromoCode != "" {
			quote, err := evaluatePromo(tx, params.PromoCode, totalAmount)
			var rejection *types.PromoRejectionError
			switch {
			case err == nil:
				// Debit one use under the same guard discipline as slot
				// capacity, so a limited code cannot be over-redeemed by
				// concurrent bookings.
				res := tx.
					Model(&models.PromoCode{}).
					Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", quote.Code).
					UpdateColumn("used_count", gorm.Expr("used_count + 1"))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					log.Printf("Promo [%s] usage exhausted mid-booking, proceeding without discount\n", quote.Code)
				} else {
					discountAmount = quote.DiscountAmount
					appliedCode = &quote.Code
				}
			case errors.As(err, &rejection):
				// A rejected or unknown code never fails the reservation;
				// the booking proceeds at full price.
				log.Printf("Promo [%s] rejected: %s\n", params.PromoCode, rejection.Reason)
			default:
				return err
			}
		}
		if discountAmount > totalAmount {
			discountAmount = totalAmount
		}
		finalAmount := totalAmount - discountAmount

		// The capacity check-and-debit is a single conditional update. Zero
		// rows affected means a concurrent booking won the remaining spots.
		res := tx.
			Model(&models.Slot{}).
			Where("id = ? AND booked_participants + ? <= max_participants", slot.ID, participants).
			UpdateColumn("booked_participants", gorm.Expr("booked_participants + ?", participants))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrCapacityExceeded
		}

		reference, err := generateBookingReference()
		if err != nil {
			return err
		}
		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{BookingReference: reference}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return types.ErrConflict
		}

		booking = models.Booking{
			RequestID:        &requestId,
			ExperienceID:     experience.ID,
			UserID:           userId,
			SlotID:           slot.ID,
			SlotDate:         slot.Date,
			SlotStartTime:    slot.StartTime,
			SlotEndTime:      slot.EndTime,
			Participants:     params.Participants,
			CustomerName:     params.CustomerInfo.Name,
			CustomerEmail:    params.CustomerInfo.Email,
			CustomerPhone:    params.CustomerInfo.Phone,
			TotalAmount:      totalAmount,
			DiscountAmount:   discountAmount,
			FinalAmount:      finalAmount,
			PromoCode:        appliedCode,
			Status:           types.BOOKING_CONFIRMED,
			BookingReference: reference,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate") {
				return types.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// EvaluatePromo scores a code against a candidate subtotal. Validation-only
// callers get a quote with no side effects; usage is debited only by a real
// reservation.
func EvaluatePromo(code string, subtotal float64) (*types.PromoQuote, error) {
	db := db.GetDb()
	return evaluatePromo(db, code, subtotal)
}

func evaluatePromo(tx *gorm.DB, code string, subtotal float64) (*types.PromoQuote, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var promo models.PromoCode
	if err := tx.
		Model(&models.PromoCode{}).
		Where(&models.PromoCode{Code: normalized}).
		First(&promo).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.PromoRejection("Invalid or expired promo code")
		}
		return nil, err
	}
	return scorePromo(&promo, subtotal, time.Now())
}

// scorePromo applies the rejection rules in priority order and computes the
// discount for a qualifying code.
func scorePromo(promo *models.PromoCode, subtotal float64, now time.Time) (*types.PromoQuote, error) {
	if !promo.Active || now.Before(promo.ValidFrom) || now.After(promo.ValidUntil) {
		return nil, types.PromoRejection("Invalid or expired promo code")
	}
	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		return nil, types.PromoRejection("Promo code usage limit exceeded")
	}
	if subtotal < promo.MinAmount {
		return nil, types.PromoRejection("Minimum amount of $%s required", formatAmount(promo.MinAmount))
	}

	var discount float64
	if promo.DiscountType == types.DISCOUNT_PERCENTAGE {
		discount = subtotal * (promo.DiscountValue / 100)
		if promo.MaxDiscount != nil && discount > *promo.MaxDiscount {
			discount = *promo.MaxDiscount
		}
	} else {
		discount = promo.DiscountValue
	}

	return &types.PromoQuote{
		Code:           promo.Code,
		DiscountType:   promo.DiscountType,
		DiscountValue:  promo.DiscountValue,
		DiscountAmount: discount,
		FinalAmount:    subtotal - discount,
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func generateBookingReference() (string, error) {
	max := big.NewInt(1)
	for range referenceDigits {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", referencePrefix, referenceDigits, n), nil
}

func GetOwnBookings(userId uint) ([]models.Booking, error) {
	db := db.GetDb()
	var bookings []models.Booking
	err := db.
		Model(&models.Booking{}).
		Where(&models.Booking{UserID: userId}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "images", "location")
		}).
		Order("created_at DESC").
		Find(&bookings).
		Error
	return bookings, err
}

func GetBooking(id uint, userId uint) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	if err := db.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: id, UserID: userId}).
		Preload("Experience").
		First(&booking).
		Error; err != nil {
		return nil, types.ErrNotFound
	}
	return &booking, nil
}

func GetBookingByReference(reference string, userId uint) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	if err := db.
		Model(&models.Booking{}).
		Where(&models.Booking{BookingReference: reference, UserID: userId}).
		Preload("Experience").
		First(&booking).
		Error; err != nil {
		return nil, types.ErrNotFound
	}
	return &booking, nil
}

// ListExperiences returns the public catalog with slots reduced to price
// info. Served from redis when the cache is warm.
func ListExperiences() ([]models.Experience, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		if val := rd.Get(context.Background(), catalogCacheKey).Val(); val != "" {
			var cached []models.Experience
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	db := db.GetDb()
	var experiences []models.Experience
	if err := db.
		Model(&models.Experience{}).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "experience_id", "price")
		}).
		Order("featured desc, title asc").
		Find(&experiences).
		Error; err != nil {
		return nil, err
	}

	if rd != nil {
		if raw, err := json.Marshal(&experiences); err == nil {
			if err := rd.SetEx(context.Background(), catalogCacheKey, string(raw), catalogCacheTTL).Err(); err != nil {
				log.Printf("[redis] Error caching catalog: %s\n", err.Error())
			}
		}
	}
	return experiences, nil
}

// GetExperience returns a single experience with only its open slots.
func GetExperience(id uint) (*models.Experience, error) {
	db := db.GetDb()
	var experience models.Experience
	if err := db.
		Model(&models.Experience{}).
		Where(&models.Experience{ID: id}).
		Preload("Slots", "booked_participants < max_participants").
		First(&experience).
		Error; err != nil {
		return nil, types.ErrNotFound
	}
	return &experience, nil
}

func CreateNewExperience(params *types.CreateExperienceRequestBody) (uint, error) {
	experience := models.Experience{
		Title:        params.Title,
		Slug:         slug.Make(params.Title),
		Description:  params.Description,
		Category:     params.Category,
		Location:     params.Location,
		Images:       imagesToJSONB(params.Images),
		Duration:     params.Duration,
		Difficulty:   params.Difficulty,
		Includes:     stringsToJSONB(params.Includes),
		Excludes:     stringsToJSONB(params.Excludes),
		Requirements: stringsToJSONB(params.Requirements),
		Featured:     params.Featured,
	}
	for _, s := range params.Slots {
		experience.Slots = append(experience.Slots, models.Slot{
			Date:            s.Date,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			Price:           s.Price,
			MaxParticipants: s.MaxParticipants,
		})
	}

	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&experience).Error
	})
	if err != nil {
		log.Printf("Error creating experience: %s\n", err.Error())
		return 0, err
	}
	lib.InvalidateCache(catalogCacheKey)
	return experience.ID, nil
}

func UpdateExperience(id uint, params *types.UpdateExperienceRequestBody) (*models.Experience, error) {
	updates := models.Experience{}
	if params.Title != nil {
		updates.Title = *params.Title
		updates.Slug = slug.Make(*params.Title)
	}
	if params.Description != nil {
		updates.Description = *params.Description
	}
	if params.Category != nil {
		updates.Category = *params.Category
	}
	if params.Location != nil {
		updates.Location = *params.Location
	}
	if params.Images != nil {
		updates.Images = imagesToJSONB(params.Images)
	}
	if params.Duration != nil {
		updates.Duration = *params.Duration
	}
	if params.Difficulty != nil {
		updates.Difficulty = *params.Difficulty
	}
	if params.Includes != nil {
		updates.Includes = stringsToJSONB(params.Includes)
	}
	if params.Excludes != nil {
		updates.Excludes = stringsToJSONB(params.Excludes)
	}
	if params.Requirements != nil {
		updates.Requirements = stringsToJSONB(params.Requirements)
	}

	db := db.GetDb()
	var experience models.Experience
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Experience{}).
			Where(&models.Experience{ID: id}).
			First(&experience).
			Error; err != nil {
			return types.ErrNotFound
		}
		if err := tx.
			Model(&experience).
			Updates(&updates).
			Error; err != nil {
			return err
		}
		if params.Featured != nil {
			if err := tx.
				Model(&experience).
				Update("featured", *params.Featured).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	lib.InvalidateCache(catalogCacheKey)
	return &experience, nil
}

func DeleteExperience(id uint) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Experience{}).
			Where(&models.Experience{ID: id}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count == 0 {
			return types.ErrNotFound
		}
		if err := tx.
			Where(&models.Slot{ExperienceID: id}).
			Delete(&models.Slot{}).
			Error; err != nil {
			return err
		}
		return tx.Delete(&models.Experience{ID: id}).Error
	})
	if err != nil {
		return err
	}
	lib.InvalidateCache(catalogCacheKey)
	return nil
}

func AddSlotToExperience(id uint, params *types.CreateSlotRequestBody) (*models.Slot, error) {
	slot := models.Slot{
		ExperienceID:    id,
		Date:            params.Date,
		StartTime:       params.StartTime,
		EndTime:         params.EndTime,
		Price:           params.Price,
		MaxParticipants: params.MaxParticipants,
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Experience{}).
			Where(&models.Experience{ID: id}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count == 0 {
			return types.ErrNotFound
		}
		return tx.Create(&slot).Error
	})
	if err != nil {
		return nil, err
	}
	lib.InvalidateCache(catalogCacheKey)
	return &slot, nil
}

func CreateNewPromoCode(params *types.CreatePromoCodeRequestBody) (uint, error) {
	promo := models.PromoCode{
		Code:          strings.ToUpper(strings.TrimSpace(params.Code)),
		DiscountType:  params.DiscountType,
		DiscountValue: params.DiscountValue,
		MinAmount:     params.MinAmount,
		MaxDiscount:   params.MaxDiscount,
		ValidFrom:     params.ValidFrom,
		ValidUntil:    params.ValidUntil,
		UsageLimit:    params.UsageLimit,
		Active:        true,
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&promo).Error
	})
	if err != nil {
		log.Printf("Error creating promo code: %s\n", err.Error())
		return 0, err
	}
	return promo.ID, nil
}

func ListPromoCodes() ([]models.PromoCode, error) {
	db := db.GetDb()
	var promos []models.PromoCode
	err := db.
		Model(&models.PromoCode{}).
		Order("created_at desc").
		Find(&promos).
		Error
	return promos, err
}

// DeactivateExpiredPromos flips the active flag on codes past their validity
// window. Runs on a schedule; evaluation rejects expired codes regardless, so
// this only keeps the stored state tidy.
func DeactivateExpiredPromos() {
	db := db.GetDb()
	res := db.
		Model(&models.PromoCode{}).
		Where("active = ? AND valid_until < ?", true, time.Now()).
		Update("active", false)
	if res.Error != nil {
		log.Printf("Error deactivating expired promos: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Deactivated %d expired promo codes\n", res.RowsAffected)
	}
}

func imagesToJSONB(images []types.ExperienceImage) types.JSONBArray {
	arr := make(types.JSONBArray, 0, len(images))
	for _, img := range images {
		arr = append(arr, types.JSONB{"url": img.URL, "alt": img.Alt})
	}
	return arr
}

func stringsToJSONB(items []string) types.JSONBArray {
	arr := make(types.JSONBArray, 0, len(items))
	for _, s := range items {
		arr = append(arr, s)
	}
	return arr
}
