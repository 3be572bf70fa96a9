package utils

import (
	"bookit/src/models"
	"bookit/src/types"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPromo() *models.PromoCode {
	return &models.PromoCode{
		Code:          "SAVE10",
		DiscountType:  types.DISCOUNT_PERCENTAGE,
		DiscountValue: 10,
		ValidFrom:     time.Now().Add(-24 * time.Hour),
		ValidUntil:    time.Now().Add(24 * time.Hour),
		Active:        true,
	}
}

func TestScorePromoPercentage(t *testing.T) {
	promo := validPromo()
	quote, err := scorePromo(promo, 200, time.Now())

	assert.Nil(t, err)
	assert.Equal(t, "SAVE10", quote.Code)
	assert.Equal(t, types.DISCOUNT_PERCENTAGE, quote.DiscountType)
	assert.Equal(t, float64(20), quote.DiscountAmount)
	assert.Equal(t, float64(180), quote.FinalAmount)
}

func TestScorePromoPercentageCapped(t *testing.T) {
	promo := validPromo()
	cap := 15.0
	promo.MaxDiscount = &cap

	quote, err := scorePromo(promo, 200, time.Now())

	assert.Nil(t, err)
	assert.Equal(t, float64(15), quote.DiscountAmount)
	assert.Equal(t, float64(185), quote.FinalAmount)
}

func TestScorePromoFixed(t *testing.T) {
	promo := validPromo()
	promo.Code = "FLAT100"
	promo.DiscountType = types.DISCOUNT_FIXED
	promo.DiscountValue = 100

	quote, err := scorePromo(promo, 250, time.Now())

	assert.Nil(t, err)
	assert.Equal(t, float64(100), quote.DiscountAmount)
	assert.Equal(t, float64(150), quote.FinalAmount)
}

// Fixed discounts are not clamped by the evaluator; clamping to the subtotal
// is the reservation engine's responsibility.
func TestScorePromoFixedExceedsSubtotal(t *testing.T) {
	promo := validPromo()
	promo.DiscountType = types.DISCOUNT_FIXED
	promo.DiscountValue = 100

	quote, err := scorePromo(promo, 60, time.Now())

	assert.Nil(t, err)
	assert.Equal(t, float64(100), quote.DiscountAmount)
}

func TestScorePromoExpired(t *testing.T) {
	promo := validPromo()
	promo.Code = "EXPIRED1"
	promo.ValidUntil = time.Now().Add(-1 * time.Hour)

	quote, err := scorePromo(promo, 200, time.Now())

	assert.Nil(t, quote)
	var rejection *types.PromoRejectionError
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Invalid or expired promo code", rejection.Reason)
}

func TestScorePromoNotYetValid(t *testing.T) {
	promo := validPromo()
	promo.ValidFrom = time.Now().Add(1 * time.Hour)

	_, err := scorePromo(promo, 200, time.Now())

	var rejection *types.PromoRejectionError
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Invalid or expired promo code", rejection.Reason)
}

func TestScorePromoInactive(t *testing.T) {
	promo := validPromo()
	promo.Active = false

	_, err := scorePromo(promo, 200, time.Now())

	var rejection *types.PromoRejectionError
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Invalid or expired promo code", rejection.Reason)
}

func TestScorePromoUsageLimitExceeded(t *testing.T) {
	promo := validPromo()
	limit := uint(5)
	promo.UsageLimit = &limit
	promo.UsedCount = 5

	_, err := scorePromo(promo, 200, time.Now())

	var rejection *types.PromoRejectionError
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Promo code usage limit exceeded", rejection.Reason)
}

func TestScorePromoBelowMinimum(t *testing.T) {
	promo := validPromo()
	promo.MinAmount = 150

	_, err := scorePromo(promo, 100, time.Now())

	var rejection *types.PromoRejectionError
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Minimum amount of $150 required", rejection.Reason)
}

// Repeated scoring with unchanged inputs must return the same quote.
func TestScorePromoIdempotent(t *testing.T) {
	promo := validPromo()
	now := time.Now()

	first, err1 := scorePromo(promo, 200, now)
	second, err2 := scorePromo(promo, 200, now)

	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, first, second)
}

func TestGenerateBookingReference(t *testing.T) {
	ref, err := generateBookingReference()

	assert.Nil(t, err)
	assert.Len(t, ref, len(referencePrefix)+referenceDigits)
	assert.True(t, strings.HasPrefix(ref, referencePrefix))
	for _, c := range ref[len(referencePrefix):] {
		assert.GreaterOrEqual(t, c, '0')
		assert.LessOrEqual(t, c, '9')
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "50", formatAmount(50))
	assert.Equal(t, "12.5", formatAmount(12.5))
}

func TestImagesToJSONB(t *testing.T) {
	arr := imagesToJSONB([]types.ExperienceImage{{URL: "https://example.com/a.jpg", Alt: "kayak"}})

	assert.Len(t, arr, 1)
	assert.Equal(t, types.JSONB{"url": "https://example.com/a.jpg", "alt": "kayak"}, arr[0])
}

func TestSlotSpotsLeft(t *testing.T) {
	slot := models.Slot{MaxParticipants: 10, BookedParticipants: 8}
	assert.Equal(t, uint(2), slot.SpotsLeft())

	slot.BookedParticipants = 10
	assert.Equal(t, uint(0), slot.SpotsLeft())
}
