package boot

import (
	"bookit/src/db"
	"bookit/src/lib"
	"bookit/src/models"
	"bookit/src/types"
	"bookit/src/utils"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Experience{},
		&models.Slot{},
		&models.PromoCode{},
		&models.Booking{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// promoSweepInterval controls how often expired promo codes get their active
// flag cleared.
const promoSweepInterval = 1 * time.Hour

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(utils.DeactivateExpiredPromos, promoSweepInterval)
	if err != nil {
		log.Printf("Error scheduling promo sweep: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled promo sweep job: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}

// SeedData loads sample catalog rows into an empty database. The SAVE10 and
// FLAT100 codes are seeded as real promo rows so the booking path and the
// validation endpoint evaluate them through the same store.
func SeedData() {
	dbi := db.GetDb()
	var count int64
	if err := dbi.Model(&models.Experience{}).Count(&count).Error; err != nil {
		log.Printf("Error counting experiences: %s\n", err.Error())
		return
	}
	if count > 0 {
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	dayAfter := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	experiences := []models.Experience{
		{
			Title:       "Sunset Kayaking Adventure",
			Slug:        "sunset-kayaking-adventure",
			Description: "Paddle through calm waters as you watch the sun dip below the horizon. Perfect for beginners and experienced kayakers alike.",
			Category:    types.CATEGORY_ADVENTURE,
			Location:    "Miami Beach, FL",
			Duration:    2,
			Difficulty:  types.DIFFICULTY_EASY,
			Includes:    types.JSONBArray{"Kayak rental", "Life jacket", "Guide", "Bottled water"},
			Excludes:    types.JSONBArray{"Transportation", "Meals"},
			Rating:      4.8,
			ReviewCount: 124,
			Featured:    true,
			Slots: []models.Slot{
				{Date: tomorrow, StartTime: "16:00", EndTime: "18:00", MaxParticipants: 10, BookedParticipants: 2, Price: 65},
				{Date: dayAfter, StartTime: "16:00", EndTime: "18:00", MaxParticipants: 10, BookedParticipants: 5, Price: 65},
			},
		},
		{
			Title:       "Mountain Hiking Expedition",
			Slug:        "mountain-hiking-expedition",
			Description: "Challenge yourself with this breathtaking hike through scenic mountain trails with panoramic views.",
			Category:    types.CATEGORY_NATURE,
			Location:    "Rocky Mountains, CO",
			Duration:    6,
			Difficulty:  types.DIFFICULTY_DIFFICULT,
			Includes:    types.JSONBArray{"Professional guide", "Hiking poles", "Lunch", "First aid"},
			Excludes:    types.JSONBArray{"Hiking boots", "Backpack"},
			Rating:      4.6,
			ReviewCount: 89,
			Slots: []models.Slot{
				{Date: dayAfter, StartTime: "08:00", EndTime: "14:00", MaxParticipants: 8, Price: 120},
			},
		},
	}

	now := time.Now()
	in6months := now.AddDate(0, 6, 0)
	hundred := 100.0
	promos := []models.PromoCode{
		{
			Code:          "SAVE10",
			DiscountType:  types.DISCOUNT_PERCENTAGE,
			DiscountValue: 10,
			MaxDiscount:   &hundred,
			ValidFrom:     now,
			ValidUntil:    in6months,
			Active:        true,
		},
		{
			Code:          "FLAT100",
			DiscountType:  types.DISCOUNT_FIXED,
			DiscountValue: 100,
			MinAmount:     200,
			ValidFrom:     now,
			ValidUntil:    in6months,
			Active:        true,
		},
	}

	if err := dbi.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&experiences).Error; err != nil {
			return err
		}
		return tx.Create(&promos).Error
	}); err != nil {
		log.Printf("Error seeding data: %s\n", err.Error())
		return
	}
	log.Printf("Seeded %d experiences and %d promo codes\n", len(experiences), len(promos))
}
