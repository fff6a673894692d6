package service_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"bookit/config"
	"bookit/internal/cache"
	"bookit/internal/database"
	"bookit/internal/model"
	"bookit/internal/queue"
	"bookit/internal/repository"
	"bookit/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var (
	testDB  *pgxpool.Pool
	testRdb *redis.Client
)

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := testDB.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	testRdb, err = database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize test redis: %v", err)
	}

	log.Println("Test database connected successfully")
	log.Println("Running service tests...")

	code := m.Run()

	testDB.Close()
	testRdb.Close()
	log.Println("Test database closed")

	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx, "TRUNCATE bookings, slots, promo_codes, experiences RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	if err := testRdb.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test redis: %v", err)
	}

	return func() {}
}

func getTestDB() *pgxpool.Pool {
	if testDB == nil {
		panic("testDB is not initialized. Make sure TestMain has run.")
	}
	return testDB
}

// newBookingService 組裝帶真實依賴的 BookingService：測試 DB、測試 Redis 快取、記憶體隊列
func newBookingService() (service.BookingService, queue.BookingQueue) {
	db := getTestDB()
	bookingQueue := queue.NewBookingQueue(100)
	slotCache := cache.NewSlotAvailabilityCache(testRdb, time.Second)
	svc := service.NewBookingService(
		db,
		repository.NewBookingRepository(db),
		repository.NewSlotRepository(db),
		repository.NewExperienceRepository(db),
		repository.NewPromoRepository(db),
		slotCache,
		bookingQueue,
	)
	return svc, bookingQueue
}

func createTestExperience(t *testing.T, title string, price float64) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO experiences (title, description, location, price, duration, category, rating)
		VALUES ($1, 'A test experience', 'Colombo', $2, '2 hours', 'adventure', 4.5)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query, title, price).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test experience: %v", err)
	}

	return id
}

func createTestSlot(t *testing.T, experienceID int, date time.Time, timeSlot string, capacity int) int {
	t.Helper()
	return createTestSlotWithCapacity(t, experienceID, date, timeSlot, capacity, capacity, model.SlotStatusAvailable)
}

func createTestSlotWithCapacity(t *testing.T, experienceID int, date time.Time, timeSlot string, totalCapacity, availableCapacity int, status model.SlotStatus) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO slots (experience_id, date, time_slot, total_capacity, available_capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query,
		experienceID, date, timeSlot, totalCapacity, availableCapacity, status,
	).Scan(&id)

	if err != nil {
		t.Fatalf("Failed to create test slot: %v", err)
	}

	return id
}

type promoParams struct {
	Code              string
	DiscountType      model.DiscountType
	DiscountValue     float64
	MaxDiscountAmount *float64
	MinOrderAmount    float64
	ValidFrom         time.Time
	ValidUntil        time.Time
	UsageLimit        *int
	UsedCount         int
	IsActive          bool
}

// createActivePromo 建立一個有效期內、啟用中的折扣碼
func createActivePromo(t *testing.T, code string, discountType model.DiscountType, value float64, minOrder float64) int {
	t.Helper()
	now := time.Now().UTC()
	return createTestPromo(t, promoParams{
		Code:           code,
		DiscountType:   discountType,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		ValidFrom:      now.Add(-time.Hour),
		ValidUntil:     now.Add(24 * time.Hour),
		IsActive:       true,
	})
}

func createTestPromo(t *testing.T, params promoParams) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO promo_codes (
			code, description, discount_type, discount_value, max_discount_amount,
			min_order_amount, valid_from, valid_until, usage_limit, used_count, is_active
		)
		VALUES ($1, 'A test promo', $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query,
		params.Code, params.DiscountType, params.DiscountValue, params.MaxDiscountAmount,
		params.MinOrderAmount, params.ValidFrom, params.ValidUntil,
		params.UsageLimit, params.UsedCount, params.IsActive,
	).Scan(&id)

	if err != nil {
		t.Fatalf("Failed to create test promo: %v", err)
	}

	return id
}

func getPromoUsedCount(t *testing.T, id int) int {
	t.Helper()
	ctx := context.Background()

	var usedCount int
	err := testDB.QueryRow(ctx, "SELECT used_count FROM promo_codes WHERE id = $1", id).Scan(&usedCount)
	if err != nil {
		t.Fatalf("Failed to read promo used_count: %v", err)
	}

	return usedCount
}

func getSlotState(t *testing.T, id int) (int, model.SlotStatus) {
	t.Helper()
	ctx := context.Background()

	var availableCapacity int
	var status model.SlotStatus
	err := testDB.QueryRow(ctx, "SELECT available_capacity, status FROM slots WHERE id = $1", id).Scan(&availableCapacity, &status)
	if err != nil {
		t.Fatalf("Failed to read slot state: %v", err)
	}

	return availableCapacity, status
}

func countBookings(t *testing.T) int {
	t.Helper()
	ctx := context.Background()

	var count int
	err := testDB.QueryRow(ctx, "SELECT COUNT(*) FROM bookings").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count bookings: %v", err)
	}

	return count
}

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

func futureDate(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days).Truncate(24 * time.Hour)
}
