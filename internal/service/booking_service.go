package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookit/internal/cache"
	"bookit/internal/model"
	"bookit/internal/queue"
	"bookit/internal/repository"
	apperrors "bookit/pkg/app_errors"
	"bookit/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BookingService interface {
	// 創建預訂：鎖定時段、檢查容量、計價、套用折扣碼、寫入預訂並扣減容量，
	// 全部在同一個交易內完成
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	GetBookingByID(ctx context.Context, id int) (*model.Booking, error)
	ListBookingsByEmail(ctx context.Context, email string) ([]*model.BookingDetail, error)
}

type BookingServiceImpl struct {
	pool            *pgxpool.Pool
	repository      repository.BookingRepository
	slotRepository  repository.SlotRepository
	expRepository   repository.ExperienceRepository
	promoRepository repository.PromoRepository
	slotCache       cache.SlotAvailabilityCache
	bookingQueue    queue.BookingQueue
}

func NewBookingService(
	pool *pgxpool.Pool,
	bookingRepository repository.BookingRepository,
	slotRepository repository.SlotRepository,
	expRepository repository.ExperienceRepository,
	promoRepository repository.PromoRepository,
	slotCache cache.SlotAvailabilityCache,
	bookingQueue queue.BookingQueue,
) BookingService {
	return &BookingServiceImpl{
		pool:            pool,
		repository:      bookingRepository,
		slotRepository:  slotRepository,
		expRepository:   expRepository,
		promoRepository: promoRepository,
		slotCache:       slotCache,
		bookingQueue:    bookingQueue,
	}
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. 鎖定時段行。FOR UPDATE 讓同一時段的並發請求嚴格串行：
	//    後到的請求會看到前一筆扣減後的容量
	slot, err := s.slotRepository.FindByIDWithLock(ctx, tx, req.SlotID, req.ExperienceID)
	if err != nil {
		return nil, err
	}

	// 2. 容量檢查，回報確切剩餘數
	if slot.AvailableCapacity < req.NumberOfPeople {
		return nil, &apperrors.InsufficientCapacityError{Available: slot.AvailableCapacity}
	}

	// 3. 狀態是最終閘門，即使容量名義上足夠也要檢查
	if slot.Status != model.SlotStatusAvailable {
		return nil, apperrors.ErrSlotUnavailable
	}

	// 4. 計價：以預訂當下的體驗單價計算
	experience, err := s.expRepository.FindByIDWithTx(ctx, tx, req.ExperienceID)
	if err != nil {
		return nil, err
	}
	totalPrice := experience.Price * float64(req.NumberOfPeople)

	// 5. 套用折扣碼。不可用的折扣碼(不存在、過期、用罄、未達低消)一律靜默忽略，
	//    以原價成立預訂——失效的折扣碼不應擋下結帳
	discountAmount, err := s.applyPromo(ctx, tx, req.PromoCode, totalPrice)
	if err != nil {
		return nil, err
	}
	finalPrice := totalPrice - discountAmount

	// 6. 寫入預訂
	booking := &model.Booking{
		BookingID:      uuid.New(),
		ExperienceID:   req.ExperienceID,
		SlotID:         req.SlotID,
		UserName:       req.UserName,
		UserEmail:      req.UserEmail,
		UserPhone:      req.UserPhone,
		NumberOfPeople: req.NumberOfPeople,
		TotalPrice:     totalPrice,
		PromoCode:      req.PromoCode,
		DiscountAmount: discountAmount,
		FinalPrice:     finalPrice,
	}
	created, err := s.repository.Create(ctx, tx, booking)
	if err != nil {
		return nil, err
	}

	// 7. 扣減容量並重算狀態，與預訂寫入同一交易
	newCapacity := slot.AvailableCapacity - req.NumberOfPeople
	newStatus := model.SlotStatusAvailable
	if newCapacity == 0 {
		newStatus = model.SlotStatusSoldOut
	}
	if err := s.slotRepository.UpdateAvailability(ctx, tx, req.SlotID, newCapacity, newStatus); err != nil {
		return nil, err
	}

	// 8. 提交
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.afterCommit(created)

	// 回傳資料庫中的最終值
	stored, err := s.repository.FindByID(ctx, created.ID)
	if err != nil {
		logger.WithComponent("service").Warn("re-read booking after commit failed",
			zap.Int("booking_id", created.ID), zap.Error(err))
		return created, nil
	}

	return stored, nil
}

// applyPromo 在交易內查找並套用折扣碼，回傳折扣額。
// 找不到或未達低消時回傳 0（不報錯）；套用成功時 used_count +1。
func (s *BookingServiceImpl) applyPromo(ctx context.Context, tx pgx.Tx, code *string, totalPrice float64) (float64, error) {
	if code == nil || strings.TrimSpace(*code) == "" {
		return 0, nil
	}

	promo, err := s.promoRepository.FindActiveByCodeWithTx(ctx, tx, *code, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrPromoNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if !promo.MeetsMinOrder(totalPrice) {
		return 0, nil
	}

	if err := s.promoRepository.IncrementUsage(ctx, tx, promo.ID); err != nil {
		// 併發下用量在查找與扣用之間被用罄，視同不可用折扣碼
		if errors.Is(err, apperrors.ErrPromoNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return promo.DiscountFor(totalPrice), nil
}

// afterCommit 交易提交後的收尾：失效快取、發布預訂事件。
// 兩者都是 best-effort——預訂已成立，失敗只記 log。
// 使用 context.Background()，不跟隨請求的生命週期。
func (s *BookingServiceImpl) afterCommit(booking *model.Booking) {
	ctx := context.Background()

	if err := s.slotCache.InvalidateSlots(ctx, booking.ExperienceID); err != nil {
		logger.WithComponent("service").Warn("invalidate slot cache failed",
			zap.Int("experience_id", booking.ExperienceID), zap.Error(err))
	}

	if err := s.bookingQueue.PublishBooking(ctx, booking); err != nil {
		logger.WithComponent("service").Warn("publish booking event failed",
			zap.Int("booking_id", booking.ID), zap.Error(err))
	}
}

func (s *BookingServiceImpl) GetBookingByID(ctx context.Context, id int) (*model.Booking, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *BookingServiceImpl) ListBookingsByEmail(ctx context.Context, email string) ([]*model.BookingDetail, error) {
	return s.repository.FindByEmail(ctx, email)
}
