package service

import (
	"context"
	"errors"
	"time"

	"bookit/internal/cache"
	"bookit/internal/model"
	"bookit/internal/repository"
	apperrors "bookit/pkg/app_errors"
	"bookit/pkg/logger"

	"go.uber.org/zap"
)

type ExperienceService interface {
	List(ctx context.Context) ([]*model.Experience, error)
	// GetWithSlots 體驗詳情：只回傳 asOf 當天(含)之後、仍有名額且 available 的時段，
	// 依日期分組、組內依時間排序
	GetWithSlots(ctx context.Context, id int, asOf time.Time) (*model.ExperienceDetail, error)
}

type ExperienceServiceImpl struct {
	repo      repository.ExperienceRepository
	slotRepo  repository.SlotRepository
	slotCache cache.SlotAvailabilityCache
}

func NewExperienceService(repo repository.ExperienceRepository, slotRepo repository.SlotRepository, slotCache cache.SlotAvailabilityCache) ExperienceService {
	return &ExperienceServiceImpl{repo: repo, slotRepo: slotRepo, slotCache: slotCache}
}

func (s *ExperienceServiceImpl) List(ctx context.Context) ([]*model.Experience, error) {
	return s.repo.List(ctx)
}

func (s *ExperienceServiceImpl) GetWithSlots(ctx context.Context, id int, asOf time.Time) (*model.ExperienceDetail, error) {
	experience, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	groups, err := s.loadSlotGroups(ctx, id, asOf)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, group := range groups {
		total += len(group.Slots)
	}

	return &model.ExperienceDetail{
		Experience: experience,
		Slots:      groups,
		TotalSlots: total,
	}, nil
}

// loadSlotGroups 先讀快取，未命中再查資料庫並回填。
// 快取故障時直接走資料庫，不影響讀取。
func (s *ExperienceServiceImpl) loadSlotGroups(ctx context.Context, experienceID int, asOf time.Time) ([]model.SlotGroup, error) {
	groups, err := s.slotCache.GetSlots(ctx, experienceID)
	if err == nil {
		return groups, nil
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		logger.WithComponent("service").Warn("slot cache read failed",
			zap.Int("experience_id", experienceID), zap.Error(err))
	}

	slots, err := s.slotRepo.ListAvailableByExperience(ctx, experienceID, asOf)
	if err != nil {
		return nil, err
	}

	groups = model.GroupSlotsByDate(slots)

	if err := s.slotCache.SetSlots(ctx, experienceID, groups); err != nil {
		logger.WithComponent("service").Warn("slot cache write failed",
			zap.Int("experience_id", experienceID), zap.Error(err))
	}

	return groups, nil
}
