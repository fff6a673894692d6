package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookit/internal/model"
	apperrors "bookit/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// SlotAvailabilityCache 快取單一體驗的可預訂時段分組。
// 資料庫永遠是庫存的唯一權威；快取只服務讀取路徑，
// 每次預訂成功後由 Reservation Engine 失效。
type SlotAvailabilityCache interface {
	// 獲取：體驗的可預訂時段分組；未命中回傳 ErrCacheMiss
	GetSlots(ctx context.Context, experienceID int) ([]model.SlotGroup, error)
	// 寫入：體驗的可預訂時段分組，帶 TTL
	SetSlots(ctx context.Context, experienceID int, groups []model.SlotGroup) error
	// 失效：預訂成功後刪除該體驗的快取
	InvalidateSlots(ctx context.Context, experienceID int) error
}

type SlotAvailabilityCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotAvailabilityCache(client *redis.Client, ttl time.Duration) SlotAvailabilityCache {
	return &SlotAvailabilityCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

// 時段分組 key
func (c *SlotAvailabilityCacheImpl) getSlotsKey(experienceID int) string {
	return fmt.Sprintf("experience:%d:slots", experienceID)
}

func (c *SlotAvailabilityCacheImpl) GetSlots(ctx context.Context, experienceID int) ([]model.SlotGroup, error) {
	key := c.getSlotsKey(experienceID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var groups []model.SlotGroup
	if err := json.Unmarshal(payload, &groups); err != nil {
		return nil, fmt.Errorf("unmarshal slot groups: %w", err)
	}

	return groups, nil
}

func (c *SlotAvailabilityCacheImpl) SetSlots(ctx context.Context, experienceID int, groups []model.SlotGroup) error {
	key := c.getSlotsKey(experienceID)

	payload, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("marshal slot groups: %w", err)
	}

	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *SlotAvailabilityCacheImpl) InvalidateSlots(ctx context.Context, experienceID int) error {
	return c.client.Del(ctx, c.getSlotsKey(experienceID)).Err()
}
