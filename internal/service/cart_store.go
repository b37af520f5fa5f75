package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/papelaria-next/internal/cache"
	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/models"
	"github.com/papelaria-next/internal/repository"
)

const defaultCartTTL = 7 * 24 * time.Hour

// CartStore 购物车会话存储
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", constants.CacheKeyCart, sessionID)
}

func decodeStoredCart(payload []byte) (*Cart, error) {
	cart := NewCart()
	if len(payload) == 0 {
		return cart, nil
	}
	if err := json.Unmarshal(payload, cart); err != nil {
		return nil, err
	}
	cart.Modified = false
	return cart, nil
}

// RedisCartStore Redis 实现，key 为 cart:{session}
type RedisCartStore struct {
	ttl time.Duration
}

// NewRedisCartStore 创建 Redis 购物车存储
func NewRedisCartStore(ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &RedisCartStore{ttl: ttl}
}

// Load 读取购物车，不存在时返回空购物车
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	if !cache.Enabled() {
		return nil, ErrCartStoreUnavailable
	}
	raw, hit, err := cache.GetBytes(ctx, cartKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartStoreUnavailable, err)
	}
	if !hit {
		return NewCart(), nil
	}
	cart, err := decodeStoredCart(raw)
	if err != nil {
		// 损坏的会话数据按空购物车处理
		return NewCart(), nil
	}
	return cart, nil
}

// Save 写入购物车并刷新过期时间
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	if !cache.Enabled() {
		return ErrCartStoreUnavailable
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := cache.SetBytes(ctx, cartKey(sessionID), payload, s.ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrCartStoreUnavailable, err)
	}
	return nil
}

// Clear 删除购物车
func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	return cache.Del(ctx, cartKey(sessionID))
}

// GormCartStore 数据库实现（Redis 未启用时使用）
type GormCartStore struct {
	repo repository.CartSessionRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewGormCartStore 创建数据库购物车存储
func NewGormCartStore(repo repository.CartSessionRepository, ttl time.Duration) *GormCartStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &GormCartStore{repo: repo, ttl: ttl, now: time.Now}
}

// Load 读取购物车，不存在或已过期时返回空购物车
func (s *GormCartStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	session, err := s.repo.Get(sessionID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartStoreUnavailable, err)
	}
	if session == nil {
		return NewCart(), nil
	}
	cart, err := decodeStoredCart([]byte(session.Payload))
	if err != nil {
		return NewCart(), nil
	}
	return cart, nil
}

// Save 写入购物车
func (s *GormCartStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	now := s.now()
	return s.repo.Upsert(&models.CartSession{
		SessionID: sessionID,
		Payload:   string(payload),
		ExpiresAt: now.Add(s.ttl),
		UpdatedAt: now,
	})
}

// Clear 删除购物车
func (s *GormCartStore) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Delete(sessionID)
}

// PurgeExpired 清理过期会话
func (s *GormCartStore) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.PurgeExpired(s.now())
}

// NewCartStore 根据 Redis 是否可用选择存储实现
func NewCartStore(repo repository.CartSessionRepository, ttl time.Duration) CartStore {
	if cache.Enabled() {
		return NewRedisCartStore(ttl)
	}
	return NewGormCartStore(repo, ttl)
}

// NormalizeSessionID 校验会话 ID（仅允许 uuid 字符）
func NormalizeSessionID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > 64 {
		return ""
	}
	for _, r := range trimmed {
		if !(r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return ""
		}
	}
	return strings.ToLower(trimmed)
}
