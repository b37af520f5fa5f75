package repository

import (
	"errors"
	"time"

	"github.com/papelaria-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSessionRepository 购物车会话数据访问接口
type CartSessionRepository interface {
	Get(sessionID string, now time.Time) (*models.CartSession, error)
	Upsert(session *models.CartSession) error
	Delete(sessionID string) error
	PurgeExpired(now time.Time) (int64, error)
}

// GormCartSessionRepository GORM 实现
type GormCartSessionRepository struct {
	db *gorm.DB
}

// NewCartSessionRepository 创建购物车会话仓库
func NewCartSessionRepository(db *gorm.DB) *GormCartSessionRepository {
	return &GormCartSessionRepository{db: db}
}

// Get 获取未过期的会话
func (r *GormCartSessionRepository) Get(sessionID string, now time.Time) (*models.CartSession, error) {
	var session models.CartSession
	err := r.db.Where("session_id = ? AND expires_at > ?", sessionID, now).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Upsert 写入会话
func (r *GormCartSessionRepository) Upsert(session *models.CartSession) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(session).Error
}

// Delete 删除会话
func (r *GormCartSessionRepository) Delete(sessionID string) error {
	return r.db.Where("session_id = ?", sessionID).Delete(&models.CartSession{}).Error
}

// PurgeExpired 清理过期会话
func (r *GormCartSessionRepository) PurgeExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.CartSession{})
	return result.RowsAffected, result.Error
}
