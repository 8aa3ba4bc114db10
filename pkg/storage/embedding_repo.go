// Package storage 提供数据存储功能
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmbeddingRecord 向量缓存记录
// 同一文本的向量是确定的，按文本哈希去重
type EmbeddingRecord struct {
	ID        uint   `gorm:"primarykey"`
	TextHash  string `gorm:"uniqueIndex;size:64"`
	Text      string
	Vector    string // JSON 编码的向量
	CreatedAt time.Time
}

// EmbeddingRepository 向量缓存仓库
type EmbeddingRepository struct {
	db *gorm.DB
}

// NewEmbeddingRepository 创建向量缓存仓库
func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db: db}
}

// Migrate 迁移缓存表
func (r *EmbeddingRepository) Migrate() error {
	return r.db.AutoMigrate(&EmbeddingRecord{})
}

// Get 查询文本的缓存向量
func (r *EmbeddingRepository) Get(text string) ([]float64, bool, error) {
	var record EmbeddingRecord
	err := r.db.Where("text_hash = ?", hashText(text)).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var vector []float64
	if err := json.Unmarshal([]byte(record.Vector), &vector); err != nil {
		return nil, false, err
	}
	return vector, true, nil
}

// Put 写入文本的向量
// 同哈希的记录已存在时不覆盖
func (r *EmbeddingRepository) Put(text string, vector []float64) error {
	raw, err := json.Marshal(vector)
	if err != nil {
		return err
	}

	record := EmbeddingRecord{
		TextHash: hashText(text),
		Text:     text,
		Vector:   string(raw),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

// PurgeOlderThan 清理早于给定时长的记录
// 返回删除的行数
func (r *EmbeddingRepository) PurgeOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	result := r.db.Where("created_at < ?", cutoff).Delete(&EmbeddingRecord{})
	return result.RowsAffected, result.Error
}

// Count 返回缓存记录数量
func (r *EmbeddingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&EmbeddingRecord{}).Count(&count).Error
	return count, err
}

// hashText 文本的 sha256 十六进制摘要
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
