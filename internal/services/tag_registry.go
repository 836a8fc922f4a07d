package services

import (
	"context"
	"fmt"

	"stackpulse/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const tagMemoSize = 4096

// TagRegistry 标签去重存储：本轮内存 memo + 数据库 upsert
// 同一进程内单线程导入，不处理多进程并发创建
type TagRegistry struct {
	db   *gorm.DB
	memo *lru.Cache[string, models.Tag]
}

// NewTagRegistry 每次导入创建一个，memo 只在本轮有效
func NewTagRegistry(db *gorm.DB) *TagRegistry {
	memo, _ := lru.New[string, models.Tag](tagMemoSize)
	return &TagRegistry{db: db, memo: memo}
}

// Resolve 按小写名称查找标签，不存在则创建；空名返回错误
func (r *TagRegistry) Resolve(ctx context.Context, name string) (models.Tag, error) {
	key := normalizeTagName(name)
	if key == "" {
		return models.Tag{}, fmt.Errorf("blank tag name")
	}
	if tag, ok := r.memo.Get(key); ok {
		return tag, nil
	}

	tag := models.Tag{Name: key}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
		return models.Tag{}, fmt.Errorf("upsert tag %q: %w", key, err)
	}
	// 以库中记录为准（可能早已存在）
	if err := r.db.WithContext(ctx).Where("name = ?", key).First(&tag).Error; err != nil {
		return models.Tag{}, fmt.Errorf("load tag %q: %w", key, err)
	}

	r.memo.Add(key, tag)
	return tag, nil
}

// ResolveAll 解析一组原始标签，过滤空值并合并重复
func (r *TagRegistry) ResolveAll(ctx context.Context, names []string) ([]models.Tag, error) {
	normalized := NormalizeTags(names)
	tags := make([]models.Tag, 0, len(normalized))
	for _, name := range normalized {
		tag, err := r.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// MissingTags 返回 names 中尚未登记的标签（保持输入顺序）
func MissingTags(ctx context.Context, db *gorm.DB, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var found []string
	if err := db.WithContext(ctx).Model(&models.Tag{}).
		Where("name IN ?", names).
		Pluck("name", &found).Error; err != nil {
		return nil, fmt.Errorf("lookup tags: %w", err)
	}

	known := make(map[string]bool, len(found))
	for _, name := range found {
		known[name] = true
	}
	var missing []string
	for _, name := range names {
		if !known[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
