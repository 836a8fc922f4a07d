package services

import (
	"context"
	"errors"
	"fmt"

	"stackpulse/internal/models"

	"gorm.io/gorm"
)

// 按 ID 批量加载问题时每批的大小
const loadChunkSize = 500

// TagCount 标签及其问题数
type TagCount struct {
	Name          string `json:"name"`
	QuestionCount int64  `json:"questionCount"`
}

// CorpusService 语料查询：详情、标签列表、计数、删除
type CorpusService struct {
	db *gorm.DB
}

func NewCorpusService(db *gorm.DB) *CorpusService {
	return &CorpusService{db: db}
}

// CountQuestions 语料中的问题总数
func (s *CorpusService) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

// GetQuestion 加载完整聚合：回答（含评论）、问题评论、标签
func (s *CorpusService) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	var question models.Question
	err := s.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id ASC")
		}).
		Preload("Answers.Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_comments.id ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_comments.id ASC")
		}).
		Preload("Tags").
		First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load question %d: %w", id, err)
	}
	return &question, nil
}

// ListTags 按问题数降序、名称升序列出标签，未被引用的标签计数为 0
func (s *CorpusService) ListTags(ctx context.Context, limit int) ([]TagCount, error) {
	var rows []TagCount
	err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Select("tags.name AS name, COUNT(question_tags.question_id) AS question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_name = tags.name").
		Group("tags.name").
		Order("question_count DESC, tags.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if rows == nil {
		rows = []TagCount{}
	}
	return rows, nil
}

// DeleteQuestion 在一个事务内删除问题及其回答、评论和标签关联；标签本身保留
func (s *CorpusService) DeleteQuestion(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Question{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		var answerIDs []int64
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", id).Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.AnswerComment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionComment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, id).Error
	})
}

// questionIDsWithAnyTag 带有任一标签的问题 ID（去重、升序）
func questionIDsWithAnyTag(ctx context.Context, db *gorm.DB, tags []string) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).Table("question_tags").
		Distinct("question_id").
		Where("tag_name IN ?", tags).
		Order("question_id ASC").
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("find candidate questions: %w", err)
	}
	return ids, nil
}

// forEachChunk 按固定大小分批处理 ID
func forEachChunk(ids []int64, size int, fn func(chunk []int64) error) error {
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		if err := fn(ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}
