package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

type TagPair struct {
	TagA      string `json:"tagA"`
	TagB      string `json:"tagB"`
	PairCount int64  `json:"pairCount"`
}

type CooccurrenceResponse struct {
	Top   int       `json:"top"`
	Pairs []TagPair `json:"pairs"`
}

// CooccurrenceService 全语料标签共现排行
type CooccurrenceService struct {
	db *gorm.DB
}

func NewCooccurrenceService(db *gorm.DB) *CooccurrenceService {
	return &CooccurrenceService{db: db}
}

// TopPairs 统计同时带有 A、B 两个标签的问题数，取前 top 对
func (s *CooccurrenceService) TopPairs(ctx context.Context, top int) (CooccurrenceResponse, error) {
	var pairs []TagPair
	err := s.db.WithContext(ctx).Table("question_tags AS qt1").
		Select("qt1.tag_name AS tag_a, qt2.tag_name AS tag_b, COUNT(DISTINCT qt1.question_id) AS pair_count").
		Joins("JOIN question_tags AS qt2 ON qt1.question_id = qt2.question_id AND qt1.tag_name < qt2.tag_name").
		Group("qt1.tag_name, qt2.tag_name").
		Scan(&pairs).Error
	if err != nil {
		return CooccurrenceResponse{}, fmt.Errorf("count tag pairs: %w", err)
	}

	return CooccurrenceResponse{Top: top, Pairs: rankPairs(pairs, top)}, nil
}

// rankPairs 以字节序规范 A < B，按次数降序、A 升序、B 升序排序并截断
// 排序在内存中完成，不依赖数据库的排序规则
func rankPairs(pairs []TagPair, top int) []TagPair {
	for i := range pairs {
		if pairs[i].TagB < pairs[i].TagA {
			pairs[i].TagA, pairs[i].TagB = pairs[i].TagB, pairs[i].TagA
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.PairCount != b.PairCount {
			return a.PairCount > b.PairCount
		}
		if a.TagA != b.TagA {
			return a.TagA < b.TagA
		}
		return a.TagB < b.TagB
	})
	if top < 0 {
		top = 0
	}
	if len(pairs) > top {
		pairs = pairs[:top]
	}
	if pairs == nil {
		pairs = []TagPair{}
	}
	return pairs
}
