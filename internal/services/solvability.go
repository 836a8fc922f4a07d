package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"
	"unicode/utf8"

	"stackpulse/internal/models"

	"gorm.io/gorm"
)

const (
	solvabilityTag  = "java"
	topTagsPerGroup = 5
)

var codeBlockPattern = regexp.MustCompile(`(?i)<code\b`)

// questionSnapshot 可解性分类用的单题特征
type questionSnapshot struct {
	TitleLength        int
	CodeBlocks         int
	OwnerReputation    int
	Score              int
	HoursToFirstAnswer *float64
	HasAccepted        bool
	AcceptedScore      *int
	AnswerCount        int
	Tags               []string
}

type SolvableCriteria struct {
	RequiresAcceptedAnswer bool `json:"requiresAcceptedAnswer"`
	MinAcceptedAnswerScore int  `json:"minAcceptedAnswerScore"`
	MaxFirstAnswerHours    int  `json:"maxFirstAnswerHours"`
}

type HardCriteria struct {
	MarkIfNoAnswers             bool `json:"markIfNoAnswers"`
	MarkIfMissingAcceptedAnswer bool `json:"markIfMissingAcceptedAnswer"`
	MinAnswerLatencyHours       int  `json:"minAnswerLatencyHours"`
}

type SolvabilityCriteria struct {
	Solvable SolvableCriteria `json:"solvable"`
	Hard     HardCriteria     `json:"hard"`
}

type SolvabilityTotals struct {
	SolvableCount int `json:"solvableCount"`
	HardCount     int `json:"hardCount"`
}

type SolvabilityFactor struct {
	Name          string  `json:"name"`
	SolvableValue float64 `json:"solvableValue"`
	HardValue     float64 `json:"hardValue"`
	Unit          string  `json:"unit"`
}

type TagShare struct {
	Tag        string  `json:"tag"`
	Percentage float64 `json:"percentage"`
}

type SolvabilityResponse struct {
	Criteria        SolvabilityCriteria `json:"criteria"`
	Totals          SolvabilityTotals   `json:"totals"`
	Factors         []SolvabilityFactor `json:"factors"`
	SolvableTopTags []TagShare          `json:"solvableTopTags"`
	HardTopTags     []TagShare          `json:"hardTopTags"`
}

// SolvabilityService 可解 / 困难问题对比
type SolvabilityService struct {
	db *gorm.DB
}

func NewSolvabilityService(db *gorm.DB) *SolvabilityService {
	return &SolvabilityService{db: db}
}

// Compare 对 java 标签下的问题分类并比较两组的特征
func (s *SolvabilityService) Compare(ctx context.Context, th Thresholds) (SolvabilityResponse, error) {
	ids, err := questionIDsWithAnyTag(ctx, s.db, []string{solvabilityTag})
	if err != nil {
		return SolvabilityResponse{}, err
	}

	var solvable, hard []questionSnapshot
	err = forEachChunk(ids, loadChunkSize, func(chunk []int64) error {
		var questions []models.Question
		err := s.db.WithContext(ctx).
			Select("id", "title", "body", "score", "answer_count", "creation_date", "accepted_answer_id", "owner_reputation").
			Preload("Answers", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "question_id", "is_accepted", "score", "creation_date").Order("answers.id ASC")
			}).
			Preload("Tags").
			Where("id IN ?", chunk).
			Find(&questions).Error
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		for i := range questions {
			snap := buildSnapshot(&questions[i])
			switch {
			case isSolvable(snap, th):
				solvable = append(solvable, snap)
			case isHard(snap, th):
				hard = append(hard, snap)
			}
		}
		return nil
	})
	if err != nil {
		return SolvabilityResponse{}, err
	}

	return SolvabilityResponse{
		Criteria:        buildCriteria(th),
		Totals:          SolvabilityTotals{SolvableCount: len(solvable), HardCount: len(hard)},
		Factors:         buildFactors(solvable, hard),
		SolvableTopTags: topTags(solvable, topTagsPerGroup),
		HardTopTags:     topTags(hard, topTagsPerGroup),
	}, nil
}

func buildCriteria(th Thresholds) SolvabilityCriteria {
	return SolvabilityCriteria{
		Solvable: SolvableCriteria{
			RequiresAcceptedAnswer: true,
			MinAcceptedAnswerScore: th.MinAcceptedAnswerScore,
			MaxFirstAnswerHours:    th.MaxFirstAnswerHours,
		},
		Hard: HardCriteria{
			MarkIfNoAnswers:             true,
			MarkIfMissingAcceptedAnswer: true,
			MinAnswerLatencyHours:       th.HardMinAnswerLatencyHours,
		},
	}
}

func buildSnapshot(q *models.Question) questionSnapshot {
	accepted := findAcceptedAnswer(q)

	snap := questionSnapshot{
		TitleLength:        utf8.RuneCountInString(q.Title),
		CodeBlocks:         countCodeBlocks(q.Body),
		OwnerReputation:    intOrZero(q.Owner.Reputation),
		Score:              intOrZero(q.Score),
		HoursToFirstAnswer: hoursToFirstAnswer(q.CreationDate, q.Answers),
		HasAccepted:        accepted != nil,
		AnswerCount:        len(q.Answers),
		Tags:               q.TagNames(),
	}
	if accepted != nil {
		snap.AcceptedScore = accepted.Score
	}
	// 优先使用问题记录的回答数
	if q.AnswerCount != nil {
		snap.AnswerCount = *q.AnswerCount
	}
	return snap
}

// findAcceptedAnswer 先按 accepted_answer_id 匹配，找不到再取第一个标记为采纳的回答
func findAcceptedAnswer(q *models.Question) *models.Answer {
	if q.AcceptedAnswerID != nil {
		for i := range q.Answers {
			if q.Answers[i].ID == *q.AcceptedAnswerID {
				return &q.Answers[i]
			}
		}
	}
	for i := range q.Answers {
		if q.Answers[i].Accepted() {
			return &q.Answers[i]
		}
	}
	return nil
}

// hoursToFirstAnswer 提问到最早回答的小时数，按整分钟截断
func hoursToFirstAnswer(created *time.Time, answers []models.Answer) *float64 {
	if created == nil {
		return nil
	}
	var first *time.Time
	for i := range answers {
		at := answers[i].CreationDate
		if at != nil && (first == nil || at.Before(*first)) {
			first = at
		}
	}
	if first == nil {
		return nil
	}
	minutes := int64(first.Sub(*created) / time.Minute)
	hours := float64(minutes) / 60.0
	return &hours
}

func countCodeBlocks(body string) int {
	if body == "" {
		return 0
	}
	return len(codeBlockPattern.FindAllStringIndex(body, -1))
}

func isSolvable(s questionSnapshot, th Thresholds) bool {
	return s.HasAccepted &&
		s.AcceptedScore != nil &&
		*s.AcceptedScore >= th.MinAcceptedAnswerScore &&
		s.HoursToFirstAnswer != nil &&
		*s.HoursToFirstAnswer <= float64(th.MaxFirstAnswerHours)
}

func isHard(s questionSnapshot, th Thresholds) bool {
	noAnswers := s.AnswerCount == 0
	slow := s.HoursToFirstAnswer == nil || *s.HoursToFirstAnswer > float64(th.HardMinAnswerLatencyHours)
	return noAnswers || !s.HasAccepted || slow
}

func buildFactors(solvable, hard []questionSnapshot) []SolvabilityFactor {
	codeBlocks := func(s questionSnapshot) float64 { return float64(s.CodeBlocks) }
	score := func(s questionSnapshot) float64 { return float64(s.Score) }
	answers := func(s questionSnapshot) float64 { return float64(s.AnswerCount) }
	latency := func(s questionSnapshot) *float64 { return s.HoursToFirstAnswer }

	return []SolvabilityFactor{
		{"Average code blocks", average(solvable, codeBlocks), average(hard, codeBlocks), "blocks"},
		{"Questions with code", percentWithCode(solvable), percentWithCode(hard), "percent"},
		{"Average hours to first answer", averageKnown(solvable, latency), averageKnown(hard, latency), "hours"},
		{"Average question score", average(solvable, score), average(hard, score), "score"},
		{"Average answer count", average(solvable, answers), average(hard, answers), "count"},
	}
}

func average(snaps []questionSnapshot, value func(questionSnapshot) float64) float64 {
	if len(snaps) == 0 {
		return 0
	}
	var total float64
	for _, s := range snaps {
		total += value(s)
	}
	return total / float64(len(snaps))
}

// averageKnown 只对已知值求平均，全部未知时为 0
func averageKnown(snaps []questionSnapshot, value func(questionSnapshot) *float64) float64 {
	var total float64
	var n int
	for _, s := range snaps {
		if v := value(s); v != nil {
			total += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func percentWithCode(snaps []questionSnapshot) float64 {
	var withCode int
	for _, s := range snaps {
		if s.CodeBlocks > 0 {
			withCode++
		}
	}
	return percentage(withCode, len(snaps))
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100.0 / float64(total)
}

// topTags 组内出现最多的标签及其占全部标签出现次数的百分比
func topTags(snaps []questionSnapshot, limit int) []TagShare {
	counts := make(map[string]int)
	total := 0
	for _, s := range snaps {
		for _, tag := range s.Tags {
			counts[tag]++
			total++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}

	shares := make([]TagShare, 0, len(names))
	for _, name := range names {
		shares = append(shares, TagShare{Tag: name, Percentage: percentage(counts[name], total)})
	}
	return shares
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
