package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

type TrendPoint struct {
	BucketStart   time.Time `json:"bucketStart"`
	QuestionCount int64     `json:"questionCount"`
	ScoreSum      int64     `json:"scoreSum"`
	MetricValue   int64     `json:"metricValue"`
}

type TrendSeries struct {
	Tag    string       `json:"tag"`
	Metric Metric       `json:"metric"`
	Points []TrendPoint `json:"points"`
}

type TrendResponse struct {
	Tags   []string      `json:"tags"`
	From   time.Time     `json:"from"`
	To     time.Time     `json:"to"` // 排他上界
	Bucket Bucket        `json:"bucket"`
	Metric Metric        `json:"metric"`
	Series []TrendSeries `json:"series"`
}

// trendRow 每个 (标签, 问题) 的投影行
type trendRow struct {
	TagName      string
	CreationDate time.Time
	Score        *int
}

// TrendService 按标签、时间桶聚合问题数与得分
type TrendService struct {
	db *gorm.DB
}

func NewTrendService(db *gorm.DB) *TrendService {
	return &TrendService{db: db}
}

// Trends 计算每个标签的时间序列；任一标签不存在时整体拒绝
func (s *TrendService) Trends(ctx context.Context, q TrendQuery) (TrendResponse, error) {
	missing, err := MissingTags(ctx, s.db, q.Tags)
	if err != nil {
		return TrendResponse{}, err
	}
	if len(missing) > 0 {
		return TrendResponse{}, invalidParam("tags", "Invalid tags: %s", strings.Join(missing, ", "))
	}

	resp := TrendResponse{
		Tags:   q.Tags,
		From:   q.From,
		To:     q.To,
		Bucket: q.Bucket,
		Metric: q.Metric,
		Series: make([]TrendSeries, 0, len(q.Tags)),
	}
	if len(q.Tags) == 0 || !q.From.Before(q.To) {
		for _, tag := range q.Tags {
			resp.Series = append(resp.Series, TrendSeries{Tag: tag, Metric: q.Metric, Points: []TrendPoint{}})
		}
		return resp, nil
	}

	var rows []trendRow
	err = s.db.WithContext(ctx).Table("questions").
		Select("question_tags.tag_name AS tag_name, questions.creation_date AS creation_date, questions.score AS score").
		Joins("JOIN question_tags ON question_tags.question_id = questions.id").
		Where("question_tags.tag_name IN ?", q.Tags).
		Where("questions.creation_date >= ? AND questions.creation_date < ?", q.From, q.To).
		Scan(&rows).Error
	if err != nil {
		return TrendResponse{}, fmt.Errorf("load trend rows: %w", err)
	}

	grouped := aggregateTrendRows(rows, q.Bucket)
	for _, tag := range q.Tags {
		resp.Series = append(resp.Series, TrendSeries{
			Tag:    tag,
			Metric: q.Metric,
			Points: buildPoints(grouped[tag], q.Metric),
		})
	}
	return resp, nil
}

// aggregateTrendRows 标签 -> 桶起点 -> 累计值
func aggregateTrendRows(rows []trendRow, bucket Bucket) map[string]map[time.Time]*TrendPoint {
	grouped := make(map[string]map[time.Time]*TrendPoint)
	for _, row := range rows {
		start := TruncateToBucket(row.CreationDate, bucket)
		buckets, ok := grouped[row.TagName]
		if !ok {
			buckets = make(map[time.Time]*TrendPoint)
			grouped[row.TagName] = buckets
		}
		point, ok := buckets[start]
		if !ok {
			point = &TrendPoint{BucketStart: start}
			buckets[start] = point
		}
		point.QuestionCount++
		if row.Score != nil {
			point.ScoreSum += int64(*row.Score)
		}
	}
	return grouped
}

func buildPoints(buckets map[time.Time]*TrendPoint, metric Metric) []TrendPoint {
	points := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		point := *p
		point.MetricValue = point.QuestionCount
		if metric == MetricScore {
			point.MetricValue = point.ScoreSum
		}
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].BucketStart.Before(points[j].BucketStart)
	})
	return points
}
