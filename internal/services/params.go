package services

import (
	"strings"
	"time"
)

const (
	DefaultPitfallTop = 5
	MinPitfallTop     = 1
	MaxPitfallTop     = 6

	DefaultCooccurrenceTop = 10
	MinCooccurrenceTop     = 1
	MaxCooccurrenceTop     = 50

	DefaultMinAcceptedAnswerScore    = 2
	DefaultMaxFirstAnswerHours       = 48
	DefaultHardMinAnswerLatencyHours = 72
	minAcceptedScore                 = 0
	maxAcceptedScore                 = 100
	minResponseHours                 = 1
	maxResponseHours                 = 720 // 30 天

	DefaultTagLimit = 50
	MaxTagLimit     = 200
)

// 趋势查询未指定标签时使用的默认标签
var DefaultTrendTags = []string{
	"java",
	"spring-boot",
	"hibernate",
	"multithreading",
	"lambda",
	"collections",
}

type Bucket string

const (
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

type Metric string

const (
	MetricQuestions Metric = "questions"
	MetricScore     Metric = "score"
)

// Thresholds 已解析的可解性阈值
type Thresholds struct {
	MinAcceptedAnswerScore    int
	MaxFirstAnswerHours       int
	HardMinAnswerLatencyHours int
}

// TrendQuery 已解析的趋势查询；From/To 为 UTC 零点，To 为排他上界 (to + 1 天)
type TrendQuery struct {
	Tags   []string
	From   time.Time
	To     time.Time
	Bucket Bucket
	Metric Metric
}

// TrendParams 原始趋势参数，nil 表示未提供
type TrendParams struct {
	Tags   []string
	From   *time.Time
	To     *time.Time
	Bucket string
	Metric string
}

func resolveTop(param string, raw *int, def, min, max int) (int, error) {
	if raw == nil {
		return def, nil
	}
	if *raw < min || *raw > max {
		return 0, invalidParam(param, "Parameter '%s' must be between %d and %d.", param, min, max)
	}
	return *raw, nil
}

// ResolvePitfallTop top 取值 [1,6]，缺省 5，越界报错而不是截断
func ResolvePitfallTop(raw *int) (int, error) {
	return resolveTop("top", raw, DefaultPitfallTop, MinPitfallTop, MaxPitfallTop)
}

// ResolveCooccurrenceTop top 取值 [1,50]，缺省 10
func ResolveCooccurrenceTop(raw *int) (int, error) {
	return resolveTop("top", raw, DefaultCooccurrenceTop, MinCooccurrenceTop, MaxCooccurrenceTop)
}

// ResolveTagLimit 标签列表 limit 取值 [1,200]，缺省 50
func ResolveTagLimit(raw *int) (int, error) {
	return resolveTop("limit", raw, DefaultTagLimit, 1, MaxTagLimit)
}

// ResolveThresholds 可解性阈值：缺省值 + 范围校验
func ResolveThresholds(minAcceptedAnswerScore, maxFirstAnswerHours, hardMinAnswerLatencyHours *int) (Thresholds, error) {
	var th Thresholds
	var err error
	if th.MinAcceptedAnswerScore, err = resolveRange("minAcceptedAnswerScore", minAcceptedAnswerScore,
		DefaultMinAcceptedAnswerScore, minAcceptedScore, maxAcceptedScore); err != nil {
		return Thresholds{}, err
	}
	if th.MaxFirstAnswerHours, err = resolveRange("maxFirstAnswerHours", maxFirstAnswerHours,
		DefaultMaxFirstAnswerHours, minResponseHours, maxResponseHours); err != nil {
		return Thresholds{}, err
	}
	if th.HardMinAnswerLatencyHours, err = resolveRange("hardMinAnswerLatencyHours", hardMinAnswerLatencyHours,
		DefaultHardMinAnswerLatencyHours, minResponseHours, maxResponseHours); err != nil {
		return Thresholds{}, err
	}
	return th, nil
}

func resolveRange(param string, raw *int, def, min, max int) (int, error) {
	if raw == nil {
		return def, nil
	}
	if *raw < min || *raw > max {
		return 0, invalidParam(param, "%s must be between %d and %d", param, min, max)
	}
	return *raw, nil
}

// ParseBucket 只有 "year"（忽略大小写）得到年桶，其余一律按月
func ParseBucket(raw string) Bucket {
	if strings.EqualFold(strings.TrimSpace(raw), string(BucketYear)) {
		return BucketYear
	}
	return BucketMonth
}

// ParseMetric 无法识别（含空串）时回退到 questions
func ParseMetric(raw string) Metric {
	switch Metric(strings.ToLower(strings.TrimSpace(raw))) {
	case MetricScore:
		return MetricScore
	default:
		return MetricQuestions
	}
}

// NormalizeTags 去空、小写、去重，保留首次出现的顺序
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := normalizeTagName(tag)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveTrendQuery 趋势参数解析（不检查标签是否存在）
// 默认区间：三年前当月 1 日 至 今天，均按 UTC 日界
func ResolveTrendQuery(p TrendParams, now time.Time) TrendQuery {
	source := p.Tags
	if len(NormalizeTags(source)) == 0 {
		source = DefaultTrendTags
	}

	today := startOfDay(now)
	from := time.Date(today.Year()-3, today.Month(), 1, 0, 0, 0, 0, time.UTC)
	if p.From != nil {
		from = startOfDay(*p.From)
	}
	to := today.AddDate(0, 0, 1)
	if p.To != nil {
		to = startOfDay(*p.To).AddDate(0, 0, 1)
	}

	return TrendQuery{
		Tags:   NormalizeTags(source),
		From:   from,
		To:     to,
		Bucket: ParseBucket(p.Bucket),
		Metric: ParseMetric(p.Metric),
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TruncateToBucket 截断到所在月/年的第一天 (UTC)
func TruncateToBucket(t time.Time, bucket Bucket) time.Time {
	t = t.UTC()
	if bucket == BucketYear {
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
