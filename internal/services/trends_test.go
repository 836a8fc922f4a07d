package services

import (
	"context"
	"testing"
	"time"

	"stackpulse/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trendFixture(t *testing.T) *TrendService {
	t.Helper()
	conn := testutil.NewDB(t)

	q1 := newThread(1, "a", "", time.Date(2021, time.March, 3, 10, 0, 0, 0, time.UTC), "java")
	q1.Question.Score = ptr(4)
	q2 := newThread(2, "b", "", time.Date(2022, time.January, 9, 0, 0, 0, 0, time.UTC), "java", "lambda")
	q2.Question.Score = nil
	q3 := newThread(3, "c", "", time.Date(2022, time.January, 20, 23, 59, 0, 0, time.UTC), "java")
	q3.Question.Score = ptr(6)
	q4 := newThread(4, "d", "", time.Date(2022, time.June, 1, 12, 0, 0, 0, time.UTC), "java")
	q4.Question.Score = ptr(-1)
	q5 := newThread(5, "e", "", time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), "java")

	seed(t, conn, q1, q2, q3, q4, q5)
	return NewTrendService(conn)
}

func TestTrendsYearBucket(t *testing.T) {
	svc := trendFixture(t)

	resp, err := svc.Trends(context.Background(), TrendQuery{
		Tags:   []string{"java"},
		From:   day(2021, time.January, 1),
		To:     day(2023, time.January, 1),
		Bucket: BucketYear,
		Metric: MetricQuestions,
	})
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(resp.Series) != 1 || resp.Series[0].Tag != "java" {
		t.Fatalf("unexpected series: %+v", resp.Series)
	}

	points := resp.Series[0].Points
	if len(points) != 2 {
		t.Fatalf("expected one point per year, got %+v", points)
	}
	if !points[0].BucketStart.Equal(day(2021, time.January, 1)) || points[0].QuestionCount != 1 || points[0].ScoreSum != 4 {
		t.Errorf("unexpected 2021 point: %+v", points[0])
	}
	if !points[1].BucketStart.Equal(day(2022, time.January, 1)) || points[1].QuestionCount != 3 || points[1].ScoreSum != 5 {
		t.Errorf("unexpected 2022 point: %+v", points[1])
	}
	if points[1].MetricValue != 3 {
		t.Errorf("questions metric should mirror the count, got %d", points[1].MetricValue)
	}
}

func TestTrendsMonthBucketScoreMetric(t *testing.T) {
	svc := trendFixture(t)

	resp, err := svc.Trends(context.Background(), TrendQuery{
		Tags:   []string{"lambda", "java"},
		From:   day(2022, time.January, 1),
		To:     day(2022, time.June, 1), // 排他上界，6 月 1 日的问题不计入
		Bucket: BucketMonth,
		Metric: MetricScore,
	})
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(resp.Series) != 2 || resp.Series[0].Tag != "lambda" || resp.Series[1].Tag != "java" {
		t.Fatalf("series should follow the requested order: %+v", resp.Series)
	}

	lambda := resp.Series[0].Points
	if len(lambda) != 1 || lambda[0].QuestionCount != 1 || lambda[0].ScoreSum != 0 || lambda[0].MetricValue != 0 {
		t.Errorf("unexpected lambda points: %+v", lambda)
	}
	java := resp.Series[1].Points
	if len(java) != 1 || !java[0].BucketStart.Equal(day(2022, time.January, 1)) {
		t.Fatalf("unexpected java points: %+v", java)
	}
	if java[0].QuestionCount != 2 || java[0].MetricValue != 6 || resp.Series[1].Metric != MetricScore {
		t.Errorf("unexpected java point: %+v", java[0])
	}
}

func TestTrendsUnknownTags(t *testing.T) {
	svc := trendFixture(t)

	_, err := svc.Trends(context.Background(), TrendQuery{
		Tags:   []string{"java", "kotlin", "scala"},
		From:   day(2021, time.January, 1),
		To:     day(2024, time.January, 1),
		Bucket: BucketMonth,
		Metric: MetricQuestions,
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Invalid tags: kotlin, scala" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestTrendsEmptySeries(t *testing.T) {
	svc := trendFixture(t)

	resp, err := svc.Trends(context.Background(), TrendQuery{
		Tags:   []string{"lambda"},
		From:   day(2023, time.January, 1),
		To:     day(2024, time.January, 1),
		Bucket: BucketMonth,
		Metric: MetricQuestions,
	})
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(resp.Series) != 1 || resp.Series[0].Points == nil || len(resp.Series[0].Points) != 0 {
		t.Errorf("expected an empty point list for lambda, got %+v", resp.Series)
	}

	// from 晚于 to：不报错，返回空序列
	resp, err = svc.Trends(context.Background(), TrendQuery{
		Tags:   []string{"java"},
		From:   day(2024, time.January, 1),
		To:     day(2021, time.January, 1),
		Bucket: BucketMonth,
		Metric: MetricQuestions,
	})
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(resp.Series) != 1 || len(resp.Series[0].Points) != 0 {
		t.Errorf("expected empty series, got %+v", resp.Series)
	}
}
