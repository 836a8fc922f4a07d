package services

import (
	"context"
	"io"
	"testing"
	"time"

	"gorm.io/gorm"
)

func ptr[T any](v T) *T {
	return &v
}

// sliceSource 内存中的 ThreadSource，按顺序返回预置记录或错误
type sliceSource struct {
	items  []sourceItem
	pos    int
	closed bool
}

type sourceItem struct {
	rec *ThreadRecord
	err error
}

func newSliceSource(recs ...*ThreadRecord) *sliceSource {
	s := &sliceSource{}
	for _, r := range recs {
		s.items = append(s.items, sourceItem{rec: r})
	}
	return s
}

func (s *sliceSource) Next() (*ThreadRecord, error) {
	if s.pos >= len(s.items) {
		return nil, io.EOF
	}
	it := s.items[s.pos]
	s.pos++
	return it.rec, it.err
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

var baseTime = time.Date(2023, time.March, 10, 8, 0, 0, 0, time.UTC)

func epoch(t time.Time) *int64 {
	return ptr(t.Unix())
}

func tagPtrs(tags ...string) []*string {
	out := make([]*string, 0, len(tags))
	for _, t := range tags {
		out = append(out, ptr(t))
	}
	return out
}

// newThread 构造一条最小线程记录
func newThread(id int64, title, body string, created time.Time, tags ...string) *ThreadRecord {
	return &ThreadRecord{
		Question: &QuestionRecord{
			QuestionID:   ptr(id),
			Title:        title,
			Body:         body,
			Score:        ptr(1),
			CreationDate: epoch(created),
			Tags:         tagPtrs(tags...),
			Owner:        &OwnerRecord{UserID: ptr(int64(7)), Reputation: ptr(120), DisplayName: "alice"},
		},
		Source: "fixture.json",
	}
}

func withAnswer(rec *ThreadRecord, id int64, score int, accepted bool, created time.Time) *ThreadRecord {
	rec.Answers = append(rec.Answers, &AnswerRecord{
		AnswerID:     ptr(id),
		Score:        ptr(score),
		IsAccepted:   ptr(accepted),
		CreationDate: epoch(created),
		Body:         "<p>answer</p>",
	})
	if accepted {
		rec.Question.AcceptedAnswerID = ptr(id)
	}
	return rec
}

// seed 通过 Importer 写入记录，阈值足够大
func seed(t *testing.T, conn *gorm.DB, recs ...*ThreadRecord) {
	t.Helper()
	if _, err := NewImporter(conn, 1_000_000).Run(context.Background(), newSliceSource(recs...)); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

// exampleThreads 两条示例线程：101 有一个 2 小时后被采纳的回答，102 无回答
func exampleThreads() []*ThreadRecord {
	q101 := newThread(101, "Deadlock in worker pool", "<p>deadlock occurred</p>", baseTime, "java", "multithreading")
	withAnswer(q101, 501, 5, true, baseTime.Add(2*time.Hour))
	q102 := newThread(102, "Stream question", "<p>how to map a list</p>", baseTime.Add(24*time.Hour), "java", "lambda")
	return []*ThreadRecord{q101, q102}
}
