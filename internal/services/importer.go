package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"stackpulse/internal/models"

	"gorm.io/gorm"
)

// ImportResult 一次导入的统计
type ImportResult struct {
	Existing       int64 // 导入前已有的问题数
	Target         int64 // 本轮最多新增的问题数
	Imported       int
	Duplicates     int // 问题 ID 已存在而跳过的记录
	SkippedRecords int // 无法解析或缺少问题 ID 的记录
	SkippedItems   int // 缺少 ID 的回答/评论、无法解析的 answer_comments key
}

// Importer 语料导入：启动时单线程运行一次
type Importer struct {
	db        *gorm.DB
	threshold int
}

func NewImporter(db *gorm.DB, threshold int) *Importer {
	return &Importer{db: db, threshold: threshold}
}

// RunPath 从 zip 包或目录导入；路径不存在时只记录警告
func (im *Importer) RunPath(ctx context.Context, path string) (ImportResult, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("[Importer] Data archive not found, skipping import", slog.String("path", path))
		return ImportResult{}, nil
	}

	result, proceed, err := im.plan(ctx)
	if err != nil || !proceed {
		return result, err
	}

	src, err := OpenThreadSource(path)
	if err != nil {
		return result, fmt.Errorf("open thread source: %w", err)
	}
	defer src.Close()

	return im.importFrom(ctx, src, result)
}

// Run 从任意来源导入，最多新增到 threshold 为止
func (im *Importer) Run(ctx context.Context, src ThreadSource) (ImportResult, error) {
	result, proceed, err := im.plan(ctx)
	if err != nil || !proceed {
		return result, err
	}
	return im.importFrom(ctx, src, result)
}

func (im *Importer) plan(ctx context.Context) (ImportResult, bool, error) {
	var existing int64
	if err := im.db.WithContext(ctx).Model(&models.Question{}).Count(&existing).Error; err != nil {
		return ImportResult{}, false, fmt.Errorf("count questions: %w", err)
	}

	result := ImportResult{Existing: existing}
	if existing >= int64(im.threshold) {
		slog.Info("[Importer] Corpus already reached threshold, skipping import",
			slog.Int64("existing", existing), slog.Int("threshold", im.threshold))
		return result, false, nil
	}

	result.Target = int64(im.threshold) - existing
	slog.Info("[Importer] Starting import",
		slog.Int64("target", result.Target), slog.Int64("existing", existing))
	return result, true, nil
}

func (im *Importer) importFrom(ctx context.Context, src ThreadSource, result ImportResult) (ImportResult, error) {
	registry := NewTagRegistry(im.db)

	for int64(result.Imported) < result.Target {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var recErr *RecordError
			if errors.As(err, &recErr) {
				slog.Warn("[Importer] Skipping unreadable record",
					slog.String("record", recErr.Name), slog.String("error", recErr.Err.Error()))
				result.SkippedRecords++
				continue
			}
			return result, fmt.Errorf("read thread source: %w", err)
		}

		imported, err := im.importThread(ctx, registry, rec, &result)
		if err != nil {
			return result, err
		}
		if imported {
			result.Imported++
		}
	}

	slog.Info("[Importer] Import finished",
		slog.Int("imported", result.Imported),
		slog.Int64("total", result.Existing+int64(result.Imported)),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("skipped_records", result.SkippedRecords),
		slog.Int("skipped_items", result.SkippedItems))
	return result, nil
}

// importThread 映射并整体保存一条线程；返回 false 表示该条被跳过
func (im *Importer) importThread(ctx context.Context, registry *TagRegistry, rec *ThreadRecord, result *ImportResult) (bool, error) {
	if rec == nil || rec.Question == nil || rec.Question.QuestionID == nil {
		name := ""
		if rec != nil {
			name = rec.Source
		}
		slog.Warn("[Importer] Skipping record without question id", slog.String("record", name))
		result.SkippedRecords++
		return false, nil
	}

	id := *rec.Question.QuestionID
	exists, err := im.questionExists(ctx, id)
	if err != nil {
		return false, err
	}
	if exists {
		result.Duplicates++
		return false, nil
	}

	tags, err := registry.ResolveAll(ctx, derefStrings(rec.Question.Tags))
	if err != nil {
		return false, err
	}

	question := mapQuestion(rec.Question, tags)
	question.Answers = mapAnswers(rec, id, result)
	question.Comments = mapQuestionComments(rec, id, result)

	err = im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&question).Error
	})
	if err != nil {
		return false, fmt.Errorf("save question %d: %w", id, err)
	}
	return true, nil
}

func (im *Importer) questionExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := im.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check question %d: %w", id, err)
	}
	return count > 0, nil
}

func mapQuestion(r *QuestionRecord, tags []models.Tag) models.Question {
	return models.Question{
		ID:               *r.QuestionID,
		Title:            r.Title,
		Body:             r.Body,
		IsAnswered:       r.IsAnswered,
		ViewCount:        r.ViewCount,
		AnswerCount:      r.AnswerCount,
		Score:            r.Score,
		Link:             r.Link,
		CreationDate:     epochToTime(r.CreationDate),
		LastActivityDate: epochToTime(r.LastActivityDate),
		ClosedDate:       epochToTime(r.ClosedDate),
		ClosedReason:     r.ClosedReason,
		AcceptedAnswerID: r.AcceptedAnswerID,
		Owner:            mapOwner(r.Owner),
		Tags:             tags,
	}
}

func mapAnswers(rec *ThreadRecord, questionID int64, result *ImportResult) []models.Answer {
	commentsByAnswer := normalizeAnswerComments(rec, result)
	seen := make(map[int64]bool, len(rec.Answers))
	answers := make([]models.Answer, 0, len(rec.Answers))

	for _, r := range rec.Answers {
		if r == nil || r.AnswerID == nil {
			slog.Warn("[Importer] Skipping answer without id",
				slog.String("record", rec.Source), slog.Int64("question_id", questionID))
			result.SkippedItems++
			continue
		}
		if seen[*r.AnswerID] {
			result.SkippedItems++
			continue
		}
		seen[*r.AnswerID] = true

		answer := models.Answer{
			ID:               *r.AnswerID,
			QuestionID:       questionID,
			Body:             r.Body,
			IsAccepted:       r.IsAccepted,
			Score:            r.Score,
			CreationDate:     epochToTime(r.CreationDate),
			LastActivityDate: epochToTime(r.LastActivityDate),
			Owner:            mapOwner(r.Owner),
		}
		commentSeen := make(map[int64]bool)
		for _, c := range commentsByAnswer[answer.ID] {
			if c == nil || c.CommentID == nil {
				slog.Warn("[Importer] Skipping answer comment without id",
					slog.String("record", rec.Source), slog.Int64("answer_id", answer.ID))
				result.SkippedItems++
				continue
			}
			if commentSeen[*c.CommentID] {
				result.SkippedItems++
				continue
			}
			commentSeen[*c.CommentID] = true
			answer.Comments = append(answer.Comments, models.AnswerComment{
				ID:           *c.CommentID,
				AnswerID:     answer.ID,
				Body:         c.Body,
				Score:        c.Score,
				CreationDate: epochToTime(c.CreationDate),
				Owner:        mapOwner(c.Owner),
			})
		}
		answers = append(answers, answer)
	}
	return answers
}

func mapQuestionComments(rec *ThreadRecord, questionID int64, result *ImportResult) []models.QuestionComment {
	seen := make(map[int64]bool, len(rec.QuestionComments))
	comments := make([]models.QuestionComment, 0, len(rec.QuestionComments))

	for _, c := range rec.QuestionComments {
		if c == nil || c.CommentID == nil {
			slog.Warn("[Importer] Skipping question comment without id",
				slog.String("record", rec.Source), slog.Int64("question_id", questionID))
			result.SkippedItems++
			continue
		}
		if seen[*c.CommentID] {
			result.SkippedItems++
			continue
		}
		seen[*c.CommentID] = true
		comments = append(comments, models.QuestionComment{
			ID:           *c.CommentID,
			QuestionID:   questionID,
			Body:         c.Body,
			Score:        c.Score,
			CreationDate: epochToTime(c.CreationDate),
			Owner:        mapOwner(c.Owner),
		})
	}
	return comments
}

// normalizeAnswerComments 把文本 key 转为回答 ID，非数字 key 丢弃
func normalizeAnswerComments(rec *ThreadRecord, result *ImportResult) map[int64][]*CommentRecord {
	out := make(map[int64][]*CommentRecord, len(rec.AnswerComments))
	for key, comments := range rec.AnswerComments {
		answerID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			slog.Debug("[Importer] Cannot parse answer_comments key",
				slog.String("record", rec.Source), slog.String("key", key))
			result.SkippedItems++
			continue
		}
		out[answerID] = append(out[answerID], comments...)
	}
	return out
}

func mapOwner(r *OwnerRecord) models.Owner {
	if r == nil {
		return models.Owner{}
	}
	return models.Owner{
		UserID:       r.UserID,
		Reputation:   r.Reputation,
		DisplayName:  r.DisplayName,
		ProfileImage: r.ProfileImage,
		Link:         r.Link,
	}
}

// epochToTime 秒级时间戳转 UTC 时间；nil 保持 nil
func epochToTime(sec *int64) *time.Time {
	if sec == nil {
		return nil
	}
	t := time.Unix(*sec, 0).UTC()
	return &t
}

func derefStrings(values []*string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
