package models

import (
	"time"
)

// QuestionComment 挂在问题下的评论
type QuestionComment struct {
	ID           int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	QuestionID   int64      `gorm:"not null;index" json:"question_id"`
	Body         string     `gorm:"type:text" json:"body"`
	Score        *int       `json:"score"`
	CreationDate *time.Time `json:"creation_date"`
	Owner        Owner      `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// AnswerComment 挂在回答下的评论，和 QuestionComment 同结构、不同父级
type AnswerComment struct {
	ID           int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AnswerID     int64      `gorm:"not null;index" json:"answer_id"`
	Body         string     `gorm:"type:text" json:"body"`
	Score        *int       `json:"score"`
	CreationDate *time.Time `json:"creation_date"`
	Owner        Owner      `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}
