package models

import (
	"time"
)

type Answer struct {
	ID               int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	QuestionID       int64      `gorm:"not null;index" json:"question_id"`
	Body             string     `gorm:"type:text" json:"body"`
	IsAccepted       *bool      `json:"is_accepted"`
	Score            *int       `json:"score"`
	CreationDate     *time.Time `json:"creation_date"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	Owner            Owner      `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`

	Comments []AnswerComment `gorm:"foreignKey:AnswerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}

// Accepted 是否被标记为采纳
func (a *Answer) Accepted() bool {
	return a.IsAccepted != nil && *a.IsAccepted
}
