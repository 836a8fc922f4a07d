package models

import (
	"time"
)

// Question 问题模型 - 聚合根，拥有回答与问题评论
// ID 来自数据源 (question_id)，导入后不再变更
type Question struct {
	ID               int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title            string     `gorm:"size:512" json:"title"`
	Body             string     `gorm:"type:text" json:"body"` // 原始 HTML
	IsAnswered       *bool      `json:"is_answered"`
	ViewCount        *int       `json:"view_count"`
	AnswerCount      *int       `json:"answer_count"`
	Score            *int       `json:"score"`
	Link             string     `gorm:"size:512" json:"link"`
	CreationDate     *time.Time `gorm:"index" json:"creation_date"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	ClosedDate       *time.Time `json:"closed_date"`
	ClosedReason     string     `gorm:"size:256" json:"closed_reason"`
	AcceptedAnswerID *int64     `json:"accepted_answer_id"` // 可能指向未导入的回答
	Owner            Owner      `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`

	Answers  []Answer          `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"answers"`
	Comments []QuestionComment `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
	Tags     []Tag             `gorm:"many2many:question_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tags"`
}

// Owner 作者信息快照，不与数据源同步
type Owner struct {
	UserID       *int64 `json:"user_id"`
	Reputation   *int   `json:"reputation"`
	DisplayName  string `gorm:"size:256" json:"display_name"`
	ProfileImage string `gorm:"size:512" json:"profile_image"`
	Link         string `gorm:"size:512" json:"link"`
}

// TagNames 返回问题的标签名（已小写）
func (q *Question) TagNames() []string {
	names := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		names = append(names, t.Name)
	}
	return names
}
