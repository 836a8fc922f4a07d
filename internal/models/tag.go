package models

import (
	"time"
)

// Tag 标签，以小写名称为主键；问题删除时不删除标签
type Tag struct {
	Name      string    `gorm:"primaryKey;size:128" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
