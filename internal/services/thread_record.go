package services

// ThreadRecord 一条原始线程：问题 + 回答 + 评论
// 字段均可为空，缺失值在映射时处理
type ThreadRecord struct {
	Question         *QuestionRecord             `json:"question"`
	Answers          []*AnswerRecord             `json:"answers"`
	QuestionComments []*CommentRecord            `json:"question_comments"`
	AnswerComments   map[string][]*CommentRecord `json:"answer_comments"` // key 为回答 ID 的文本形式

	// Source 记录来源（压缩包内条目名或文件名），仅用于日志
	Source string `json:"-"`
}

type OwnerRecord struct {
	AccountID    *int64 `json:"account_id"`
	Reputation   *int   `json:"reputation"`
	UserID       *int64 `json:"user_id"`
	UserType     string `json:"user_type"`
	ProfileImage string `json:"profile_image"`
	DisplayName  string `json:"display_name"`
	Link         string `json:"link"`
}

type QuestionRecord struct {
	QuestionID       *int64       `json:"question_id"`
	Tags             []*string    `json:"tags"`
	Owner            *OwnerRecord `json:"owner"`
	IsAnswered       *bool        `json:"is_answered"`
	ViewCount        *int         `json:"view_count"`
	AnswerCount      *int         `json:"answer_count"`
	Score            *int         `json:"score"`
	LastActivityDate *int64       `json:"last_activity_date"`
	CreationDate     *int64       `json:"creation_date"`
	ClosedDate       *int64       `json:"closed_date"`
	ClosedReason     string       `json:"closed_reason"`
	Link             string       `json:"link"`
	Title            string       `json:"title"`
	Body             string       `json:"body"`
	AcceptedAnswerID *int64       `json:"accepted_answer_id"`
}

type AnswerRecord struct {
	AnswerID         *int64       `json:"answer_id"`
	Owner            *OwnerRecord `json:"owner"`
	IsAccepted       *bool        `json:"is_accepted"`
	Score            *int         `json:"score"`
	LastActivityDate *int64       `json:"last_activity_date"`
	CreationDate     *int64       `json:"creation_date"`
	Body             string       `json:"body"`
}

type CommentRecord struct {
	CommentID    *int64       `json:"comment_id"`
	PostID       *int64       `json:"post_id"`
	Owner        *OwnerRecord `json:"owner"`
	Edited       *bool        `json:"edited"`
	Score        *int         `json:"score"`
	CreationDate *int64       `json:"creation_date"`
	Body         string       `json:"body"`
}
