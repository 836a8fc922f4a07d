package handlers

import (
	"net/http"
	"strconv"
	"time"

	"stackpulse/internal/models"
	"stackpulse/internal/services"
	"stackpulse/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const excerptLength = 200

type ownerView struct {
	UserID       *int64 `json:"userId"`
	Reputation   *int   `json:"reputation"`
	DisplayName  string `json:"displayName"`
	ProfileImage string `json:"profileImage"`
	Link         string `json:"link"`
}

type commentView struct {
	ID           int64      `json:"id"`
	Body         string     `json:"body"`
	Score        *int       `json:"score"`
	CreationDate *time.Time `json:"creationDate"`
	Owner        ownerView  `json:"owner"`
}

type answerView struct {
	ID               int64         `json:"id"`
	Body             string        `json:"body"`
	IsAccepted       *bool         `json:"isAccepted"`
	Score            *int          `json:"score"`
	CreationDate     *time.Time    `json:"creationDate"`
	LastActivityDate *time.Time    `json:"lastActivityDate"`
	Owner            ownerView     `json:"owner"`
	Comments         []commentView `json:"comments"`
}

// questionView 问题详情，正文已清洗
type questionView struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	Body             string        `json:"body"`
	Excerpt          string        `json:"excerpt"`
	Link             string        `json:"link"`
	IsAnswered       *bool         `json:"isAnswered"`
	ViewCount        *int          `json:"viewCount"`
	AnswerCount      *int          `json:"answerCount"`
	Score            *int          `json:"score"`
	CreationDate     *time.Time    `json:"creationDate"`
	LastActivityDate *time.Time    `json:"lastActivityDate"`
	ClosedDate       *time.Time    `json:"closedDate"`
	ClosedReason     string        `json:"closedReason"`
	AcceptedAnswerID *int64        `json:"acceptedAnswerId"`
	Owner            ownerView     `json:"owner"`
	Tags             []string      `json:"tags"`
	Comments         []commentView `json:"comments"`
	Answers          []answerView  `json:"answers"`
}

// QuestionHandler 语料查询接口
type QuestionHandler struct {
	corpus *services.CorpusService
}

func NewQuestionHandler(conn *gorm.DB) *QuestionHandler {
	return &QuestionHandler{corpus: services.NewCorpusService(conn)}
}

// Detail GET /api/questions/:id
func (h *QuestionHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "Parameter 'id' must be an integer.")
		return
	}

	question, err := h.corpus.GetQuestion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionView(question))
}

// ListTags GET /api/tags?limit=
func (h *QuestionHandler) ListTags(c *gin.Context) {
	raw, err := queryInt(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := services.ResolveTagLimit(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	tags, err := h.corpus.ListTags(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// Health GET /healthz
func (h *QuestionHandler) Health(c *gin.Context) {
	count, err := h.corpus.CountQuestions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "questions": count})
}

func toQuestionView(q *models.Question) questionView {
	view := questionView{
		ID:               q.ID,
		Title:            q.Title,
		Body:             utils.SanitizeHTML(q.Body),
		Excerpt:          utils.PlainText(q.Body, excerptLength),
		Link:             q.Link,
		IsAnswered:       q.IsAnswered,
		ViewCount:        q.ViewCount,
		AnswerCount:      q.AnswerCount,
		Score:            q.Score,
		CreationDate:     q.CreationDate,
		LastActivityDate: q.LastActivityDate,
		ClosedDate:       q.ClosedDate,
		ClosedReason:     q.ClosedReason,
		AcceptedAnswerID: q.AcceptedAnswerID,
		Owner:            toOwnerView(q.Owner),
		Tags:             q.TagNames(),
		Comments:         make([]commentView, 0, len(q.Comments)),
		Answers:          make([]answerView, 0, len(q.Answers)),
	}
	for _, c := range q.Comments {
		view.Comments = append(view.Comments, commentView{
			ID:           c.ID,
			Body:         utils.SanitizeHTML(c.Body),
			Score:        c.Score,
			CreationDate: c.CreationDate,
			Owner:        toOwnerView(c.Owner),
		})
	}
	for _, a := range q.Answers {
		av := answerView{
			ID:               a.ID,
			Body:             utils.SanitizeHTML(a.Body),
			IsAccepted:       a.IsAccepted,
			Score:            a.Score,
			CreationDate:     a.CreationDate,
			LastActivityDate: a.LastActivityDate,
			Owner:            toOwnerView(a.Owner),
			Comments:         make([]commentView, 0, len(a.Comments)),
		}
		for _, c := range a.Comments {
			av.Comments = append(av.Comments, commentView{
				ID:           c.ID,
				Body:         utils.SanitizeHTML(c.Body),
				Score:        c.Score,
				CreationDate: c.CreationDate,
				Owner:        toOwnerView(c.Owner),
			})
		}
		view.Answers = append(view.Answers, av)
	}
	return view
}

func toOwnerView(o models.Owner) ownerView {
	return ownerView{
		UserID:       o.UserID,
		Reputation:   o.Reputation,
		DisplayName:  o.DisplayName,
		ProfileImage: o.ProfileImage,
		Link:         o.Link,
	}
}
