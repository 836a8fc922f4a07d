package handlers

import (
	"fmt"
	"strings"
	"time"

	"stackpulse/internal/services"
	"stackpulse/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TopicHandler 四个分析接口
type TopicHandler struct {
	pitfalls     *services.PitfallService
	solvability  *services.SolvabilityService
	cooccurrence *services.CooccurrenceService
	trends       *services.TrendService
	cache        responseCache
	now          func() time.Time
}

func NewTopicHandler(conn *gorm.DB, cache *utils.Cache, ttl time.Duration) *TopicHandler {
	return &TopicHandler{
		pitfalls:     services.NewPitfallService(conn),
		solvability:  services.NewSolvabilityService(conn),
		cooccurrence: services.NewCooccurrenceService(conn),
		trends:       services.NewTrendService(conn),
		cache:        responseCache{cache: cache, ttl: ttl},
		now:          time.Now,
	}
}

// Pitfalls GET /api/topics/multithreading/pitfalls?top=
func (h *TopicHandler) Pitfalls(c *gin.Context) {
	raw, err := queryInt(c, "top")
	if err != nil {
		respondError(c, err)
		return
	}
	top, err := services.ResolvePitfallTop(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.serve(c, fmt.Sprintf("topic:pitfalls:%d", top), func() (interface{}, error) {
		return h.pitfalls.Analyze(c.Request.Context(), top)
	})
}

// Solvability GET /api/topics/solvability/compare
func (h *TopicHandler) Solvability(c *gin.Context) {
	var raw [3]*int
	for i, name := range []string{"minAcceptedAnswerScore", "maxFirstAnswerHours", "hardMinAnswerLatencyHours"} {
		v, err := queryInt(c, name)
		if err != nil {
			respondError(c, err)
			return
		}
		raw[i] = v
	}
	th, err := services.ResolveThresholds(raw[0], raw[1], raw[2])
	if err != nil {
		respondError(c, err)
		return
	}

	key := fmt.Sprintf("topic:solvability:%d:%d:%d",
		th.MinAcceptedAnswerScore, th.MaxFirstAnswerHours, th.HardMinAnswerLatencyHours)
	h.cache.serve(c, key, func() (interface{}, error) {
		return h.solvability.Compare(c.Request.Context(), th)
	})
}

// Cooccurrence GET /api/topics/cooccurrence?top=
func (h *TopicHandler) Cooccurrence(c *gin.Context) {
	raw, err := queryInt(c, "top")
	if err != nil {
		respondError(c, err)
		return
	}
	top, err := services.ResolveCooccurrenceTop(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.serve(c, fmt.Sprintf("topic:cooccurrence:%d", top), func() (interface{}, error) {
		return h.cooccurrence.TopPairs(c.Request.Context(), top)
	})
}

// Trends GET /api/topics/trends?tags=&from=&to=&bucket=&metric=
func (h *TopicHandler) Trends(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		respondError(c, err)
		return
	}

	q := services.ResolveTrendQuery(services.TrendParams{
		Tags:   queryTags(c),
		From:   from,
		To:     to,
		Bucket: c.Query("bucket"),
		Metric: c.Query("metric"),
	}, h.now())

	key := fmt.Sprintf("topic:trends:%s:%d:%d:%s:%s",
		strings.Join(q.Tags, ","), q.From.Unix(), q.To.Unix(), q.Bucket, q.Metric)
	h.cache.serve(c, key, func() (interface{}, error) {
		return h.trends.Trends(c.Request.Context(), q)
	})
}
