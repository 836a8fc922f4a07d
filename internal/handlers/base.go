package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"stackpulse/internal/services"
	"stackpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// JSONError 统一的错误响应 {"error": "..."}
func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError 参数错误 400，找不到 404，其余 500
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		JSONError(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, services.ErrNotFound):
		JSONError(c, http.StatusNotFound, "not found")
	default:
		slog.Error("[Handler] Request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()))
		JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

// queryInt 可选整数参数；缺省或空串为 nil，非整数为参数错误
func queryInt(c *gin.Context, name string) (*int, error) {
	v, err := utils.ParseOptionalInt(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return nil, &services.ValidationError{
			Param:   name,
			Message: fmt.Sprintf("Parameter '%s' must be an integer.", name),
		}
	}
	return v, nil
}

// queryDate 可选日期参数 (YYYY-MM-DD, UTC)
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, &services.ValidationError{
			Param:   name,
			Message: fmt.Sprintf("Parameter '%s' must be a date in YYYY-MM-DD format.", name),
		}
	}
	return &t, nil
}

// queryTags 支持 tags=a&tags=b 以及 tags=a,b
func queryTags(c *gin.Context) []string {
	var tags []string
	for _, raw := range c.QueryArray("tags") {
		tags = append(tags, strings.Split(raw, ",")...)
	}
	return tags
}

// responseCache 分析结果缓存；cache 为 nil 或 ttl <= 0 时不缓存
type responseCache struct {
	cache *utils.Cache
	ttl   time.Duration
}

func (rc responseCache) serve(c *gin.Context, key string, compute func() (interface{}, error)) {
	if rc.cache != nil {
		if cached := rc.cache.Get(key); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	data, err := compute()
	if err != nil {
		respondError(c, err)
		return
	}

	if rc.cache != nil {
		rc.cache.Set(key, data, rc.ttl)
	}
	c.JSON(http.StatusOK, data)
}
