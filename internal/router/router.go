package router

import (
	"time"

	"stackpulse/internal/handlers"
	"stackpulse/internal/utils"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes 注册只读查询接口；cacheTTL <= 0 时不缓存分析结果
func RegisterRoutes(r *gin.Engine, conn *gorm.DB, cache *utils.Cache, cacheTTL time.Duration) {
	// Handlers
	topicHandler := handlers.NewTopicHandler(conn, cache, cacheTTL)
	questionHandler := handlers.NewQuestionHandler(conn)

	r.GET("/healthz", questionHandler.Health) // 健康检查

	api := r.Group("/api")
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		api.GET("/topics/multithreading/pitfalls", topicHandler.Pitfalls) // 多线程陷阱分类统计
		api.GET("/topics/solvability/compare", topicHandler.Solvability)  // 可解 / 困难问题对比
		api.GET("/topics/cooccurrence", topicHandler.Cooccurrence)        // 标签共现排行
		api.GET("/topics/trends", topicHandler.Trends)                    // 标签趋势

		api.GET("/questions/:id", questionHandler.Detail) // 问题详情
		api.GET("/tags", questionHandler.ListTags)        // 标签列表
	}
}
