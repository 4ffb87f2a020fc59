package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(quotationH *handlers.QuotationHandler, draftH *handlers.DraftHandler, catalogH *handlers.CatalogHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", catalogH.List)

		api.POST("/drafts", draftH.Create)
		api.GET("/drafts/:id", draftH.Get)
		api.DELETE("/drafts/:id", draftH.Delete)
		api.POST("/drafts/:id/lines", draftH.AddLine)
		api.PATCH("/drafts/:id/lines/:lineID", draftH.UpdateLine)
		api.DELETE("/drafts/:id/lines/:lineID", draftH.RemoveLine)

		api.GET("/quotations", quotationH.List)
		api.POST("/quotations", quotationH.Save)
		api.GET("/quotations/:number/document", quotationH.Document)
		api.PATCH("/quotations/status", quotationH.UpdateStatus)
		api.DELETE("/quotations/:number", quotationH.Delete)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
