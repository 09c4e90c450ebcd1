package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/talentgraph-backend/internal/handlers"
)

type RouterConfig struct {
	CandidateHandler *handlers.CandidateHandler
	FeatureHandler   *handlers.FeatureHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Candidates
		api.POST("/candidates/from_resume", cfg.CandidateHandler.AddFromResume)
		api.GET("/candidates/:uid/full", cfg.CandidateHandler.GetFull)
		api.POST("/candidates/match", cfg.CandidateHandler.Match)
		api.POST("/candidates/query", cfg.CandidateHandler.Query)
		// Feature dictionaries
		api.GET("/features/:kind", cfg.FeatureHandler.List)
		api.POST("/features/:kind", cfg.FeatureHandler.Upsert)
		api.DELETE("/features/:kind/:uid", cfg.FeatureHandler.Delete)
	}

	return router
}
