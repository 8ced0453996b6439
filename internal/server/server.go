package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"leetboard/internal/config"
	"leetboard/internal/leetcode"
	"leetboard/pkg/cache"

	leaderboardHttp "leetboard/internal/modules/leaderboard/delivery/http"
	leaderboardService "leetboard/internal/modules/leaderboard/service"

	statsService "leetboard/internal/modules/stats/service"

	trackerHttp "leetboard/internal/modules/tracker/delivery/http"
	trackerRepo "leetboard/internal/modules/tracker/repository"
	trackerService "leetboard/internal/modules/tracker/service"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	// Redis is optional: without it the cache is process-local.
	var store cache.Store
	if redisClient != nil {
		store = cache.NewRedisStore(redisClient, cfg.CacheTTL)
	} else {
		log.Println("REDIS_URL not set, using in-memory response cache")
		store = cache.NewMemoryStore()
	}

	client := leetcode.NewClient(cfg.LeetCodeBaseURL, cfg.FetchTimeout)

	repo := trackerRepo.NewTrackedUserRepository(db)
	trackerSvc := trackerService.NewTrackerService(repo)
	trackerHandler := trackerHttp.NewTrackerHandler(trackerSvc)

	statsSvc := statsService.NewStatsService(client, store, cfg.CacheTTL)

	leaderboardSvc := leaderboardService.NewLeaderboardService(trackerSvc, statsSvc)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	api := router.Group("/api")
	{
		api.POST("/users", trackerHandler.AddUsers)
		api.GET("/users", trackerHandler.GetUsers)
		api.PUT("/users", trackerHandler.ReplaceUsers)
		api.DELETE("/users/:username", trackerHandler.RemoveUser)

		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/leaderboard/export", leaderboardHandler.ExportCSV)
		api.GET("/leaderboard/live", leaderboardHandler.HandleLive)

		api.GET("/skills/comparison", leaderboardHandler.CompareSkills)
		api.GET("/skills/heatmap", leaderboardHandler.GetHeatmap)

		api.POST("/cache/refresh", leaderboardHandler.Refresh)
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
