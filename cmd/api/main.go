package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"ainewsdaily/db"
	"ainewsdaily/internal/cache"
	"ainewsdaily/internal/config"
	"ainewsdaily/internal/handler"
	"ainewsdaily/internal/middleware"
	"ainewsdaily/internal/newspaper"
	"ainewsdaily/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.RequireDatabase(); err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, edition cache disabled", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	newsRepo := repository.NewNewsRepository(conn)
	libraryRepo := repository.NewLibraryRepository(conn)

	editions := cache.NewEditionCache(rdb, cache.DefaultTTL)
	service := newspaper.NewService(newsRepo, editions, cfg.RecentDays, cfg.ArchiveDays)

	newsHandler := handler.NewNewsHandler(service)
	libraryHandler := handler.NewLibraryHandler(libraryRepo, service)
	pageHandler := handler.NewPageHandler(service)
	healthHandler := handler.NewHealthHandler(newsRepo)

	tmpl, err := handler.LoadTemplates()
	if err != nil {
		log.Fatalf("error loading templates: %v", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", middleware.UserHeader},
	}))
	r.Use(middleware.Metrics())

	r.GET("/", pageHandler.GetNewspaper)
	r.GET("/editions/today", newsHandler.GetToday)
	r.GET("/editions", newsHandler.GetEditions)
	r.GET("/archive", newsHandler.GetArchive)
	r.GET("/news/:id", newsHandler.GetNews)
	r.GET("/news/:id/audio", newsHandler.GetNewsAudio)
	r.GET("/podcast/:date", newsHandler.GetPodcast)

	user := r.Group("/", middleware.RequireUser())
	user.GET("/folders", libraryHandler.GetFolders)
	user.POST("/folders", libraryHandler.CreateFolder)
	user.GET("/library", libraryHandler.GetLibrary)
	user.POST("/saved", libraryHandler.SaveNews)

	r.GET("/health", healthHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
