package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/cache"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/config"
	dbpkg "github.com/RodrigobSilva/PsicoCare-sub000/internal/db"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/middleware"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var store cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		cancel()

		store = rc
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, store)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
