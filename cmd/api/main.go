package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"

	"github.com/eduqar/tutor-marketplace/internal/config"
	dbpkg "github.com/eduqar/tutor-marketplace/internal/db"
	"github.com/eduqar/tutor-marketplace/internal/lock"
	"github.com/eduqar/tutor-marketplace/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	stripe.Key = cfg.StripeSecretKey

	var locker lock.Locker
	redisLock, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		// the database constraint still guarantees correctness
		log.Printf("redis unavailable, running without advisory slot locks: %v", err)
		locker = lock.Noop{}
	} else {
		locker = redisLock
		defer redisLock.Close()
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
