package main

import (
	"log"

	"microblog/config"
	"microblog/db"
	"microblog/feed"
	"microblog/server"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded configuration from .env")
	}
	cfg := config.Load()

	gormDB, err := db.InitDB(cfg)
	if err != nil {
		log.Fatalf("❌ Database init failed: %v", err)
	}

	users, err := db.NewUserStore(gormDB)
	if err != nil {
		log.Fatalf("❌ User store init failed: %v", err)
	}
	posts, err := db.NewPostStore(gormDB)
	if err != nil {
		log.Fatalf("❌ Post store init failed: %v", err)
	}
	retweets, err := db.NewRetweetStore(gormDB)
	if err != nil {
		log.Fatalf("❌ Retweet store init failed: %v", err)
	}
	feedSvc, err := feed.NewService(gormDB)
	if err != nil {
		log.Fatalf("❌ Feed service init failed: %v", err)
	}

	srv := server.New(users, posts, retweets, feedSvc, cfg.JWTSecret)

	log.Printf("🚀 Listening on %s", cfg.ListenAddr)
	if err := srv.Router().Run(cfg.ListenAddr); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}
}
