package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"wearable-server/internal/auth"
	"wearable-server/internal/config"
	"wearable-server/internal/logger"
	"wearable-server/internal/server"
	"wearable-server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.Init(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev})
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	gin.SetMode(cfg.GinMode)

	var db storage.Database
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongo, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		cancel()
		if err != nil {
			lg.Fatal("mongodb connect failed", zap.Error(err))
		}
		defer mongo.Close(context.Background())
		lg.Info("connected to mongodb", zap.String("database", cfg.MongoDatabase))
		db = mongo
	} else {
		lg.Warn("MONGODB_URI not set, using in-memory storage")
		db = storage.NewMemory()
	}

	tokenCfg := auth.TokenConfig{
		Secret: cfg.SecretKey,
		Expiry: cfg.TokenExpiry,
		Issuer: "wearable-server",
	}

	router := server.NewRouter(server.Deps{
		DB:             db,
		TokenConfig:    tokenCfg,
		Logger:         lg,
		WSRequireToken: cfg.WSRequireToken,
	})

	lg.Info("listening", zap.Int("port", cfg.Port))
	if err := server.Run(cfg, router); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}
