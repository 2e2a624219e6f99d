package main

import (
	"context"
	"net/http"

	"coscribe/config"
	"coscribe/config/database"
	docrepo "coscribe/internal/document/repository"
	"coscribe/pkg/logger"
	"coscribe/pkg/token"
	"coscribe/router"
	"coscribe/socket"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		logger.Sugar.Fatalf("Invalid configuration: %v", err)
	}
	logger.Init(cfg.Debug)

	db, err := database.Connect(cfg.DB.DSN())
	if err != nil {
		logger.Sugar.Fatalf("Could not connect to database after retries: %v", err)
	}
	defer db.Close()

	tokens := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// The document repository serves as both the hub's store and its
	// access gate.
	docs := docrepo.NewDocumentRepository(db)
	hub := socket.NewHub(docs, docs)
	go hub.Run()

	handler := router.Setup(db, hub, tokens)

	logger.Sugar.Infof("Backend listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
