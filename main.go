package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"solvency-engine/internal/advisor"
	"solvency-engine/internal/config"
	"solvency-engine/internal/credential"
	"solvency-engine/internal/engine"
	"solvency-engine/internal/handler"
	"solvency-engine/internal/logging"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, nil)

	keys := credential.NewStore(cfg.SessionKeyFile, logging.Component(logger, "credential"))
	gemini := advisor.NewGemini(keys, cfg.Gemini)
	adv := advisor.NewService(gemini, logging.Component(logger, "advisor"))
	h := handler.New(engine.New(adv), adv, keys, logging.Component(logger, "handler"))

	server := &fasthttp.Server{
		Handler:      h.Route,
		Name:         "solvency-engine",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	logger.WithField("key_source", keys.Source()).Infof("Solvency engine starting on port %s", cfg.Port)
	if err := server.ListenAndServe(":" + cfg.Port); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
