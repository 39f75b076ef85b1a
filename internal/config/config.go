package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string
	Origin  string // allowed CORS origin for the storefront frontend
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "lohakart.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./lohakart.log"
	}
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, Origin: origin}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s FRONTEND_ORIGIN=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Origin)
	return cfg
}
