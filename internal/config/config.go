package config

import (
	"log"
	"os"
)

// Config for the shop app.
type Config struct {
	Port       string
	StoreURL   string
	HandoffDSN string
	LogFile    string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	store := os.Getenv("STORE_URL")
	if store == "" {
		store = "http://localhost:3000"
	}
	dsn := os.Getenv("HANDOFF_DSN")
	if dsn == "" {
		dsn = "verdora.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./verdora.log"
	}

	cfg := Config{Port: port, StoreURL: store, HandoffDSN: dsn, LogFile: logFile}
	log.Printf("[config] PORT=%s STORE_URL=%s HANDOFF_DSN=%s LOG_FILE=%s", cfg.Port, cfg.StoreURL, cfg.HandoffDSN, cfg.LogFile)
	return cfg
}

// StoreConfig for the storeapi binary.
type StoreConfig struct {
	Port string
	DSN  string
}

func LoadStore() StoreConfig {
	port := os.Getenv("STORE_PORT")
	if port == "" {
		port = "3000"
	}
	dsn := os.Getenv("STORE_DSN")
	if dsn == "" {
		dsn = "storeapi.db"
	}

	cfg := StoreConfig{Port: port, DSN: dsn}
	log.Printf("[config] STORE_PORT=%s STORE_DSN=%s", cfg.Port, cfg.DSN)
	return cfg
}
