package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"verdora/internal/config"
	applog "verdora/internal/log"
	"verdora/internal/store"
)

func main() {
	cfg := config.LoadStore()

	db, err := store.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(logger.New())

	store.NewAPI(db).Register(app)

	applog.Info(nil, "startup", map[string]any{"port": cfg.Port, "dsn": cfg.DSN})
	log.Fatal(app.Listen(":" + cfg.Port))
}
