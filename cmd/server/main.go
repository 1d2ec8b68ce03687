package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/RamadeviRamkumar/Veeras-Login/internal/config"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/db"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/handlers"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/otp"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/realtime"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/routes"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/sms"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}

	codes := otp.NewMemoryStore()
	notifier := sms.NewTwilioNotifier(sms.Config{
		AccountSid: cfg.TwilioAccountSid,
		AuthToken:  cfg.TwilioAuthToken,
		From:       cfg.TwilioFromNumber,
	})

	tokens := handlers.NewTokenHandler(database)
	hub := realtime.NewHub(tokens.Consume)
	go hub.Run()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, database, cfg, codes, notifier, hub, tokens)

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
