package main

import (
	"fmt"
	"log"

	"github.com/damirpristav/dogs-app-backend/internal/config"
	"github.com/damirpristav/dogs-app-backend/internal/database"
	"github.com/damirpristav/dogs-app-backend/internal/mailer"
	"github.com/damirpristav/dogs-app-backend/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// outbound mail; falls back to a no-op sender when not configured
	var m mailer.Mailer
	if cfg.Mail.Host != "" {
		smtpMailer, err := mailer.NewSMTP(cfg.Mail)
		if err != nil {
			log.Fatalf("init mailer: %v", err)
		}
		m = smtpMailer
	} else {
		log.Print("mail is not configured, emails will be discarded")
		m = mailer.Noop{}
	}

	// setup router
	r := router.SetupRouter(cfg, db, m)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
