package main

import (
	"fmt"
	"log"

	"github.com/FawazNazmo/MechLink/configs"
	"github.com/FawazNazmo/MechLink/jobs"
	"github.com/FawazNazmo/MechLink/middlewares"
	"github.com/FawazNazmo/MechLink/pkg/mailer"
	"github.com/FawazNazmo/MechLink/repository"
	"github.com/FawazNazmo/MechLink/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedPricingProfiles(); err != nil {
		log.Fatalf("seed pricing profiles failed: %v", err)
	}

	// Mail
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.ClientOrigin))

	routes.RegisterRoutes(r, cfg, mail)

	// Daily service reminders
	reminderJob := jobs.NewReminderJob(
		repository.NewServiceRecordRepository(db),
		repository.NewAlertSettingRepository(db),
		mail,
	)
	cronRunner := reminderJob.Start()
	defer cronRunner.Stop()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 MechLink API running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
