package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credon/config"
	"credon/internal/database"
	"credon/internal/domain"
	"credon/internal/repository"
	"credon/internal/router"
	"credon/internal/scheduler"
	"credon/internal/service"
	"credon/pkg/cloudinary"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db, &cfg.Platform)
	database.SeedPlans(db)

	settingRepo := repository.NewSettingRepository(db)
	if err := settingRepo.SeedDefaults(map[string]string{
		domain.SettingDepositAddress:    cfg.Platform.DepositAddress,
		domain.SettingAutomationEnabled: "true",
	}); err != nil {
		log.Fatalf("settings: %v", err)
	}

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatalf("cloudinary: %v", err)
	}

	walletRepo := repository.NewWalletRepository(db)
	investmentSvc := service.NewInvestmentService(db, walletRepo,
		repository.NewInvestmentRepository(db), repository.NewPlanRepository(db))
	referralSvc := service.NewReferralService(db, repository.NewUserRepository(db), walletRepo,
		repository.NewInvestmentRepository(db), repository.NewReferralRepository(db),
		repository.NewTransactionRepository(db))
	automationSvc := service.NewAutomationService(settingRepo, walletRepo, investmentSvc, referralSvc)

	sched, err := scheduler.New(automationSvc, cfg.Platform.SchedulerTZ)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	engine := router.Setup(cfg, db, cloud)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	log.Println("server stopped")
}
