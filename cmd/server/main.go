package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/campusrfid/ledger/docs"
	"github.com/campusrfid/ledger/internal/audit"
	"github.com/campusrfid/ledger/internal/config"
	"github.com/campusrfid/ledger/internal/database"
	"github.com/campusrfid/ledger/internal/handlers"
	mW "github.com/campusrfid/ledger/internal/middleware"
	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/campusrfid/ledger/internal/services"
)

// @title Campus RFID Vehicle Ledger API
// @version 1.0
// @description Trip logging, prepaid balances and approval workflow for campus vehicles.
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	config.Load()
	serverCfg := config.LoadServerConfig()
	ledgerCfg := config.LoadLedgerConfig()
	scanCfg := config.LoadScanConfig()

	ctx := context.Background()

	db := database.InitDatabase(ctx)
	defer db.Close()

	redisClient := database.InitRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	accounts := repositories.NewAccountRepository(db)
	trips := repositories.NewTripRepository(db)
	scans := repositories.NewScanRepository(db)

	authService := services.NewAuthService(accounts, redisClient, config.LoadJWTConfig(), config.LoadArgon2Config(), ledgerCfg)
	if err := authService.EnsureAdmin(ctx, ledgerCfg.AdminEmail, ledgerCfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	roster, err := services.LoadRoster(scanCfg.RosterPath)
	if err != nil {
		log.Fatalf("Failed to load student roster: %v", err)
	}

	ledgerService := services.NewLedgerService(db, accounts, trips, audit.NewLogger())
	reportService := services.NewReportService(accounts, trips)
	scanService := services.NewScanService(scans, roster, redisClient, scanCfg)
	receiptService := services.NewReceiptService(trips)

	router := handlers.NewRouter(handlers.Routes{
		Sessions:  mW.NewAuthenticator(authService),
		Auth:      handlers.NewAuthHandler(authService, serverCfg.SecureCookie),
		Dashboard: handlers.NewDashboardHandler(reportService, ledgerService),
		Admin:     handlers.NewAdminHandler(ledgerService),
		Scans:     handlers.NewScanHandler(scanService),
		Receipts:  handlers.NewReceiptHandler(receiptService),
	}, serverCfg)

	server := &http.Server{
		Addr:         ":" + serverCfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", serverCfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
