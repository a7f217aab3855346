package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/SecurityPuppy/plugdj-node/client"
	"github.com/SecurityPuppy/plugdj-node/config"
	"github.com/SecurityPuppy/plugdj-node/logger"
	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/monitor"
	"github.com/SecurityPuppy/plugdj-node/network"
	"github.com/SecurityPuppy/plugdj-node/persistence"
	"github.com/SecurityPuppy/plugdj-node/services"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	bot := client.NewClient(cfg.Plug.GatewayURL, cfg.Plug.AuthCookie)

	// Initialize Database (optional; the engine runs without an archive)
	if cfg.Database.Postgres.Host != "" {
		db, err := persistence.NewGormPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		logger.Log.Info("Database connection successful.")

		history := services.NewHistoryService(db)
		history.Attach(bot.Bus(), bot.Store())
	}

	// Initialize Monitor
	if cfg.Monitor.Address != "" {
		mon := monitor.NewMonitor("plugdj")
		mon.StartServer(cfg.Monitor.Address)
		bot.SetMonitor(mon)

		bot.Bus().Subscribe(network.EventScoreUpdate, func(data interface{}) {
			if score, ok := data.(models.Score); ok {
				mon.SetRoomScore(score.Score)
			}
		})
		logger.Log.Infof("Monitor listening on %s", cfg.Monitor.Address)
	}

	// Connect and join the configured room
	logger.Log.Infof("Connecting to gateway %s", cfg.Plug.GatewayURL)
	if err := bot.Connect(cfg.Plug.Room); err != nil {
		logger.Log.Fatalf("Failed to connect: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	if err := bot.Close(); err != nil {
		logger.Log.Errorw("close failed", "error", err)
	}
}
