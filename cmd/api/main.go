package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kittybank/backend/internal/kitty/adapter/repo"
	"github.com/kittybank/backend/internal/kitty/api"
	"github.com/kittybank/backend/internal/kitty/domain"
	"github.com/kittybank/backend/internal/kitty/service"
	"github.com/kittybank/backend/internal/platform/database"
	"github.com/kittybank/backend/internal/platform/logger"
	"github.com/kittybank/backend/internal/platform/server"
)

func main() {
	viper.SetConfigName("config")
	viper.AddConfigPath("configs")
	viper.AddConfigPath("../../configs")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("error reading config file: %s", err)
	}

	appLogger := logger.NewLogger(viper.GetString("server.mode"))
	defer appLogger.Sync()

	db := database.NewPostgresDB(
		viper.GetString("database.dsn"),
		viper.GetInt("database.max_idle_conns"),
		viper.GetInt("database.max_open_conns"),
	)
	// Creates the tables and the unique index on accounts.name.
	if err := db.AutoMigrate(&domain.Account{}, &domain.Transaction{}); err != nil {
		appLogger.Fatal("migration failed", zap.Error(err))
	}

	accountRepo := repo.NewAccountRepo(db)
	txRepo := repo.NewTransactionRepo(db)
	accountSvc := service.NewAccountService(accountRepo)
	txSvc := service.NewTransactionService(accountRepo, txRepo)
	kittyHandler := api.NewKittyHandler(accountSvc, txSvc)

	srv := server.NewServer(
		appLogger,
		viper.GetString("server.port"),
		viper.GetString("server.mode"),
		kittyHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server startup failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown failed", zap.Error(err))
	}
}
