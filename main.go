package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/speechcoach/internal/database"
	"github.com/example/speechcoach/internal/excel"
	"github.com/example/speechcoach/internal/progression"
	"github.com/example/speechcoach/internal/scheduler"
)

// logNotifier records reminder decisions; the delivery transport (push,
// email, chat) is wired in by the surrounding system.
type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) SendStreakReminder(userID int64, currentStreak int) error {
	n.logger.Info("streak at risk",
		zap.Int64("user_id", userID),
		zap.Int("current_streak", currentStreak))
	return nil
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	statsRepo := database.NewUserStatsRepository(db)
	outcomeRepo := database.NewOutcomeRepository(db)
	service := progression.NewService(statsRepo, outcomeRepo, logger)

	// one-shot report export: speechcoach export <user-id> <file.xlsx|file.csv>
	if len(os.Args) > 1 && os.Args[1] == "export" {
		if len(os.Args) != 4 {
			logger.Fatal("usage: speechcoach export <user-id> <file>")
		}
		userID, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			logger.Fatal("invalid user ID", zap.String("arg", os.Args[2]))
		}
		exporter := excel.NewExporter(service, outcomeRepo)
		result, err := exporter.ExportProgressReport(context.Background(), userID, excel.DefaultExportConfig(os.Args[3]))
		if err != nil {
			logger.Fatal("failed to export progress report", zap.Error(err))
		}
		logger.Info("progress report written",
			zap.String("file", os.Args[3]),
			zap.Int("outcomes", result.OutcomesWritten))
		return
	}

	sched := scheduler.New(service, statsRepo, &logNotifier{logger: logger}, logger)
	sched.Start()
	defer sched.Stop()

	logger.Info("speechcoach progression service started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
}
