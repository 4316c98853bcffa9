package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Dosada05/teamfinder/db"
	appLogger "github.com/Dosada05/teamfinder/logger"
)

func main() {
	_ = godotenv.Load()

	var (
		databaseURL string
		direction   string
		steps       int
		env         string
	)
	flag.StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	flag.StringVarP(&direction, "direction", "d", "up", "migration direction: up or down")
	flag.IntVarP(&steps, "steps", "n", 0, "number of steps to apply (0 means all)")
	flag.StringVar(&env, "env", os.Getenv("APP_ENV"), "application environment")
	flag.Parse()

	logger, err := appLogger.New(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := migrate(databaseURL, direction, steps); err != nil {
		logger.Error("migration failed", zap.String("direction", direction), zap.Int("steps", steps), zap.Error(err))
		os.Exit(1)
	}
	logger.Info("migrations applied", zap.String("direction", direction), zap.Int("steps", steps))
}

func migrate(databaseURL, direction string, steps int) error {
	if databaseURL == "" {
		return fmt.Errorf("database url is required (--database-url or DATABASE_URL)")
	}
	if steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", steps)
	}

	m, err := db.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case "up":
		if steps > 0 {
			return db.IgnoreNoChange(m.Steps(steps))
		}
		return db.IgnoreNoChange(m.Up())
	case "down":
		if steps > 0 {
			return db.IgnoreNoChange(m.Steps(-steps))
		}
		return db.IgnoreNoChange(m.Down())
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}
}
