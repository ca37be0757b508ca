package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"hotelbook/migrations"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getDBConfigByEnv ghép DSN từ các biến DEV_/QC_/PROD_ theo môi trường
func getDBConfigByEnv(env string) string {
	prefix := strings.ToUpper(env)
	switch env {
	case "dev", "qc", "prod":
	default:
		prefix = "DEV"
	}

	user := os.Getenv(prefix + "_DB_USER")
	password := os.Getenv(prefix + "_DB_PASSWORD")
	host := os.Getenv(prefix + "_DB_HOST")
	port := os.Getenv(prefix + "_DB_PORT")
	name := os.Getenv(prefix + "_DB_NAME")
	sslmode := GetEnv("DB_SSLMODE", "require")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, name, port, sslmode)
}

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.Env == "prod" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBDSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	return db, nil
}

// RunMigrations chạy goose trên các file SQL nhúng trong package migrations.
// command: "up" hoặc "status".
func RunMigrations(ctx context.Context, db *gorm.DB, command string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, sqlDB, "."); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	return nil
}
