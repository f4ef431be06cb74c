package configs

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func OpenConnection(env ENV, log *zap.Logger) (*gorm.DB, error) {
	maxRetries := env.DBMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	retryDelay := env.DBRetryDelay

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if env.IsDevelopment() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Info("connecting to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.String("host", env.DBHost),
			zap.String("database", env.DBName))

		db, err := gorm.Open(mysql.Open(env.DSN()), gormCfg)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					log.Info("database connection established")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Warn("failed to ping database", zap.Error(pingErr), zap.Duration("retry_in", retryDelay))
		} else {
			lastErr = err
			log.Warn("failed to open database connection", zap.Error(err), zap.Duration("retry_in", retryDelay))
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
