package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"soulscribe-backend/internal/common/config"
	"soulscribe-backend/internal/common/logger"
	contentmodels "soulscribe-backend/internal/features/content/models"
	tokenmodels "soulscribe-backend/internal/features/token/models"
	usermodels "soulscribe-backend/internal/features/user/models"
)

type Client struct {
	db *gorm.DB
}

// NewClient opens the database, tunes the pool and migrates the schema.
func NewClient(cfg *config.Config) (*Client, error) {
	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	if err := db.AutoMigrate(
		&usermodels.User{},
		&contentmodels.Content{},
		&tokenmodels.SoulboundToken{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info().
		Str("host", cfg.Postgres.Host).
		Str("database", cfg.Postgres.Database).
		Msg("Database connection established")

	return &Client{db: db}, nil
}

func (c *Client) GetDB() *gorm.DB {
	return c.db
}

func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
