package database

import (
	"context"
	"fmt"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/models"
	"storefront-api/pkg/logging"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Store wraps the relational database and exposes the query surface the
// services need.
type Store struct {
	db *gorm.DB
}

// Open connects to the relational database, runs migrations and seeds
// default data. With no DATABASE_URL set it falls back to a local SQLite
// file for development.
func Open(cfg *config.Config) (*Store, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	}

	if cfg.DatabaseURL == "" {
		logging.Infof("DATABASE_URL not set, using SQLite for development")
		db, err = gorm.Open(sqlite.Open("storefront-api.db"), gormCfg)
	} else {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := store.seedDefaultData(); err != nil {
		return nil, fmt.Errorf("failed to seed default data: %w", err)
	}

	logging.Infof("Database connected successfully")
	return store, nil
}

func (s *Store) migrate() error {
	// The user table is owned by the auth service in production; migrating
	// it here keeps the SQLite development fallback self-contained.
	return s.db.AutoMigrate(
		&models.User{},
		&models.Coupon{},
		&models.Purchase{},
		&models.Notification{},
		&models.AnalyticsEvent{},
	)
}

func (s *Store) seedDefaultData() error {
	welcome := models.Coupon{
		Code:         "WELCOME10",
		DiscountType: models.DiscountPercentage,
		Value:        10,
		MaxDiscount:  20,
		Active:       true,
	}

	// FirstOrCreate keeps the seed idempotent across restarts
	result := s.db.Where("code = ?", welcome.Code).FirstOrCreate(&welcome)
	if result.Error != nil {
		return fmt.Errorf("failed to seed default coupon: %w", result.Error)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ConnectRedis connects to Redis and verifies the connection.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Infof("Redis connected successfully")
	return client, nil
}
