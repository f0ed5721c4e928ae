package db

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB
var Rdb *redis.Client

func Init(cfg *config.Config) error {
	var err error
	DB, err = Open(cfg.DB.DSN())
	if err != nil {
		return err
	}

	Rdb, err = redisDBConnection(cfg.Redis)
	if err != nil {
		return err
	}
	return nil
}

// Open connects gorm to Postgres and routes gorm's own logging through logrus.
func Open(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(log.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return conn, nil
}

func redisDBConnection(cfg config.RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var tlsConfig *tls.Config
	if cfg.TLS {
		tlsConfig = &tls.Config{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Username:  cfg.Username,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConfig,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.WithField("reply", pong).Info("Redis connected")
	return client, nil
}

func Close() {
	if Rdb != nil {
		if err := Rdb.Close(); err != nil {
			log.WithError(err).Warn("Error closing redis client")
		}
	}
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			log.WithError(err).Warn("Error getting database handle")
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Warn("Error closing database")
		}
	}
}
