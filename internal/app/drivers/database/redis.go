package database

import (
	"context"
	"hyperschedule-service/internal/app/config"
	"log"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisConnectTimeout = 5 * time.Second

func redisOptions(driverConfig *config.DriverConfig) *redis.Options {
	return &redis.Options{
		Addr:        net.JoinHostPort(driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password:    driverConfig.Redis.Password,
		DB:          driverConfig.Redis.DB,
		DialTimeout: redisConnectTimeout,
	}
}

func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	opts := redisOptions(driverConfig)
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis at %s (db %d): %v", opts.Addr, opts.DB, err)
	}

	log.Printf("Successfully connected to redis at %s (db %d)", opts.Addr, opts.DB)
	return rdb
}
