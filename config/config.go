package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Addr string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	SlotTTL time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Cache:    GetCacheConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Addr: ":8081"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Cache:    CacheConfig{SlotTTL: time.Second},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Addr: getEnv("SERVER_ADDR", ":8080"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "bookit"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetCacheConfig() CacheConfig {
	seconds, err := strconv.Atoi(getEnv("SLOT_CACHE_TTL_SECONDS", "30"))
	if err != nil {
		panic(err)
	}

	return CacheConfig{
		SlotTTL: time.Duration(seconds) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
