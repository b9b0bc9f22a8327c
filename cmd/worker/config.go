package main

import (
	"os"
	"strconv"
)

// Config is the worker-side configuration. The worker only needs Redis,
// SMTP and environment settings; it never touches the database.
type Config struct {
	Environment   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SMTPHost      string
	SMTPPort      string
	EmailFrom     string
	Concurrency   int
}

func loadConfig() *Config {
	return &Config{
		Environment:   getEnv("APP_ENV", "development"),
		RedisAddr:     getEnv("REDIS_HOST", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "1025"),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@renthub.dev"),
		Concurrency:   getEnvInt("WORKER_CONCURRENCY", 10),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
