package config

import (
	"os"
	"strconv"
)

// Config is loaded once at process start and passed by reference into the
// components that need it. No package reads the environment after this.
type Config struct {
	Port        string
	DatabaseURL string

	// Completion endpoint
	XAIAPIKey  string
	XAIBaseURL string
	XAIModel   string

	// RabbitMQ (optional)
	AMQPUser string
	AMQPPass string
	AMQPHost string
	AMQPPort string

	// SMTP (optional)
	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string
}

func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		XAIAPIKey:  os.Getenv("XAI_API_KEY"),
		XAIBaseURL: getenv("XAI_BASE_URL", "https://api.x.ai"),
		XAIModel:   getenv("XAI_MODEL", "grok-4-latest"),

		AMQPUser: os.Getenv("AMQP_USER"),
		AMQPPass: os.Getenv("AMQP_PASS"),
		AMQPHost: os.Getenv("AMQP_HOST"),
		AMQPPort: getenv("AMQP_PORT", "5672"),

		MailHost: os.Getenv("MAIL_HOST"),
		MailPort: getenvInt("MAIL_PORT", 587),
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		MailFrom: getenv("MAIL_FROM", "no-reply@leadflow.local"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
