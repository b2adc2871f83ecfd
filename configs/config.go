package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TriggerModeCron  = "cron"
	TriggerModeQueue = "queue"
	TriggerModeHTTP  = "http"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	Endpoint   string
}

// Enabled reports whether publish logs should be archived to R2.
func (r R2) Enabled() bool {
	return r.BucketName != "" && r.AccessKey != "" && r.SecretKey != ""
}

type Facebook struct {
	AppID       string
	AppSecret   string
	RedirectURI string
	GraphURL    string
	DialogURL   string
}

type Config struct {
	Port            string
	PostgresURI     string
	RedisURI        string
	FrontendURL     string
	SecretKey       string
	JWTSecret       string
	CookieName      string
	JobSecret       string
	TriggerMode     string
	PublishSchedule string
	HTTPTimeout     time.Duration
	Facebook        Facebook
	R2              R2
}

func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "3000"),
		PostgresURI:     getEnv("POSTGRES_URI", ""),
		RedisURI:        getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:       getEnv("SECRET_KEY", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CookieName:      getEnv("COOKIE_NAME", "sb-access-token"),
		JobSecret:       getEnv("JOB_SECRET", ""),
		TriggerMode:     strings.ToLower(getEnv("TRIGGER_MODE", TriggerModeCron)),
		PublishSchedule: getEnv("PUBLISH_SCHEDULE", "@every 1m"),
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		Facebook: Facebook{
			AppID:       getEnv("FACEBOOK_APP_ID", ""),
			AppSecret:   getEnv("FACEBOOK_APP_SECRET", ""),
			RedirectURI: getEnv("FACEBOOK_REDIRECT_URI", "http://localhost:3000/auth/facebook/callback"),
			GraphURL:    strings.TrimRight(getEnv("FACEBOOK_GRAPH_URL", "https://graph.facebook.com/v18.0"), "/"),
			DialogURL:   getEnv("FACEBOOK_DIALOG_URL", "https://www.facebook.com/v18.0/dialog/oauth"),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			Endpoint:   getEnv("R2_ENDPOINT", ""),
		},
	}
}

// Validate returns every missing or malformed setting joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.PostgresURI == "" {
		errs = append(errs, errors.New("POSTGRES_URI is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch len(c.SecretKey) {
	case 0, 16, 24, 32:
	default:
		errs = append(errs, errors.New("SECRET_KEY must be 16, 24 or 32 bytes long"))
	}

	switch c.TriggerMode {
	case TriggerModeCron, TriggerModeQueue:
	case TriggerModeHTTP:
		if c.JobSecret == "" {
			errs = append(errs, errors.New("JOB_SECRET is required when TRIGGER_MODE=http"))
		}
	default:
		errs = append(errs, errors.New("TRIGGER_MODE must be one of cron, queue, http"))
	}

	if c.TriggerMode == TriggerModeQueue && c.RedisURI == "" {
		errs = append(errs, errors.New("REDIS_URI is required when TRIGGER_MODE=queue"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
