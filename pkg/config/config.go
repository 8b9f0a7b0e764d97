package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Training TrainingConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

// AdminConfig is the single operator account; the service has no user
// registration flow.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type TrainingConfig struct {
	// TrainOnStartup generates a synthetic dataset and trains the model pair
	// before the server starts accepting requests.
	TrainOnStartup bool

	// AutoTrainFallback lets the simulation handlers train on synthetic data
	// when the registry is empty instead of surfacing a not-trained error.
	// Off by default so the core contract stays strict.
	AutoTrainFallback bool

	// SyntheticRecords is the row count used for startup/fallback training.
	SyntheticRecords int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	syntheticRecords, err := strconv.Atoi(getEnv("TRAIN_SYNTHETIC_RECORDS", "2000"))
	if err != nil {
		return nil, errors.New("invalid TRAIN_SYNTHETIC_RECORDS")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Pricing Strategy Advisor API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "pricing_advisor"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Training: TrainingConfig{
			TrainOnStartup:    getEnv("TRAIN_ON_STARTUP", "true") == "true",
			AutoTrainFallback: getEnv("AUTO_TRAIN_FALLBACK", "false") == "true",
			SyntheticRecords:  syntheticRecords,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Admin.PasswordHash == "" {
		return nil, errors.New("missing admin password hash")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
