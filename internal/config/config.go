package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/you-humble/computer-shop/internal/config/env"
)

var cfg *config

type config struct {
	Logger  Logger
	Storage Storage
	Shop    Shop
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	storageCfg, err := envconfig.NewStorageConfig()
	if err != nil {
		return fmt.Errorf("%s Storage: %w", op, err)
	}

	shopCfg, err := envconfig.NewShopConfig()
	if err != nil {
		return fmt.Errorf("%s Shop: %w", op, err)
	}

	cfg = &config{
		Logger:  loggerCfg,
		Storage: storageCfg,
		Shop:    shopCfg,
	}

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
