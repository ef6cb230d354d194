package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type shopEnv struct {
	MinPasswordLen int  `env:"SHOP_MIN_PASSWORD_LEN" envDefault:"6"`
	Color          bool `env:"SHOP_COLOR" envDefault:"true"`
}

type shop struct {
	raw shopEnv
}

func NewShopConfig() (*shop, error) {
	var raw shopEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	if raw.MinPasswordLen < 1 {
		return nil, fmt.Errorf("SHOP_MIN_PASSWORD_LEN must be positive, got %d", raw.MinPasswordLen)
	}
	return &shop{raw: raw}, nil
}

func (cfg *shop) MinPasswordLen() int { return cfg.raw.MinPasswordLen }
func (cfg *shop) Color() bool         { return cfg.raw.Color }
