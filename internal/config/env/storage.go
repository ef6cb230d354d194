package envconfig

import (
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type storageEnv struct {
	DataDir     string        `env:"SHOP_DATA_DIR" envDefault:"database"`
	CatalogFile string        `env:"SHOP_CATALOG_FILE" envDefault:"database.csv"`
	UsersFile   string        `env:"SHOP_USERS_FILE" envDefault:"users.csv"`
	ReceiptsDir string        `env:"SHOP_RECEIPTS_DIR" envDefault:"receipts"`
	IOTimeout   time.Duration `env:"SHOP_IO_TIMEOUT" envDefault:"5s"`
}

type storage struct {
	raw storageEnv
}

func NewStorageConfig() (*storage, error) {
	var raw storageEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &storage{raw: raw}, nil
}

func (cfg *storage) DataDir() string          { return cfg.raw.DataDir }
func (cfg *storage) IOTimeout() time.Duration { return cfg.raw.IOTimeout }

func (cfg *storage) CatalogPath() string { return cfg.under(cfg.raw.CatalogFile) }
func (cfg *storage) UsersPath() string   { return cfg.under(cfg.raw.UsersFile) }
func (cfg *storage) ReceiptsDir() string { return cfg.under(cfg.raw.ReceiptsDir) }

// under resolves p against the data directory unless it is already absolute.
func (cfg *storage) under(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.raw.DataDir, p)
}
