package config

import "time"

type Logger interface {
	Level() string
	AsJSON() bool
	File() string
}

type Storage interface {
	DataDir() string
	CatalogPath() string
	UsersPath() string
	ReceiptsDir() string
	IOTimeout() time.Duration
}

type Shop interface {
	MinPasswordLen() int
	Color() bool
}
