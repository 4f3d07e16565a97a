package config

import (
	"fmt"

	"github.com/caarlos0/env"
)

type config struct {
	Production       bool   `env:"PRODUCTION" envDefault:"false"`
	Port             string `env:"PORT" envDefault:"80"`
	PostgresUrl      string `env:"POSTGRES_URL,required"`
	RedisUrl         string `env:"REDIS_URL" envDefault:"redis:6379"`
	CalendarId       string `env:"CALENDAR_ID" envDefault:"primary"`
	SyncSchedule     string `env:"SYNC_SCHEDULE" envDefault:"@every 15m"`
	SyncOnStart      bool   `env:"SYNC_ON_START" envDefault:"true"`
	ClientSecretPath string `env:"CLIENT_SECRET_PATH" envDefault:"secrets/client_secret.json"`
	ClientType       string `env:"CLIENT_TYPE" envDefault:"web"`
	RedirectURL      string `env:"REDIRECT_URL" envDefault:""`
	PrimaryColor     int    `env:"PRIMARY_COLOR" envDefault:"-12417548"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func CalendarID() string {
	return conf.CalendarId
}

func SyncSchedule() string {
	return conf.SyncSchedule
}

func SyncOnStart() bool {
	return conf.SyncOnStart
}

func ClientSecretPath() string {
	return conf.ClientSecretPath
}

func ClientType() string {
	return conf.ClientType
}

func RedirectURL() string {
	return conf.RedirectURL
}

func PrimaryColor() int {
	return conf.PrimaryColor
}
