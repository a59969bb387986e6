package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Listen struct {
	BindIp string `yaml:"bind_ip" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env-default:"8080"`
}

type Mongo struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	Host     string `yaml:"host" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env-default:"27017"`
	User     string `yaml:"user" env-default:""`
	Password string `yaml:"password" env-default:""`
	Database string `yaml:"database" env-default:"easywork"`
}

type Mail struct {
	Enabled     bool   `yaml:"enabled" env-default:"false"`
	ApiKey      string `yaml:"api_key" env:"RESEND_API_KEY" env-default:""`
	BaseUrl     string `yaml:"base_url" env-default:"https://api.resend.com"`
	FromName    string `yaml:"from_name" env-default:"EasyWork"`
	FromAddress string `yaml:"from_address" env-default:"noreply@brynex.no"`
}

type Telegram struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	ApiKey   string `yaml:"api_key" env-default:""`
	LogLevel string `yaml:"log_level" env-default:"warn"`
}

type Document struct {
	Locale         string  `yaml:"locale" env-default:"nb-NO"`
	Currency       string  `yaml:"currency" env-default:"NOK"`
	CurrencySymbol string  `yaml:"currency_symbol" env-default:"kr"`
	DefaultVatRate float64 `yaml:"default_vat_rate" env-default:"25"`
	QuoteTerms     string  `yaml:"quote_terms" env-default:""`
	OutputDir      string  `yaml:"output_dir" env-default:"."`
}

type Config struct {
	Env      string   `yaml:"env" env-default:"local"`
	Listen   Listen   `yaml:"listen"`
	Mongo    Mongo    `yaml:"mongo"`
	Mail     Mail     `yaml:"mail"`
	Telegram Telegram `yaml:"telegram"`
	Document Document `yaml:"document"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("config: %s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
