package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Plug     PlugConfig     `mapstructure:"plug"`
	Database DatabaseConfig `mapstructure:"database"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
}

type PlugConfig struct {
	GatewayURL string `mapstructure:"gateway_url"`
	AuthCookie string `mapstructure:"auth_cookie"`
	Room       string `mapstructure:"room"`
}

type MonitorConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("plug.gateway_url", "wss://sjs.plug.dj:443/plug")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
