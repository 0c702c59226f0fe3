package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv                string `mapstructure:"APP_ENV"`
	Port                  string `mapstructure:"PORT"`
	DatabaseURL           string `mapstructure:"DATABASE_URL"`
	RedisURL              string `mapstructure:"REDIS_URL"`
	RedisPassword         string `mapstructure:"REDIS_PASSWORD"`
	ShortCodeAlphabet     string `mapstructure:"SHORT_CODE_ALPHABET"`
	ShortCodeLength       int    `mapstructure:"SHORT_CODE_LENGTH"`
	MaxGenerationAttempts int    `mapstructure:"MAX_GENERATION_ATTEMPTS"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DATABASE_URL", "sqlite://urls.db")
	// Empty REDIS_URL disables the redirect cache.
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SHORT_CODE_ALPHABET", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
	viper.SetDefault("SHORT_CODE_LENGTH", 6)
	viper.SetDefault("MAX_GENERATION_ATTEMPTS", 5)

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
