package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	SMTP     SMTP
	Scoring  Scoring
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWT struct {
	Secret         string
	AccessTTLHours int
}

type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Scoring struct {
	// DefaultPassThreshold is the pass percentage applied to templates
	// that do not carry their own threshold.
	DefaultPassThreshold float64
	OTPLifetimeMinutes   int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("JWT_ACCESS_TTL_HOURS", 72)
	viper.SetDefault("OTP_LIFETIME_MINUTES", 15)
	viper.SetDefault("DEFAULT_PASS_THRESHOLD", 60.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.AccessTTLHours = viper.GetInt("JWT_ACCESS_TTL_HOURS")

	config.SMTP.Host = viper.GetString("SMTP_HOST")
	config.SMTP.Port = viper.GetString("SMTP_PORT")
	config.SMTP.Username = viper.GetString("SMTP_USERNAME")
	config.SMTP.Password = viper.GetString("SMTP_PASSWORD")
	config.SMTP.From = viper.GetString("SMTP_FROM")

	config.Scoring.DefaultPassThreshold = viper.GetFloat64("DEFAULT_PASS_THRESHOLD")
	config.Scoring.OTPLifetimeMinutes = viper.GetInt("OTP_LIFETIME_MINUTES")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
