package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Booking  BookingConfig
	Yappy    YappyConfig
	Twilio   TwilioConfig
	Cron     CronConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type BookingConfig struct {
	// IANA zone the workspaces operate in. Panama has no DST but the
	// zone database keeps us honest if that ever changes.
	Timezone string
}

type YappyConfig struct {
	Env            string // "prod" or "uat"
	MerchantID     string
	SecretKey      string // base64, key part before the first "."
	DomainOverride string
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string // format: whatsapp:+507XXXXXXXX
}

type CronConfig struct {
	Secret string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BOOKING_TIMEZONE", "America/Panama")
	viper.SetDefault("YAPPY_ENV", "prod")
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Booking: BookingConfig{
			Timezone: viper.GetString("BOOKING_TIMEZONE"),
		},
		Yappy: YappyConfig{
			Env:            viper.GetString("YAPPY_ENV"),
			MerchantID:     viper.GetString("YAPPY_MERCHANT_ID"),
			SecretKey:      viper.GetString("YAPPY_SECRET_KEY"),
			DomainOverride: viper.GetString("YAPPY_DOMAIN_OVERRIDE"),
		},
		Twilio: TwilioConfig{
			AccountSID:   viper.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:    viper.GetString("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom: viper.GetString("TWILIO_WHATSAPP_FROM"),
		},
		Cron: CronConfig{
			Secret: viper.GetString("CRON_SECRET"),
		},
	}

	return config, nil
}
