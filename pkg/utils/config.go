package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	OTP      OTPConfig
	S3       S3Config
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	AccessSecret      string
	RefreshSecret     string
	AccessExpiryHours int
	RefreshExpiryDays int
}

type EmailConfig struct {
	Provider string // mailersend | smtp | dev
	APIKey   string
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
	MaxAttempts   int
}

type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("ACCESS_TOKEN_EXPIRY_HOURS", 24)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DAYS", 7)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_MAX_ATTEMPTS", 3)
	viper.SetDefault("EMAIL_PROVIDER", "dev")
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			FrontendURL: viper.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			AccessSecret:      viper.GetString("ACCESS_TOKEN_SECRET"),
			RefreshSecret:     viper.GetString("REFRESH_TOKEN_SECRET"),
			AccessExpiryHours: viper.GetInt("ACCESS_TOKEN_EXPIRY_HOURS"),
			RefreshExpiryDays: viper.GetInt("REFRESH_TOKEN_EXPIRY_DAYS"),
		},
		Email: EmailConfig{
			Provider: viper.GetString("EMAIL_PROVIDER"),
			APIKey:   viper.GetString("MAILERSEND_API_KEY"),
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
			FromName: viper.GetString("EMAIL_FROM_NAME"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
			MaxAttempts:   viper.GetInt("OTP_MAX_ATTEMPTS"),
		},
		S3: S3Config{
			Region:    viper.GetString("S3_REGION"),
			Bucket:    viper.GetString("S3_BUCKET"),
			Endpoint:  viper.GetString("S3_ENDPOINT"),
			AccessKey: viper.GetString("S3_ACCESS_KEY"),
			SecretKey: viper.GetString("S3_SECRET_KEY"),
			PublicURL: viper.GetString("S3_PUBLIC_URL"),
		},
	}

	return config, nil
}
