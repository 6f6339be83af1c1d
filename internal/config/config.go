package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string `mapstructure:"PORT"`
	Mode             string `mapstructure:"MODE"`
	DatabasePath     string `mapstructure:"DATABASE_PATH"`
	JWTAccessSecret  string `mapstructure:"JWT_ACCESS"`
	JWTRefreshSecret string `mapstructure:"JWT_REFRESH"`
	HCaptchaSecret   string `mapstructure:"HCAPTCHA_SECRET"`
	CloudinaryURL    string `mapstructure:"CLOUDINARY_URL"`
	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         int    `mapstructure:"SMTP_PORT"`
	SMTPUser         string `mapstructure:"TRANSPORTER_EMAIL"`
	SMTPPassword     string `mapstructure:"TRANSPORTER_PW"`
	MailFrom         string `mapstructure:"MAIL_FROM"`
	Origin           string `mapstructure:"ORIGIN"`
	UploadDir        string `mapstructure:"UPLOAD_DIR"`
}

// IsProduction reports whether the service runs with production cookie and
// SMTP settings.
func (c *Config) IsProduction() bool {
	return c.Mode == "PRODUCTION"
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MODE", "DEVELOPMENT")
	viper.SetDefault("DATABASE_PATH", "eventra.db")
	viper.SetDefault("SMTP_HOST", "mail.smtp2go.com")
	viper.SetDefault("SMTP_PORT", 2525)
	viper.SetDefault("MAIL_FROM", "events@vinceoleo.com")
	viper.SetDefault("UPLOAD_DIR", "uploads")

	viper.BindEnv("MODE")
	viper.BindEnv("JWT_ACCESS")
	viper.BindEnv("JWT_REFRESH")
	viper.BindEnv("HCAPTCHA_SECRET")
	viper.BindEnv("CLOUDINARY_URL")
	viper.BindEnv("SMTP_HOST")
	viper.BindEnv("SMTP_PORT")
	viper.BindEnv("TRANSPORTER_EMAIL")
	viper.BindEnv("TRANSPORTER_PW")
	viper.BindEnv("MAIL_FROM")
	viper.BindEnv("ORIGIN")
	viper.BindEnv("UPLOAD_DIR")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
