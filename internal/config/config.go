package config

import (
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MailModeMailto = "mailto"
	MailModeLog    = "log"
)

type Config struct {
	AppPort         string
	DBDSN           string
	JWTSecret       string
	JWTExpiresMin   int
	RedisAddr       string
	RedisPassword   string
	AllowOrigins    string
	AdminEmail      string
	AdminPassword   string
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
	SenderEmail     string
	MailMode        string
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	return Config{
		AppPort:         get("APP_PORT", "8080"),
		DBDSN:           must("DB_DSN"),
		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresMin:   expires,
		RedisAddr:       get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		AllowOrigins:    get("ALLOW_ORIGINS", "http://127.0.0.1:3000, http://localhost:3000"),
		AdminEmail:      get("ADMIN_EMAIL", ""),
		AdminPassword:   get("ADMIN_PASSWORD", ""),
		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),
		SenderEmail:     get("SENDER_EMAIL", ""),
		MailMode:        get("MAIL_MODE", MailModeMailto),
	}
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AppPort, validation.Required),
		validation.Field(&c.JWTExpiresMin, validation.Min(1)),
		validation.Field(&c.MailMode, validation.In(MailModeMailto, MailModeLog)),
	)
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
