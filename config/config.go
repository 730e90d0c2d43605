package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port     string
	Timezone string

	DBDriver    string // sqlite|postgres|memory
	DBPath      string
	DatabaseURL string

	AuthProvider   string // local|remote
	AuthURL        string
	AuthAnonKey    string
	AuthServiceKey string
	JWTSecret      string
	SessionTTL     time.Duration

	MailProvider       string // none|smtp|mailgun
	MailFrom           string
	NotificationEmails []string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	MailgunDomain      string
	MailgunAPIKey      string

	PDFFontPath string

	LogLevel  string
	LogFormat string
}

// Location resolves Timezone, falling back to JST.
func (c AppConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.FixedZone("JST", 9*60*60)
}

// String hides secrets so the config can be logged at startup.
func (c AppConfig) String() string {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	return "{Port:" + c.Port +
		" TZ:" + c.Timezone +
		" DB:" + c.DBDriver +
		" Auth:" + c.AuthProvider +
		" AuthURL:" + c.AuthURL +
		" ServiceKey:" + mask(c.AuthServiceKey) +
		" Mail:" + c.MailProvider +
		" Recipients:" + strconv.Itoa(len(c.NotificationEmails)) +
		" Log:" + c.LogLevel + "/" + c.LogFormat + "}"
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("TZ", "Asia/Tokyo")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "dispatch.db")
	v.SetDefault("AUTH_PROVIDER", "local")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("MAIL_PROVIDER", "none")
	v.SetDefault("MAIL_FROM", "noreply@example.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := AppConfig{
		Port:               v.GetString("PORT"),
		Timezone:           v.GetString("TZ"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:             v.GetString("DB_PATH"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		AuthProvider:       strings.ToLower(v.GetString("AUTH_PROVIDER")),
		AuthURL:            v.GetString("AUTH_URL"),
		AuthAnonKey:        v.GetString("AUTH_ANON_KEY"),
		AuthServiceKey:     v.GetString("AUTH_SERVICE_KEY"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		MailProvider:       strings.ToLower(v.GetString("MAIL_PROVIDER")),
		MailFrom:           v.GetString("MAIL_FROM"),
		NotificationEmails: SplitList(v.GetString("NOTIFICATION_EMAILS")),
		SMTPHost:           v.GetString("SMTP_HOST"),
		SMTPPort:           v.GetInt("SMTP_PORT"),
		SMTPUser:           v.GetString("SMTP_USER"),
		SMTPPassword:       v.GetString("SMTP_PASSWORD"),
		MailgunDomain:      v.GetString("MAILGUN_DOMAIN"),
		MailgunAPIKey:      v.GetString("MAILGUN_API_KEY"),
		PDFFontPath:        v.GetString("PDF_FONT_PATH"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.AuthProvider == "local" && cfg.JWTSecret == "" {
		log.Printf("[cfg] JWT_SECRET is empty; local tokens will not survive a restart")
	}
	log.Printf("[cfg] %s", cfg)
	return cfg
}

// SplitList parses a comma separated env value, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
