package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	QuickActionSecret   string
	AllowOrigins        []string
	LogstashTCPAddr     string
	R2Endpoint          string
	R2AccessKey         string
	R2SecretKey         string
	R2UseSSL            bool
	R2Bucket            string
	R2PublicBaseURL     string
	SessionTTL          string
	SMTPHost            string
	SMTPPort            string
	SMTPUsername        string
	SMTPPassword        string
	SMTPFrom            string
	GalleryImageMax     int64
	GalleryMaxDimension int
	DefaultCurrency     string
	SiteBaseURL         string
	EnablePublicAPI     bool
	EnableSeoDashboard  bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("GALLERY_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	maxDimension := 3840
	if v, err := strconv.Atoi(getenv("GALLERY_MAX_DIMENSION", "3840")); err == nil && v > 0 {
		maxDimension = v
	}

	return Config{
		Port:                getenv("PORT", "8080"),
		DatabaseURL:         must("DATABASE_URL"),
		JWTSecret:           must("JWT_SECRET"),
		QuickActionSecret:   getenv("QUICK_ACTION_SECRET", os.Getenv("JWT_SECRET")),
		AllowOrigins:        splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:     getenv("LOGSTASH_TCP_ADDR", ""),
		R2Endpoint:          getenv("R2_ENDPOINT", ""),
		R2AccessKey:         getenv("R2_ACCESS_KEY_ID", ""),
		R2SecretKey:         getenv("R2_SECRET_ACCESS_KEY", ""),
		R2UseSSL:            getenv("R2_USE_SSL", "true") == "true",
		R2Bucket:            getenv("R2_BUCKET", "sandsky-media"),
		R2PublicBaseURL:     getenv("R2_PUBLIC_BASE_URL", ""),
		SessionTTL:          getenv("SESSION_TTL", "24h"),
		SMTPHost:            getenv("SMTP_HOST", ""),
		SMTPPort:            getenv("SMTP_PORT", ""),
		SMTPUsername:        getenv("SMTP_USERNAME", ""),
		SMTPPassword:        getenv("SMTP_PASSWORD", ""),
		SMTPFrom:            getenv("SMTP_FROM", ""),
		GalleryImageMax:     imageMax,
		GalleryMaxDimension: maxDimension,
		DefaultCurrency:     getenv("DEFAULT_CURRENCY", "USD"),
		SiteBaseURL:         getenv("SITE_BASE_URL", ""),
		EnablePublicAPI:     getenv("ENABLE_PUBLIC_API", "true") == "true",
		EnableSeoDashboard:  getenv("ENABLE_SEO_DASHBOARD", "true") == "true",
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
