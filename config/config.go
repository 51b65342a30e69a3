package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"lodge-backend/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDriver    string
	CORSOrigins []string
	FrontendURL string
	LodgeSkin   string

	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int

	PaystackSecretKey string
	PaystackBaseURL   string
	GeoIPBaseURL      string
	CloudinaryURL     string
	ChromePath        string
	UploadDir         string

	AdminUsername string
	AdminPassword string
	SessionSecret string
	JobsEnabled   bool
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	redisDB, err := strconv.Atoi(utils.EnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		log.Printf("⚠️  invalid REDIS_DB, using 0: %v", err)
		redisDB = 0
	}

	return Config{
		Port:              utils.EnvOrDefault("PORT", "8080"),
		DBDriver:          resolveDriver(),
		CORSOrigins:       parseList(os.Getenv("CORS_ORIGINS"), "*"),
		FrontendURL:       strings.TrimRight(utils.EnvOrDefault("FRONTEND_URL", "http://localhost:5173"), "/"),
		LodgeSkin:         strings.ToLower(utils.EnvOrDefault("LODGE_SKIN", "elkad")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisUsername:     strings.TrimSpace(os.Getenv("REDIS_USERNAME")),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		PaystackSecretKey: strings.TrimSpace(os.Getenv("PAYSTACK_SECRET_KEY")),
		PaystackBaseURL:   utils.EnvOrDefault("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		GeoIPBaseURL:      utils.EnvOrDefault("GEOIP_BASE_URL", "https://ipapi.co"),
		CloudinaryURL:     strings.TrimSpace(os.Getenv("CLOUDINARY_URL")),
		ChromePath:        strings.TrimSpace(os.Getenv("CHROME_PATH")),
		UploadDir:         utils.EnvOrDefault("UPLOAD_DIR", "uploads"),
		AdminUsername:     utils.EnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:     utils.EnvOrDefault("ADMIN_PASSWORD", "admin123"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		JobsEnabled:       strings.ToLower(utils.EnvOrDefault("JOBS_ENABLED", "true")) == "true",
	}
}

func parseList(raw, def string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{def}
	}
	return out
}

// resolveDriver picks the database driver from DB_DRIVER, falling back to the URL scheme.
func resolveDriver() string {
	if d := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER"))); d != "" {
		return d
	}
	raw := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return "postgres"
	}
	return "mysql"
}
