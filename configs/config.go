package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	BaseURL   string
	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	UploadsDir     string
	RequestTimeout time.Duration
	CORSOrigins    []string

	// geo (OpenRouteService)
	ORSAPIKey         string
	ORSBaseURL        string
	DistanceCacheSize int

	// notifications
	NotifyTimeout time.Duration
	AMQPURL       string
	MailQueue     string
	MailgunDomain string
	MailgunAPIKey string
	CommsEmail    string
	SupportEmail  string
}

func LoadConfig() *Config {
	// .env เป็น optional, ใน container ใช้ env จริง
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ cannot load .env: %v", err)
	}

	return &Config{
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "foodshare.db"),
		Port:      getEnv("PORT", "8000"),
		BaseURL:   getEnv("BASE_URL", "http://127.0.0.1:8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		CORSOrigins:    getList("CORS_ORIGINS"),

		ORSAPIKey:         os.Getenv("ORS_API_KEY"),
		ORSBaseURL:        getEnv("ORS_BASE_URL", "https://api.openrouteservice.org"),
		DistanceCacheSize: getInt("DISTANCE_CACHE_SIZE", 256),

		NotifyTimeout: getDuration("NOTIFY_TIMEOUT", 10*time.Second),
		AMQPURL:       os.Getenv("AMQP_URL"),
		MailQueue:     getEnv("MAIL_QUEUE", "foodshare.mail"),
		MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),
		CommsEmail:    getEnv("COMMS_EMAIL", "FoodShare31@gmail.com"),
		SupportEmail:  getEnv("SUPPORT_EMAIL", "FoodShare31@gmail.com"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("⚠️ invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// รายการคั่นด้วย comma, ไม่ตั้ง = nil
func getList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
