package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config là cấu hình ứng dụng đọc từ biến môi trường (.env nếu có)
type Config struct {
	Env            string
	Port           string
	LogLevel       string
	DBDSN          string
	RedisAddr      string
	RedisUser      string
	RedisPassword  string
	TokenSecret    string
	TokenTTL       time.Duration
	CloudinaryURL  string
	GoogleClientID string
	AdminEmail     string
	AdminPassword  string
	CorsOrigins    []string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

// Load đọc cấu hình, các giá trị thiếu lấy mặc định
func Load() *Config {
	LoadEnv()

	cfg := &Config{
		Env:            GetEnv("ENV", "dev"),
		Port:           GetEnv("PORT", "8083"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisUser:      os.Getenv("REDIS_USER"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		TokenSecret:    os.Getenv("SECRET_KEY_ACCESS_TOKEN"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		CorsOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
	}

	ttl, err := strconv.Atoi(GetEnv("TOKEN_TTL_MINUTES", "1440"))
	if err != nil || ttl <= 0 {
		ttl = 1440
	}
	cfg.TokenTTL = time.Duration(ttl) * time.Minute

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		cfg.DBDSN = getDBConfigByEnv(cfg.Env)
	}
	return cfg
}

// GetEnv trả về giá trị biến môi trường hoặc fallback nếu rỗng
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// splitList tách danh sách phân cách bằng dấu phẩy, bỏ phần tử rỗng
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
