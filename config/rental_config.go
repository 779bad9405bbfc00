package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Database
	DatabaseURL string
	RedisURL    string

	// JWT
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTime    time.Duration
	RefreshTokenTime   time.Duration

	// Password reset
	FindPasswordTokenSecret string
	FindPasswordTokenTime   time.Duration
	EmailBaseURL            string

	// OAuth - Google
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// OAuth - Kakao
	KakaoClientID     string
	KakaoClientSecret string
	KakaoRedirectURL  string

	// OAuth - Naver
	NaverClientID     string
	NaverClientSecret string
	NaverRedirectURL  string

	// MinIO
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Cache
	ListingCacheTTL time.Duration
	OTPCodeTTL      time.Duration

	// Upload limits (files per entity)
	CarImgLimit           int
	AccommodationImgLimit int
	ProfileImgLimit       int

	// Encryption (payment card data at rest)
	EncryptionKey string

	// Rate limiting (auth endpoints)
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		// JWT
		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTokenTime:    time.Duration(getEnvInt("ACCESS_TOKEN_TIME_SEC", 3600)) * time.Second,
		RefreshTokenTime:   time.Duration(getEnvInt("REFRESH_TOKEN_TIME_SEC", 604800)) * time.Second,

		// Password reset
		FindPasswordTokenSecret: getEnv("FIND_PASSWORD_TOKEN_SECRET", ""),
		FindPasswordTokenTime:   time.Duration(getEnvInt("FIND_PASSWORD_TOKEN_TIME_SEC", 600)) * time.Second,
		EmailBaseURL:            getEnv("EMAIL_BASE_URL", "http://localhost:3000"),

		// OAuth - Google
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_CALLBACK_URL", ""),

		// OAuth - Kakao
		KakaoClientID:     getEnv("KAKAO_CLIENT_ID", ""),
		KakaoClientSecret: getEnv("KAKAO_CLIENT_SECRET", ""),
		KakaoRedirectURL:  getEnv("KAKAO_CALLBACK_URL", ""),

		// OAuth - Naver
		NaverClientID:     getEnv("NAVER_CLIENT_ID", ""),
		NaverClientSecret: getEnv("NAVER_CLIENT_SECRET", ""),
		NaverRedirectURL:  getEnv("NAVER_CALLBACK_URL", ""),

		// MinIO
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "rental"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),

		// SMTP
		SMTPHost:     getEnv("MAIL_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("MAIL_PORT", 587),
		SMTPUser:     getEnv("MAIL_USER", ""),
		SMTPPassword: getEnv("MAIL_PASSWORD", ""),
		SMTPFrom:     getEnv("MAIL_FROM", ""),

		// Cache
		ListingCacheTTL: time.Duration(getEnvInt("LISTING_CACHE_TTL_MIN", 10)) * time.Minute,
		OTPCodeTTL:      time.Duration(getEnvInt("OTP_CODE_TTL_MIN", 5)) * time.Minute,

		// Upload limits
		CarImgLimit:           getEnvInt("CAR_IMG_LIMIT", 5),
		AccommodationImgLimit: getEnvInt("ACCOMMODATION_IMG_LIMIT", 10),
		ProfileImgLimit:       getEnvInt("PROFILE_IMG_LIMIT", 3),

		// Encryption
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),

		// Rate limiting
		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow: time.Duration(getEnvInt("AUTH_RATE_WINDOW_SEC", 60)) * time.Second,

		// CORS
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
