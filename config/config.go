package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	BaseURL string // public base URL, used when building QR check-in links

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   string
	JWTTTLHours int

	// ✅ Redis Config
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka Config
	KafkaBrokers          string
	KafkaEnrollmentsTopic string
	KafkaConsumerGroupID  string

	// ✅ SMTP Config
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string

	// Reminder sweep
	SweepInterval time.Duration

	// Check-in policy: whether a second scan on the event day is accepted
	CheckinAllowRescan bool
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	ttl, _ := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	sweepMinutes, err := strconv.Atoi(getEnv("REMINDER_SWEEP_MINUTES", "5"))
	if err != nil || sweepMinutes < 1 {
		sweepMinutes = 5
	}

	allowRescan := true
	if v := os.Getenv("CHECKIN_ALLOW_RESCAN"); v != "" {
		allowRescan, _ = strconv.ParseBool(v)
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTLHours: ttl,

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:          getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaEnrollmentsTopic: getEnv("KAFKA_ENROLLMENTS_TOPIC", "eventful.enrollments"),
		KafkaConsumerGroupID:  getEnv("KAFKA_CONSUMER_GROUP_ID", "eventful-notifications"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  os.Getenv("SMTP_FROM_NAME"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),

		SweepInterval: time.Duration(sweepMinutes) * time.Minute,

		CheckinAllowRescan: allowRescan,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
