package config

import (
	"crypto/rsa"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL           string
	Port                  string
	RedisAddress          string
	RedisPassword         string
	RabbitMQURL           string
	NotificationQueueName string
	JWTPublicKey          *rsa.PublicKey
	AllowedOrigins        []string
	WhatsAppNumber        string
	ContactNumber         string
	WizardDraftTTL        time.Duration
	NotificationTimeout   time.Duration
}

// AdminConfig is the subset the admin CLI needs.
type AdminConfig struct {
	DatabaseURL    string
	WhatsAppNumber string
	ContactNumber  string
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: failed to read .env: %v", err)
	}
}

func requireDatabaseURL() string {
	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}
	return dbURL
}

func agencyNumbers() (whatsApp, contact string) {
	whatsApp = getenv("AGENCY_WHATSAPP_NUMBER", "919876543210")
	return whatsApp, getenv("AGENCY_CONTACT_NUMBER", "+"+whatsApp)
}

// LoadAdmin reads only what the admin CLI uses.
func LoadAdmin() *AdminConfig {
	loadDotEnv()
	whatsApp, contact := agencyNumbers()
	return &AdminConfig{
		DatabaseURL:    requireDatabaseURL(),
		WhatsAppNumber: whatsApp,
		ContactNumber:  contact,
	}
}

// Load reads the environment, after applying a .env file when one exists.
func Load() *Config {
	loadDotEnv()
	dbURL := requireDatabaseURL()

	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	publicKeyPath := getenv("PUBLIC_KEY_PATH", "/etc/certs/public.pem")
	publicKey, err := loadPublicKey(publicKeyPath)
	if err != nil {
		panic("Failed to load public key: " + err.Error())
	}

	whatsApp, contact := agencyNumbers()

	return &Config{
		DatabaseURL:           dbURL,
		Port:                  getenv("PORT", "8080"),
		RedisAddress:          getenv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:           rabbitURL,
		NotificationQueueName: getenv("NOTIFICATION_QUEUE_NAME", "registration_notifications"),
		JWTPublicKey:          publicKey,
		AllowedOrigins:        splitList(getenv("ALLOWED_ORIGINS", "*")),
		WhatsAppNumber:        whatsApp,
		ContactNumber:         contact,
		WizardDraftTTL:        getDuration("WIZARD_DRAFT_TTL", 24*time.Hour),
		NotificationTimeout:   getDuration("NOTIFICATION_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyData)
	if err != nil {
		return nil, err
	}
	return publicKey, nil
}
