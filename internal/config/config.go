package config // package config loads application configuration from environment variables

import (
	"log" // log reports configuration problems
	"os"  // os provides access to environment variables

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are
// used in the application: strings for identifiers and secrets, ints
// for durations and costs.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	BaseURL         string // external base URL used in password reset links
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign JWTs
	AccessTTLMin    int    // admin session token time-to-live in minutes
	BcryptCost      int    // bcrypt cost for password hashing
	ResetTokenHours int    // password reset token lifetime in hours
	WhatsAppNumber  string // optional number for the WhatsApp contact shortcut
	Mail            Mail   // SMTP delivery settings
	MinIO           MinIO  // object storage settings for uploads
}

// Mail holds SMTP settings for outbound notifications. When Username
// or Password is empty, sending is disabled and the mailer reports the
// condition instead of attempting delivery.
type Mail struct {
	Host     string // SMTP server hostname
	Port     string // SMTP server port
	Username string // SMTP auth username
	Password string // SMTP auth password
	Sender   string // From address on outbound mail
	AdminTo  string // inbox notified about new contact messages
}

// MinIO holds object storage settings for image uploads.
type MinIO struct {
	Endpoint  string // host:port of the MinIO server
	AccessKey string // access key id
	SecretKey string // secret access key
	Bucket    string // bucket holding uploaded images
	UseSSL    bool   // connect over TLS
	PublicURL string // base URL uploads are served from
}

// Load reads configuration values from environment variables and
// returns a Config. A local .env file is loaded first when present.
// Most values have development defaults; JWT_SECRET falls back to a
// placeholder with a loud warning so a fresh checkout still boots.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = "change-this-secret"
		log.Println("WARNING: JWT_SECRET not set, using insecure default")
	}

	return Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("APP_PORT", "10000"),
		BaseURL:         getenv("APP_BASE_URL", "http://localhost:10000"),
		DBUser:          getenv("DB_USER", "root"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "3306"),
		DBName:          getenv("DB_NAME", "thuwala"),
		JWTSecret:       secret,
		AccessTTLMin:    envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:      envInt("BCRYPT_COST", 12),
		ResetTokenHours: envInt("PASSWORD_RESET_TOKEN_EXPIRE_HOURS", 24),
		WhatsAppNumber:  os.Getenv("WHATSAPP_NUMBER"),
		Mail: Mail{
			Host:     getenv("MAIL_SERVER", "smtp.gmail.com"),
			Port:     getenv("MAIL_PORT", "587"),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			Sender:   getenv("MAIL_DEFAULT_SENDER", "noreply@thuwalaco.com"),
			AdminTo:  getenv("MAIL_ADMIN_TO", "admin@thuwalaco.com"),
		},
		MinIO: MinIO{
			// No default: an empty endpoint means uploads are disabled.
			Endpoint:  getenv("MINIO_ENDPOINT", ""),
			AccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getenv("MINIO_BUCKET", "uploads"),
			UseSSL:    envBool("MINIO_USE_SSL", false),
			PublicURL: getenv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		},
	}
}
