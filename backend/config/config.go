package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"

	BlobFS  = "fs"
	BlobGCS = "gcs"
)

type Config struct {
	Env        string
	ServerPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string
	MongoURI   string
	MongoDB    string

	JWTSecret string
	ClientURL string

	RazorpayKeyID     string
	RazorpayKeySecret string
	// CertificatePrice is in the smallest currency unit (paise).
	CertificatePrice int64
	Currency         string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	AdminEmail string

	BlobDriver string
	UploadDir  string
	GCSBucket  string

	RedisAddr      string
	RedisPassword  string
	LeaderboardTTL time.Duration

	CORSOrigins string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SMTPConfigured reports whether outgoing mail can be delivered for real.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSSLMode
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	if name := os.Getenv("GCP_SECRET_NAME"); name != "" {
		if err := overlaySecret(context.Background(), name); err != nil {
			return nil, err
		}
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Env:        getEnv("ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "5000"),

		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "iqscaler"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "iqscaler.db"),
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "iqscaler"),

		JWTSecret: getEnv("JWT_SECRET", "secret"),
		ClientURL: getEnv("CLIENT_URL", ""),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		Currency:          getEnv("CURRENCY", "INR"),

		SMTPHost:   getEnv("SMTP_HOST", ""),
		SMTPUser:   getEnv("SMTP_USER", ""),
		SMTPPass:   getEnv("SMTP_PASS", ""),
		EmailFrom:  getEnv("EMAIL_FROM", "IQScaler <noreply@iqscaler.com>"),
		AdminEmail: getEnv("ADMIN_EMAIL", ""),

		BlobDriver: getEnv("BLOB_DRIVER", BlobFS),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		GCSBucket:  getEnv("GCS_BUCKET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}

	var err error
	if cfg.CertificatePrice, err = getEnvInt64("CERTIFICATE_PRICE_INR", 0); err != nil {
		return nil, err
	}
	smtpPort, err := getEnvInt64("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = int(smtpPort)
	ttl, err := getEnvInt64("LEADERBOARD_TTL_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.LeaderboardTTL = time.Duration(ttl) * time.Second

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.BlobDriver {
	case BlobFS:
	case BlobGCS:
		if cfg.GCSBucket == "" {
			return nil, errors.New("GCS_BUCKET is required when BLOB_DRIVER=gcs")
		}
	default:
		return nil, errors.Errorf("unsupported BLOB_DRIVER %q", cfg.BlobDriver)
	}

	return cfg, nil
}

// overlaySecret reads a dotenv-formatted secret and exports every key that
// is not already set in the process environment.
func overlaySecret(ctx context.Context, name string) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return errors.Wrap(err, "secret manager client")
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return errors.Wrapf(err, "access secret %s", name)
	}
	return applyDotenv(string(result.Payload.Data))
}

func applyDotenv(payload string) error {
	values, err := godotenv.Unmarshal(payload)
	if err != nil {
		return errors.Wrap(err, "parse secret payload")
	}
	for key, value := range values {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s must be an integer", key)
	}
	return n, nil
}
