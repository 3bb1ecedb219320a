package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

type Config struct {
	APIListenAddr string
	Store         string
	DataDir       string
	LogDir        string
	SeedDemo      bool
	DB            DBConfig
}

// LoadEnv loads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		APIListenAddr: GetEnv("CLASSLIMIT_API_ADDR", ":9000"),
		Store:         GetEnv("CLASSLIMIT_STORE", StoreFile),
		DataDir:       GetEnv("CLASSLIMIT_DATA_DIR", "data"),
		LogDir:        GetEnv("CLASSLIMIT_LOG_DIR", "logs"),
		SeedDemo:      GetBool("CLASSLIMIT_SEED_DEMO", false),
		DB: DBConfig{
			User:     GetEnv("DB_USER"),
			Password: GetEnv("DB_PASSWORD"),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "5432"),
			Name:     GetEnv("DB_NAME", "classlimit"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
		},
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}
