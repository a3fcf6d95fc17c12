package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/yukikurage/task-tracker/internal/constants"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver      string
	DBPath        string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	HTTPAddr      string
	SessionStore  string
	SessionSecret string
	RedisHost     string
	RedisPort     string
	GinMode       string
	LogLevel      string
	BcryptCost    int
	SeedFile      string
	OpenAIAPIKey  string
}

// Account is a seed account definition.
type Account struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Load reads configuration from the environment, after an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBPath:        getEnv("DB_PATH", "task_manager.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "task_manager"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		SessionStore:  getEnv("SESSION_STORE", "cookie"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		BcryptCost:    getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		SeedFile:      getEnv("SEED_FILE", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
	}
}

// DefaultAccounts returns the built-in seed accounts.
func DefaultAccounts() []Account {
	return []Account{
		{Username: "admin", Password: constants.DefaultPassword, Role: "admin"},
		{Username: "user1", Password: constants.DefaultPassword, Role: "member"},
		{Username: "user2", Password: constants.DefaultPassword, Role: "member"},
		{Username: "user3", Password: constants.DefaultPassword, Role: "member"},
		{Username: "user4", Password: constants.DefaultPassword, Role: "member"},
	}
}

// SeedAccounts returns the accounts listed in SeedFile, or the defaults
// when no seed file is configured.
func (c *Config) SeedAccounts() ([]Account, error) {
	if c.SeedFile == "" {
		return DefaultAccounts(), nil
	}

	data, err := os.ReadFile(c.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file struct {
		Accounts []Account `yaml:"accounts"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return file.Accounts, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
