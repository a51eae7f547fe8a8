package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SiblingKinds lists the sibling modules a project can reference, in lookup order.
var SiblingKinds = []string{"m2", "price", "location", "time", "layout"}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Siblings SiblingsConfig
	App      AppConfig
}

// ServerConfig holds the listener settings. RequestTimeout bounds the work
// done for one request, sibling lookups included.
type ServerConfig struct {
	Port           string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// writeMargin is left after RequestTimeout to encode and flush the response.
const writeMargin = 10 * time.Second

// WriteTimeout is the http.Server write deadline. It always outlasts
// RequestTimeout so a request that ran out of time can still be answered.
func (s ServerConfig) WriteTimeout() time.Duration {
	return s.RequestTimeout + writeMargin
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
}

// RedisConfig points at the token revocation list. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	PublicKeyPath string
	PublicKeyPEM  string
}

// Endpoint is the address of one sibling module.
type Endpoint struct {
	Scheme     string `yaml:"scheme"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	PathPrefix string `yaml:"path_prefix"`
}

// BaseURL returns scheme://host:port without a trailing slash.
func (e Endpoint) BaseURL() string {
	scheme := e.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, e.Host, e.Port)
}

type SiblingsConfig struct {
	Timeout       time.Duration
	RateLimit     float64
	RateBurst     int
	Parallel      bool
	ProbeSchedule string
	Endpoints     map[string]Endpoint
}

type AppConfig struct {
	ServiceName string
	Environment string
	LogLevel    string
	Version     string
}

var defaultSiblingPorts = map[string]int{
	"m2":       5001,
	"price":    5002,
	"location": 5003,
	"time":     5004,
	"layout":   5005,
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			CORSOrigins:    getEnvAsList("CORS_ORIGINS", []string{"*"}),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "wys"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "wys"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			PublicKeyPath: getEnv("AUTH_PUBLIC_KEY_PATH", ""),
			PublicKeyPEM:  getEnv("AUTH_PUBLIC_KEY", ""),
		},
		Siblings: SiblingsConfig{
			Timeout:       getEnvAsDuration("SIBLING_TIMEOUT", 5*time.Second),
			RateLimit:     getEnvAsFloat("SIBLING_RATE_LIMIT", 50),
			RateBurst:     getEnvAsInt("SIBLING_RATE_BURST", 20),
			Parallel:      getEnvAsBool("SIBLING_PARALLEL", false),
			ProbeSchedule: getEnv("SIBLING_PROBE_SCHEDULE", "@every 1m"),
			Endpoints:     loadSiblingEndpoints(),
		},
		App: AppConfig{
			ServiceName: getEnv("SERVICE_NAME", "project-service"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if path := getEnv("SIBLINGS_FILE", ""); path != "" {
		if err := loadSiblingsFile(path, &cfg.Siblings); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Siblings.Timeout <= 0 {
		return fmt.Errorf("SIBLING_TIMEOUT must be positive")
	}

	for _, kind := range SiblingKinds {
		ep, ok := c.Siblings.Endpoints[kind]
		if !ok {
			return fmt.Errorf("sibling endpoint %q is not configured", kind)
		}
		if ep.Host == "" {
			return fmt.Errorf("%s_HOST is required", strings.ToUpper(kind))
		}
		if ep.Port < 1 || ep.Port > 65535 {
			return fmt.Errorf("%s_PORT must be between 1 and 65535, got %d", strings.ToUpper(kind), ep.Port)
		}
	}

	return nil
}

func loadSiblingEndpoints() map[string]Endpoint {
	out := make(map[string]Endpoint, len(SiblingKinds))
	for _, kind := range SiblingKinds {
		prefix := strings.ToUpper(kind)
		out[kind] = Endpoint{
			Scheme:     getEnv(prefix+"_SCHEME", "http"),
			Host:       getEnv(prefix+"_HOST", "localhost"),
			Port:       getEnvAsInt(prefix+"_PORT", defaultSiblingPorts[kind]),
			PathPrefix: normalizePrefix(getEnv(prefix+"_PATH_PREFIX", "/api/"+kind+"/")),
		}
	}
	return out
}

// normalizePrefix makes sure the prefix starts and ends with a slash so that
// "data/{id}" can be appended directly.
func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
