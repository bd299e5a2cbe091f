package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort         int    `json:"server_port"`
	Env                string `json:"env"`
	JWTSecretKey       string `json:"jwt_secret_key"`
	JWTExpirationHours int    `json:"jwt_expiration_hours"`
	DefaultRateLimit   int    `json:"default_rate_limit"`
	GlobalRateLimit    int    `json:"global_rate_limit"`

	// Hostname resolution
	RootDomain         string   `json:"root_domain"`
	DevHosts           []string `json:"dev_hosts"`
	ReservedSubdomains []string `json:"reserved_subdomains"`
	TrustForwardedHost bool     `json:"trust_forwarded_host"`

	RoleCacheTTL        time.Duration `json:"role_cache_ttl"`
	ProvisioningTimeout time.Duration `json:"provisioning_timeout"`
	CompensationTimeout time.Duration `json:"compensation_timeout"`
	LogBufferSize       int           `json:"log_buffer_size"`

	// StoreDriver is "postgres" or "memory"
	StoreDriver   string `json:"store_driver"`
	RedisEnabled  bool   `json:"redis_enabled"`
	EventsEnabled bool   `json:"events_enabled"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per tenant
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	storeDriver := strings.ToLower(getEnvWithDefault("STORE_DRIVER", StoreDriverPostgres))

	return &Config{
		ServerPort:          serverPort,
		Env:                 getEnvWithDefault("APP_ENV", "development"),
		JWTSecretKey:        os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours:  jwtExpirationHours,
		DefaultRateLimit:    defaultRateLimit,
		GlobalRateLimit:     globalRateLimit,
		RootDomain:          getEnvWithDefault("ROOT_DOMAIN", "localhost"),
		DevHosts:            getEnvListWithDefault("DEV_HOSTS", nil),
		ReservedSubdomains:  getEnvListWithDefault("RESERVED_SUBDOMAINS", []string{"api", "admin", "app"}),
		TrustForwardedHost:  getEnvBoolWithDefault("TRUST_FORWARDED_HOST", false),
		RoleCacheTTL:        getEnvDurationWithDefault("ROLE_CACHE_TTL", 30*time.Second),
		ProvisioningTimeout: getEnvDurationWithDefault("PROVISIONING_TIMEOUT", 30*time.Second),
		CompensationTimeout: getEnvDurationWithDefault("COMPENSATION_TIMEOUT", 15*time.Second),
		LogBufferSize:       getEnvIntWithDefault("LOG_BUFFER_SIZE", 500),
		StoreDriver:         storeDriver,
		RedisEnabled:        getEnvBoolWithDefault("REDIS_ENABLED", true),
		EventsEnabled:       getEnvBoolWithDefault("EVENTS_ENABLED", false),
	}, nil
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvListWithDefault splits a comma separated variable, dropping empty items
func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
