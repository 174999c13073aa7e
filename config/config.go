package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort         = "8000"
	defaultDatabasePath = "people.db"
	defaultListLimit    = 100

	defaultAgifyURL       = "https://api.agify.io"
	defaultGenderizeURL   = "https://api.genderize.io"
	defaultNationalizeURL = "https://api.nationalize.io"

	defaultEnrichmentTimeout = 10 * time.Second
)

// defaultSeedNames is kept deliberately short to avoid hammering the public
// inference APIs on every fresh start
const defaultSeedNames = "Зубова Валерия Максимовна,Макеев Максим Матвеевич"

// defaultSeedMailPools: pools are separated by ';', addresses within a pool by ','
const defaultSeedMailPools = "test1@mail.com,test2@mail.com;test3@mail.com"

type Config struct {
	// HTTP server
	Port               string
	CORSAllowedOrigins []string

	// database path (sqlite)
	DatabasePath string

	// logging
	LogLevel string

	// name-inference provider endpoints
	AgifyURL       string
	GenderizeURL   string
	NationalizeURL string

	// per-request timeout for provider calls
	EnrichmentTimeout time.Duration

	// cap applied when listing all people
	ListLimit int

	// startup seed data
	SeedNames     []string
	SeedMailPools [][]string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvDurationOrDefault(envVar string, defaultVal time.Duration) time.Duration {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %v. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

// splitList splits a separated value list, trimming whitespace and dropping
// empty entries
func splitList(value, sep string) []string {
	var out []string
	for _, part := range strings.Split(value, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseMailPools parses ';'-separated pools of ','-separated addresses
func parseMailPools(value string) [][]string {
	var pools [][]string
	for _, pool := range strings.Split(value, ";") {
		addresses := splitList(pool, ",")
		if len(addresses) > 0 {
			pools = append(pools, addresses)
		}
	}
	return pools
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:               getEnvOrDefault("PORT", defaultPort),
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		AgifyURL:           getEnvOrDefault("AGIFY_URL", defaultAgifyURL),
		GenderizeURL:       getEnvOrDefault("GENDERIZE_URL", defaultGenderizeURL),
		NationalizeURL:     getEnvOrDefault("NATIONALIZE_URL", defaultNationalizeURL),
		EnrichmentTimeout:  getEnvDurationOrDefault("ENRICHMENT_TIMEOUT", defaultEnrichmentTimeout),
		ListLimit:          getEnvIntOrDefault("LIST_LIMIT", defaultListLimit),
		SeedNames:          splitList(getEnvOrDefault("SEED_NAMES", defaultSeedNames), ","),
		SeedMailPools:      parseMailPools(getEnvOrDefault("SEED_MAIL_POOLS", defaultSeedMailPools)),
	}
	return cfg, nil
}
