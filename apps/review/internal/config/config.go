package config

import (
	"log"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

type Config struct {
	EtherscanURL       string
	EtherscanAPIKey    string
	Address            string
	ProxyAddress       string
	AddressBookPath    string
	KnownContractsPath string
	CacheDir           string
	CacheDSN           string
	CacheRedisAddr     string
	KafkaBroker        string
	KafkaTopic         string
	APIPort            int
}

// NewConfig loads configuration from environment variables
func NewConfig() *Config {
	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg := &Config{
		EtherscanURL:       getEnv("ETHERSCAN_URL", "https://api.etherscan.io/api"),
		EtherscanAPIKey:    getEnvOrFatal("ETHERSCAN_API_KEY"),
		Address:            getEnvOrFatal("ADDRESS"),
		ProxyAddress:       getEnv("PROXY_ADDRESS", ""),
		AddressBookPath:    getEnv("ADDRESS_BOOK_PATH", "config/address_book.json"),
		KnownContractsPath: getEnv("KNOWN_CONTRACTS_PATH", "config/known_contracts.json"),
		CacheDir:           getEnv("CACHE_DIR", "data/cache"),
		CacheDSN:           getEnv("CACHE_DSN", ""),
		CacheRedisAddr:     getEnv("CACHE_REDIS_ADDR", ""),
		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "classification-events"),
		APIPort:            getEnvInt("API_PORT", 0),
	}

	if !common.IsHexAddress(cfg.Address) {
		log.Fatalf("ADDRESS %q is not a valid Ethereum address", cfg.Address)
	}
	if cfg.ProxyAddress != "" && !common.IsHexAddress(cfg.ProxyAddress) {
		log.Fatalf("PROXY_ADDRESS %q is not a valid Ethereum address", cfg.ProxyAddress)
	}

	return cfg
}

func getEnvOrFatal(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	log.Fatalf("Warning: environment variable %s not set", key)

	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
