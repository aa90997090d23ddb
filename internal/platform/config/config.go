package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Chain settings. The client is only constructed when ChainRPCURL and
	// ChainSignerKey are both present; operations without them fail with
	// a wallet-unavailable error rather than a crash.
	ChainRPCURL      string
	ChainID          uint64
	ContractAddress  string
	ChainSignerKey   string // Hex-encoded private key of the backend signer
	ChainCallTimeout time.Duration

	// Document storage (S3-compatible) for invoice PDFs.
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3BaseEndpoint  string // Optional, for MinIO-style deployments
	S3PublicBaseURL string // Base URL under which uploaded objects are publicly readable

	// External OAuth providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "invoice-marketplace-app")
	viper.SetDefault("CHAIN_RPC_URL", "")
	viper.SetDefault("CHAIN_ID", uint64(11155111)) // Sepolia
	viper.SetDefault("CONTRACT_ADDRESS", "")
	viper.SetDefault("CHAIN_SIGNER_KEY", "")
	viper.SetDefault("CHAIN_CALL_TIMEOUT", "90s")
	viper.SetDefault("S3_REGION", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("S3_BASE_ENDPOINT", "")
	viper.SetDefault("S3_PUBLIC_BASE_URL", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.ChainRPCURL = viper.GetString("CHAIN_RPC_URL")
	cfg.ChainID = viper.GetUint64("CHAIN_ID")
	cfg.ContractAddress = viper.GetString("CONTRACT_ADDRESS")
	cfg.ChainSignerKey = viper.GetString("CHAIN_SIGNER_KEY")

	chainTimeoutStr := viper.GetString("CHAIN_CALL_TIMEOUT")
	chainTimeout, err := time.ParseDuration(chainTimeoutStr)
	if err != nil {
		chainTimeout = 90 * time.Second
		log.Printf("Warning: Invalid value for CHAIN_CALL_TIMEOUT ('%s'). Defaulting to %s.\n", chainTimeoutStr, chainTimeout)
	}
	cfg.ChainCallTimeout = chainTimeout

	if cfg.ChainRPCURL == "" {
		log.Println("Warning: CHAIN_RPC_URL not set. Listing, purchase and repayment will be unavailable.")
	}
	if cfg.ContractAddress == "" && cfg.ChainRPCURL != "" {
		log.Println("Warning: CONTRACT_ADDRESS not set. Chain operations will be unavailable.")
	}

	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	cfg.S3BaseEndpoint = viper.GetString("S3_BASE_ENDPOINT")
	cfg.S3PublicBaseURL = viper.GetString("S3_PUBLIC_BASE_URL")
	if cfg.S3Bucket == "" {
		log.Println("Warning: S3_BUCKET not set. PDF uploads will be unavailable.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}

	return cfg, nil
}

// ChainConfigured reports whether enough settings are present to talk to the contract.
func (c *Config) ChainConfigured() bool {
	return c.ChainRPCURL != "" && c.ContractAddress != "" && c.ChainSignerKey != ""
}
