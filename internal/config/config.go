package config

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Load reads .env and the process environment into viper.
// Environment variables override values from the file.
func Load() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	for key, env := range envBindings {
		viper.BindEnv(key, env)
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}
}

var envBindings = map[string]string{
	"server.port":            "PORT",
	"server.allowed_origins": "SERVER_ALLOWED_ORIGINS",
	"server.static_dir":      "SERVER_STATIC_DIR",
	"server.secure_cookie":   "SERVER_SECURE_COOKIE",

	"database.host":     "DATABASE_HOST",
	"database.port":     "DATABASE_PORT",
	"database.user":     "DATABASE_USER",
	"database.password": "DATABASE_PASSWORD",
	"database.name":     "DATABASE_NAME",
	"database.ssl_mode": "DATABASE_SSL_MODE",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key":   "JWT_SECRET_KEY",
	"jwt.expiry_hours": "JWT_EXPIRY_HOURS",

	"argon2.time":        "ARGON2_TIME",
	"argon2.memory":      "ARGON2_MEMORY",
	"argon2.threads":     "ARGON2_THREADS",
	"argon2.key_length":  "ARGON2_KEY_LENGTH",
	"argon2.salt_length": "ARGON2_SALT_LENGTH",

	"ledger.default_balance": "LEDGER_DEFAULT_BALANCE",
	"ledger.admin_email":     "LEDGER_ADMIN_EMAIL",
	"ledger.admin_password":  "LEDGER_ADMIN_PASSWORD",

	"scan.roster_path": "SCAN_ROSTER_PATH",
	"scan.feed_size":   "SCAN_FEED_SIZE",

	"forwarder.port":    "FORWARDER_PORT",
	"forwarder.baud":    "FORWARDER_BAUD",
	"forwarder.server":  "FORWARDER_SERVER",
	"forwarder.timeout": "FORWARDER_TIMEOUT",
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.allowed_origins", "https://*,http://*")
	viper.SetDefault("server.static_dir", "./static")
	viper.SetDefault("server.secure_cookie", false)

	viper.SetDefault("jwt.secret_key", "change-me")
	viper.SetDefault("jwt.expiry_hours", 12)

	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	viper.SetDefault("ledger.default_balance", "2000")
	viper.SetDefault("ledger.admin_email", "admin@campus.local")
	viper.SetDefault("ledger.admin_password", "admin123")

	viper.SetDefault("scan.roster_path", "data/students.csv")
	viper.SetDefault("scan.feed_size", 200)

	viper.SetDefault("forwarder.port", "/dev/ttyUSB0")
	viper.SetDefault("forwarder.baud", 9600)
	viper.SetDefault("forwarder.server", "http://127.0.0.1:8080")
	viper.SetDefault("forwarder.timeout", 5*time.Second)
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	StaticDir      string
	SecureCookie   bool
}

func LoadServerConfig() ServerConfig {
	var origins []string
	for _, o := range strings.Split(viper.GetString("server.allowed_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return ServerConfig{
		Port:           viper.GetString("server.port"),
		AllowedOrigins: origins,
		StaticDir:      viper.GetString("server.static_dir"),
		SecureCookie:   viper.GetBool("server.secure_cookie"),
	}
}

// JWTConfig controls session token signing.
type JWTConfig struct {
	SecretKey string
	Expiry    time.Duration
}

func LoadJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey: viper.GetString("jwt.secret_key"),
		Expiry:    time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour,
	}
}

// Argon2Config holds argon2id password hashing parameters.
type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

func LoadArgon2Config() Argon2Config {
	return Argon2Config{
		Time:       uint32(viper.GetInt("argon2.time")),
		Memory:     uint32(viper.GetInt("argon2.memory")),
		Threads:    uint8(viper.GetInt("argon2.threads")),
		KeyLength:  uint32(viper.GetInt("argon2.key_length")),
		SaltLength: viper.GetInt("argon2.salt_length"),
	}
}

// LedgerConfig carries the account defaults and the bootstrap admin.
type LedgerConfig struct {
	DefaultBalance decimal.Decimal
	AdminEmail     string
	AdminPassword  string
}

func LoadLedgerConfig() LedgerConfig {
	balance, err := decimal.NewFromString(viper.GetString("ledger.default_balance"))
	if err != nil || balance.IsNegative() {
		log.Printf("Invalid ledger.default_balance %q, using 2000", viper.GetString("ledger.default_balance"))
		balance = decimal.NewFromInt(2000)
	}
	return LedgerConfig{
		DefaultBalance: balance,
		AdminEmail:     viper.GetString("ledger.admin_email"),
		AdminPassword:  viper.GetString("ledger.admin_password"),
	}
}

type ScanConfig struct {
	RosterPath string
	FeedSize   int64
}

func LoadScanConfig() ScanConfig {
	return ScanConfig{
		RosterPath: viper.GetString("scan.roster_path"),
		FeedSize:   viper.GetInt64("scan.feed_size"),
	}
}

// ForwarderConfig configures the serial reader that relays tag ids to the server.
type ForwarderConfig struct {
	Port    string
	Baud    int
	Server  string
	Timeout time.Duration
}

func LoadForwarderConfig() ForwarderConfig {
	return ForwarderConfig{
		Port:    viper.GetString("forwarder.port"),
		Baud:    viper.GetInt("forwarder.baud"),
		Server:  strings.TrimRight(viper.GetString("forwarder.server"), "/"),
		Timeout: viper.GetDuration("forwarder.timeout"),
	}
}
