package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	DB        DB
	Ledger    Ledger
	Lifecycle Lifecycle
	Kafka     Kafka
	RateLimit RateLimit
	Pprof     Pprof
	Metrics   Metrics
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Ledger stores the blockchain transport settings.
// Sync is active only when RPCURL, PrivateKey and both contract addresses are set.
type Ledger struct {
	RPCURL               string
	PrivateKey           string
	PickupManagerAddress string
	GreenRewardAddress   string
	// ChainID of 0 means the chain id is read from the node.
	ChainID        int64
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	ReadRetries    int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

// Lifecycle stores orchestrator settings.
type Lifecycle struct {
	OperationTimeout time.Duration
}

// Kafka stores consumer settings for lifecycle commands.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// RateLimit stores per-client HTTP rate limit settings.
type RateLimit struct {
	Enabled bool
	Rate    float64
	Burst   int
	TTL     time.Duration
	MaxKeys int
}

// Pprof stores the debug server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Metrics stores settings of the impact aggregation job.
type Metrics struct {
	AggregateInterval time.Duration
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs is Load with explicit command line arguments.
func LoadArgs(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet("pickup", pflag.ContinueOnError)
	// go test and process supervisors pass flags of their own.
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Ledger.RPCURL, "rpc-url", cfg.Ledger.RPCURL, "blockchain RPC endpoint")
	fs.DurationVar(&cfg.Lifecycle.OperationTimeout, "operation-timeout", cfg.Lifecycle.OperationTimeout, "assign/complete timeout")
	fs.StringSliceVar(&cfg.Kafka.Brokers, "kafka-brokers", cfg.Kafka.Brokers, "kafka brokers")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Ledger:    DefaultLedger(),
		Lifecycle: DefaultLifecycle(),
		Kafka:     DefaultKafka(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
		Metrics:   DefaultMetrics(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)

	l := &cfg.Ledger
	l.RPCURL = envString("BLOCKCHAIN_RPC_URL", l.RPCURL)
	l.PrivateKey = envString("BLOCKCHAIN_PRIVATE_KEY", l.PrivateKey)
	l.PickupManagerAddress = envString("PICKUP_MANAGER_ADDRESS", l.PickupManagerAddress)
	l.GreenRewardAddress = envString("GREEN_REWARD_ADDRESS", l.GreenRewardAddress)
	if l.ChainID, err = envInt64("LEDGER_CHAIN_ID", l.ChainID); err != nil {
		return nil, err
	}
	if l.ConfirmTimeout, err = envDuration("LEDGER_CONFIRM_TIMEOUT", l.ConfirmTimeout); err != nil {
		return nil, err
	}
	if l.PollInterval, err = envDuration("LEDGER_POLL_INTERVAL", l.PollInterval); err != nil {
		return nil, err
	}
	if l.ReadRetries, err = envInt("LEDGER_READ_RETRIES", l.ReadRetries); err != nil {
		return nil, err
	}

	if cfg.Lifecycle.OperationTimeout, err = envDuration("LIFECYCLE_OPERATION_TIMEOUT", cfg.Lifecycle.OperationTimeout); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envString("KAFKA_TOPIC", cfg.Kafka.Topic)

	rl := &cfg.RateLimit
	if rl.Enabled, err = envBool("RATE_LIMIT_ENABLED", rl.Enabled); err != nil {
		return nil, err
	}
	if rl.Rate, err = envFloat("RATE_LIMIT_RATE", rl.Rate); err != nil {
		return nil, err
	}
	if rl.Burst, err = envInt("RATE_LIMIT_BURST", rl.Burst); err != nil {
		return nil, err
	}
	if rl.TTL, err = envDuration("RATE_LIMIT_TTL", rl.TTL); err != nil {
		return nil, err
	}
	if rl.MaxKeys, err = envInt("RATE_LIMIT_MAX_KEYS", rl.MaxKeys); err != nil {
		return nil, err
	}

	if cfg.Pprof.Enabled, err = envBool("PPROF_ENABLED", cfg.Pprof.Enabled); err != nil {
		return nil, err
	}
	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)

	if cfg.Metrics.AggregateInterval, err = envDuration("METRICS_AGGREGATE_INTERVAL", cfg.Metrics.AggregateInterval); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Lifecycle.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.Lifecycle.OperationTimeout)
	}
	if c.Ledger.ConfirmTimeout <= 0 || c.Ledger.PollInterval <= 0 {
		return fmt.Errorf("invalid ledger confirmation settings: timeout=%s poll=%s",
			c.Ledger.ConfirmTimeout, c.Ledger.PollInterval)
	}
	if c.Ledger.ReadRetries < 1 {
		return fmt.Errorf("invalid LEDGER_READ_RETRIES: %d", c.Ledger.ReadRetries)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rate=%v burst=%d", c.RateLimit.Rate, c.RateLimit.Burst)
	}
	if c.Metrics.AggregateInterval <= 0 {
		return fmt.Errorf("invalid METRICS_AGGREGATE_INTERVAL: %s", c.Metrics.AggregateInterval)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
